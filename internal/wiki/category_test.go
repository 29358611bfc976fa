package wiki

import (
	"strings"
	"testing"
)

func TestCategoriesCatalog(t *testing.T) {
	cats := Categories()
	if len(cats) == 0 {
		t.Fatal("expected a non-empty catalog")
	}
	if cats[0].Key != "major-pack" {
		t.Fatalf("unexpected first category: %+v", cats[0])
	}
	seen := map[string]bool{}
	for _, cat := range cats {
		if seen[cat.Key] {
			t.Fatalf("duplicate category key %q", cat.Key)
		}
		seen[cat.Key] = true
	}
	for _, key := range []string{"qol", "bugfix", "gear-pistol", "mayhem", "translation"} {
		if !seen[key] {
			t.Errorf("catalog missing key %q", key)
		}
	}
}

func TestCategoryPrefixSplit(t *testing.T) {
	cat, ok := CategoryByKey("gear-pistol")
	if !ok {
		t.Fatal("gear-pistol not found")
	}
	if cat.Prefix != "Weapons/Gear" || cat.Title != "Pistols" {
		t.Fatalf("unexpected split: %+v", cat)
	}
	if cat.FullTitle != "Weapons/Gear: Pistols" {
		t.Fatalf("unexpected full title: %q", cat.FullTitle)
	}
}

func TestCategoryNoPrefix(t *testing.T) {
	cat, ok := CategoryByKey("major-pack")
	if !ok {
		t.Fatal("major-pack not found")
	}
	if cat.Prefix != "" || cat.Title != cat.FullTitle {
		t.Fatalf("unexpected split for unprefixed title: %+v", cat)
	}
}

func TestCategoryLinkUsesShortTitle(t *testing.T) {
	cat, _ := CategoryByKey("gear-pistol")
	link := cat.Link()
	if !strings.Contains(link, ">Pistols</a>") {
		t.Fatalf("link should display the short title: %q", link)
	}
}

func TestCategoryMapMatchesCatalog(t *testing.T) {
	m := CategoryMap()
	cats := Categories()
	if len(m) != len(cats) {
		t.Fatalf("map has %d entries, catalog has %d", len(m), len(cats))
	}
	if m["qol"] != "Quality of Life: General QoL" {
		t.Fatalf("unexpected qol title: %q", m["qol"])
	}
}
