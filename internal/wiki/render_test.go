package wiki

import (
	"strings"
	"testing"
	"time"

	"modcabinet/internal/modfile"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestRenderGame(t *testing.T) {
	r := newRenderer(t)
	qol, _ := CategoryByKey("qol")
	out, err := r.RenderGame(GamePage{
		Title:          GameTitle,
		Categories:     []Category{qol},
		CategoriesLink: Link("Mod Categories", "Mod Categories"),
	})
	if err != nil {
		t.Fatalf("RenderGame: %v", err)
	}
	if !strings.Contains(out, "# "+GameTitle) {
		t.Fatalf("missing title header: %q", out)
	}
	if !strings.Contains(out, qol.Link()) {
		t.Fatalf("missing category link: %q", out)
	}
}

func TestRenderCategory(t *testing.T) {
	r := newRenderer(t)
	qol, _ := CategoryByKey("qol")
	out, err := r.RenderCategory(CategoryPage{
		Category: qol,
		BackLink: Link("Go Back", GameTitle),
		Mods: []ModListing{
			{ModLink: Link("Mod A", "Mod A"), AuthorLink: Link("alice", "alice")},
			{ModLink: Link("Mod B", "Mod B"), AuthorLink: Link("bob", "bob")},
		},
	})
	if err != nil {
		t.Fatalf("RenderCategory: %v", err)
	}
	if !strings.Contains(out, "# Quality of Life: General QoL") {
		t.Fatalf("missing category header: %q", out)
	}
	if !strings.Contains(out, ">Mod A</a>, by <a") {
		t.Fatalf("missing mod listing: %q", out)
	}
}

func TestRenderModFullPage(t *testing.T) {
	r := newRenderer(t)
	qol, _ := CategoryByKey("qol")
	nexus := modfile.ParseModURL("https://www.nexusmods.com/borderlands3/mods/1")
	out, err := r.RenderMod(ModPage{
		Title:       "Better Loot",
		BackLink:    Link("Go Back", GameTitle),
		AuthorLink:  Link("alice", "alice"),
		Updated:     time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC),
		Version:     "1.2.0",
		License:     "CC BY-SA 4.0",
		LicenseURL:  "https://creativecommons.org/licenses/by-sa/4.0/",
		Categories:  []Category{qol},
		Description: []string{"Improves loot.", "", "A lot."},
		ReadmeDesc:  []string{"From the readme."},
		Changelog:   []string{"v1.2.0: things"},
		RelFilename: "better_loot.bl3hotfix",
		SourceURL:   "https://example.com/blob/master/alice/better_loot.bl3hotfix",
		DownloadURL: "https://example.com/raw/master/alice/better_loot.bl3hotfix",
		NexusLink:   &nexus,
		Screenshots: []modfile.ModURL{modfile.ParseModURL("shot|https://example.com/shot.png")},
		VideoURLs:   []modfile.ModURL{modfile.ParseModURL("https://example.com/vid")},
		RelatedLinks: []string{
			Link("Better Loot", "Better Loot by bob") + ", by bob",
		},
	})
	if err != nil {
		t.Fatalf("RenderMod: %v", err)
	}
	for _, want := range []string{
		"# Better Loot",
		"Version: **1.2.0**",
		"Last Updated: **2023-04-05**",
		`<a href="https://creativecommons.org/licenses/by-sa/4.0/">CC BY-SA 4.0</a>`,
		"## Description",
		"Improves loot.",
		"## From the README",
		"## Download",
		"View better_loot.bl3hotfix",
		"https://www.nexusmods.com/borderlands3/mods/1",
		"## Screenshots",
		"[![shot](https://example.com/shot.png)](https://example.com/shot.png)",
		"## Videos",
		"## Changelog",
		"## Other mods with the same name",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("mod page missing %q:\n%s", want, out)
		}
	}
}

func TestRenderModMinimalPage(t *testing.T) {
	r := newRenderer(t)
	out, err := r.RenderMod(ModPage{
		Title:       "Tiny",
		BackLink:    Link("Go Back", GameTitle),
		Updated:     time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		RelFilename: "tiny.txt",
		SourceURL:   "https://example.com/blob/master/t/tiny.txt",
		DownloadURL: "https://example.com/raw/master/t/tiny.txt",
	})
	if err != nil {
		t.Fatalf("RenderMod: %v", err)
	}
	for _, absent := range []string{"## Description", "## Screenshots", "## Changelog", "Version:"} {
		if strings.Contains(out, absent) {
			t.Errorf("minimal mod page should not contain %q:\n%s", absent, out)
		}
	}
	if !strings.Contains(out, "## Download") {
		t.Fatalf("download section always present:\n%s", out)
	}
}

func TestRenderStatusWithErrors(t *testing.T) {
	r := newRenderer(t)
	out, err := r.RenderStatus(StatusPage{
		GeneratedAt: time.Date(2023, 6, 7, 8, 9, 10, 0, time.UTC),
		RunID:       "run-123",
		Errors:      []string{"something broke"},
	})
	if err != nil {
		t.Fatalf("RenderStatus: %v", err)
	}
	if !strings.Contains(out, "run-123") {
		t.Fatalf("missing run id: %q", out)
	}
	if !strings.Contains(out, "`something broke`") {
		t.Fatalf("missing error entry: %q", out)
	}
}

func TestRenderStatusClean(t *testing.T) {
	r := newRenderer(t)
	out, err := r.RenderStatus(StatusPage{GeneratedAt: time.Now(), RunID: "run-1"})
	if err != nil {
		t.Fatalf("RenderStatus: %v", err)
	}
	if !strings.Contains(out, "No errors") {
		t.Fatalf("expected clean-run message: %q", out)
	}
}

func TestRenderSidebarAndCategories(t *testing.T) {
	r := newRenderer(t)
	qol, _ := CategoryByKey("qol")
	side, err := r.RenderSidebar(SidebarPage{
		GameLink:       Link(GameTitle, GameTitle),
		Categories:     []Category{qol},
		CategoriesLink: Link("Mod Categories", "Mod Categories"),
		StatusLink:     Link("Wiki Status", "Wiki Status"),
	})
	if err != nil {
		t.Fatalf("RenderSidebar: %v", err)
	}
	if !strings.Contains(side, qol.Link()) {
		t.Fatalf("sidebar missing category link: %q", side)
	}

	cats, err := r.RenderCategories(CategoriesPage{Categories: Categories()})
	if err != nil {
		t.Fatalf("RenderCategories: %v", err)
	}
	if !strings.Contains(cats, "`qol`") || !strings.Contains(cats, "Quality of Life: General QoL") {
		t.Fatalf("categories page missing catalog rows: %q", cats)
	}
}

func TestRenderAuthor(t *testing.T) {
	r := newRenderer(t)
	out, err := r.RenderAuthor(AuthorPage{
		Name:     "alice",
		BackLink: Link("Go Back", GameTitle),
		ModLinks: []string{Link("Mod A", "Mod A")},
	})
	if err != nil {
		t.Fatalf("RenderAuthor: %v", err)
	}
	if !strings.Contains(out, "# alice") {
		t.Fatalf("missing author header: %q", out)
	}
	if !strings.Contains(out, ">Mod A</a>") {
		t.Fatalf("missing mod link: %q", out)
	}
}
