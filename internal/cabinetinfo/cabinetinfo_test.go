package cabinetinfo

import (
	"reflect"
	"strings"
	"testing"

	"modcabinet/internal/modfile"
	"modcabinet/internal/report"
)

var testCategories = map[string]string{
	"cat1": "Category One",
	"cat2": "Category Two",
}

func loadInfo(t *testing.T, lines ...string) (*Info, *report.Sink) {
	t.Helper()
	info := New(0, modfile.StatusUnknown)
	sink := &report.Sink{}
	body := strings.Join(lines, "\n")
	if len(lines) > 0 {
		body += "\n"
	}
	if err := info.Load(strings.NewReader(body), "cabinet.info", sink, testCategories); err != nil {
		t.Fatalf("load: %v", err)
	}
	return info, sink
}

func wantSingleError(t *testing.T, sink *report.Sink, substr string) {
	t.Helper()
	if sink.Len() != 1 {
		t.Fatalf("messages = %v, want one", sink.Messages())
	}
	if !strings.Contains(sink.Messages()[0], substr) {
		t.Errorf("message %q does not mention %q", sink.Messages()[0], substr)
	}
}

func TestLoadSingleUnnamedMod(t *testing.T) {
	info, sink := loadInfo(t, "cat1")
	if info.Len() != 1 || !info.Has("") {
		t.Fatalf("Entries = %v", info.Entries)
	}
	if !reflect.DeepEqual(info.Get("").Categories, []string{"cat1"}) {
		t.Errorf("Categories = %v", info.Get("").Categories)
	}
	if !info.SingleMod {
		t.Error("SingleMod = false")
	}
	if sink.Len() != 0 {
		t.Errorf("messages = %v", sink.Messages())
	}
}

func TestLoadSingleNamedMod(t *testing.T) {
	info, sink := loadInfo(t, "modname: cat1")
	if info.Len() != 1 || !info.Has("modname") {
		t.Fatalf("Entries = %v", info.Entries)
	}
	if !reflect.DeepEqual(info.Get("modname").Categories, []string{"cat1"}) {
		t.Errorf("Categories = %v", info.Get("modname").Categories)
	}
	if info.SingleMod {
		t.Error("SingleMod = true")
	}
	if sink.Len() != 0 {
		t.Errorf("messages = %v", sink.Messages())
	}
}

func TestLoadCommentLines(t *testing.T) {
	info, sink := loadInfo(t, "# Comment!", "cat1", "# Comment!")
	if info.Len() != 1 || !info.Has("") || !info.SingleMod {
		t.Fatalf("Entries = %v, SingleMod = %v", info.Entries, info.SingleMod)
	}
	if sink.Len() != 0 {
		t.Errorf("messages = %v", sink.Messages())
	}
}

func TestLoadEmptyLines(t *testing.T) {
	info, sink := loadInfo(t, "", "cat1", "")
	if info.Len() != 1 || !info.Has("") || !info.SingleMod {
		t.Fatalf("Entries = %v, SingleMod = %v", info.Entries, info.SingleMod)
	}
	if sink.Len() != 0 {
		t.Errorf("messages = %v", sink.Messages())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	info, sink := loadInfo(t)
	if info.Len() != 0 {
		t.Errorf("Entries = %v", info.Entries)
	}
	if sink.Len() != 0 {
		t.Errorf("messages = %v", sink.Messages())
	}
}

func TestLoadSecondBareLineRejected(t *testing.T) {
	info, sink := loadInfo(t, "cat1", "cat2")
	if info.Len() != 1 || !info.Has("") || !info.SingleMod {
		t.Fatalf("Entries = %v, SingleMod = %v", info.Entries, info.SingleMod)
	}
	if !reflect.DeepEqual(info.Get("").Categories, []string{"cat1"}) {
		t.Errorf("Categories = %v", info.Get("").Categories)
	}
	wantSingleError(t, sink, "Unknown line")
}

func TestLoadNamedAfterUnnamedRejected(t *testing.T) {
	info, sink := loadInfo(t, "cat1", "modname: cat2")
	if info.Len() != 1 || !info.Has("") || !info.SingleMod {
		t.Fatalf("Entries = %v, SingleMod = %v", info.Entries, info.SingleMod)
	}
	wantSingleError(t, sink, "Unknown line")
}

func TestLoadUnnamedAfterNamedRejected(t *testing.T) {
	info, sink := loadInfo(t, "modname: cat1", "cat2")
	if info.Len() != 1 || !info.Has("modname") || info.SingleMod {
		t.Fatalf("Entries = %v, SingleMod = %v", info.Entries, info.SingleMod)
	}
	wantSingleError(t, sink, "Unknown line")
}

func TestLoadTwoNamed(t *testing.T) {
	info, sink := loadInfo(t, "modname: cat1", "mod2: cat2")
	if info.Len() != 2 {
		t.Fatalf("Entries = %v", info.Entries)
	}
	if !reflect.DeepEqual(info.Get("modname").Categories, []string{"cat1"}) {
		t.Errorf("modname categories = %v", info.Get("modname").Categories)
	}
	if !reflect.DeepEqual(info.Get("mod2").Categories, []string{"cat2"}) {
		t.Errorf("mod2 categories = %v", info.Get("mod2").Categories)
	}
	if info.SingleMod {
		t.Error("SingleMod = true")
	}
	if sink.Len() != 0 {
		t.Errorf("messages = %v", sink.Messages())
	}
}

func TestLoadSingleURL(t *testing.T) {
	for _, name := range []string{"", "modname"} {
		for _, proto := range []string{"http", "https"} {
			url := proto + "://site.com/foo"
			line := "cat1"
			if name != "" {
				line = name + ": cat1"
			}
			info, sink := loadInfo(t, line, url)
			if info.Len() != 1 || sink.Len() != 0 {
				t.Fatalf("name %q proto %s: Entries = %v, messages = %v",
					name, proto, info.Entries, sink.Messages())
			}
			if !reflect.DeepEqual(info.Get(name).URLs, []string{url}) {
				t.Errorf("name %q proto %s: URLs = %v", name, proto, info.Get(name).URLs)
			}
		}
	}
}

func TestLoadMultipleURLs(t *testing.T) {
	urls := []string{"http://site1.com/foo", "https://site2.net/bar"}
	info, sink := loadInfo(t, "modname: cat1", urls[0], urls[1])
	if info.Len() != 1 || sink.Len() != 0 {
		t.Fatalf("Entries = %v, messages = %v", info.Entries, sink.Messages())
	}
	if !reflect.DeepEqual(info.Get("modname").URLs, urls) {
		t.Errorf("URLs = %v", info.Get("modname").URLs)
	}
}

func TestLoadOnlyURL(t *testing.T) {
	info, sink := loadInfo(t, "http://site.com/foo")
	if info.Len() != 0 {
		t.Errorf("Entries = %v", info.Entries)
	}
	wantSingleError(t, sink, "previous modfile")
}

func TestLoadURLInterleavedComments(t *testing.T) {
	url := "http://site.com/foo"
	info, sink := loadInfo(t,
		"modname: cat1",
		"",
		"# URL follows:",
		"",
		url,
		"modname2: cat2",
	)
	if sink.Len() != 0 {
		t.Fatalf("messages = %v", sink.Messages())
	}
	if info.Len() != 2 || !info.Has("modname") || !info.Has("modname2") {
		t.Fatalf("Entries = %v", info.Entries)
	}
	if !reflect.DeepEqual(info.Get("modname").URLs, []string{url}) {
		t.Errorf("modname URLs = %v", info.Get("modname").URLs)
	}
	if len(info.Get("modname2").URLs) != 0 {
		t.Errorf("modname2 URLs = %v", info.Get("modname2").URLs)
	}
}

func TestRegisterSingleCategory(t *testing.T) {
	info, sink := loadInfo(t)
	if !info.Register("xyzzy", "cat1", "cabinet.info", sink, testCategories) {
		t.Fatal("Register = false")
	}
	if !reflect.DeepEqual(info.Get("xyzzy").Categories, []string{"cat1"}) {
		t.Errorf("Categories = %v", info.Get("xyzzy").Categories)
	}
	if len(info.Get("xyzzy").URLs) != 0 {
		t.Errorf("URLs = %v", info.Get("xyzzy").URLs)
	}
	if sink.Len() != 0 {
		t.Errorf("messages = %v", sink.Messages())
	}
}

func TestRegisterTwoCategories(t *testing.T) {
	info, sink := loadInfo(t)
	if !info.Register("xyzzy", "cat1, cat2", "cabinet.info", sink, testCategories) {
		t.Fatal("Register = false")
	}
	if !reflect.DeepEqual(info.Get("xyzzy").Categories, []string{"cat1", "cat2"}) {
		t.Errorf("Categories = %v", info.Get("xyzzy").Categories)
	}
	if sink.Len() != 0 {
		t.Errorf("messages = %v", sink.Messages())
	}
}

func TestRegisterStrangeWhitespace(t *testing.T) {
	info, sink := loadInfo(t)
	if !info.Register("xyzzy", "   cat1,   cat2 ", "cabinet.info", sink, testCategories) {
		t.Fatal("Register = false")
	}
	if !reflect.DeepEqual(info.Get("xyzzy").Categories, []string{"cat1", "cat2"}) {
		t.Errorf("Categories = %v", info.Get("xyzzy").Categories)
	}
	if sink.Len() != 0 {
		t.Errorf("messages = %v", sink.Messages())
	}
}

func TestRegisterDuplicateMod(t *testing.T) {
	info, sink := loadInfo(t)
	if !info.Register("xyzzy", "cat1", "cabinet.info", sink, testCategories) {
		t.Fatal("first Register = false")
	}
	if info.Register("xyzzy", "cat2", "cabinet.info", sink, testCategories) {
		t.Error("second Register = true")
	}
	wantSingleError(t, sink, "specified twice")
}

func TestRegisterInvalidCategoryNoneValid(t *testing.T) {
	info, sink := loadInfo(t)
	if info.Register("xyzzy", "cat3", "cabinet.info", sink, testCategories) {
		t.Error("Register = true")
	}
	if info.Has("xyzzy") {
		t.Error("entry registered anyway")
	}
	msgs := sink.Messages()
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", msgs)
	}
	if !strings.Contains(msgs[0], "Invalid category") {
		t.Errorf("first message = %q", msgs[0])
	}
	if !strings.Contains(msgs[1], "No categories") || !strings.Contains(msgs[1], "xyzzy") {
		t.Errorf("second message = %q", msgs[1])
	}
}

func TestRegisterInvalidCategoryOneValid(t *testing.T) {
	info, sink := loadInfo(t)
	if !info.Register("xyzzy", "cat1, cat3", "cabinet.info", sink, testCategories) {
		t.Fatal("Register = false")
	}
	wantSingleError(t, sink, "Invalid category")
	if !reflect.DeepEqual(info.Get("xyzzy").Categories, []string{"cat1"}) {
		t.Errorf("Categories = %v", info.Get("xyzzy").Categories)
	}
}

func TestRegisterUnnamedNoCategories(t *testing.T) {
	info, sink := loadInfo(t)
	if info.Register("", "cat3", "cabinet.info", sink, testCategories) {
		t.Error("Register = true")
	}
	msgs := sink.Messages()
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", msgs)
	}
	if !strings.Contains(msgs[1], "the mod") {
		t.Errorf("second message = %q", msgs[1])
	}
}

func TestModList(t *testing.T) {
	info, sink := loadInfo(t)
	if !info.Register("mod", "cat1", "cabinet.info", sink, testCategories) {
		t.Fatal("Register = false")
	}
	list := info.ModList()
	if len(list) != 1 || list[0] != info.Get("mod") {
		t.Errorf("ModList = %v", list)
	}
}
