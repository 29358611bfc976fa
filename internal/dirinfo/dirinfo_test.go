package dirinfo

import (
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func newDir(t *testing.T, filenames ...string) *Dir {
	t.Helper()
	repo := filepath.Join("/", "repo")
	return New(repo, filepath.Join(repo, "Author Name", "Mod Name"), filenames)
}

func TestDirAuthor(t *testing.T) {
	d := newDir(t)
	if d.DirAuthor != "Author Name" {
		t.Errorf("DirAuthor = %q", d.DirAuthor)
	}
	if d.RelDirPath != filepath.Join("Author Name", "Mod Name") {
		t.Errorf("RelDirPath = %q", d.RelDirPath)
	}
}

func TestDirAuthorAtRoot(t *testing.T) {
	repo := filepath.Join("/", "repo")
	d := New(repo, repo, nil)
	if d.DirAuthor != UnknownAuthor {
		t.Errorf("DirAuthor = %q", d.DirAuthor)
	}
	if d.RelDirPath != "" {
		t.Errorf("RelDirPath = %q", d.RelDirPath)
	}
}

func TestCaseInsensitiveLookup(t *testing.T) {
	d := newDir(t, "MyMod.bl3hotfix")
	for _, name := range []string{"mymod.bl3hotfix", "MyMod.bl3hotfix", "MYMOD.BL3HOTFIX"} {
		path, ok := d.Path(name)
		if !ok {
			t.Fatalf("Path(%q) not found", name)
		}
		want := filepath.Join(d.DirPath, "MyMod.bl3hotfix")
		if path != want {
			t.Errorf("Path(%q) = %q, want %q", name, path, want)
		}
		if !d.Contains(name) {
			t.Errorf("Contains(%q) = false", name)
		}
	}
	if d.Contains("other.bl3hotfix") {
		t.Error("Contains(other) = true")
	}
}

func TestExtensionMap(t *testing.T) {
	d := newDir(t, "ModA.bl3hotfix", "modb.BL3HOTFIX", "readme.md", "LICENSE")
	got := d.AllWithExt("bl3hotfix")
	sort.Strings(got)
	if !reflect.DeepEqual(got, []string{"moda.bl3hotfix", "modb.bl3hotfix"}) {
		t.Errorf("AllWithExt = %v", got)
	}
	if !reflect.DeepEqual(d.AllNoExt(), []string{"license"}) {
		t.Errorf("AllNoExt = %v", d.AllNoExt())
	}
	if d.AllWithExt("txt") != nil {
		t.Errorf("AllWithExt(txt) = %v", d.AllWithExt("txt"))
	}
}

func TestOnlyLastExtensionCounts(t *testing.T) {
	d := newDir(t, "mod.tar.gz")
	if !reflect.DeepEqual(d.AllWithExt("gz"), []string{"mod.tar.gz"}) {
		t.Errorf("AllWithExt(gz) = %v", d.AllWithExt("gz"))
	}
	if d.AllWithExt("tar") != nil {
		t.Errorf("AllWithExt(tar) = %v", d.AllWithExt("tar"))
	}
}

func TestReadmeDetection(t *testing.T) {
	tests := []struct {
		files []string
		want  string
	}{
		{[]string{"mod.bl3hotfix"}, ""},
		{[]string{"README.md", "mod.bl3hotfix"}, "readme.md"},
		{[]string{"mod-readme.txt"}, "mod-readme.txt"},
		{[]string{"README"}, "readme"},
	}
	for _, tt := range tests {
		d := newDir(t, tt.files...)
		if d.Readme() != tt.want {
			t.Errorf("files %v: Readme = %q, want %q", tt.files, d.Readme(), tt.want)
		}
	}
}

func TestRelPath(t *testing.T) {
	d := newDir(t, "MyMod.bl3hotfix")
	rel, ok := d.RelPath("mymod.bl3hotfix")
	if !ok {
		t.Fatal("RelPath not found")
	}
	want := filepath.Join("Author Name", "Mod Name", "MyMod.bl3hotfix")
	if rel != want {
		t.Errorf("RelPath = %q, want %q", rel, want)
	}
	if _, ok := d.RelPath("missing.txt"); ok {
		t.Error("RelPath(missing) found")
	}
}

func TestAll(t *testing.T) {
	d := newDir(t, "A.txt", "b.txt")
	got := d.All()
	sort.Strings(got)
	if !reflect.DeepEqual(got, []string{"a.txt", "b.txt"}) {
		t.Errorf("All = %v", got)
	}
}
