package modfile

import (
	"reflect"
	"testing"
)

func TestAddCommentLineBlankFirst(t *testing.T) {
	m := New(0, StatusUnknown)
	m.addCommentLine("", "")
	if len(m.Description) != 0 {
		t.Errorf("Description = %v, want empty", m.Description)
	}
}

func TestAddCommentLineSingle(t *testing.T) {
	m := New(0, StatusUnknown)
	m.addCommentLine("testing", "")
	if !reflect.DeepEqual(m.Description, []string{"testing"}) {
		t.Errorf("Description = %v", m.Description)
	}
}

func TestAddCommentLineStrips(t *testing.T) {
	for _, char := range []string{"/", "#", " ", "\n", "\r", "\t"} {
		m := New(0, StatusUnknown)
		m.addCommentLine(char+"testing"+char, "")
		if !reflect.DeepEqual(m.Description, []string{"testing"}) {
			t.Errorf("char %q: Description = %v", char, m.Description)
		}
	}
}

func TestAddCommentLineStripsAll(t *testing.T) {
	m := New(0, StatusUnknown)
	m.addCommentLine("/#\n\r\t testing/#\n\r\t", "")
	if !reflect.DeepEqual(m.Description, []string{"testing"}) {
		t.Errorf("Description = %v", m.Description)
	}
}

func TestAddCommentLineDoubleEmpty(t *testing.T) {
	m := New(0, StatusUnknown)
	m.addCommentLine("testing", "")
	m.addCommentLine("", "")
	m.addCommentLine("", "")
	if !reflect.DeepEqual(m.Description, []string{"testing", ""}) {
		t.Errorf("Description = %v", m.Description)
	}
}

func TestAddCommentLineInitialArt(t *testing.T) {
	for _, char := range []string{"_", "/", "\\", ".", ":", "|", "#", "~", " ", "\t"} {
		m := New(0, StatusUnknown)
		m.addCommentLine(char, "")
		if len(m.Description) != 0 {
			t.Errorf("char %q: Description = %v, want empty", char, m.Description)
		}
	}
}

func TestAddCommentLineInitialArtRun(t *testing.T) {
	m := New(0, StatusUnknown)
	m.addCommentLine("_/\\.:| \t#~", "")
	if len(m.Description) != 0 {
		t.Errorf("Description = %v, want empty", m.Description)
	}
}

func TestAddCommentLineArtAfterContentKept(t *testing.T) {
	art := "_/\\.:|# \t~"
	m := New(0, StatusUnknown)
	m.addCommentLine("testing", "")
	m.addCommentLine(art, "")
	if !reflect.DeepEqual(m.Description, []string{"testing", art}) {
		t.Errorf("Description = %v", m.Description)
	}
}

func TestAddCommentLineMatchedTitle(t *testing.T) {
	m := New(0, StatusUnknown)
	m.addCommentLine("Mod Title", "Mod Title")
	if m.Title != "Mod Title" {
		t.Errorf("Title = %q", m.Title)
	}
	if len(m.Description) != 0 {
		t.Errorf("Description = %v, want empty", m.Description)
	}
}

func TestAddCommentLineCloseTitle(t *testing.T) {
	m := New(0, StatusUnknown)
	m.addCommentLine("Mod Title", "Mod Titlez")
	if m.Title != "Mod Title" {
		t.Errorf("Title = %q", m.Title)
	}
	if len(m.Description) != 0 {
		t.Errorf("Description = %v, want empty", m.Description)
	}
}

func TestAddCommentLineUnmatchedTitle(t *testing.T) {
	m := New(0, StatusUnknown)
	m.addCommentLine("Mod Title", "Totally Different")
	if m.Title != "" {
		t.Errorf("Title = %q, want empty", m.Title)
	}
	if !reflect.DeepEqual(m.Description, []string{"Mod Title"}) {
		t.Errorf("Description = %v", m.Description)
	}
}

func TestAddCommentLineTitleMatchOnlyOnFirst(t *testing.T) {
	m := New(0, StatusUnknown)
	m.addCommentLine("testing", "")
	m.addCommentLine("Mod Title", "Mod Title")
	if m.Title != "" {
		t.Errorf("Title = %q, want empty", m.Title)
	}
	if !reflect.DeepEqual(m.Description, []string{"testing", "Mod Title"}) {
		t.Errorf("Description = %v", m.Description)
	}
}
