package wiki

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"

	"modcabinet/internal/modfile"
)

//go:embed templates/*.md.tmpl
var templateFS embed.FS

// GameTitle is the wiki's landing page title.
const GameTitle = "Borderlands 3 Mods"

// Reserved page filenames written on every run.
const (
	StatusFilename     = "Wiki-Status.md"
	SidebarFilename    = "_Sidebar.md"
	CategoriesFilename = "Mod-Categories.md"
)

// Renderer renders wiki pages from the embedded markdown templates.
// Page structs carry pre-resolved links and URLs so the templates stay
// purely presentational.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded page templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse wiki templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// GamePage is the landing page listing every category that has mods.
type GamePage struct {
	Title          string
	Categories     []Category
	CategoriesLink string
}

func (r *Renderer) RenderGame(page GamePage) (string, error) {
	return r.render("game.md.tmpl", page)
}

// ModListing is one row on a category page.
type ModListing struct {
	ModLink    string
	AuthorLink string
}

// CategoryPage lists every mod carrying one category.
type CategoryPage struct {
	Category Category
	BackLink string
	Mods     []ModListing
}

func (r *Renderer) RenderCategory(page CategoryPage) (string, error) {
	return r.render("category.md.tmpl", page)
}

// SidebarPage is the wiki-wide navigation sidebar. Categories holds only
// the categories that currently have mods.
type SidebarPage struct {
	GameLink       string
	Categories     []Category
	CategoriesLink string
	StatusLink     string
}

func (r *Renderer) RenderSidebar(page SidebarPage) (string, error) {
	return r.render("sidebar.md.tmpl", page)
}

// CategoriesPage documents the full category catalog and its keys.
type CategoriesPage struct {
	Categories []Category
}

func (r *Renderer) RenderCategories(page CategoriesPage) (string, error) {
	return r.render("categories.md.tmpl", page)
}

// AuthorPage lists one author's mods.
type AuthorPage struct {
	Name     string
	BackLink string
	ModLinks []string
}

func (r *Renderer) RenderAuthor(page AuthorPage) (string, error) {
	return r.render("author.md.tmpl", page)
}

// StatusPage reports on the last generation run.
type StatusPage struct {
	GeneratedAt time.Time
	RunID       string
	Errors      []string
}

func (r *Renderer) RenderStatus(page StatusPage) (string, error) {
	return r.render("status.md.tmpl", page)
}

// ModPage is a single mod's wiki page.
type ModPage struct {
	Title       string
	BackLink    string
	AuthorLink  string
	Updated     time.Time
	Version     string
	License     string
	LicenseURL  string
	Categories  []Category
	Description []string
	ReadmeDesc  []string
	Changelog   []string

	RelFilename string
	SourceURL   string
	DownloadURL string

	NexusLink    *modfile.ModURL
	Homepage     *modfile.ModURL
	Screenshots  []modfile.ModURL
	VideoURLs    []modfile.ModURL
	OtherURLs    []modfile.ModURL
	RelatedLinks []string
}

func (r *Renderer) RenderMod(page ModPage) (string, error) {
	return r.render("mod.md.tmpl", page)
}
