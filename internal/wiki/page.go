package wiki

import (
	"html"
	"net/url"
	"strings"
)

// Filename converts a page title into its wiki filename. Spaces and
// forward slashes both become dashes; everything else is valid as-is.
func Filename(title string) string {
	replaced := strings.NewReplacer(" ", "-", "/", "-").Replace(title)
	return replaced + ".md"
}

// LinkHTML builds an anchor to another wiki page as raw HTML rather than
// markdown. Rendering large pages full of native wiki links is far more
// expensive on the wiki host, so every generated link uses this form.
// External links keep their URL untouched; internal page titles have
// slashes folded to spaces before escaping, matching Filename.
func LinkHTML(text, link string, external bool) string {
	href := link
	if !external {
		href = url.PathEscape(strings.ReplaceAll(link, "/", " "))
	}
	return `<a href="` + href + `">` + html.EscapeString(text) + `</a>`
}

// Link is the canonical link form for generated pages.
func Link(text, link string) string {
	return LinkHTML(text, link, false)
}
