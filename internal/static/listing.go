package static

import (
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
)

// listingEntry is one line of a directory listing.
type listingEntry struct {
	display string
	href    string
}

// renderListing writes an HTML page listing entries of the directory name
// under root. displayPath is the request path shown in the title.
func renderListing(w io.Writer, root, name, displayPath string, entries []fs.FileInfo) error {
	title := "Directory listing for " + displayPath

	body := element(atom.Body)
	body.AppendChild(text(atom.H1, title))
	body.AppendChild(element(atom.Hr))
	list := element(atom.Ul)
	for _, e := range listingEntries(root, name, entries) {
		a := text(atom.A, e.display)
		a.Attr = []html.Attribute{{Key: "href", Val: e.href}}
		li := element(atom.Li)
		li.AppendChild(a)
		list.AppendChild(li)
	}
	body.AppendChild(list)
	body.AppendChild(element(atom.Hr))

	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	head.AppendChild(text(atom.Title, title))

	page := element(atom.Html)
	page.Attr = []html.Attribute{{Key: "lang", Val: "en"}}
	page.AppendChild(head)
	page.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(page)
	return html.Render(w, doc)
}

// listingEntries sorts entries case-insensitively and decorates them:
// directories get a trailing "/" and symbolic links a trailing "@".
func listingEntries(root, name string, entries []fs.FileInfo) []listingEntry {
	fold := cases.Fold()
	keys := make(map[string]string, len(entries))
	for _, e := range entries {
		keys[e.Name()] = fold.String(e.Name())
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return keys[entries[i].Name()] < keys[entries[j].Name()]
	})

	dir := filepath.Join(root, filepath.FromSlash(name))
	out := make([]listingEntry, 0, len(entries))
	for _, e := range entries {
		display, link := e.Name(), e.Name()
		if isDir(dir, e) {
			display += "/"
			link += "/"
		}
		if e.Mode()&fs.ModeSymlink != 0 {
			display = e.Name() + "@"
		}
		// url.URL keeps names containing ':' from being read as a scheme.
		u := url.URL{Path: link}
		out = append(out, listingEntry{display: display, href: u.String()})
	}
	return out
}

// isDir reports whether e is a directory, following symbolic links.
func isDir(dir string, e fs.FileInfo) bool {
	if e.Mode()&fs.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.IsDir()
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func text(a atom.Atom, s string) *html.Node {
	n := element(a)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}
