// Package static serves files from a root directory for local service worker testing.
//
// The base capability (FileServer) resolves request paths under the root, serves
// files and directory indexes, and renders a listing for directories without an
// index file. ServiceWorkerHeaders and RequestLog decorate it.
package static

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
)

// indexFiles are served in place of a listing, in order of preference.
var indexFiles = []string{"index.html", "index.htm"}

// Handler assembles the full request pipeline for root, logging to logOut.
func Handler(root string, logOut io.Writer) http.Handler {
	return RequestLog(logOut, ServiceWorkerHeaders(FileServer(root)))
}

// fileServer serves GET and HEAD requests from root. Files go through
// http.ServeContent so range, conditional and MIME handling stay standard.
type fileServer struct {
	root http.FileSystem
	dir  string
}

// FileServer returns a handler serving the tree under root.
// Nothing outside root is ever served: request paths are cleaned against "/".
func FileServer(root string) http.Handler {
	return &fileServer{root: http.Dir(root), dir: root}
}

func (s *fileServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		sendError(w, r, http.StatusNotImplemented, fmt.Sprintf("Unsupported method (%q)", r.Method))
		return
	}

	name := cleanPath(r.URL.Path)

	f, err := s.root.Open(name)
	if err != nil {
		sendError(w, r, http.StatusNotFound, "File not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		sendError(w, r, http.StatusInternalServerError, "Failed to stat file")
		return
	}

	if !info.IsDir() {
		if strings.HasSuffix(r.URL.Path, "/") {
			sendError(w, r, http.StatusNotFound, "File not found")
			return
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
		return
	}

	if !strings.HasSuffix(r.URL.Path, "/") {
		redirectToSlash(w, r)
		return
	}

	for _, index := range indexFiles {
		if s.serveIndex(w, r, path.Join(name, index)) {
			return
		}
	}

	entries, err := f.Readdir(-1)
	if err != nil {
		sendError(w, r, http.StatusNotFound, "No permission to list directory")
		return
	}

	var body strings.Builder
	if err := renderListing(&body, s.dir, name, r.URL.Path, entries); err != nil {
		sendError(w, r, http.StatusInternalServerError, "Failed to render directory listing")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = io.WriteString(w, body.String())
	}
}

// serveIndex serves name if it is a regular file and reports whether it did.
func (s *fileServer) serveIndex(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := s.root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

// redirectToSlash sends a directory request without a trailing slash to the
// slash form, keeping the query string.
func redirectToSlash(w http.ResponseWriter, r *http.Request) {
	target := path.Base(r.URL.Path) + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	w.Header().Set("Location", target)
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusMovedPermanently)
}

// cleanPath maps a URL path to a rooted, slash-separated name without ".." escapes.
func cleanPath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

const errorTemplate = `<!DOCTYPE HTML>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Error response</title>
</head>
<body>
<h1>Error response</h1>
<p>Error code: %d</p>
<p>Message: %s.</p>
</body>
</html>
`

// sendError writes a minimal HTML error page.
func sendError(w http.ResponseWriter, r *http.Request, code int, message string) {
	body := fmt.Sprintf(errorTemplate, code, html.EscapeString(message))

	h := w.Header()
	h.Del("Last-Modified")
	h.Del("Etag")
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Content-Length", strconv.Itoa(len(body)))
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	if r.Method != http.MethodHead {
		_, _ = io.WriteString(w, body)
	}
}
