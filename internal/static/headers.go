package static

import (
	"net/http"
	"strings"
)

const (
	// ScriptContentType is forced onto every response for a ".js" path.
	ScriptContentType = "application/javascript"
	// ServiceWorkerAllowedHeader widens the scope a service worker script may control.
	ServiceWorkerAllowedHeader = "Service-Worker-Allowed"
)

// ServiceWorkerHeaders wraps next so that every response, whatever its status,
// carries the script headers for its request path:
//   - a path ending in ".js" gets Content-Type: application/javascript
//   - a path ending in "sw.js" gets Service-Worker-Allowed: /
//
// The "sw.js" check is a plain suffix match, so "/custom-sw.js" matches too.
func ServiceWorkerHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &scriptHeaderWriter{ResponseWriter: w, path: r.URL.Path}
		next.ServeHTTP(sw, r)
		if !sw.wroteHeader {
			sw.WriteHeader(http.StatusOK)
		}
	})
}

// setScriptHeaders applies the header overrides for path to h.
func setScriptHeaders(h http.Header, path string) {
	if strings.HasSuffix(path, ".js") {
		h.Set("Content-Type", ScriptContentType)
	}
	if strings.HasSuffix(path, "sw.js") {
		h.Set(ServiceWorkerAllowedHeader, "/")
	}
}

// scriptHeaderWriter rewrites headers just before they are sent.
type scriptHeaderWriter struct {
	http.ResponseWriter
	path        string
	wroteHeader bool
}

func (w *scriptHeaderWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		setScriptHeaders(w.Header(), w.path)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *scriptHeaderWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *scriptHeaderWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
