package static

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("stdout closed") }

func fixedLog(out io.Writer, next http.Handler) http.Handler {
	l := RequestLog(out, next).(*requestLog)
	l.now = func() time.Time {
		return time.Date(2026, 10, 18, 14, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	}
	return l
}

func TestRequestLog(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		target  string
		handler http.HandlerFunc
		want    string
	}{
		{
			name:   "Body written",
			method: http.MethodGet,
			target: "/sw.js",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("hello"))
			},
			want: "[Sun, 18 Oct 2026 12:30:00 GMT] \"GET /sw.js HTTP/1.1\" 200 5\n",
		},
		{
			name:   "Status without body",
			method: http.MethodHead,
			target: "/missing?x=1",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			want: "[Sun, 18 Oct 2026 12:30:00 GMT] \"HEAD /missing?x=1 HTTP/1.1\" 404 -\n",
		},
		{
			name:    "Nothing written",
			method:  http.MethodGet,
			target:  "/",
			handler: func(http.ResponseWriter, *http.Request) {},
			want:    "[Sun, 18 Oct 2026 12:30:00 GMT] \"GET / HTTP/1.1\" 200 -\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			serve(fixedLog(&out, tt.handler), tt.method, tt.target)
			if got := out.String(); got != tt.want {
				t.Errorf("log line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequestLogIgnoresWriteErrors(t *testing.T) {
	h := fixedLog(failingWriter{}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("still served"))
	}))

	rr := serve(h, http.MethodGet, "/index.html")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := rr.Body.String(); got != "still served" {
		t.Errorf("body = %q", got)
	}
}

func TestHandlerPipeline(t *testing.T) {
	var out bytes.Buffer
	h := Handler(newTree(t), &out)

	rr := serve(h, http.MethodGet, "/scripts/custom-sw.js")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != ScriptContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rr.Header().Get(ServiceWorkerAllowedHeader); got != "/" {
		t.Errorf("Service-Worker-Allowed = %q", got)
	}
	if !bytes.Contains(out.Bytes(), []byte(`"GET /scripts/custom-sw.js HTTP/1.1" 200 10`)) {
		t.Errorf("log = %q", out.String())
	}
}
