package static

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

type requestLog struct {
	out  io.Writer
	next http.Handler
	now  func() time.Time
}

// RequestLog writes one line per handled request to out:
//
//	[Mon, 02 Jan 2006 15:04:05 GMT] "GET /sw.js HTTP/1.1" 200 1234
//
// Write errors on out are ignored and never affect the response.
func RequestLog(out io.Writer, next http.Handler) http.Handler {
	return &requestLog{out: out, next: next, now: time.Now}
}

func (l *requestLog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := &statusRecorder{ResponseWriter: w}
	l.next.ServeHTTP(rec, r)
	if rec.status == 0 {
		rec.status = http.StatusOK
	}

	size := "-"
	if rec.size > 0 {
		size = strconv.FormatInt(rec.size, 10)
	}
	_, _ = fmt.Fprintf(l.out, "[%s] \"%s %s %s\" %d %s\n",
		l.now().UTC().Format(http.TimeFormat), r.Method, r.RequestURI, r.Proto, rec.status, size)
}

// statusRecorder captures the status code and body size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int64
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += int64(n)
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
