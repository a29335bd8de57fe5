package server

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// HelperPages are the service worker test pages advertised at startup.
var HelperPages = []struct {
	Label string
	Path  string
}{
	{Label: "🔧 Service Worker test", Path: "/test-sw.html"},
	{Label: "🐛 Debug page", Path: "/sw-debug.html"},
}

// PrintBanner writes the startup banner for a server on port serving root.
func PrintBanner(w io.Writer, port int, root string) {
	base := fmt.Sprintf("http://localhost:%d", port)
	url := color.New(color.FgCyan, color.Underline).SprintFunc()

	fmt.Fprintf(w, "🚀 Starting server at %s\n", url(base))
	fmt.Fprintf(w, "📁 Serving files from: %s\n", color.New(color.Bold).Sprint(root))
	for _, p := range HelperPages {
		fmt.Fprintf(w, "%s: %s\n", p.Label, url(base+p.Path))
	}
	fmt.Fprintf(w, "📄 Main site: %s\n", url(base))
	fmt.Fprintln(w)
	fmt.Fprintln(w, color.HiBlackString("Press Ctrl+C to stop"))
}

// PrintGoodbye writes the shutdown message.
func PrintGoodbye(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, color.GreenString("👋 Server stopped"))
}
