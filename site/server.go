// Package main provides a static file server for testing service workers locally.
//
// Usage:
//
//	go run ./site [-dir DIR] [port]
//
// Files are served from the directory containing the executable unless -dir is
// given. Scripts ending in ".js" are sent as application/javascript, and any
// path ending in "sw.js" carries "Service-Worker-Allowed: /".
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/f4ah6o/sw-serve/internal/config"
	"github.com/f4ah6o/sw-serve/internal/server"
	"github.com/f4ah6o/sw-serve/internal/static"
)

func main() {
	dir := flag.String("dir", "", "Directory to serve (default: directory containing the executable)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-dir DIR] [port]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Resolve(flag.Args(), *dir)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ln, err := server.Listen(cfg.Port)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	server.PrintBanner(os.Stdout, server.BoundPort(ln), cfg.Root)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(ln, static.Handler(cfg.Root, os.Stdout))
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	server.PrintGoodbye(os.Stdout)
}
