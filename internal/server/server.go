// Package server runs the dev server's accept loop and handles shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Listen binds a TCP listener on port across all local interfaces.
func Listen(port int) (net.Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}
	return ln, nil
}

// BoundPort returns the TCP port ln actually listens on, which differs from
// the requested one when port 0 was asked for.
func BoundPort(ln net.Listener) int {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Server serves one HTTP connection at a time until its context is cancelled.
type Server struct {
	ln  net.Listener
	srv *http.Server
}

// New prepares a Server for ln. Keep-alives are disabled so each connection
// carries a single request and the next client is not starved.
func New(ln net.Listener, handler http.Handler) *Server {
	srv := &http.Server{Handler: handler}
	srv.SetKeepAlivesEnabled(false)
	return &Server{ln: Serial(ln), srv: srv}
}

// Addr returns the bound address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Run blocks serving requests. When ctx is cancelled the listener and any open
// connection are closed and Run returns nil.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.srv.Serve(s.ln)
	}()

	select {
	case <-ctx.Done():
		if err := s.srv.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			<-errc
			return fmt.Errorf("close listener: %w", err)
		}
		<-errc
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
