package server

import (
	"net"
	"sync"
)

// serialListener hands out at most one connection at a time. Accept blocks
// until the previously accepted connection has been closed.
type serialListener struct {
	net.Listener
	slot      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Serial wraps ln so that connections are served strictly one after another.
func Serial(ln net.Listener) net.Listener {
	return &serialListener{
		Listener: ln,
		slot:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

func (l *serialListener) Accept() (net.Conn, error) {
	select {
	case l.slot <- struct{}{}:
	case <-l.done:
		return nil, net.ErrClosed
	}

	conn, err := l.Listener.Accept()
	if err != nil {
		<-l.slot
		return nil, err
	}
	return &serialConn{Conn: conn, release: func() { <-l.slot }}, nil
}

func (l *serialListener) Close() error {
	err := net.ErrClosed
	l.closeOnce.Do(func() {
		close(l.done)
		err = l.Listener.Close()
	})
	return err
}

// serialConn frees its listener slot when closed.
type serialConn struct {
	net.Conn
	release   func()
	closeOnce sync.Once
}

func (c *serialConn) Close() error {
	err := c.Conn.Close()
	c.closeOnce.Do(c.release)
	return err
}

// CloseWrite keeps net/http's graceful half-close working on TCP connections.
func (c *serialConn) CloseWrite() error {
	if cw, ok := c.Conn.(interface{ CloseWrite() error }); ok {
		return cw.CloseWrite()
	}
	return nil
}
