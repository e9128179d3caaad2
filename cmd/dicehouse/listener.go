package main

import "net"

// connLimitListener caps concurrent connections with a buffered-channel
// semaphore: Accept blocks once the ceiling is reached and a slot frees
// when a connection closes.
type connLimitListener struct {
	net.Listener
	sem chan struct{}
}

func newConnLimitListener(l net.Listener, max int) net.Listener {
	return &connLimitListener{Listener: l, sem: make(chan struct{}, max)}
}

func (l *connLimitListener) Accept() (net.Conn, error) {
	l.sem <- struct{}{}
	conn, err := l.Listener.Accept()
	if err != nil {
		<-l.sem
		return nil, err
	}
	return &releaseOnCloseConn{Conn: conn, sem: l.sem}, nil
}

// releaseOnCloseConn frees its semaphore slot exactly once, on Close.
type releaseOnCloseConn struct {
	net.Conn
	sem      chan struct{}
	released bool
}

func (c *releaseOnCloseConn) Close() error {
	if !c.released {
		c.released = true
		<-c.sem
	}
	return c.Conn.Close()
}
