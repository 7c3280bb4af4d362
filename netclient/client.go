// Package netclient sends client packets to the game server from a
// dedicated writer goroutine so the frame loop never blocks on I/O.
package netclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// PacketPing is the keepalive packet id.
const PacketPing = 0x73

// DefaultQueue is the outgoing queue length used by Dial.
const DefaultQueue = 64

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("netclient: closed")

// PingPacket returns a keepalive carrying seq.
func PingPacket(seq byte) []byte { return []byte{PacketPing, seq} }

// Client queues packets for one server connection.
type Client struct {
	conn net.Conn
	out  chan []byte

	closeOnce sync.Once
	closed    chan struct{}
	dropped   atomic.Uint64
	sent      atomic.Uint64
}

// New wraps conn with an outgoing queue of the given length.
func New(conn net.Conn, queue int) *Client {
	if queue <= 0 {
		queue = DefaultQueue
	}
	return &Client{conn: conn, out: make(chan []byte, queue), closed: make(chan struct{})}
}

// Dial connects to addr.
func Dial(ctx context.Context, addr string) (*Client, error) {
	d := net.Dialer{Timeout: 10 * time.Second}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return New(conn, DefaultQueue), nil
}

// Send queues p without blocking. When the queue is full the packet is
// dropped and counted.
func (c *Client) Send(p []byte) {
	select {
	case <-c.closed:
		return
	default:
	}
	select {
	case c.out <- p:
	default:
		if c.dropped.Add(1) == 1 {
			log.Printf("netclient: send queue full, dropping packet %#x", p[0])
		}
	}
}

// Dropped returns how many packets were discarded on a full queue.
func (c *Client) Dropped() uint64 { return c.dropped.Load() }

// Sent returns how many packets were written.
func (c *Client) Sent() uint64 { return c.sent.Load() }

// Run writes queued packets until ctx is done, Close is called or a write
// fails.
func (c *Client) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.closed:
			return ErrClosed
		case p := <-c.out:
			if err := writeAll(c.conn, p); err != nil {
				return fmt.Errorf("write packet %#x: %w", p[0], err)
			}
			c.sent.Add(1)
		}
	}
}

// Close stops Run and closes the connection.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

// writeAll writes the entirety of data to conn, returning an error if the
// write fails or is short.
func writeAll(conn net.Conn, data []byte) error {
	for len(data) > 0 {
		n, err := conn.Write(data)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		data = data[n:]
	}
	return nil
}
