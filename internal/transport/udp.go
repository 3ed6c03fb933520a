// Package transport provides the UDP datagram collaborator the resolver
// sends its queries through. Every exchange uses a fresh IPv4 socket that is
// closed on every exit path, including failures; there is no retry and no
// connection reuse.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/avisser/burrow/internal/dns"
	"github.com/avisser/burrow/internal/pool"
)

// ErrSocket is the sentinel for every transport failure: open, send, and
// receive errors, including receive deadline expiry. Callers match it with
// errors.Is; the wrapped message carries the underlying cause.
var ErrSocket = errors.New("transport: socket error")

// DNSPort is the well-known DNS server port.
const DNSPort = 53

// Defaults applied by New when the corresponding Config field is zero.
const (
	DefaultTimeout  = 5 * time.Second
	DefaultRecvSize = 1024
)

// recvBufPool recycles receive buffers across exchanges.
var recvBufPool = pool.New(func() *[]byte {
	b := make([]byte, dns.MaxMessageSize)
	return &b
})

// Config controls socket behavior for a Client.
type Config struct {
	// Timeout bounds the send-receive round trip. The reference behavior is
	// a receive that blocks forever; the deadline is a deliberate deviation
	// so a lost datagram fails instead of hanging. Expiry surfaces as
	// ErrSocket.
	Timeout time.Duration

	// RecvSize is the maximum datagram length accepted, capped at
	// dns.MaxMessageSize.
	RecvSize int

	// RecvBufferBytes / SendBufferBytes set SO_RCVBUF / SO_SNDBUF on the
	// socket when non-zero.
	RecvBufferBytes int
	SendBufferBytes int
}

// Client performs one-shot DNS exchanges over IPv4 UDP.
type Client struct {
	cfg Config
}

// New creates a Client, filling in defaults for zero Config fields.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RecvSize <= 0 || cfg.RecvSize > dns.MaxMessageSize {
		cfg.RecvSize = DefaultRecvSize
	}
	return &Client{cfg: cfg}
}

// Exchange sends payload to server:port and waits for exactly one response
// datagram from that server. The socket lives only for the duration of the
// call.
func (c *Client) Exchange(ctx context.Context, server net.IP, port int, payload []byte) ([]byte, error) {
	conn, err := c.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", ErrSocket, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.cfg.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)

	dst := &net.UDPAddr{IP: server, Port: port}
	if _, err := conn.WriteToUDP(payload, dst); err != nil {
		return nil, fmt.Errorf("%w: send to %s: %v", ErrSocket, dst, err)
	}

	bufp := recvBufPool.Get()
	defer recvBufPool.Put(bufp)
	buf := (*bufp)[:c.cfg.RecvSize]

	n, src, err := conn.ReadFromUDP(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: receive from %s: %v", ErrSocket, dst, err)
	}
	if !src.IP.Equal(server) || src.Port != port {
		return nil, fmt.Errorf("%w: datagram from unexpected source %s, want %s", ErrSocket, src, dst)
	}

	resp := make([]byte, n)
	copy(resp, buf[:n])
	return resp, nil
}

// open binds a fresh IPv4 UDP socket on an ephemeral local port, applying
// the configured kernel buffer sizes via setsockopt.
func (c *Client) open(ctx context.Context) (*net.UDPConn, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, raw syscall.RawConn) error {
			var optErr error
			err := raw.Control(func(fd uintptr) {
				if c.cfg.RecvBufferBytes > 0 {
					optErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, c.cfg.RecvBufferBytes)
				}
				if optErr == nil && c.cfg.SendBufferBytes > 0 {
					optErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF, c.cfg.SendBufferBytes)
				}
			})
			if err != nil {
				return err
			}
			return optErr
		},
	}

	pc, err := lc.ListenPacket(ctx, "udp4", "0.0.0.0:0")
	if err != nil {
		return nil, err
	}
	conn, ok := pc.(*net.UDPConn)
	if !ok {
		pc.Close()
		return nil, errors.New("not a UDP connection")
	}
	return conn, nil
}
