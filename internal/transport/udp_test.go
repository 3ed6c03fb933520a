package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startEchoServer binds a loopback UDP socket that answers each datagram
// with the given response. It shuts down when the test finishes.
func startEchoServer(t *testing.T, response []byte) *net.UDPAddr {
	t.Helper()

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	go func() {
		buf := make([]byte, 2048)
		for {
			_, src, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			_, _ = conn.WriteToUDP(response, src)
		}
	}()

	return conn.LocalAddr().(*net.UDPAddr)
}

func TestExchange(t *testing.T) {
	response := []byte{0xCA, 0xFE, 0x00, 0x01}
	addr := startEchoServer(t, response)

	c := New(Config{Timeout: 2 * time.Second})
	got, err := c.Exchange(context.Background(), addr.IP, addr.Port, []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, response, got)
}

func TestExchange_Timeout(t *testing.T) {
	// Bind a socket that never answers.
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer conn.Close()
	addr := conn.LocalAddr().(*net.UDPAddr)

	c := New(Config{Timeout: 50 * time.Millisecond})
	_, err = c.Exchange(context.Background(), addr.IP, addr.Port, []byte{0x01})
	assert.ErrorIs(t, err, ErrSocket)
}

func TestExchange_ContextDeadline(t *testing.T) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer conn.Close()
	addr := conn.LocalAddr().(*net.UDPAddr)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := New(Config{Timeout: time.Minute})
	start := time.Now()
	_, err = c.Exchange(ctx, addr.IP, addr.Port, []byte{0x01})
	assert.ErrorIs(t, err, ErrSocket)
	assert.Less(t, time.Since(start), 10*time.Second, "context deadline should beat the client timeout")
}

func TestExchange_BufferOptions(t *testing.T) {
	response := []byte{0x01, 0x02}
	addr := startEchoServer(t, response)

	c := New(Config{
		Timeout:         2 * time.Second,
		RecvBufferBytes: 64 * 1024,
		SendBufferBytes: 64 * 1024,
	})
	got, err := c.Exchange(context.Background(), addr.IP, addr.Port, []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, response, got)
}

func TestNewDefaults(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, DefaultTimeout, c.cfg.Timeout)
	assert.Equal(t, DefaultRecvSize, c.cfg.RecvSize)
}
