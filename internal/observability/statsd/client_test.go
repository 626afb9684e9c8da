package statsd

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listenUDP starts a local UDP listener and returns the received lines.
func listenUDP(t *testing.T) (addr string, lines chan string) {
	t.Helper()
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	lines = make(chan string, 16)
	go func() {
		buf := make([]byte, 1024)
		for {
			n, _, readErr := conn.ReadFrom(buf)
			if readErr != nil {
				return
			}
			lines <- string(buf[:n])
		}
	}()
	return conn.LocalAddr().String(), lines
}

func receive(t *testing.T, lines chan string) string {
	t.Helper()
	select {
	case line := <-lines:
		return line
	case <-time.After(2 * time.Second):
		t.Fatal("no statsd line received")
		return ""
	}
}

func TestClient_CountWithPrefixAndTags(t *testing.T) {
	addr, lines := listenUDP(t)

	client, err := NewClient(Config{
		Enabled:    true,
		Address:    addr,
		Prefix:     "mall",
		GlobalTags: map[string]string{"env": "test"},
	})
	require.NoError(t, err)
	defer client.Close()

	client.Count("upstream.auth.rejected", 1, map[string]string{"reason": "no_session"})

	line := receive(t, lines)
	assert.True(t, strings.HasPrefix(line, "mall.upstream.auth.rejected:1|c"), line)
	assert.Contains(t, line, "env:test")
	assert.Contains(t, line, "reason:no_session")
}

func TestClient_DisabledSwallowsWrites(t *testing.T) {
	client, err := NewClient(Config{Enabled: false})
	require.NoError(t, err)

	// Must not panic or block without a connection.
	client.Count("guard.denied", 1, nil)
	client.Gauge("sessions.active", 2, nil)
	client.Timing("upstream.latency", time.Millisecond, nil)
	assert.NoError(t, client.Close())
}

func TestClient_NilReceiverIsSafe(t *testing.T) {
	var client *Client
	client.Count("x", 1, nil)
	assert.NoError(t, client.Close())
}

func TestClient_MetricNameSanitization(t *testing.T) {
	client := &Client{prefix: "mall"}
	assert.Equal(t, "mall.a_b_c", client.metricName(" a b/c "))
	assert.Empty(t, client.metricName("  "))
}
