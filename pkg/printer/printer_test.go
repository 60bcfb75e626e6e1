package printer

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicket_Layout(t *testing.T) {
	ticket := NewTicket(20)
	ticket.KeyValue("Total:", "$1,008.00").
		ItemLine("2", "A very long product name", "$5.00").
		Separator('-')

	out := string(ticket.Bytes())
	assert.True(t, strings.HasPrefix(out, string([]byte{ESC, '@'})))
	assert.Contains(t, out, "Total:     $1,008.00\n")
	assert.Contains(t, out, "2x A very long $5.00\n")
	assert.Contains(t, out, strings.Repeat("-", 20)+"\n")
}

func TestTicket_TextWraps(t *testing.T) {
	ticket := NewTicket(10)
	ticket.Text("valid for thirty days")

	out := string(bytes.TrimPrefix(ticket.Bytes(), []byte{ESC, '@'}))
	assert.Equal(t, "valid for\nthirty\ndays\n", out)
}

func TestWrap_BreaksLongWords(t *testing.T) {
	assert.Equal(t, []string{"abcd", "ef", "gh"}, wrap("abcdef gh", 4))
	assert.Equal(t, []string{""}, wrap("   ", 4))
}

func TestNew(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, NullPrinter{}, p)

	_, err = New(Config{Type: TypeUSB})
	assert.Error(t, err)
	_, err = New(Config{Type: TypeNetwork})
	assert.Error(t, err)
	_, err = New(Config{Type: "bluetooth"})
	assert.Error(t, err)
}

func TestUSBPrinter_WritesToDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p, err := New(Config{Type: TypeUSB, USBPath: path})
	require.NoError(t, err)
	assert.True(t, p.IsConnected(context.Background()))
	require.NoError(t, p.Print(context.Background(), []byte("hello")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestNetworkPrinter_SendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(conn)
		received <- buf.Bytes()
	}()

	p, err := New(Config{Type: TypeNetwork, Address: ln.Addr().String(), Timeout: time.Second})
	require.NoError(t, err)
	require.NoError(t, p.Print(context.Background(), []byte("ticket")))

	select {
	case got := <-received:
		assert.Equal(t, "ticket", string(got))
	case <-time.After(2 * time.Second):
		t.Fatal("printer did not receive data")
	}
}
