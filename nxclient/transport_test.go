package nxclient_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/nxbridge/nxclient"
)

func startTestServer(t *testing.T, response string) (addr string, gotReqLine *string, closeFn func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	got := new(string)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf []byte
		var tmp [1]byte
		for {
			_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			if _, rerr := conn.Read(tmp[:]); rerr != nil {
				break
			}
			buf = append(buf, tmp[0])
			if tmp[0] == '\x00' {
				break
			}
		}
		*got = string(buf)
		if response != "" {
			_, _ = conn.Write([]byte(response))
		}
	}()
	return ln.Addr().String(), got, func() { _ = ln.Close() }
}

func TestTransportFraming(t *testing.T) {
	addr, got, closeFn := startTestServer(t, "{\"sessionId\":\"s9\"}\n")
	defer closeFn()

	tr := nxclient.NewTransport(addr)
	raw, err := tr.DoCtx(context.Background(), "session/create", []byte("pro-controller"), nil)
	require.NoError(t, err)

	// Null byte terminates the request; the response loses its newline.
	assert.Equal(t, "session/create pro-controller\x00", *got)
	assert.Equal(t, `{"sessionId":"s9"}`, raw)
}

func TestTransportPathParams(t *testing.T) {
	addr, got, closeFn := startTestServer(t, "\n")
	defer closeFn()

	tr := nxclient.NewTransport(addr)
	_, err := tr.DoCtx(context.Background(), "session/{id}/release", nil, map[string]string{"id": "a/b"})
	require.NoError(t, err)

	assert.Equal(t, "session/a%2Fb/release\x00", *got)
}

func TestTransportDialFailure(t *testing.T) {
	// Grab a port and close it so nothing listens there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	tr := nxclient.NewTransportWithConfig(addr, &nxclient.Config{DialTimeout: 200 * time.Millisecond})
	_, err = tr.DoCtx(context.Background(), "session/create", nil, nil)
	assert.Error(t, err)
}
