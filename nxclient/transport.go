package nxclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"time"
)

// Config controls low-level transport behavior such as timeouts.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func defaultConfig() Config {
	return Config{
		DialTimeout:  3 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Transport speaks the endpoint daemon's management protocol. Request
// framing: `<path>[ SP <payload>] \x00` — only the null byte ends the
// request, so payloads may contain newlines or binary data. The daemon
// answers with a single JSON line (or an empty success) and closes the
// connection, so the response is read to EOF.
type Transport struct {
	addr string
	mock func(path string, payload []byte) (string, error)
	cfg  Config
}

// NewTransport creates a transport with default timeouts.
func NewTransport(addr string) *Transport { return NewTransportWithConfig(addr, nil) }

// NewTransportWithConfig creates a transport with custom timeouts.
func NewTransportWithConfig(addr string, cfg *Config) *Transport {
	c := defaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return &Transport{addr: addr, cfg: c}
}

// NewMockTransport creates a transport that routes requests to a canned
// responder instead of the network. Test use only.
func NewMockTransport(responder func(path string, payload []byte) (string, error)) *Transport {
	return &Transport{addr: "mock", mock: responder, cfg: defaultConfig()}
}

// DoCtx sends one request and returns the response line without its
// trailing newline. Path params in `{braces}` are substituted and
// path-escaped.
func (t *Transport) DoCtx(ctx context.Context, path string, payload []byte, pathParams map[string]string) (string, error) {
	fullPath := fillPath(path, pathParams)
	if t.mock != nil {
		return t.mock(fullPath, payload)
	}

	line := []byte(fullPath)
	if len(payload) > 0 {
		line = append(append(line, ' '), payload...)
	}

	d := &net.Dialer{Timeout: t.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return "", fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	if t.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout))
	}
	if _, err := conn.Write(append(line, '\x00')); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}

	if t.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(t.cfg.ReadTimeout))
	}
	resp, err := io.ReadAll(conn)
	if err != nil && len(resp) == 0 {
		return "", fmt.Errorf("read: %w", err)
	}

	return strings.TrimSuffix(string(resp), "\n"), nil
}

func fillPath(pattern string, params map[string]string) string {
	out := pattern
	for k, v := range params {
		out = strings.ReplaceAll(out, "{"+k+"}", url.PathEscape(v))
	}
	return out
}

// daemonError is the endpoint's JSON problem shape.
type daemonError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *daemonError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return e.Title
}

// parse decodes a response line into T, surfacing daemon problem responses
// as errors.
func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, fmt.Errorf("empty response")
	}
	var problem daemonError
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
