// Package client talks to the assistant backend over JSON/HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/nhath/ezchat/internal/connect"
)

const (
	ConnectPath = "/connect_db"
	ChatPath    = "/chat"
)

// Client calls the collaborator endpoints. The connection lives in a session
// cookie, so every call shares one cookie jar.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a client for baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("server url is empty")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server root the client talks to
func (c *Client) BaseURL() string { return c.baseURL }

// ConnectReply is the acknowledgement body of a successful connect
type ConnectReply struct {
	Success string `json:"success"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatReply struct {
	Response string `json:"response"`
}

type errorReply struct {
	Error string `json:"error"`
}

// Connect forwards the connection settings
func (c *Client) Connect(ctx context.Context, cfg connect.Config) (ConnectReply, error) {
	var reply ConnectReply
	err := c.post(ctx, ConnectPath, cfg, &reply)
	return reply, err
}

// Chat sends one message and returns the markup to render
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var reply chatReply
	if err := c.post(ctx, ChatPath, chatRequest{Message: message}, &reply); err != nil {
		return "", err
	}
	return reply.Response, nil
}

// post sends body as JSON and decodes a 2xx reply into out.
// Non-2xx replies with a JSON body become *ServerError; everything else that
// prevents reading a reply becomes *TransportError.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	op := "POST " + path

	payload, err := json.Marshal(body)
	if err != nil {
		return wrapTransport(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return wrapTransport(op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapTransport(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapTransport(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorReply
		if err := json.Unmarshal(data, &e); err != nil {
			return wrapTransport(op, fmt.Errorf("status %d with unreadable body: %w", resp.StatusCode, err))
		}
		msg := e.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &ServerError{Status: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return wrapTransport(op, fmt.Errorf("malformed response: %w", err))
	}
	return nil
}
