// Package vts provides a client for the puppeteer's JSON WebSocket API
package vts

import (
	"context"
	"encoding/json"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/shiho2717/silence-fade-system/internal/errors"
	"github.com/shiho2717/silence-fade-system/internal/trace"
)

// Config identifies the plugin and its output parameter.
type Config struct {
	Endpoint        string // ws://host:port
	PluginName      string
	PluginDeveloper string
	AuthToken       string // empty disables pushing
	ParameterID     string
}

// Client talks to the puppeteer application. Every call opens its own
// short-lived session; connections are never reused across ticks.
type Client struct {
	cfg Config

	// warned latches after the first failed push so a dead remote does
	// not flood the log once per tick. Per-instance, never global.
	warned bool
}

// New creates a client. The token may be empty, in which case Push is a
// silent no-op until a token is configured.
func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Push sends one parameter update through a fresh authenticated session.
// It never fails observably: the fade loop must keep running when the
// remote is down, so transport, auth, and protocol errors all degrade to
// a no-op. The first failure of a run logs at Error, repeats at Debug.
func (c *Client) Push(ctx context.Context, value float64) {
	if c.cfg.AuthToken == "" {
		return
	}

	span := trace.StartSpan("push")
	err := c.push(ctx, value)
	span.End()
	if err == nil {
		return
	}

	log := trace.Logger(ctx)
	if c.warned {
		log.Debug("parameter push failed", "error", err, "span", span)
		return
	}
	c.warned = true
	log.Error("parameter push failed, further failures logged at debug", "error", err)
}

func (c *Client) push(ctx context.Context, value float64) error {
	conn, _, err := websocket.Dial(ctx, c.cfg.Endpoint, nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeTransport, "dial "+c.cfg.Endpoint)
	}
	defer conn.CloseNow()

	if err := c.authenticate(ctx, conn); err != nil {
		return err
	}

	req := Request{
		APIName:     APIName,
		APIVersion:  APIVersion,
		RequestID:   trace.RequestID("param"),
		MessageType: TypeParameterValue,
		Data: ParameterValuesData{
			ParameterValues: []ParameterValue{{ID: c.cfg.ParameterID, Value: value}},
		},
	}
	if err := wsjson.Write(ctx, conn, req); err != nil {
		return errors.Wrap(err, errors.CodeTransport, "write parameter update")
	}

	// The update's acknowledgment is not read; the close handshake
	// drains whatever the remote sends back.
	if err := conn.Close(websocket.StatusNormalClosure, ""); err != nil {
		return errors.Wrap(err, errors.CodeTransport, "close session")
	}
	return nil
}

// authenticate runs the handshake on an open connection. No parameter
// update is ever written unless this returns nil.
func (c *Client) authenticate(ctx context.Context, conn *websocket.Conn) error {
	req := Request{
		APIName:     APIName,
		APIVersion:  APIVersion,
		RequestID:   trace.RequestID("auth"),
		MessageType: TypeAuthentication,
		Data: AuthRequestData{
			PluginName:          c.cfg.PluginName,
			PluginDeveloper:     c.cfg.PluginDeveloper,
			AuthenticationToken: c.cfg.AuthToken,
		},
	}
	if err := wsjson.Write(ctx, conn, req); err != nil {
		return errors.Wrap(err, errors.CodeTransport, "write auth request")
	}

	var resp Response
	if err := wsjson.Read(ctx, conn, &resp); err != nil {
		return errors.Wrap(err, errors.CodeTransport, "read auth response")
	}

	var data AuthResponseData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return errors.Wrap(err, errors.CodeProtocol, "decode auth response")
	}
	if !data.Authenticated {
		if data.Reason != "" {
			return errors.Newf(errors.CodeAuth, "authentication rejected: %s", data.Reason)
		}
		return errors.New(errors.CodeAuth, "authentication rejected")
	}
	return nil
}

// RequestToken performs the one-time token handshake. The remote shows
// its user an approval prompt and answers once accepted or denied; the
// call blocks until that single response arrives.
func (c *Client) RequestToken(ctx context.Context) (string, error) {
	conn, _, err := websocket.Dial(ctx, c.cfg.Endpoint, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeTransport, "dial "+c.cfg.Endpoint)
	}
	defer conn.CloseNow()

	req := Request{
		APIName:     APIName,
		APIVersion:  APIVersion,
		RequestID:   trace.RequestID("token"),
		MessageType: TypeAuthenticationToken,
		Data: TokenRequestData{
			PluginName:      c.cfg.PluginName,
			PluginDeveloper: c.cfg.PluginDeveloper,
			PluginIcon:      "",
			PluginWebsite:   "",
		},
	}
	if err := wsjson.Write(ctx, conn, req); err != nil {
		return "", errors.Wrap(err, errors.CodeTransport, "write token request")
	}

	var resp Response
	if err := wsjson.Read(ctx, conn, &resp); err != nil {
		return "", errors.Wrap(err, errors.CodeTransport, "read token response")
	}

	var data TokenResponseData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", errors.Wrap(err, errors.CodeProtocol, "decode token response")
	}
	if data.AuthenticationToken == "" {
		return "", errors.New(errors.CodeTokenDenied, "token request denied by the remote user")
	}

	_ = conn.Close(websocket.StatusNormalClosure, "")
	return data.AuthenticationToken, nil
}
