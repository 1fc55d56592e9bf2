// Package sms is a thin client for a Twilio-style messaging provider.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Abhyam-Mathur/nagar-team/internal/config"
)

type Client struct {
	cfg  config.SMSConfig
	http *http.Client
}

// New builds a client from injected provider settings; nothing is read
// from the environment here.
func New(cfg config.SMSConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool { return c.cfg.Configured() }

// Send submits one message. A non-2xx provider response is returned as an
// error carrying whatever message text the provider supplied.
func (c *Client) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.cfg.From)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(c.cfg.APIBase, "/"), c.cfg.AccountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var perr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &perr) == nil && perr.Message != "" {
		return fmt.Errorf("provider rejected message: %s", perr.Message)
	}
	return fmt.Errorf("provider returned status %d", resp.StatusCode)
}
