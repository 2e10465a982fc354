package push

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

// Client delivers web-push messages to an FCM-compatible HTTP endpoint.
// Delivery is best effort: the notification center has already recorded the
// notification before a push is ever attempted.
type Client struct {
	client    *resty.Client
	endpoint  string
	serverKey string
}

// Message is the payload forwarded to the push endpoint. Tag carries the
// notification ID so the browser collapses repeated deliveries.
type Message struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Tag      string `json:"tag"`
	Link     string `json:"link,omitempty"`
	Priority string `json:"priority"`
}

type pushRequest struct {
	Notification Message `json:"notification"`
	Priority     string  `json:"priority"`
}

func NewClient(endpoint, serverKey string) *Client {
	client := resty.New().
		SetTimeout(30 * time.Second)

	return &Client{
		client:    client,
		endpoint:  endpoint,
		serverKey: serverKey,
	}
}

// Configured reports whether a push endpoint has been set up.
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

func (c *Client) Send(ctx context.Context, msg Message) error {
	if !c.Configured() {
		return nil
	}

	priority := "normal"
	if msg.Priority == "high" {
		priority = "high"
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", fmt.Sprintf("key=%s", c.serverKey)).
		SetBody(pushRequest{
			Notification: msg,
			Priority:     priority,
		}).
		Post(c.endpoint)
	if err != nil {
		return fmt.Errorf("failed to call push endpoint: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("push endpoint returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
