// Package notify posts notification emails through a Web3Forms compatible
// form-submission API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dnl-site-backend-go/internal/logger"
	"dnl-site-backend-go/internal/models"
)

const DefaultEndpoint = "https://api.web3forms.com/submit"

// KeySource resolves the API access key at send time.
type KeySource interface {
	APIKey() string
}

// Message is one outbound email. ReplyTo becomes the reply address of the
// notification; To asks the API to deliver to a specific address.
type Message struct {
	Subject string
	Body    string
	ReplyTo string
	To      string
}

type Options struct {
	Endpoint string
	FromName string
	// DefaultReplyTo is used when a message carries no ReplyTo.
	DefaultReplyTo string
	Timeout        time.Duration
}

type Sender struct {
	keys   KeySource
	opts   Options
	client *http.Client
}

type payload struct {
	AccessKey string `json:"access_key"`
	Subject   string `json:"subject"`
	FromName  string `json:"from_name"`
	Email     string `json:"email"`
	ToEmail   string `json:"to_email,omitempty"`
	Message   string `json:"message"`
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewSender(keys KeySource, opts Options) *Sender {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.FromName == "" {
		opts.FromName = "DNL Site"
	}
	if opts.DefaultReplyTo == "" {
		opts.DefaultReplyTo = models.DefaultNotificationEmail
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Sender{keys: keys, opts: opts, client: &http.Client{Timeout: opts.Timeout}}
}

// Send reports whether the API accepted the message. It never returns an
// error: a missing key, a transport failure or an unreadable response all
// yield false.
func (s *Sender) Send(ctx context.Context, msg Message) bool {
	key := strings.TrimSpace(s.keys.APIKey())
	if key == "" {
		logger.Error("[notify][send] email access key not configured")
		return false
	}
	replyTo := msg.ReplyTo
	if replyTo == "" {
		replyTo = s.opts.DefaultReplyTo
	}
	body, err := json.Marshal(payload{
		AccessKey: key,
		Subject:   msg.Subject,
		FromName:  s.opts.FromName,
		Email:     replyTo,
		ToEmail:   msg.To,
		Message:   msg.Body,
	})
	if err != nil {
		logger.Error("[notify][send] encode: %v", err)
		return false
	}
	ok, err := s.post(ctx, body)
	if err != nil {
		logger.Error("[notify][send] %q: %v", msg.Subject, err)
		return false
	}
	return ok
}

func (s *Sender) post(ctx context.Context, body []byte) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, err
	}
	var out response
	if err := json.Unmarshal(raw, &out); err != nil {
		return false, fmt.Errorf("status %d: unreadable response: %w", resp.StatusCode, err)
	}
	if !out.Success {
		logger.Warn("[notify][send] rejected with status %d: %s", resp.StatusCode, out.Message)
	}
	return out.Success, nil
}
