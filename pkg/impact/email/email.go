// Package email delivers notification emails through SendGrid, or prints
// them when no API key is configured.
package email

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/config"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	ProviderSendgrid = "sendgrid"
	ProviderConsole  = "console"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

// ErrNoRecipient is returned for messages without a To address.
var ErrNoRecipient = errors.New("email has no recipient")

// Message is a single outgoing email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Provider() string
}

// New returns a SendgridSender when an API key is configured and a
// ConsoleSender writing to the logger otherwise.
func New(cfg *config.Config, logger *slog.Logger) Sender {
	if cfg.SendgridAPIKey != "" {
		return NewSendgridSender(cfg.SendgridAPIKey, cfg.EmailFromName, cfg.EmailFrom)
	}
	return NewConsoleSender(slogWriter{logger}, cfg.EmailFromName, cfg.EmailFrom)
}

// SendgridSender sends through the SendGrid v3 mail API.
type SendgridSender struct {
	key        string
	from       *sgmail.Email
	subjPrefix string

	api func(req rest.Request) (*rest.Response, error)
}

var _ Sender = (*SendgridSender)(nil)

// NewSendgridSender creates a sender for the given API key and from address.
func NewSendgridSender(key, fromName, fromEmail string) *SendgridSender {
	return &SendgridSender{
		key:        key,
		from:       sgmail.NewEmail(fromName, fromEmail),
		subjPrefix: "[" + fromName + "] ",
		api:        sendgrid.API,
	}
}

// Provider implements Sender.
func (s *SendgridSender) Provider() string { return ProviderSendgrid }

func (s *SendgridSender) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = s.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.To))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)

	m.AddContent(sgmail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return m
}

// Send implements Sender. Responses with status 400 or above are errors.
func (s *SendgridSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	req := sendgrid.GetRequest(s.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(msg))

	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.api(req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending email: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// ConsoleSender writes messages to w instead of delivering them. Sent
// messages are kept for inspection.
type ConsoleSender struct {
	w          io.Writer
	from       string
	subjPrefix string

	mu   sync.Mutex
	sent []Message
}

var _ Sender = (*ConsoleSender)(nil)

// NewConsoleSender creates a console sender.
func NewConsoleSender(w io.Writer, fromName, fromEmail string) *ConsoleSender {
	return &ConsoleSender{
		w:          w,
		from:       fmt.Sprintf("%s <%s>", fromName, fromEmail),
		subjPrefix: "[" + fromName + "] ",
	}
}

// Provider implements Sender.
func (s *ConsoleSender) Provider() string { return ProviderConsole }

// Send implements Sender.
func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	body := new(strings.Builder)
	fmt.Fprintf(body, "From: %s\r\n", s.from)
	fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(body, "Subject: %s\r\n", s.subjPrefix+msg.Subject)
	fmt.Fprintf(body, "To: %s <%s>\r\n\r\n", msg.ToName, msg.To)
	body.WriteString(msg.Text)
	body.WriteString("\r\n")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w != nil {
		if _, err := io.WriteString(s.w, body.String()); err != nil {
			return err
		}
	}
	s.sent = append(s.sent, msg)
	return nil
}

// Sent returns a copy of the messages sent so far.
func (s *ConsoleSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}

type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Write(p []byte) (int, error) {
	w.logger.Info("email (console)", "message", string(p))
	return len(p), nil
}
