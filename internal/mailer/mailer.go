package mailer

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// ErrDeliveryFailed is returned when the provider rejects a message
var ErrDeliveryFailed = errors.New("email delivery failed")

// Message is a rendered email ready to send
type Message struct {
	FromEmail string
	FromName  string
	To        string
	Subject   string
	HTML      string
}

// Mailer delivers rendered emails
type Mailer interface {
	// Send delivers msg and returns the provider message ID
	Send(ctx context.Context, msg *Message) (string, error)
	// Name returns the mailer name
	Name() string
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	blankPattern = regexp.MustCompile(`\n{3,}`)
)

// PlainText derives a text/plain alternative from an HTML body
func PlainText(html string) string {
	text := strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "</p>", "\n\n").Replace(html)
	text = tagPattern.ReplaceAllString(text, "")
	text = blankPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
