package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{name: "paragraphs", html: "<p>Hello</p><p>World</p>", want: "Hello\n\nWorld"},
		{name: "line breaks", html: "a<br>b<br />c", want: "a\nb\nc"},
		{name: "inline tags", html: "<b>Bold</b> and <a href=\"x\">link</a>", want: "Bold and link"},
		{name: "plain", html: "no tags", want: "no tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.html))
		})
	}
}

func TestLogMailer(t *testing.T) {
	m := NewLogMailer()
	m.FailFor = map[string]error{"bad@beout.app": errors.New("mailbox full")}

	id, err := m.Send(context.Background(), &Message{To: "ok@beout.app", Subject: "Hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = m.Send(context.Background(), &Message{To: "bad@beout.app"})
	assert.EqualError(t, err, "mailbox full")

	require.Len(t, m.Sent(), 1)
	assert.Equal(t, "ok@beout.app", m.Sent()[0].To)
}

func TestNewSendGridMailer_RequiresKey(t *testing.T) {
	_, err := NewSendGridMailer("")
	assert.Error(t, err)

	m, err := NewSendGridMailer("SG.test")
	require.NoError(t, err)
	assert.Equal(t, "sendgrid", m.Name())
}
