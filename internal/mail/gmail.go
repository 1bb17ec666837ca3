// Package mail delivers hospitality-request emails through the Gmail API.
// Messages are built as MIME with gomail and posted as a base64url raw
// payload; the OAuth2 credential is managed by TokenStore.
package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gopkg.in/gomail.v2"
)

// Attachment is an optional in-memory file to attach to a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Gateway sends single outbound messages as the configured sender account.
type Gateway struct {
	from    string
	tokens  *TokenStore
	client  *http.Client
	sendURL string
}

// NewGateway creates a Gmail gateway sending as from.
func NewGateway(from string, tokens *TokenStore) *Gateway {
	return &Gateway{
		from:    from,
		tokens:  tokens,
		client:  http.DefaultClient,
		sendURL: "https://gmail.googleapis.com/gmail/v1/users/me/messages/send",
	}
}

// Send delivers one best-effort message. Any failure (credential, build,
// network, API) is returned as an error for the caller to log; nothing is
// retried here.
func (g *Gateway) Send(to, subject, htmlBody string, attachment *Attachment) error {
	tok, err := g.tokens.Token(context.Background())
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", g.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	if attachment != nil && attachment.Filename != "" {
		content := attachment.Content
		m.Attach(attachment.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	var mime bytes.Buffer
	if _, err := m.WriteTo(&mime); err != nil {
		return fmt.Errorf("build email: %w", err)
	}

	payload, err := json.Marshal(map[string]string{
		"raw": base64.URLEncoding.EncodeToString(mime.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("build email: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, g.sendURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("gmail api: status %d: %s", resp.StatusCode, body)
	}
	return nil
}
