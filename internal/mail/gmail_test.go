package mail

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeToken puts a non-expired token file in place and returns its path.
func writeToken(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gmail_token.json")
	token := `{"access_token":"test-access","token_type":"Bearer","refresh_token":"test-refresh","expiry":"2100-01-01T00:00:00Z"}`
	require.NoError(t, os.WriteFile(path, []byte(token), 0o600))
	return path
}

func TestSendPostsRawMIMEMessage(t *testing.T) {
	var gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := NewGateway("sender@example.com", NewTokenStore(writeToken(t), "cid", "secret"))
	g.sendURL = srv.URL

	att := &Attachment{Filename: "receipt.pdf", Content: []byte("%PDF-fake")}
	require.NoError(t, g.Send("admin@example.com", "طلب استضافة", "<p>hello</p>", att))

	assert.Equal(t, "Bearer test-access", gotAuth)

	var payload struct {
		Raw string `json:"raw"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	mime, err := base64.URLEncoding.DecodeString(payload.Raw)
	require.NoError(t, err)
	assert.Contains(t, string(mime), "To: admin@example.com")
	assert.Contains(t, string(mime), "receipt.pdf")
}

func TestSendWithoutAttachment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := NewGateway("sender@example.com", NewTokenStore(writeToken(t), "cid", "secret"))
	g.sendURL = srv.URL
	assert.NoError(t, g.Send("admin@example.com", "subject", "<p>hello</p>", nil))
}

func TestSendReportsAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	g := NewGateway("sender@example.com", NewTokenStore(writeToken(t), "cid", "secret"))
	g.sendURL = srv.URL

	err := g.Send("admin@example.com", "subject", "<p>hello</p>", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSendFailsLoudlyWithoutToken(t *testing.T) {
	g := NewGateway("sender@example.com", NewTokenStore(filepath.Join(t.TempDir(), "missing.json"), "cid", "secret"))
	err := g.Send("admin@example.com", "subject", "<p>hello</p>", nil)
	assert.Error(t, err)
}

func TestTokenStoreExpiredWithoutRefreshToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gmail_token.json")
	expired := `{"access_token":"old","token_type":"Bearer","expiry":"2000-01-01T00:00:00Z"}`
	require.NoError(t, os.WriteFile(path, []byte(expired), 0o600))

	g := NewGateway("sender@example.com", NewTokenStore(path, "cid", "secret"))
	err := g.Send("admin@example.com", "subject", "<p>hello</p>", nil)
	assert.Error(t, err)
}
