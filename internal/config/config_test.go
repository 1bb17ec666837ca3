package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PDF_DIR", filepath.Join(dir, "pdfs"))
	t.Setenv("UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("RECIPIENT_EMAIL", "board@example.com")
	t.Setenv("ADMIN_CHAT_IDS", "42, 99,nonsense,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sender@example.com", cfg.SenderEmail, "default kept")
	assert.Equal(t, "board@example.com", cfg.RecipientEmail, "env override wins")
	assert.Equal(t, "pending_replies.json", cfg.PendingFile)
	assert.Equal(t, "your-default-secret-key", cfg.SessionSecret)
	assert.Equal(t, []int64{42, 99}, cfg.AdminChatIDs, "blank and unparseable entries dropped")

	assert.DirExists(t, cfg.PDFDir)
	assert.DirExists(t, cfg.UploadDir)
}

func TestParseChatIDsEmpty(t *testing.T) {
	assert.Empty(t, parseChatIDs(""))
	assert.Empty(t, parseChatIDs(" , ,"))
}
