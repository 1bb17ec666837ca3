// Package config builds the single configuration object shared by both
// processes. Defaults suit a local prototype; every value can be overridden
// through the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config carries everything the web endpoint and the bot need. It is passed
// explicitly to each constructor; there are no package-level singletons.
type Config struct {
	SenderEmail    string
	RecipientEmail string

	BotToken string
	// AdminChatIDs gates /pending, /approve and /reject. An EMPTY list means
	// every chat is treated as an admin. That mirrors the deployed behavior
	// and is deliberate; set ADMIN_CHAT_IDS in any real installation.
	AdminChatIDs []int64

	SessionSecret string

	PendingFile       string
	TelegramUsersFile string

	GmailTokenFile    string
	GmailClientID     string
	GmailClientSecret string

	PDFDir    string
	UploadDir string

	APIPort string
}

// Load reads defaults, an optional config file and environment overrides, and
// creates the output directories.
func Load() (Config, error) {
	viper.SetDefault("sender_email", "sender@example.com")
	viper.SetDefault("recipient_email", "admin@example.com")
	viper.SetDefault("session_secret", "your-default-secret-key")
	viper.SetDefault("pending_file", "pending_replies.json")
	viper.SetDefault("telegram_users_file", "telegram_users.json")
	viper.SetDefault("gmail_token_file", "tokens/gmail_token.json")
	viper.SetDefault("pdf_dir", "pdfs")
	viper.SetDefault("upload_dir", "uploads")
	viper.SetDefault("api_port", "8080")

	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // a config file is optional

	c := Config{
		SenderEmail:       viper.GetString("sender_email"),
		RecipientEmail:    viper.GetString("recipient_email"),
		BotToken:          viper.GetString("bot_token"),
		SessionSecret:     viper.GetString("session_secret"),
		PendingFile:       viper.GetString("pending_file"),
		TelegramUsersFile: viper.GetString("telegram_users_file"),
		GmailTokenFile:    viper.GetString("gmail_token_file"),
		GmailClientID:     viper.GetString("gmail_client_id"),
		GmailClientSecret: viper.GetString("gmail_client_secret"),
		PDFDir:            viper.GetString("pdf_dir"),
		UploadDir:         viper.GetString("upload_dir"),
		APIPort:           viper.GetString("api_port"),
	}
	c.AdminChatIDs = parseChatIDs(viper.GetString("admin_chat_ids"))

	// Environment overrides win over file values.
	if v := os.Getenv("SENDER_EMAIL"); v != "" {
		c.SenderEmail = v
	}
	if v := os.Getenv("RECIPIENT_EMAIL"); v != "" {
		c.RecipientEmail = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.BotToken = v
	}
	if v := os.Getenv("ADMIN_CHAT_IDS"); v != "" {
		c.AdminChatIDs = parseChatIDs(v)
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.SessionSecret = v
	}
	if v := os.Getenv("PENDING_FILE"); v != "" {
		c.PendingFile = v
	}
	if v := os.Getenv("TELEGRAM_USERS_FILE"); v != "" {
		c.TelegramUsersFile = v
	}
	if v := os.Getenv("GMAIL_TOKEN_FILE"); v != "" {
		c.GmailTokenFile = v
	}
	if v := os.Getenv("GMAIL_CLIENT_ID"); v != "" {
		c.GmailClientID = v
	}
	if v := os.Getenv("GMAIL_CLIENT_SECRET"); v != "" {
		c.GmailClientSecret = v
	}
	if v := os.Getenv("PDF_DIR"); v != "" {
		c.PDFDir = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("API_PORT"); v != "" {
		c.APIPort = v
	}

	for _, dir := range []string{c.PDFDir, c.UploadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Config{}, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return c, nil
}

// parseChatIDs splits a comma-separated chat id list, skipping blanks and
// anything that does not parse as an integer.
func parseChatIDs(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
