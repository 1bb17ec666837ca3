package repository

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
)

// ChatMapRepository keeps the phone-number-to-chat-id mapping in a single JSON
// object file. Users self-register by messaging their number to the bot; the
// last registration for a phone number wins.
type ChatMapRepository struct {
	mu   sync.Mutex
	path string
}

// NewChatMapRepository creates a repository backed by the given file path.
func NewChatMapRepository(path string) *ChatMapRepository {
	return &ChatMapRepository{path: path}
}

// Register upserts the chat id for a phone number.
func (r *ChatMapRepository) Register(phone string, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.load()
	users[phone] = chatID
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("register chat id: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("register chat id: %w", err)
	}
	return nil
}

// ChatIDFor returns the chat id registered for a phone number, or false when
// the requester never registered one.
func (r *ChatMapRepository) ChatIDFor(phone string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.load()[phone]
	return id, ok
}

func (r *ChatMapRepository) load() map[string]int64 {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("reading %s: %v", r.path, err)
		}
		return map[string]int64{}
	}
	users := map[string]int64{}
	if err := json.Unmarshal(data, &users); err != nil {
		log.Printf("parsing %s: %v", r.path, err)
		return map[string]int64{}
	}
	return users
}
