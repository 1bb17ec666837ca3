package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/BassemGalal/QuickReceipt-clean/internal/model"
)

// ErrNotFound is returned when no stored request matches a given id prefix.
var ErrNotFound = errors.New("request not found")

// RequestRepository keeps the request collection in a single JSON array file.
// Every mutation reads the whole file and writes it back; the last writer wins.
// The mutex is the one exclusive access point within a process, so two
// handlers cannot interleave partial writes, but separate processes sharing
// the file still race by design (acceptable at this request volume).
type RequestRepository struct {
	mu   sync.Mutex
	path string
}

// NewRequestRepository creates a repository backed by the given file path.
// The file does not have to exist yet.
func NewRequestRepository(path string) *RequestRepository {
	return &RequestRepository{path: path}
}

// Append adds a record to the end of the collection. The id is not checked
// for uniqueness; callers assign random UUIDs.
func (r *RequestRepository) Append(req *model.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests := r.load()
	requests = append(requests, *req)
	if err := r.save(requests); err != nil {
		return fmt.Errorf("append request: %w", err)
	}
	return nil
}

// All returns the full collection in insertion order, newest last.
// A missing or unreadable file yields an empty slice, never an error.
func (r *RequestRepository) All() []model.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// FindByIDPrefix returns the first record whose id starts with prefix, in
// stored order. Ambiguous prefixes resolve to the earliest match; the chat
// interface shows 8-char prefixes and accepts that collisions are possible.
func (r *RequestRepository) FindByIDPrefix(prefix string) (*model.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prefix == "" {
		return nil, ErrNotFound
	}
	for _, req := range r.load() {
		if strings.HasPrefix(req.ID, prefix) {
			found := req
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateStatus locates a record by id prefix, overwrites its status and audit
// fields and rewrites the whole file. Returns ErrNotFound when nothing
// matches; the collection is left untouched in that case.
func (r *RequestRepository) UpdateStatus(prefix, status string, actorChatID int64) (*model.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prefix == "" {
		return nil, ErrNotFound
	}
	requests := r.load()
	for i := range requests {
		if strings.HasPrefix(requests[i].ID, prefix) {
			requests[i].Status = status
			requests[i].UpdatedBy = actorChatID
			requests[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			if err := r.save(requests); err != nil {
				return nil, fmt.Errorf("update request status: %w", err)
			}
			updated := requests[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

// load reads the collection. Soft failure: file-not-found means an empty
// collection, and a corrupt file is logged and also treated as empty.
func (r *RequestRepository) load() []model.Request {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("reading %s: %v", r.path, err)
		}
		return []model.Request{}
	}
	var requests []model.Request
	if err := json.Unmarshal(data, &requests); err != nil {
		log.Printf("parsing %s: %v", r.path, err)
		return []model.Request{}
	}
	return requests
}

// save rewrites the whole collection file.
func (r *RequestRepository) save(requests []model.Request) error {
	data, err := json.MarshalIndent(requests, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}
