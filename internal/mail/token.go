package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2"
)

// googleTokenURL is where refresh tokens are exchanged.
const googleTokenURL = "https://oauth2.googleapis.com/token"

// TokenStore manages the Gmail credential: a JSON-serialized oauth2 token on
// disk, refreshed through the account's client credentials when expired and
// written back after every refresh. Producing the token file in the first
// place (the interactive consent flow) is done out-of-band; the store only
// consumes it and fails loudly when it is missing.
type TokenStore struct {
	path string
	conf *oauth2.Config
}

// NewTokenStore creates a token store for the given token file.
func NewTokenStore(path, clientID, clientSecret string) *TokenStore {
	return &TokenStore{
		path: path,
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: googleTokenURL},
		},
	}
}

// Token returns a ready-to-use access token, refreshing and persisting it
// first if the stored one has expired.
func (s *TokenStore) Token(ctx context.Context) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("gmail token unavailable: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("gmail token unreadable: %w", err)
	}
	if tok.Valid() {
		return &tok, nil
	}
	if tok.RefreshToken == "" {
		return nil, fmt.Errorf("gmail token expired and no refresh token present")
	}
	refreshed, err := s.conf.TokenSource(ctx, &tok).Token()
	if err != nil {
		return nil, fmt.Errorf("refresh gmail token: %w", err)
	}
	if err := s.save(refreshed); err != nil {
		// The refreshed token still works for this send; only persistence failed.
		log.Printf("persisting refreshed gmail token: %v", err)
	}
	return refreshed, nil
}

func (s *TokenStore) save(tok *oauth2.Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
