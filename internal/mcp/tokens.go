// ABOUTME: Opaque access token management for MCP clients.
// ABOUTME: Maps generated and preconfigured tokens to capability sets.

package mcp

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// TokenStore manages opaque access tokens and their capabilities.
// Tokens are held in memory; preconfigured tokens come from config and
// generated ones live for the process lifetime.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string][]string
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string][]string)}
}

// CreateToken generates a new random token with the given capabilities.
func (ts *TokenStore) CreateToken(capabilities []string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	token := hex.EncodeToString(buf)

	caps := make([]string, len(capabilities))
	copy(caps, capabilities)

	ts.mu.Lock()
	ts.tokens[token] = caps
	ts.mu.Unlock()
	return token, nil
}

// AddStaticToken registers a preconfigured token with the given capabilities.
// Empty tokens are rejected.
func (ts *TokenStore) AddStaticToken(token string, capabilities []string) error {
	if token == "" {
		return fmt.Errorf("static token must not be empty")
	}
	caps := make([]string, len(capabilities))
	copy(caps, capabilities)

	ts.mu.Lock()
	ts.tokens[token] = caps
	ts.mu.Unlock()
	return nil
}

// GetCapabilities returns the capabilities for a token, or nil if the token
// is unknown.
func (ts *TokenStore) GetCapabilities(token string) []string {
	ts.mu.RLock()
	caps, ok := ts.tokens[token]
	ts.mu.RUnlock()
	if !ok {
		return nil
	}
	out := make([]string, len(caps))
	copy(out, caps)
	return out
}

// InvalidateToken removes a token. Returns true if the token existed.
func (ts *TokenStore) InvalidateToken(token string) bool {
	ts.mu.Lock()
	_, existed := ts.tokens[token]
	delete(ts.tokens, token)
	ts.mu.Unlock()
	return existed
}

// TokenCount returns the number of active tokens.
func (ts *TokenStore) TokenCount() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.tokens)
}
