// Package apikeys verifies client API keys against configured bcrypt
// hashes. Keys arrive as "client_id:secret"; only hashes live in config.
package apikeys

import (
	"crypto/sha256"
	"strings"
	"sync"

	dErrors "tempus/pkg/domain-errors"
	"tempus/pkg/secrets"
)

// Keyring maps client IDs to bcrypt hashes of their API keys.
type Keyring struct {
	hashes map[string]string

	// bcrypt costs tens of milliseconds per verify, far too slow per
	// request. Successful verifications are remembered by SHA-256 digest
	// so steady-state traffic pays one hash, not one bcrypt.
	mu       sync.RWMutex
	verified map[string][32]byte
}

// Parse builds a Keyring from the configured "client:hash,client:hash"
// string. Malformed entries are skipped.
func Parse(raw string) *Keyring {
	hashes := make(map[string]string)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		clientID, hash, ok := strings.Cut(entry, ":")
		if !ok || clientID == "" || hash == "" {
			continue
		}
		hashes[clientID] = hash
	}
	return &Keyring{
		hashes:   hashes,
		verified: make(map[string][32]byte),
	}
}

// Empty reports whether no keys are configured.
func (k *Keyring) Empty() bool {
	return len(k.hashes) == 0
}

// Verify checks a "client_id:secret" credential and returns the client ID
// on success.
func (k *Keyring) Verify(credential string) (string, error) {
	clientID, secret, ok := strings.Cut(credential, ":")
	if !ok || clientID == "" || secret == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "malformed API key")
	}

	hash, ok := k.hashes[clientID]
	if !ok {
		return "", dErrors.New(dErrors.CodeUnauthorized, "unknown client")
	}

	digest := sha256.Sum256([]byte(secret))

	k.mu.RLock()
	cached, hit := k.verified[clientID]
	k.mu.RUnlock()
	if hit && cached == digest {
		return clientID, nil
	}

	if err := secrets.Verify(secret, hash); err != nil {
		return "", err
	}

	k.mu.Lock()
	k.verified[clientID] = digest
	k.mu.Unlock()
	return clientID, nil
}
