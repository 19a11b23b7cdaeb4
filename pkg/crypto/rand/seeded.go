// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-slip39.
//
// go-slip39 is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package rand

import (
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

const seededInfo = "go-slip39 seeded test stream"

// SeededResolver produces a reproducible ChaCha20 keystream derived from a
// seed. Two resolvers built from the same seed yield identical output.
//
// Only use it in tests. The stream is as unpredictable as the seed, and a
// fixed seed in source code is not secret.
type SeededResolver struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
}

var _ Resolver = (*SeededResolver)(nil)

// NewSeededResolver returns a deterministic resolver for the given seed.
func NewSeededResolver(seed []byte) (*SeededResolver, error) {
	kdf := hkdf.New(sha256.New, seed, nil, []byte(seededInfo))
	material := make([]byte, chacha20.KeySize+chacha20.NonceSize)
	if _, err := io.ReadFull(kdf, material); err != nil {
		return nil, fmt.Errorf("failed to derive seeded stream key: %w", err)
	}
	c, err := chacha20.NewUnauthenticatedCipher(material[:chacha20.KeySize], material[chacha20.KeySize:])
	if err != nil {
		return nil, fmt.Errorf("failed to create seeded stream: %w", err)
	}
	return &SeededResolver{cipher: c}, nil
}

// Rand returns the next n bytes of the keystream.
func (s *SeededResolver) Rand(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid byte count: %d", n)
	}
	buf := make([]byte, n)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cipher == nil {
		return nil, fmt.Errorf("seeded resolver closed")
	}
	s.cipher.XORKeyStream(buf, buf)
	return buf, nil
}

// Read implements io.Reader.
func (s *SeededResolver) Read(p []byte) (int, error) {
	return readFrom(s, p)
}

// Available reports whether the resolver is still open.
func (s *SeededResolver) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cipher != nil
}

// Close discards the keystream state.
func (s *SeededResolver) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cipher = nil
	return nil
}
