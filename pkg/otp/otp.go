// Package otp keeps short lived one time codes for email verification
// and password resets. Codes are single use, expire after a TTL and
// lock out after too many failed attempts.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

var (
	ErrCodeNotFound    = errors.New("no code issued for this email")
	ErrCodeExpired     = errors.New("code has expired")
	ErrCodeMismatch    = errors.New("code does not match")
	ErrTooManyAttempts = errors.New("too many failed attempts")
)

const codeDigits = 6

type entry struct {
	code     string
	issuedAt time.Time
	attempts int
}

type Store struct {
	mu          sync.Mutex
	entries     map[string]*entry
	ttl         time.Duration
	maxAttempts int
	stopCh      chan struct{}
}

func NewStore(ttl time.Duration, maxAttempts int) *Store {
	s := &Store{
		entries:     make(map[string]*entry),
		ttl:         ttl,
		maxAttempts: maxAttempts,
		stopCh:      make(chan struct{}),
	}

	go s.cleanup()

	return s
}

// Issue generates a new code for the email, replacing any previous one.
func (s *Store) Issue(email string) (string, error) {
	code, err := randomCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	s.mu.Lock()
	s.entries[email] = &entry{
		code:     code,
		issuedAt: time.Now(),
	}
	s.mu.Unlock()

	return code, nil
}

// Verify consumes the code on success. Failed attempts are counted and
// the entry is dropped once the attempt cap is hit.
func (s *Store) Verify(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok {
		return ErrCodeNotFound
	}

	if time.Since(e.issuedAt) > s.ttl {
		delete(s.entries, email)
		return ErrCodeExpired
	}

	if e.code != code {
		e.attempts++
		if e.attempts >= s.maxAttempts {
			delete(s.entries, email)
			return ErrTooManyAttempts
		}
		return ErrCodeMismatch
	}

	delete(s.entries, email)
	return nil
}

func (s *Store) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for email, e := range s.entries {
				if time.Since(e.issuedAt) > s.ttl {
					delete(s.entries, email)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Store) Stop() {
	close(s.stopCh)
}

func randomCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
