package redis

// Package redis provides Redis-based adapters for the storefront UI-API.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/podomall/mall-ui-api/internal/domain/auth"
	"github.com/podomall/mall-ui-api/internal/ports"
)

// DefaultSessionTTL bounds how long a session record may outlive its last
// write. Credential expiry is enforced separately by the token codec; the
// Redis TTL only keeps abandoned sessions from accumulating.
const DefaultSessionTTL = 24 * time.Hour

// SessionStore is a Redis-based session store for production use.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
		ttl:    DefaultSessionTTL,
	}
}

// NewSessionStoreWithOptions creates a Redis session store with a custom key
// prefix and record TTL. Zero values fall back to the defaults.
func NewSessionStoreWithOptions(client redis.UniversalClient, prefix string, ttl time.Duration) *SessionStore {
	if prefix == "" {
		prefix = "session:"
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := s.prefix + sess.ID
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	key := s.prefix + id
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}

	key := s.prefix + id
	return s.client.Del(ctx, key).Err()
}

// ErrNotFound is returned when a session is not found.
var ErrNotFound = ports.ErrSessionNotFound
