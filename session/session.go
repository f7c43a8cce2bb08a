package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	// CookieName carries the opaque session id; the payload never leaves
	// the server.
	CookieName = "session_id"

	// TTL matches the one-week cookie max age.
	TTL = 7 * 24 * time.Hour

	keyPrefix = "sessions:"
)

var ErrNotFound = errors.New("session not found")

// Data is the server-side session payload. IsAuth is the single
// authentication flag the gate middleware checks.
type Data struct {
	EmailAddress string `json:"emailAddress"`
	UserID       string `json:"userId"`
	IsAuth       bool   `json:"isAuth"`
}

type Store interface {
	Save(ctx context.Context, id string, data Data) error
	Get(ctx context.Context, id string) (Data, error)
	Destroy(ctx context.Context, id string) error
}

// NewID mints an opaque session id.
func NewID() string {
	return uuid.NewString()
}

// IsAuthenticated never returns an error: a missing id, an expired session
// or a store fault all read as "not authenticated".
func IsAuthenticated(ctx context.Context, store Store, id string) bool {
	if id == "" {
		return false
	}
	data, err := store.Get(ctx, id)
	return err == nil && data.IsAuth
}

// RedisStore keeps sessions as JSON values under sessions:<id> with the
// store-enforced TTL doing the expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, id string, data Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+id, payload, TTL).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (Data, error) {
	var data Data
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return data, ErrNotFound
	}
	if err != nil {
		return data, err
	}
	if err := json.Unmarshal(payload, &data); err != nil {
		return data, err
	}
	return data, nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
