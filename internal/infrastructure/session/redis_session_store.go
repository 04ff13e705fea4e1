package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"estimate_service/internal/domain/entities"
	"estimate_service/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "session:"
	defaultTTL    = 12 * time.Hour
)

type sessionData struct {
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisSessionStore resolves bearer tokens issued by the login service.
// Tokens are never stored in clear text; keys are prefix + sha256(token).
type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

var _ interfaces.ISessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore parses redisURL and checks connectivity.
func NewRedisSessionStore(redisURL, prefix string) (*RedisSessionStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewRedisSessionStoreWithClient(client, prefix), nil
}

func NewRedisSessionStoreWithClient(client *redis.Client, prefix string) *RedisSessionStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisSessionStore{client: client, prefix: prefix}
}

func (s *RedisSessionStore) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return s.prefix + hex.EncodeToString(sum[:])
}

func (s *RedisSessionStore) Save(ctx context.Context, token string, principal entities.Principal, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	payload, err := json.Marshal(sessionData{
		UserID:    principal.ID,
		Name:      principal.Name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Lookup(ctx context.Context, token string) (entities.Principal, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.Principal{}, interfaces.ErrSessionNotFound
	}
	if err != nil {
		return entities.Principal{}, fmt.Errorf("lookup session: %w", err)
	}

	var data sessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return entities.Principal{}, fmt.Errorf("unmarshal session: %w", err)
	}
	if data.UserID <= 0 {
		return entities.Principal{}, interfaces.ErrSessionNotFound
	}
	return entities.Principal{ID: data.UserID, Name: data.Name}, nil
}

func (s *RedisSessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}
