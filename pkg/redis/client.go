package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace = "sf"
	sessionKey   = "session"
	loginState   = "login_state"
)

// ErrNotFound is returned when a session or login state does not exist or
// has expired.
var ErrNotFound = errors.New("redis: key not found")

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	GetDel(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client wraps the redis connection and the keys used for login sessions.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// New connects using a redis:// URL and verifies connectivity.
func New(ctx context.Context, url string) (*Client, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw}, nil
}

// SessionKey returns the namespaced key holding a session's subject.
func (c *Client) SessionKey(sessionID string) string {
	return c.buildKey(sessionKey, sessionID)
}

// LoginStateKey returns the namespaced key for a pending login's state value.
func (c *Client) LoginStateKey(state string) string {
	return c.buildKey(loginState, state)
}

// SaveSession maps sessionID to subject for ttl.
func (c *Client) SaveSession(ctx context.Context, sessionID, subject string, ttl time.Duration) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Set(ctx, c.SessionKey(sessionID), subject, ttl).Err()
}

// SessionSubject returns the subject bound to sessionID, or ErrNotFound.
func (c *Client) SessionSubject(ctx context.Context, sessionID string) (string, error) {
	if c.store == nil {
		return "", errors.New("redis client not initialized")
	}
	subject, err := c.store.Get(ctx, c.SessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return subject, err
}

// RevokeSession deletes the session.
func (c *Client) RevokeSession(ctx context.Context, sessionID string) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Del(ctx, c.SessionKey(sessionID)).Err()
}

// SaveLoginState records a pending login's state parameter.
func (c *Client) SaveLoginState(ctx context.Context, state string, ttl time.Duration) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Set(ctx, c.LoginStateKey(state), "1", ttl).Err()
}

// ConsumeLoginState deletes the state and reports ErrNotFound if it was never
// issued or has already been used.
func (c *Client) ConsumeLoginState(ctx context.Context, state string) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	_, err := c.store.GetDel(ctx, c.LoginStateKey(state)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	return err
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func (c *Client) buildKey(parts ...string) string {
	clean := []string{keyNamespace}
	for _, part := range parts {
		if part == "" {
			continue
		}
		clean = append(clean, strings.TrimSpace(part))
	}
	return strings.Join(clean, ":")
}
