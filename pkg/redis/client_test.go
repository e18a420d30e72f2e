package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	require.NoError(t, client.SaveSession(ctx, "sess-1", "user-1", time.Hour))
	assert.Equal(t, time.Hour, mock.ttls["sf:session:sess-1"])

	subject, err := client.SessionSubject(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)

	require.NoError(t, client.RevokeSession(ctx, "sess-1"))
	_, err = client.SessionSubject(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoginStateIsSingleUse(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	require.NoError(t, client.SaveLoginState(ctx, "abc", 10*time.Minute))
	assert.NoError(t, client.ConsumeLoginState(ctx, "abc"))
	assert.ErrorIs(t, client.ConsumeLoginState(ctx, "abc"), ErrNotFound)
	assert.ErrorIs(t, client.ConsumeLoginState(ctx, "never-issued"), ErrNotFound)
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	assert.Equal(t, "sf:session:abc", client.SessionKey("abc"))
	assert.Equal(t, "sf:login_state:xyz", client.LoginStateKey("xyz"))
	assert.Equal(t, "sf:session", client.SessionKey(""))
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	assert.Error(t, client.Ping(context.Background()))
	assert.Error(t, client.SaveSession(context.Background(), "a", "b", time.Second))
	assert.NoError(t, client.Close())
}

type mockCmdable struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) GetDel(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	delete(m.data, key)
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
