package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderSetAndGet(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rem := NewReminders(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	msg, _, ok, err := rem.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, msg)

	require.NoError(t, rem.Set(ctx, "u1"))

	msg, left, ok, err := rem.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ReminderMessage, msg)
	assert.Equal(t, reminderTTL, left)
}

func TestReminderExpires(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rem := NewReminders(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	require.NoError(t, rem.Set(ctx, "u1"))
	mr.FastForward(reminderTTL + time.Minute)

	_, _, ok, err := rem.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReminderUnavailable(t *testing.T) {
	ctx := context.Background()
	rem := NewReminders(nil)
	assert.False(t, rem.Available())

	assert.ErrorIs(t, rem.Set(ctx, "u1"), ErrUnavailable)
	_, _, _, err := rem.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrUnavailable)
}
