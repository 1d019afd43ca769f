package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// reminderTTL keeps a reminder alive for a day after the activity that set
// it.
const reminderTTL = 24 * time.Hour

// ReminderMessage is the text stored for every reminder.
const ReminderMessage = "Time to train!"

// Reminders sets and reads the short-lived per-user reminder entry under
// reminder:<user>:tomorrow.
type Reminders struct {
	rdb *redis.Client
}

func NewReminders(rdb *redis.Client) *Reminders {
	return &Reminders{rdb: rdb}
}

// Available reports whether reminders have a usable Redis client.
func (r *Reminders) Available() bool { return r.rdb != nil }

func reminderKey(userID string) string {
	return fmt.Sprintf("reminder:%s:tomorrow", userID)
}

// Set (re)arms the user's reminder with a fresh 24h TTL.
func (r *Reminders) Set(ctx context.Context, userID string) error {
	if r.rdb == nil {
		return ErrUnavailable
	}
	if err := r.rdb.SetEx(ctx, reminderKey(userID), ReminderMessage, reminderTTL).Err(); err != nil {
		return fmt.Errorf("reminder set: %w", err)
	}
	return nil
}

// Get returns the reminder message and its remaining lifetime. ok is false
// when no reminder is set or it has expired.
func (r *Reminders) Get(ctx context.Context, userID string) (msg string, left time.Duration, ok bool, err error) {
	if r.rdb == nil {
		return "", 0, false, ErrUnavailable
	}
	key := reminderKey(userID)
	msg, err = r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, fmt.Errorf("reminder get: %w", err)
	}
	left, err = r.rdb.TTL(ctx, key).Result()
	if err != nil {
		return "", 0, false, fmt.Errorf("reminder ttl: %w", err)
	}
	return msg, left, true, nil
}
