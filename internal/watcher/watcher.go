// Package watcher contains the background listener that subscribes to
// activity inserts via a MongoDB change stream and appends one line per new
// entry to the activity log file. It runs independently of the interactive
// session: it must never block the menu and its failures are retried, not
// surfaced.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/training-diary/internal/model"
	"github.com/iliyamo/training-diary/internal/repository"
)

// Watcher tails the activities collection and writes the append-only feed.
type Watcher struct {
	activities *repository.ActivityRepo
	path       string
	log        *slog.Logger
}

func New(activities *repository.ActivityRepo, path string, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{activities: activities, path: path, log: log}
}

// insertEvent is the slice of a change-stream document the feed needs.
type insertEvent struct {
	FullDocument struct {
		UserID primitive.ObjectID `bson:"user_id"`
		Type   model.ActivityType `bson:"type"`
		Date   string             `bson:"date"`
	} `bson:"fullDocument"`
}

// Run opens the change stream and consumes it until ctx is cancelled,
// reconnecting with exponential backoff when the stream drops. It returns
// only the context's error; stream failures are logged and retried.
func (w *Watcher) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		stream, err := w.activities.Watch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.Warn("activity watcher: open stream failed", "err", err, "retry_in", backoff.String())
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = w.consume(ctx, stream)
		_ = stream.Close(context.Background())
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.log.Warn("activity watcher: stream ended, reconnecting", "err", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (w *Watcher) consume(ctx context.Context, stream *mongo.ChangeStream) error {
	for stream.Next(ctx) {
		var ev insertEvent
		if err := stream.Decode(&ev); err != nil {
			w.log.Warn("activity watcher: decode failed", "err", err)
			continue
		}
		line := feedLine(time.Now().UTC(), ev.FullDocument.Type, ev.FullDocument.UserID.Hex(), ev.FullDocument.Date)
		if err := w.append(line); err != nil {
			w.log.Warn("activity watcher: append failed", "err", err)
		}
	}
	return stream.Err()
}

// feedLine formats one feed entry.
func feedLine(at time.Time, t model.ActivityType, userID, date string) string {
	return fmt.Sprintf("[%s] New training: %s by %s on %s\n",
		at.Format(time.RFC3339), t, userID, date)
}

func (w *Watcher) append(line string) error {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open feed file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write feed line: %w", err)
	}
	return nil
}

// sleep waits d or until ctx is cancelled; it reports false on
// cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
