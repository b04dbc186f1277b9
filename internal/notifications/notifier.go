// Package notifications publishes entity change events to Redis pub/sub.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"blogapi/internal/middleware"
	"blogapi/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Entity names, also the suffix of each entity's channel.
const (
	EntityAuthors = "authors"
	EntityPosts   = "posts"
)

// Event types.
const (
	AuthorCreated = "author.created"
	AuthorUpdated = "author.updated"
	AuthorDeleted = "author.deleted"
	PostCreated   = "post.created"
	PostUpdated   = "post.updated"
	PostDeleted   = "post.deleted"
)

// Event is the JSON payload published after a committed change.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Entity     string    `json:"entity"`
	EntityID   uint      `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// NewEvent stamps a fresh event with a random id and the current time.
func NewEvent(entity, eventType string, entityID uint, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Entity:     entity,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// EntityChannel returns the channel events for entity are published on.
func EntityChannel(entity string) string {
	return fmt.Sprintf("events:%s", entity)
}

// Notifier provides helpers to publish events into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish sends ev to its entity channel. A nil Notifier or Redis client is a no-op.
func (n *Notifier) Publish(ctx context.Context, ev Event) error {
	if n == nil || n.rdb == nil {
		return nil
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := n.rdb.Publish(ctx, EntityChannel(ev.Entity), payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}

	observability.RecordEntityEvent(ev.Entity, ev.Type)
	return nil
}

// PublishBestEffort publishes ev and logs, rather than returns, any failure.
func (n *Notifier) PublishBestEffort(ctx context.Context, ev Event) {
	if err := n.Publish(ctx, ev); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish entity event",
			slog.String("type", ev.Type),
			slog.Uint64("entity_id", uint64(ev.EntityID)),
			slog.String("error", err.Error()),
		)
	}
}

// StartEventSubscriber subscribes to every entity channel and calls onEvent
// for each decoded event until ctx is cancelled.
func (n *Notifier) StartEventSubscriber(ctx context.Context, onEvent func(Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}

	sub := n.rdb.PSubscribe(ctx, "events:*")
	// Wait for the subscription to be confirmed so no early event is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe events: %w", err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					middleware.Logger.Warn("dropping malformed event", slog.String("channel", msg.Channel))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in event subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())),
							)
						}
					}()
					onEvent(ev)
				}()
			}
		}
	}()

	return nil
}
