package pixelboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Client provides instance-scoped Redis operations for the canvas and its
// event log. All keys and channels are automatically namespaced with the
// instance name. The client is thread-safe and can be used concurrently
// from multiple goroutines.
//
// The canvas has no backend-side locking: concurrent writers follow a
// read-modify-write cycle and the last full-state write wins. The event
// log (append-only, backend-ordered) is the durable record of which writes
// were intended even when the materialized grid loses one under
// contention.
type Client struct {
	rdb          *redis.Client
	instanceName string
}

// NewClient creates a new canvas client for the specified instance.
// The client automatically namespaces all keys and channels with the
// instance name. Returns an error if instanceName is empty.
func NewClient(redisOpts *redis.Options, instanceName string) (*Client, error) {
	if instanceName == "" {
		return nil, fmt.Errorf("instance name cannot be empty")
	}

	return &Client{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
// After calling Close(), the client should not be used.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// GetState reads the canonical canvas state. If the canvas key is absent
// it initializes the default state (64x64, 16-color palette, all pixels at
// index 0), persists it, and returns it. Concurrent first readers may each
// write the default; all initial states are identical so the last writer
// winning is harmless.
func (c *Client) GetState(ctx context.Context) (*State, error) {
	key := CanvasKey(c.instanceName)

	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		state := NewDefaultState()
		if err := c.PutState(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to initialize canvas: %w", err)
		}
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read canvas state from Redis: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to decode canvas state: %w", err)
	}

	return &state, nil
}

// PutState unconditionally overwrites the canvas key with the full state,
// metadata and encoded grid together in a single logical write.
func (c *Client) PutState(ctx context.Context, state *State) error {
	if err := state.Meta.Validate(); err != nil {
		return fmt.Errorf("invalid canvas state: %w", err)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize canvas state: %w", err)
	}

	key := CanvasKey(c.instanceName)
	if err := c.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write canvas state to Redis: %w", err)
	}

	return nil
}

// UpdateState is the single read-modify-write primitive: it reads the
// current state (lazily initializing it), applies mutate to the in-memory
// copy, and persists the result. When mutate returns an error nothing is
// written and the error is returned unchanged.
//
// There is no optimistic or pessimistic locking across the read and the
// write; two racing updates resolve by last-put-wins. Keeping every
// mutation behind this method means a versioned write can be introduced
// later without touching callers.
func (c *Client) UpdateState(ctx context.Context, mutate func(*State) error) (*State, error) {
	state, err := c.GetState(ctx)
	if err != nil {
		return nil, err
	}

	if err := mutate(state); err != nil {
		return nil, err
	}

	if err := c.PutState(ctx, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Reset replaces the canvas with a fresh all-zero grid. Zero width or
// height and a nil or empty palette default from the existing state, so a
// plain Reset(ctx, 0, 0, nil) rebuilds the canvas at its current geometry.
// Returns ErrInvalidDimensions when a resolved dimension is not positive
// and ErrPaletteFull when the supplied palette exceeds 256 entries. Reset
// appends no events: it is an administrative operation, not an agent
// action.
func (c *Client) Reset(ctx context.Context, width, height int, palette []string) (*State, error) {
	current, err := c.GetState(ctx)
	if err != nil {
		return nil, err
	}

	if width == 0 {
		width = current.Meta.Width
	}
	if height == 0 {
		height = current.Meta.Height
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("cannot reset to %dx%d: %w", width, height, ErrInvalidDimensions)
	}

	if len(palette) == 0 {
		palette = current.Meta.Palette
	} else {
		normalized := make([]string, len(palette))
		for i, color := range palette {
			normalized[i] = NormalizeColor(color)
		}
		palette = normalized
	}
	if len(palette) > MaxPaletteSize {
		return nil, fmt.Errorf("reset palette has %d entries, max %d: %w", len(palette), MaxPaletteSize, ErrPaletteFull)
	}

	state := &State{
		Meta: Meta{
			Width:   width,
			Height:  height,
			Palette: palette,
		},
		PixelsBase64: EncodePixels(make([]byte, width*height)),
	}

	if err := c.PutState(ctx, state); err != nil {
		return nil, err
	}

	return state, nil
}

// AppendEvent serializes the event and pushes it to the tail of the log.
// An ID is assigned when the event doesn't carry one. Pixel events are
// additionally published to the live channel for viewers; that publish is
// advisory and its failure does not fail the append.
func (c *Client) AppendEvent(ctx context.Context, event *Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	key := EventsKey(c.instanceName)
	if err := c.rdb.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("failed to append event to Redis: %w", err)
	}

	if event.Type == EventTypePixelSet {
		// Best-effort live feed; the durable log write above already
		// succeeded.
		c.rdb.Publish(ctx, PixelEventsChannel(c.instanceName), data)
	}

	return nil
}

// TailEvents reads events oldest-first. A positive limit returns only the
// most recent limit entries, still oldest-first within that window; limit
// zero or negative returns the entire log. Malformed entries (including
// legacy string-encoded ones that fail even after unwrapping) are skipped
// rather than failing the whole read.
func (c *Client) TailEvents(ctx context.Context, limit int) ([]*Event, error) {
	key := EventsKey(c.instanceName)

	start := int64(0)
	if limit > 0 {
		total, err := c.rdb.LLen(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read event log length: %w", err)
		}
		start = total - int64(limit)
		if start < 0 {
			start = 0
		}
	}

	entries, err := c.rdb.LRange(ctx, key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read event log from Redis: %w", err)
	}

	events := make([]*Event, 0, len(entries))
	for _, entry := range entries {
		if event, ok := DecodeEventEntry(entry); ok {
			events = append(events, event)
		}
	}

	return events, nil
}

// EventCount returns the total number of entries in the event log,
// including any malformed ones a tail read would skip.
func (c *Client) EventCount(ctx context.Context) (int64, error) {
	count, err := c.rdb.LLen(ctx, EventsKey(c.instanceName)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read event log length: %w", err)
	}
	return count, nil
}

// Subscription represents an active Pub/Sub subscription to live pixel
// events. Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *Event
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of pixel events. The channel is closed when
// the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *Event {
	return s.events
}

// Errors returns the channel of subscription errors. Errors include JSON
// unmarshaling failures; the subscription continues after errors and the
// offending messages are skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and cleans up resources. Implements
// io.Closer. Safe to call multiple times.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribePixelEvents subscribes to live pixel events for this instance.
// Caller must call subscription.Close() when done; context cancellation
// also stops the subscription.
//
// Events are delivered on a buffered channel (size 10) to prevent
// blocking. Slow subscribers may miss events - Redis Pub/Sub is
// at-most-once delivery - but the durable log remains complete.
func (c *Client) SubscribePixelEvents(ctx context.Context) (*Subscription, error) {
	pubsub := c.rdb.Subscribe(ctx, PixelEventsChannel(c.instanceName))

	eventsChan := make(chan *Event, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal pixel event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &event:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error
// (redis.Nil).
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
