// Package relay forwards behavioral events published on NATS to HubSpot's
// event tracking endpoint.
package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// Static errors for err113 compliance.
var (
	ErrSubjectRequired = errors.New("relay subject is required")
	ErrAlreadyStarted  = errors.New("relay already started")
	ErrEventIDRequired = errors.New("event_id is required")
	ErrEventRejected   = errors.New("event rejected by HubSpot")
)

// DefaultTimeout bounds the HubSpot call made for one message.
const DefaultTimeout = 10 * time.Second

// Subscriber is the part of *nats.Conn the relay uses.
type Subscriber interface {
	Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error)
	QueueSubscribe(subject, queue string, handler nats.MsgHandler) (*nats.Subscription, error)
}

// Tracker records one event occurrence. hubspot.EventsClient satisfies it.
type Tracker interface {
	Track(ctx context.Context, eventID, email string, properties map[string]string) (bool, error)
}

// Event is the JSON payload of a relayed message.
type Event struct {
	EventID    string            `json:"event_id"`
	Email      string            `json:"email"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Reply is sent back to request-reply publishers.
type Reply struct {
	Tracked bool   `json:"tracked"`
	Error   string `json:"error,omitempty"`
}

// Config configures a Relay.
type Config struct {
	// Subject to subscribe to, e.g. hubspot.events.
	Subject string
	// Queue group; relays sharing a queue split the messages.
	Queue string
	// Timeout per message. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Stats counts processed messages.
type Stats struct {
	Received uint64
	Tracked  uint64
	Rejected uint64
	Failed   uint64
}

// Relay subscribes to a subject and tracks every event it receives.
type Relay struct {
	subscriber Subscriber
	tracker    Tracker
	logger     hubspot.Logger
	config     Config

	mu           sync.Mutex
	started      bool
	subscription *nats.Subscription

	received atomic.Uint64
	tracked  atomic.Uint64
	rejected atomic.Uint64
	failed   atomic.Uint64
}

// New creates a relay. logger may be nil.
func New(subscriber Subscriber, tracker Tracker, logger hubspot.Logger, config Config) (*Relay, error) {
	if config.Subject == "" {
		return nil, ErrSubjectRequired
	}

	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	return &Relay{
		subscriber: subscriber,
		tracker:    tracker,
		logger:     logger,
		config:     config,
	}, nil
}

// Connect dials a NATS server for a relay. Reconnects are unbounded.
func Connect(url, name string, opts ...nats.Option) (*nats.Conn, error) {
	options := append([]nats.Option{nats.Name(name), nats.MaxReconnects(-1)}, opts...)

	conn, err := nats.Connect(url, options...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	return conn, nil
}

// Start subscribes. Messages are handled with ctx as parent context.
func (r *Relay) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}

	handler := func(msg *nats.Msg) {
		_ = r.HandleMessage(ctx, msg)
	}

	var (
		subscription *nats.Subscription
		err          error
	)

	if r.config.Queue != "" {
		subscription, err = r.subscriber.QueueSubscribe(r.config.Subject, r.config.Queue, handler)
	} else {
		subscription, err = r.subscriber.Subscribe(r.config.Subject, handler)
	}

	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", r.config.Subject, err)
	}

	r.started = true
	r.subscription = subscription

	r.log("Relay started", map[string]interface{}{"subject": r.config.Subject, "queue": r.config.Queue})

	return nil
}

// Stop unsubscribes. It is safe to call on a stopped relay.
func (r *Relay) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return nil
	}

	r.started = false
	subscription := r.subscription
	r.subscription = nil

	if subscription != nil {
		err := subscription.Unsubscribe()
		if err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			return fmt.Errorf("unsubscribing from %s: %w", r.config.Subject, err)
		}
	}

	r.log("Relay stopped", map[string]interface{}{"subject": r.config.Subject})

	return nil
}

// Stats returns the message counters.
func (r *Relay) Stats() Stats {
	return Stats{
		Received: r.received.Load(),
		Tracked:  r.tracked.Load(),
		Rejected: r.rejected.Load(),
		Failed:   r.failed.Load(),
	}
}

// HandleMessage tracks the event carried by msg and answers request-reply
// publishers.
func (r *Relay) HandleMessage(ctx context.Context, msg *nats.Msg) error {
	r.received.Add(1)

	err := r.track(ctx, msg.Data)

	switch {
	case err == nil:
		r.tracked.Add(1)
	case errors.Is(err, ErrEventRejected):
		r.rejected.Add(1)
	default:
		r.failed.Add(1)
	}

	if err != nil && r.logger != nil {
		r.logger.Warn("Relay message not tracked", map[string]interface{}{
			"subject": msg.Subject,
			"error":   err.Error(),
		})
	}

	if msg.Reply != "" {
		r.reply(msg, err)
	}

	return err
}

func (r *Relay) track(ctx context.Context, data []byte) error {
	var event Event

	err := json.Unmarshal(data, &event)
	if err != nil {
		return fmt.Errorf("decoding event: %w", err)
	}

	if event.EventID == "" {
		return ErrEventIDRequired
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	ok, err := r.tracker.Track(ctx, event.EventID, event.Email, event.Properties)
	if err != nil {
		return fmt.Errorf("tracking event %s: %w", event.EventID, err)
	}

	if !ok {
		return fmt.Errorf("%w: %s", ErrEventRejected, event.EventID)
	}

	return nil
}

func (r *Relay) reply(msg *nats.Msg, cause error) {
	reply := Reply{Tracked: cause == nil}
	if cause != nil {
		reply.Error = cause.Error()
	}

	data, err := json.Marshal(reply)
	if err != nil {
		return
	}

	err = msg.Respond(data)
	if err != nil {
		r.log("Relay reply failed", map[string]interface{}{"reply": msg.Reply, "error": err.Error()})
	}
}

func (r *Relay) log(msg string, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.Info(msg, fields)
	}
}
