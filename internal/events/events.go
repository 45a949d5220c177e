// Package events publishes listing notifications to NATS.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alfredjeanlab/listings/internal/model"
)

// Topics. Subscribe to "listings.>" for everything.
const (
	TopicListingCreated  = "listings.listing.created"
	TopicPlaceSet        = "listings.place.set"
	TopicExportCompleted = "listings.export.completed"
)

type ListingCreated struct {
	Listing *model.Listing `json:"listing"`
}

type PlaceSet struct {
	Place *model.Place `json:"place"`
}

type ExportCompleted struct {
	Listings     int `json:"listings"`
	Bytes        int `json:"bytes"`
	Destinations int `json:"destinations"`
	Failed       int `json:"failed,omitempty"`
}

// Envelope is the wire form of every event.
type Envelope struct {
	Topic string          `json:"topic"`
	At    time.Time       `json:"at"`
	Data  json.RawMessage `json:"data"`
}

// Decode unmarshals the payload into v.
func (e Envelope) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Subscriber receives events from the bus.
type Subscriber interface {
	// Subscribe delivers envelopes on the returned channel until cancel is
	// called, which also closes the channel.
	Subscribe(topic string) (<-chan Envelope, func(), error)
	Close() error
}

// NoopPublisher is used when no NATS URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (NoopPublisher) Close() error                               { return nil }

func newEnvelope(topic string, event any) (Envelope, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Topic: topic, At: time.Now().UTC(), Data: data}, nil
}
