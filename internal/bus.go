package internal

import (
	"context"
	"fmt"

	"github.com/BeaconTeam/Beacon-Gateway/beaconjson"
	"golang.org/x/xerrors"
)

const MessageBusBuffer = 256

// APIMessage is the high level "something happened" message published for
// each applied dispatch. Data carries the event payload, Extra any entities
// only observable through the prior snapshot. Prev and Curr reference the
// snapshot pair around the event and are not serialized for external
// producers.
type APIMessage struct {
	Type     string                 `json:"t"`
	Sequence int64                  `json:"s"`
	Data     interface{}            `json:"d"`
	Extra    map[string]interface{} `json:"extra,omitempty"`

	Prev *Snapshot `json:"-"`
	Curr *Snapshot `json:"-"`
}

// Bus is the publish-only downstream surface. Messages are delivered
// in-process through a buffered channel and optionally mirrored to an
// external producer. Snapshot publication happens before the corresponding
// message is offered, so a consumer always observes the post-event state.
type Bus struct {
	beacon *Beacon

	messages chan *APIMessage

	producer    MQClient
	channelName string
}

// NewBus creates the bus and, when configured, its external producer.
func NewBus(b *Beacon) *Bus {
	bus := &Bus{
		beacon:   b,
		messages: make(chan *APIMessage, MessageBusBuffer),
	}

	if b.Configuration.Producer.Type != "" {
		producer, err := NewMQClient(b.Configuration.Producer.Type)
		if err != nil {
			b.Logger.Error().Err(err).Msg("Failed to create producer client")
		} else {
			bus.producer = producer
			bus.channelName = b.Configuration.Producer.ChannelName
		}
	}

	return bus
}

// Connect establishes the external producer connection, if any.
func (bus *Bus) Connect(ctx context.Context) error {
	if bus.producer == nil {
		return nil
	}

	err := bus.producer.Connect(ctx, bus.beacon.Configuration.Producer.ClientName, bus.beacon.Configuration.Producer.Configuration)
	if err != nil {
		return fmt.Errorf("failed to connect producer: %w", err)
	}

	bus.beacon.Logger.Info().Str("producer", bus.producer.String()).Msg("Connected producer")

	return nil
}

// Messages returns the in-process API message stream.
func (bus *Bus) Messages() <-chan *APIMessage {
	return bus.messages
}

// Publish delivers a message to the in-process stream and mirrors it to the
// external producer. Delivery is at-least-once per event.
func (bus *Bus) Publish(ctx context.Context, message *APIMessage) error {
	beaconMessagesPublished.WithLabelValues(message.Type).Inc()

	select {
	case bus.messages <- message:
	case <-ctx.Done():
		return ctx.Err()
	}

	if bus.producer == nil {
		return nil
	}

	payload, err := beaconjson.Marshal(message)
	if err != nil {
		return xerrors.Errorf("failed to marshal api message: %w", err)
	}

	err = bus.producer.Publish(ctx, bus.channelName, payload)
	if err != nil {
		return xerrors.Errorf("publish: %w", err)
	}

	return nil
}

// MQClient is an external producer for the API message stream.
type MQClient interface {
	String() string
	Channel() string

	Connect(ctx context.Context, clientName string, args map[string]interface{}) error
	Publish(ctx context.Context, channel string, data []byte) error
}

// NewMQClient creates a producer client by type name.
func NewMQClient(mqType string) (MQClient, error) {
	switch mqType {
	case "stan":
		return &StanMQClient{}, nil
	case "jetstream":
		return &JetStreamMQClient{}, nil
	case "kafka":
		return &KafkaMQClient{}, nil
	case "redis":
		return &RedisMQClient{}, nil
	default:
		return nil, xerrors.New("No MQ client named " + mqType)
	}
}
