package internal

import (
	"context"

	"github.com/BeaconTeam/Beacon-Gateway/discord"
	"golang.org/x/xerrors"
)

// List of handlers for gateway opcodes.
var gatewayHandlers = make(map[discord.GatewayOp]func(ctx context.Context, session *Session, msg discord.GatewayPayload) (err error))

// List of handlers for dispatch events. The dispatch registry is the single
// source of truth for which events the client understands: an event without
// an entry is dropped with a warning.
var dispatchHandlers = make(map[string]DispatchEntry)

// DispatchHandlerFunc decodes an event payload and applies it to the
// builder. The decoded payload is returned for the message factory.
type DispatchHandlerFunc func(ctx *StateCtx, msg discord.GatewayPayload) (payload interface{}, err error)

// MessageFactory synthesizes the API message for an applied dispatch from
// its decoded payload and the (previous, current) snapshot pair. Factories
// may return false when the referenced entity was never cached.
type MessageFactory func(payload interface{}, prev, curr *Snapshot) (message APIMessage, ok bool)

// DispatchEntry pairs an event's handler with its API message factory. A nil
// factory publishes nothing for the event.
type DispatchEntry struct {
	Handler DispatchHandlerFunc
	Factory MessageFactory
}

// StateCtx carries the builder for the event currently being applied.
type StateCtx struct {
	context context.Context
	Builder *Builder

	*Session
}

func registerGatewayEvent(op discord.GatewayOp, handler func(ctx context.Context, session *Session, msg discord.GatewayPayload) (err error)) {
	gatewayHandlers[op] = handler
}

func registerDispatch(eventType string, handler DispatchHandlerFunc, factory MessageFactory) {
	dispatchHandlers[eventType] = DispatchEntry{Handler: handler, Factory: factory}
}

// OnEvent routes a received frame to its opcode handler.
func (s *Session) OnEvent(ctx context.Context, msg discord.GatewayPayload) {
	err := GatewayDispatch(ctx, s, msg)
	if err != nil {
		if xerrors.Is(err, ErrNoGatewayHandler) {
			s.Logger.Warn().
				Int("op", int(msg.Op)).
				Str("type", msg.Type).
				Msg("Gateway sent unknown packet")

			beaconDiscardedEvents.Inc()
		}
	}
}

// OnDispatch applies a dispatch event: route to the registered handler,
// finalize the builder into the next snapshot, publish the snapshot and then
// the API message.
func (s *Session) OnDispatch(ctx context.Context, msg discord.GatewayPayload) error {
	entry, ok := dispatchHandlers[msg.Type]
	if !ok {
		s.Logger.Warn().Str("type", msg.Type).Msg("No dispatch handler found")

		beaconDiscardedEvents.Inc()

		return ErrNoDispatchHandler
	}

	beaconDispatchEventCount.WithLabelValues(msg.Type).Inc()

	prev := s.State.Snapshot()

	stateCtx := &StateCtx{
		context: ctx,
		Builder: NewBuilder(prev, s.messageLimit),
		Session: s,
	}

	payload, err := entry.Handler(stateCtx, msg)
	if err != nil {
		return xerrors.Errorf("dispatch %s: %w", msg.Type, err)
	}

	next := stateCtx.Builder.Finalize()
	s.State.publish(next)

	beaconStateGuildCount.Set(float64(len(next.Guilds)))
	beaconStateUserCount.Set(float64(len(next.Users)))

	if entry.Factory == nil {
		return nil
	}

	message, ok := entry.Factory(payload, prev, next)
	if !ok {
		s.Logger.Debug().Str("type", msg.Type).Msg("Factory produced no API message")

		return nil
	}

	message.Type = msg.Type
	message.Sequence = msg.Sequence

	return s.Bus.Publish(ctx, &message)
}

// GatewayDispatch handles selecting the proper gateway handler and executing it.
func GatewayDispatch(ctx context.Context, s *Session, event discord.GatewayPayload) error {
	if f, ok := gatewayHandlers[event.Op]; ok {
		return f(ctx, s, event)
	}

	return ErrNoGatewayHandler
}
