package internal

import (
	"context"
	"time"

	"github.com/BeaconTeam/Beacon-Gateway/beaconjson"
	"github.com/BeaconTeam/Beacon-Gateway/discord"
	"golang.org/x/xerrors"
)

func gatewayOpDispatch(ctx context.Context, s *Session, msg discord.GatewayPayload) error {
	last := s.Sequence.Load()
	if msg.Sequence <= last {
		// The server is the source of truth, apply anyway.
		s.Logger.Warn().
			Int64("sequence", msg.Sequence).
			Int64("last", last).
			Str("type", msg.Type).
			Msg("Dispatch sequence did not advance")
	}

	s.Sequence.Store(msg.Sequence)

	err := s.OnDispatch(ctx, msg)
	if err != nil && !xerrors.Is(err, ErrNoDispatchHandler) {
		s.Logger.Error().Err(err).Msg("State dispatch failed")
	}

	return nil
}

func gatewayOpHeartbeat(ctx context.Context, s *Session, msg discord.GatewayPayload) (err error) {
	// The gateway requested an immediate heartbeat.
	err = s.SendEvent(ctx, discord.GatewayOpHeartbeat, s.heartbeatSequence())
	if err != nil {
		s.fatalError(err)
	}

	return
}

func gatewayOpReconnect(ctx context.Context, s *Session, msg discord.GatewayPayload) (err error) {
	s.Logger.Info().Msg("Reconnecting in response to gateway")

	s.Reconnect()

	return
}

func gatewayOpInvalidSession(ctx context.Context, s *Session, msg discord.GatewayPayload) (err error) {
	resumable := false

	if len(msg.Data) != 0 {
		_ = beaconjson.Unmarshal(msg.Data, &resumable)
	}

	s.Logger.Warn().Bool("resumable", resumable).Msg("Received invalid session, clearing resume data")

	// The next Hello always triggers a fresh identify.
	s.ClearResume()
	s.Reconnect()

	return
}

func gatewayOpHello(ctx context.Context, s *Session, msg discord.GatewayPayload) (err error) {
	// Hello is consumed during Connect. One received mid-session means the
	// gateway restarted the handshake underneath us.
	s.Logger.Warn().Msg("Received HELLO whilst connected")

	return
}

func gatewayOpHeartbeatACK(ctx context.Context, s *Session, msg discord.GatewayPayload) (err error) {
	s.AckPending.Store(false)
	s.LastHeartbeatAck.Store(time.Now().UTC())

	heartbeatRTT := s.LastHeartbeatAck.Load().Sub(s.LastHeartbeatSent.Load()).Milliseconds()

	s.Logger.Debug().
		Int64("RTT", heartbeatRTT).
		Msg("Received heartbeat ACK")

	beaconGatewayLatency.Set(float64(heartbeatRTT))

	return
}

func init() {
	registerGatewayEvent(discord.GatewayOpDispatch, gatewayOpDispatch)
	registerGatewayEvent(discord.GatewayOpHeartbeat, gatewayOpHeartbeat)
	registerGatewayEvent(discord.GatewayOpReconnect, gatewayOpReconnect)
	registerGatewayEvent(discord.GatewayOpInvalidSession, gatewayOpInvalidSession)
	registerGatewayEvent(discord.GatewayOpHello, gatewayOpHello)
	registerGatewayEvent(discord.GatewayOpHeartbeatACK, gatewayOpHeartbeatACK)
}
