package internal

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/BeaconTeam/Beacon-Gateway/beaconjson"
	"github.com/BeaconTeam/Beacon-Gateway/discord"
	"github.com/WelcomerTeam/czlib"
	"github.com/rs/zerolog"
	gotils_strconv "github.com/savsgio/gotils/strconv"
	"go.uber.org/atomic"
	"nhooyr.io/websocket"
)

const (
	WebsocketReadLimit = 512 << 20

	// Buffer size of the incoming frame channel.
	MessageChannelBuffer = 64

	// Capacity of the outbound FIFO. Overflow is a fatal connection error.
	SendChannelBuffer = 64

	FirstBackoffWait = 1 * time.Second
	MaxReconnectWait = 60 * time.Second

	WaitForReadyTimeout = 15 * time.Second
)

// SessionStatus represents the connection lifecycle state of a session.
type SessionStatus int32

const (
	SessionStatusIdle SessionStatus = iota
	SessionStatusConnecting
	SessionStatusUpgraded
	SessionStatusActive
	SessionStatusShutdown
)

// Session maintains a single gateway connection: discovery, handshake,
// identify/resume, heartbeating and reconnection. All dispatch application
// is serialized on the Listen goroutine; the reader, writer and heartbeater
// are per-connection helpers feeding it through channels.
type Session struct {
	ctx    context.Context
	cancel func()

	Logger zerolog.Logger

	Beacon *Beacon

	token                string
	largeThreshold       int32
	shardNum             int32
	shardTotal           int32
	maxReconnectAttempts int32

	messageLimit int

	Start            *atomic.Time
	RetriesRemaining *atomic.Int32

	// Resume data. SessionID and Sequence exist from READY through to
	// session termination; both cleared means the next Hello identifies.
	Sequence  *atomic.Int64
	SessionID *atomic.String

	AckPending        *atomic.Bool
	LastHeartbeatAck  *atomic.Time
	LastHeartbeatSent *atomic.Time

	Heartbeater         *time.Ticker
	HeartbeatInterval   time.Duration
	heartbeatDeadSignal chan void

	connCtx    context.Context
	connCancel func()

	statusMu sync.RWMutex
	status   SessionStatus

	channelMu sync.RWMutex
	MessageCh chan discord.GatewayPayload
	ErrorCh   chan error
	SendCh    chan []byte

	wsConnMu sync.RWMutex
	wsConn   *websocket.Conn

	gatewayURL *atomic.String

	State *StateHolder
	Bus   *Bus

	ready   chan void
	IsReady *atomic.Bool
}

// NewSession creates a session from the beacon configuration.
func (b *Beacon) NewSession() *Session {
	cfg := b.Configuration

	s := &Session{
		Logger: b.Logger.With().Int32("shardId", cfg.Bot.ShardNum).Logger(),

		Beacon: b,

		token:                cfg.Bot.Token,
		largeThreshold:       cfg.Bot.LargeThreshold,
		shardNum:             cfg.Bot.ShardNum,
		shardTotal:           cfg.Bot.ShardTotal,
		maxReconnectAttempts: cfg.Bot.MaxReconnectAttempts,

		messageLimit: cfg.Cache.MessagesPerChannel,

		Start:            &atomic.Time{},
		RetriesRemaining: atomic.NewInt32(cfg.Bot.MaxReconnectAttempts),

		Sequence:  &atomic.Int64{},
		SessionID: &atomic.String{},

		AckPending:        atomic.NewBool(false),
		LastHeartbeatAck:  &atomic.Time{},
		LastHeartbeatSent: &atomic.Time{},

		heartbeatDeadSignal: make(chan void),

		status: SessionStatusIdle,

		gatewayURL: &atomic.String{},

		State: NewStateHolder(),
		Bus:   NewBus(b),

		ready:   make(chan void, 1),
		IsReady: atomic.NewBool(false),
	}

	s.ctx, s.cancel = context.WithCancel(b.ctx)

	return s
}

// Open runs the reconnect loop until shutdown or the retry budget is
// exhausted.
func (s *Session) Open() error {
	wait := FirstBackoffWait

	for {
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		default:
		}

		if s.RetriesRemaining.Load() <= 0 {
			s.Logger.Error().Msg("Ran out of reconnect attempts, session is terminating")

			return ErrReconnectsExhausted
		}

		err := s.Connect()
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}

			s.RetriesRemaining.Dec()
			s.Logger.Warn().Err(err).Dur("retry", wait).Msg("Failed to connect to gateway")

			select {
			case <-time.After(wait):
			case <-s.ctx.Done():
				return s.ctx.Err()
			}

			wait *= 2
			if wait > MaxReconnectWait {
				wait = MaxReconnectWait
			}

			continue
		}

		wait = FirstBackoffWait

		err = s.Listen(s.connCtx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}

			beaconReconnectCount.Inc()
		}
	}
}

// Connect performs discovery, upgrade and the Hello/Identify handshake.
func (s *Session) Connect() error {
	s.Logger.Debug().Msg("Connecting session")

	s.SetStatus(SessionStatusConnecting)

	if s.connCancel != nil {
		s.connCancel()
	}

	s.connCtx, s.connCancel = context.WithCancel(s.ctx)

	url := s.gatewayURL.Load()
	if url == "" {
		gateway, err := s.Beacon.Client.GetGateway(s.connCtx)
		if err != nil {
			return fmt.Errorf("failed to discover gateway: %w", err)
		}

		url = gateway.URL + "?v=" + discord.GatewayVersion + "&encoding=json"
		s.gatewayURL.Store(url)

		// A successful discovery resets the retry budget.
		s.RetriesRemaining.Store(s.maxReconnectAttempts)
	}

	err := s.FeedWebsocket(s.connCtx, url)
	if err != nil {
		s.gatewayURL.Store("")

		return err
	}

	s.SetStatus(SessionStatusUpgraded)

	// The first frame on a fresh connection must be Hello.
	msg, err := s.readMessage()
	if err != nil {
		return fmt.Errorf("failed to read hello: %w", err)
	}

	if msg.Op != discord.GatewayOpHello {
		return fmt.Errorf("expected hello, received op %d", msg.Op)
	}

	var hello discord.Hello

	err = s.decodeContent(msg, &hello)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	s.Start.Store(now)
	s.LastHeartbeatAck.Store(now)
	s.LastHeartbeatSent.Store(now)
	s.AckPending.Store(false)

	s.HeartbeatInterval = time.Duration(hello.HeartbeatInterval) * time.Millisecond
	s.Heartbeater = time.NewTicker(s.HeartbeatInterval)
	s.heartbeatDeadSignal = make(chan void)

	go s.Heartbeat(s.connCtx)

	sequence := s.Sequence.Load()
	sessionID := s.SessionID.Load()

	s.Logger.Debug().
		Dur("interval", s.HeartbeatInterval).
		Int64("sequence", sequence).
		Msg("Received HELLO event")

	if sessionID == "" || sequence == 0 {
		err = s.Identify(s.connCtx)
		if err != nil {
			return fmt.Errorf("failed to identify: %w", err)
		}
	} else {
		err = s.Resume(s.connCtx)
		if err != nil {
			return fmt.Errorf("failed to resume: %w", err)
		}
	}

	s.SetStatus(SessionStatusActive)

	return nil
}

// Listen applies incoming frames in receive order until the connection
// fails or the session shuts down.
func (s *Session) Listen(ctx context.Context) error {
	defer s.teardownConnection()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-s.errorCh():
			if err == nil {
				err = fmt.Errorf("error channel closed")
			}

			s.Logger.Warn().Err(err).Msg("Gateway connection failed, returning to idle")
			s.SetStatus(SessionStatusIdle)

			return err
		case msg := <-s.messageCh():
			s.OnEvent(ctx, msg)
		}
	}
}

// FeedWebsocket upgrades the connection and starts the reader and writer
// pumps for it.
func (s *Session) FeedWebsocket(ctx context.Context, u string) error {
	messageCh := make(chan discord.GatewayPayload, MessageChannelBuffer)
	errorCh := make(chan error, 1)
	sendCh := make(chan []byte, SendChannelBuffer)

	conn, _, err := websocket.Dial(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to websocket: %w", err)
	}

	conn.SetReadLimit(WebsocketReadLimit)

	s.wsConnMu.Lock()
	s.wsConn = conn
	s.wsConnMu.Unlock()

	s.channelMu.Lock()
	s.MessageCh = messageCh
	s.ErrorCh = errorCh
	s.SendCh = sendCh
	s.channelMu.Unlock()

	go func() {
		for {
			messageType, data, connectionErr := conn.Read(ctx)
			if connectionErr != nil {
				select {
				case errorCh <- connectionErr:
				case <-ctx.Done():
				}

				return
			}

			beaconEventCount.Inc()

			if messageType == websocket.MessageBinary {
				data, connectionErr = czlib.Decompress(data)
				if connectionErr != nil {
					select {
					case errorCh <- connectionErr:
					case <-ctx.Done():
					}

					return
				}
			}

			var msg discord.GatewayPayload

			connectionErr = beaconjson.Unmarshal(data, &msg)
			if connectionErr != nil {
				s.Logger.Error().Err(connectionErr).Msg("Failed to unmarshal message")
				beaconDiscardedEvents.Inc()

				continue
			}

			select {
			case messageCh <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case data := <-sendCh:
				s.Logger.Trace().Msg("<<< " + gotils_strconv.B2S(data))

				writeErr := conn.Write(ctx, websocket.MessageText, data)
				if writeErr != nil {
					select {
					case errorCh <- writeErr:
					case <-ctx.Done():
					}

					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Heartbeat sends heartbeats off the Hello-advertised interval. A tick that
// finds the previous heartbeat unacknowledged treats the connection as dead.
func (s *Session) Heartbeat(ctx context.Context) {
	// Bind to this connection's ticker and dead signal, a reconnect swaps
	// both out underneath the session.
	ticker := s.Heartbeater
	deadSignal := s.heartbeatDeadSignal

	defer ticker.Stop()

	for {
		select {
		case <-deadSignal:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.AckPending.Load() {
				s.Logger.Warn().Msg("Heartbeat was not acknowledged, reconnecting")
				s.fatalError(ErrMissingHeartbeatAck)

				return
			}

			err := s.SendEvent(ctx, discord.GatewayOpHeartbeat, s.heartbeatSequence())
			if err != nil {
				s.fatalError(err)

				return
			}

			s.AckPending.Store(true)
			s.LastHeartbeatSent.Store(time.Now().UTC())
		}
	}
}

// heartbeatSequence returns the last observed sequence, or nil when no
// dispatch has been received yet.
func (s *Session) heartbeatSequence() *int64 {
	if seq := s.Sequence.Load(); seq > 0 {
		return &seq
	}

	return nil
}

// Identify sends the identify packet.
func (s *Session) Identify(ctx context.Context) error {
	s.Logger.Debug().Msg("Sending identify")

	return s.SendEvent(ctx, discord.GatewayOpIdentify, discord.Identify{
		Token: s.token,
		Properties: &discord.IdentifyProperties{
			OS:              runtime.GOOS,
			Browser:         "Beacon " + VERSION,
			Device:          "Beacon " + VERSION,
			Referrer:        "",
			ReferringDomain: "",
		},
		Compress:       false,
		LargeThreshold: s.largeThreshold,
		Shard:          [2]int32{s.shardNum, s.shardTotal},
	})
}

// Resume sends the resume packet.
func (s *Session) Resume(ctx context.Context) error {
	s.Logger.Debug().Msg("Sending resume")

	return s.SendEvent(ctx, discord.GatewayOpResume, discord.Resume{
		Token:     s.token,
		SessionID: s.SessionID.Load(),
		Sequence:  s.Sequence.Load(),
	})
}

// RequestGuildMembers asks the gateway to stream member chunks for a guild.
func (s *Session) RequestGuildMembers(ctx context.Context, guildID discord.Snowflake, query string, limit int32) error {
	if s.GetStatus() != SessionStatusActive {
		return ErrSessionClosed
	}

	return s.SendEvent(ctx, discord.GatewayOpRequestGuildMembers, discord.RequestGuildMembers{
		GuildID: guildID,
		Query:   query,
		Limit:   limit,
	})
}

// SendEvent enqueues a frame on the outbound FIFO. A full buffer is a fatal
// connection error rather than a block.
func (s *Session) SendEvent(ctx context.Context, op discord.GatewayOp, data interface{}) error {
	frame, err := beaconjson.Marshal(discord.SentPayload{
		Op:   op,
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	s.channelMu.RLock()
	sendCh := s.SendCh
	s.channelMu.RUnlock()

	if sendCh == nil {
		return ErrSessionClosed
	}

	select {
	case sendCh <- frame:
		return nil
	default:
		s.fatalError(ErrSendBufferFull)

		return ErrSendBufferFull
	}
}

// ClearResume discards the resume data, forcing a fresh identify on the
// next connection.
func (s *Session) ClearResume() {
	s.SessionID.Store("")
	s.Sequence.Store(0)
}

// fatalError reports a connection-fatal error to the listen loop.
func (s *Session) fatalError(err error) {
	s.channelMu.RLock()
	errorCh := s.ErrorCh
	s.channelMu.RUnlock()

	if errorCh == nil {
		return
	}

	select {
	case errorCh <- err:
	default:
	}
}

// decodeContent converts the frame body into the passed structure.
func (s *Session) decodeContent(msg discord.GatewayPayload, out interface{}) error {
	err := beaconjson.Unmarshal(msg.Data, out)
	if err != nil {
		s.Logger.Error().Err(err).Str("type", msg.Type).Msg("Failed to decode event")

		return err
	}

	return nil
}

// readMessage blocks for the next frame or connection error.
func (s *Session) readMessage() (msg discord.GatewayPayload, err error) {
	select {
	case err = <-s.errorCh():
		return msg, err
	case msg = <-s.messageCh():
		return msg, nil
	case <-s.connCtx.Done():
		return msg, s.connCtx.Err()
	}
}

func (s *Session) messageCh() chan discord.GatewayPayload {
	s.channelMu.RLock()
	defer s.channelMu.RUnlock()

	return s.MessageCh
}

func (s *Session) errorCh() chan error {
	s.channelMu.RLock()
	defer s.channelMu.RUnlock()

	return s.ErrorCh
}

func (s *Session) teardownConnection() {
	s.IsReady.Store(false)

	select {
	case <-s.heartbeatDeadSignal:
	default:
		close(s.heartbeatDeadSignal)
	}

	if s.connCancel != nil {
		s.connCancel()
	}

	// Rediscover the gateway URL on the next attempt.
	s.gatewayURL.Store("")

	s.closeWS(websocket.StatusNormalClosure)
}

// Reconnect tears down the current connection so the Open loop dials again.
// Resume data is preserved unless cleared by the caller.
func (s *Session) Reconnect() {
	s.fatalError(ErrReconnect)
}

// Close shuts the session down permanently.
func (s *Session) Close() {
	s.Logger.Info().Msg("Closing session")

	s.SetStatus(SessionStatusShutdown)
	s.cancel()
	s.closeWS(websocket.StatusNormalClosure)
}

func (s *Session) closeWS(statusCode websocket.StatusCode) {
	s.wsConnMu.Lock()
	wsConn := s.wsConn
	s.wsConn = nil
	s.wsConnMu.Unlock()

	if wsConn != nil {
		err := wsConn.Close(statusCode, "")
		if err != nil && !errors.Is(err, context.Canceled) {
			s.Logger.Debug().Err(err).Msg("Encountered error closing websocket")
		}
	}
}

// WaitForReady blocks until the session has observed READY or RESUMED.
func (s *Session) WaitForReady() {
	if s.IsReady.Load() {
		return
	}

	since := time.Now().UTC()
	t := time.NewTicker(WaitForReadyTimeout)

	defer t.Stop()

	for {
		if s.IsReady.Load() {
			return
		}

		select {
		case <-s.ready:
			return
		case <-s.ctx.Done():
			return
		case <-t.C:
			s.Logger.Debug().
				Dur("since", time.Now().UTC().Sub(since).Round(time.Second)).
				Msg("Still waiting for session to be ready")
		}
	}
}

// SetStatus sets the lifecycle status of the session.
func (s *Session) SetStatus(status SessionStatus) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	s.Logger.Debug().Int("status", int(status)).Msg("Session status changed")

	s.status = status
}

// GetStatus returns the lifecycle status of the session.
func (s *Session) GetStatus() SessionStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()

	return s.status
}
