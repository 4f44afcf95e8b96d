package internal

import (
	"context"
	"testing"
	"time"

	"github.com/BeaconTeam/Beacon-Gateway/beaconjson"
	"github.com/BeaconTeam/Beacon-Gateway/discord"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"golang.org/x/xerrors"
)

// newTestSession builds a session wired to in-memory channels, with no
// websocket behind it.
func newTestSession(t *testing.T) *Session {
	t.Helper()

	s := &Session{
		Logger: zerolog.Nop(),

		token:                "T",
		largeThreshold:       100,
		shardNum:             0,
		shardTotal:           1,
		maxReconnectAttempts: 3,

		messageLimit: 3,

		Start:            &atomic.Time{},
		RetriesRemaining: atomic.NewInt32(3),

		Sequence:  &atomic.Int64{},
		SessionID: &atomic.String{},

		AckPending:        atomic.NewBool(false),
		LastHeartbeatAck:  &atomic.Time{},
		LastHeartbeatSent: &atomic.Time{},

		heartbeatDeadSignal: make(chan void),

		gatewayURL: &atomic.String{},

		State: NewStateHolder(),
		Bus:   &Bus{messages: make(chan *APIMessage, MessageBusBuffer)},

		ready:   make(chan void, 1),
		IsReady: atomic.NewBool(false),
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.connCtx, s.connCancel = context.WithCancel(s.ctx)

	s.MessageCh = make(chan discord.GatewayPayload, MessageChannelBuffer)
	s.ErrorCh = make(chan error, 1)
	s.SendCh = make(chan []byte, SendChannelBuffer)

	t.Cleanup(s.cancel)

	return s
}

func readSentFrame(t *testing.T, s *Session) map[string]interface{} {
	t.Helper()

	select {
	case data := <-s.SendCh:
		var frame map[string]interface{}

		err := beaconjson.Unmarshal(data, &frame)
		if err != nil {
			t.Fatalf("Expected valid frame, but got error %v", err)
		}

		return frame
	case <-time.After(time.Second):
		t.Fatal("Expected outbound frame, but got none")

		return nil
	}
}

func dispatch(t *testing.T, s *Session, eventType string, seq int64, data string) {
	t.Helper()

	err := gatewayOpDispatch(s.ctx, s, discord.GatewayPayload{
		Op:       discord.GatewayOpDispatch,
		Data:     []byte(data),
		Sequence: seq,
		Type:     eventType,
	})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
}

func drainMessages(s *Session) []*APIMessage {
	var out []*APIMessage

	for {
		select {
		case message := <-s.Bus.messages:
			out = append(out, message)
		default:
			return out
		}
	}
}

func TestIdentifyPayload(t *testing.T) {
	s := newTestSession(t)

	err := s.Identify(s.ctx)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	frame := readSentFrame(t, s)

	if frame["op"].(float64) != float64(discord.GatewayOpIdentify) {
		t.Errorf("Expected op %d, but got %v", discord.GatewayOpIdentify, frame["op"])
	}

	d := frame["d"].(map[string]interface{})

	if d["token"] != "T" {
		t.Errorf("Expected token T, but got %v", d["token"])
	}

	if d["compress"] != false {
		t.Errorf("Expected compress false, but got %v", d["compress"])
	}

	if d["large_threshold"].(float64) != 100 {
		t.Errorf("Expected large_threshold 100, but got %v", d["large_threshold"])
	}

	shard := d["shard"].([]interface{})
	if shard[0].(float64) != 0 || shard[1].(float64) != 1 {
		t.Errorf("Expected shard [0 1], but got %v", shard)
	}

	properties := d["properties"].(map[string]interface{})

	for _, key := range []string{"$os", "$browser", "$device", "$referrer", "$referring_domain"} {
		if _, ok := properties[key]; !ok {
			t.Errorf("Expected properties to contain %s", key)
		}
	}
}

func TestResumePayload(t *testing.T) {
	s := newTestSession(t)
	s.SessionID.Store("S")
	s.Sequence.Store(42)

	err := s.Resume(s.ctx)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	frame := readSentFrame(t, s)

	if frame["op"].(float64) != float64(discord.GatewayOpResume) {
		t.Errorf("Expected op %d, but got %v", discord.GatewayOpResume, frame["op"])
	}

	d := frame["d"].(map[string]interface{})

	if d["token"] != "T" || d["session_id"] != "S" || d["seq"].(float64) != 42 {
		t.Errorf("Expected resume data T/S/42, but got %v", d)
	}
}

func TestGatewayHeartbeatRequestSendsLastSequence(t *testing.T) {
	s := newTestSession(t)
	s.Sequence.Store(7)

	err := gatewayOpHeartbeat(s.ctx, s, discord.GatewayPayload{Op: discord.GatewayOpHeartbeat})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	frame := readSentFrame(t, s)

	if frame["op"].(float64) != float64(discord.GatewayOpHeartbeat) {
		t.Errorf("Expected op %d, but got %v", discord.GatewayOpHeartbeat, frame["op"])
	}

	if frame["d"].(float64) != 7 {
		t.Errorf("Expected sequence 7, but got %v", frame["d"])
	}
}

func TestHeartbeatNullSequenceBeforeFirstDispatch(t *testing.T) {
	s := newTestSession(t)

	if s.heartbeatSequence() != nil {
		t.Error("Expected nil heartbeat sequence before first dispatch")
	}

	s.Sequence.Store(3)

	seq := s.heartbeatSequence()
	if seq == nil || *seq != 3 {
		t.Errorf("Expected heartbeat sequence 3, but got %v", seq)
	}
}

func TestHeartbeatAckClearsPending(t *testing.T) {
	s := newTestSession(t)
	s.AckPending.Store(true)

	err := gatewayOpHeartbeatACK(s.ctx, s, discord.GatewayPayload{Op: discord.GatewayOpHeartbeatACK})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	if s.AckPending.Load() {
		t.Error("Expected ack_pending cleared after heartbeat ack")
	}
}

func TestHeartbeatLossForcesReconnectPreservingResume(t *testing.T) {
	s := newTestSession(t)
	s.SessionID.Store("S")
	s.Sequence.Store(42)

	// The previous heartbeat was never acknowledged.
	s.AckPending.Store(true)
	s.Heartbeater = time.NewTicker(5 * time.Millisecond)

	go s.Heartbeat(s.connCtx)

	select {
	case err := <-s.ErrorCh:
		if !xerrors.Is(err, ErrMissingHeartbeatAck) {
			t.Errorf("Expected ErrMissingHeartbeatAck, but got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected connection failure after missed ack, but got none")
	}

	if s.SessionID.Load() != "S" || s.Sequence.Load() != 42 {
		t.Error("Expected resume data to be preserved after heartbeat loss")
	}
}

func TestHeartbeatSendsWhenAcked(t *testing.T) {
	s := newTestSession(t)
	s.Sequence.Store(9)
	s.Heartbeater = time.NewTicker(5 * time.Millisecond)

	go s.Heartbeat(s.connCtx)

	frame := readSentFrame(t, s)

	if frame["op"].(float64) != float64(discord.GatewayOpHeartbeat) {
		t.Errorf("Expected heartbeat frame, but got %v", frame)
	}

	if !s.AckPending.Load() {
		t.Error("Expected ack_pending set after sending heartbeat")
	}

	close(s.heartbeatDeadSignal)
}

func TestInvalidSessionClearsResume(t *testing.T) {
	s := newTestSession(t)
	s.SessionID.Store("S")
	s.Sequence.Store(42)

	err := gatewayOpInvalidSession(s.ctx, s, discord.GatewayPayload{
		Op:   discord.GatewayOpInvalidSession,
		Data: []byte(`null`),
	})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	if s.SessionID.Load() != "" || s.Sequence.Load() != 0 {
		t.Error("Expected resume data cleared after invalid session")
	}

	select {
	case err := <-s.ErrorCh:
		if !xerrors.Is(err, ErrReconnect) {
			t.Errorf("Expected ErrReconnect, but got %v", err)
		}
	default:
		t.Error("Expected reconnect to be requested")
	}
}

func TestReconnectPreservesResume(t *testing.T) {
	s := newTestSession(t)
	s.SessionID.Store("S")
	s.Sequence.Store(42)

	err := gatewayOpReconnect(s.ctx, s, discord.GatewayPayload{Op: discord.GatewayOpReconnect})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	if s.SessionID.Load() != "S" || s.Sequence.Load() != 42 {
		t.Error("Expected resume data preserved after gateway reconnect")
	}

	select {
	case err := <-s.ErrorCh:
		if !xerrors.Is(err, ErrReconnect) {
			t.Errorf("Expected ErrReconnect, but got %v", err)
		}
	default:
		t.Error("Expected reconnect to be requested")
	}
}

func TestSendBufferOverflowIsFatal(t *testing.T) {
	s := newTestSession(t)

	for i := 0; i < SendChannelBuffer; i++ {
		s.SendCh <- []byte(`{}`)
	}

	err := s.SendEvent(s.ctx, discord.GatewayOpHeartbeat, nil)
	if !xerrors.Is(err, ErrSendBufferFull) {
		t.Errorf("Expected ErrSendBufferFull, but got %v", err)
	}

	select {
	case err := <-s.ErrorCh:
		if !xerrors.Is(err, ErrSendBufferFull) {
			t.Errorf("Expected ErrSendBufferFull on error channel, but got %v", err)
		}
	default:
		t.Error("Expected fatal error reported to listen loop")
	}
}

func TestDispatchAdvancesSequence(t *testing.T) {
	s := newTestSession(t)

	dispatch(t, s, "MESSAGE_CREATE", 7, `{"id":"300","channel_id":"400","author":{"id":"500","username":"u"},"content":"hi"}`)

	if s.Sequence.Load() != 7 {
		t.Errorf("Expected sequence 7, but got %d", s.Sequence.Load())
	}

	snapshot := s.State.Snapshot()

	message, ok := snapshot.GetMessage(discord.Snowflake(400), discord.Snowflake(300))
	if !ok {
		t.Fatal("Expected message cached after MESSAGE_CREATE")
	}

	if message.Content != "hi" {
		t.Errorf("Expected content hi, but got %q", message.Content)
	}

	messages := drainMessages(s)
	if len(messages) != 1 {
		t.Fatalf("Expected one API message, but got %d", len(messages))
	}

	if messages[0].Type != "MESSAGE_CREATE" || messages[0].Sequence != 7 {
		t.Errorf("Expected MESSAGE_CREATE seq 7, but got %s seq %d", messages[0].Type, messages[0].Sequence)
	}
}

func TestNonMonotoneSequenceStillApplied(t *testing.T) {
	s := newTestSession(t)
	s.Sequence.Store(10)

	dispatch(t, s, "MESSAGE_CREATE", 4, `{"id":"300","channel_id":"400","content":"late"}`)

	if s.Sequence.Load() != 4 {
		t.Errorf("Expected sequence 4, but got %d", s.Sequence.Load())
	}

	if _, ok := s.State.Snapshot().GetMessage(discord.Snowflake(400), discord.Snowflake(300)); !ok {
		t.Error("Expected non-monotone dispatch to still be applied")
	}
}

func TestRequestGuildMembersRequiresActive(t *testing.T) {
	s := newTestSession(t)

	err := s.RequestGuildMembers(s.ctx, discord.Snowflake(1), "", 0)
	if !xerrors.Is(err, ErrSessionClosed) {
		t.Errorf("Expected ErrSessionClosed whilst idle, but got %v", err)
	}

	s.SetStatus(SessionStatusActive)

	err = s.RequestGuildMembers(s.ctx, discord.Snowflake(1), "name", 50)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}

	frame := readSentFrame(t, s)

	if frame["op"].(float64) != float64(discord.GatewayOpRequestGuildMembers) {
		t.Errorf("Expected op %d, but got %v", discord.GatewayOpRequestGuildMembers, frame["op"])
	}

	d := frame["d"].(map[string]interface{})
	if d["guild_id"] != "1" || d["query"] != "name" || d["limit"].(float64) != 50 {
		t.Errorf("Expected request guild members payload, but got %v", d)
	}
}
