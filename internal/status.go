package internal

import (
	"time"

	"github.com/BeaconTeam/Beacon-Gateway/beaconjson"
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
)

// StatusResponse is returned by the status API.
type StatusResponse struct {
	Success  bool        `json:"success"`
	Response interface{} `json:"response,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// SessionStatusResponse describes the live session.
type SessionStatusResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	SessionID string `json:"session_id,omitempty"`
	Sequence  int64  `json:"sequence"`

	Guilds            int `json:"guilds"`
	UnavailableGuilds int `json:"unavailable_guilds"`
	Users             int `json:"users"`

	LatencyMilliseconds int64 `json:"latency_ms"`
}

func (status SessionStatus) String() string {
	switch status {
	case SessionStatusIdle:
		return "idle"
	case SessionStatusConnecting:
		return "connecting"
	case SessionStatusUpgraded:
		return "upgraded"
	case SessionStatusActive:
		return "active"
	case SessionStatusShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ServeStatus exposes the status API.
func (b *Beacon) ServeStatus(host string) error {
	r := router.New()
	r.GET("/api/status", b.StatusHandler)

	b.Logger.Info().Str("host", host).Msg("Serving status API")

	server := &fasthttp.Server{
		Handler: r.Handler,
		Name:    "Beacon " + VERSION,
	}

	return server.ListenAndServe(host)
}

// StatusHandler returns the live session status as JSON.
func (b *Beacon) StatusHandler(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.Set("content-type", "application/json;charset=UTF-8")

	session := b.Session
	if session == nil {
		writeJSONResponse(ctx, fasthttp.StatusServiceUnavailable, StatusResponse{
			Success: false,
			Error:   "session has not been started",
		})

		return
	}

	snapshot := session.State.Snapshot()

	latency := session.LastHeartbeatAck.Load().Sub(session.LastHeartbeatSent.Load()).Milliseconds()
	if latency < 0 {
		latency = 0
	}

	writeJSONResponse(ctx, fasthttp.StatusOK, StatusResponse{
		Success: true,
		Response: SessionStatusResponse{
			Status:    session.GetStatus().String(),
			Uptime:    time.Now().UTC().Sub(session.Start.Load()).Round(time.Second).String(),
			SessionID: session.SessionID.Load(),
			Sequence:  session.Sequence.Load(),

			Guilds:            len(snapshot.Guilds),
			UnavailableGuilds: len(snapshot.UnavailableGuilds),
			Users:             len(snapshot.Users),

			LatencyMilliseconds: latency,
		},
	})
}

func writeJSONResponse(ctx *fasthttp.RequestCtx, statusCode int, response interface{}) {
	body, err := beaconjson.Marshal(response)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)

		return
	}

	ctx.SetStatusCode(statusCode)
	_, _ = ctx.Write(body)
}
