package internal

import (
	"golang.org/x/xerrors"
)

// ErrSessionClosed is returned when an operation is attempted on a closed session.
var ErrSessionClosed = xerrors.New("Session is closed")

// ErrInvalidToken is returned when an invalid token is used.
var ErrInvalidToken = xerrors.New("Token passed is not valid")

// ErrReconnectsExhausted is returned when the session has used all of its
// allowed connection attempts.
var ErrReconnectsExhausted = xerrors.New("Ran out of reconnect attempts")

// ErrReconnect is used to distinguish if the session simply wants to reconnect.
var ErrReconnect = xerrors.New("Reconnect is required")

// ErrMissingHeartbeatAck is raised when a heartbeat interval elapses without
// the previous heartbeat being acknowledged.
var ErrMissingHeartbeatAck = xerrors.New("Heartbeat was not acknowledged in time")

// ErrSendBufferFull is raised when the outbound frame buffer overflows. This
// is treated as a fatal connection error.
var ErrSendBufferFull = xerrors.New("Outbound send buffer overflowed")

var (
	ErrReadConfigurationFailure            = xerrors.New("Failed to read configuration")
	ErrLoadConfigurationFailure            = xerrors.New("Failed to load configuration")
	ErrConfigurationValidateToken          = xerrors.New("Configuration missing bot token")
	ErrConfigurationValidateLargeThreshold = xerrors.New("Configuration large_threshold outside 50-250")
	ErrConfigurationValidateShard          = xerrors.New("Configuration shard_num outside shard_total")
)

var (
	ErrNoGatewayHandler  = xerrors.New("No registered handler for gateway event")
	ErrNoDispatchHandler = xerrors.New("No registered handler for dispatch event")
	ErrGatewayDiscovery  = xerrors.New("Failed to discover gateway URL")
)
