package discord

import "encoding/json"

// GatewayVersion is the gateway protocol version spoken by this client.
const GatewayVersion = "5"

// Gateway represents a GET /gateway response.
type Gateway struct {
	URL string `json:"url"`
}

// GatewayOp represents a packets operation.
type GatewayOp uint8

// Operation codes for gateway messages.
const (
	GatewayOpDispatch GatewayOp = iota
	GatewayOpHeartbeat
	GatewayOpIdentify
	GatewayOpStatusUpdate
	GatewayOpVoiceStateUpdate
	GatewayOpVoiceServerPing
	GatewayOpResume
	GatewayOpReconnect
	GatewayOpRequestGuildMembers
	GatewayOpInvalidSession
	GatewayOpHello
	GatewayOpHeartbeatACK
)

// The gateway's close codes.
const (
	CloseUnknownError = 4000 + iota
	CloseUnknownOpCode
	CloseDecodeError
	CloseNotAuthenticated
	CloseAuthenticationFailed
	CloseAlreadyAuthenticated
	_
	CloseInvalidSeq
	CloseRateLimited
	CloseSessionTimeout
	CloseInvalidShard
	CloseShardingRequired
)

// GatewayPayload is the base of a JSON packet received from discord.
// Sequence and Type are only present on dispatch packets.
type GatewayPayload struct {
	Op       GatewayOp       `json:"op"`
	Data     json.RawMessage `json:"d,omitempty"`
	Sequence int64           `json:"s,omitempty"`
	Type     string          `json:"t,omitempty"`
}

// SentPayload is the base of a JSON packet sent to discord.
type SentPayload struct {
	Op   GatewayOp   `json:"op"`
	Data interface{} `json:"d"`
}

// Identify represents an identify packet.
type Identify struct {
	Token          string              `json:"token"`
	Properties     *IdentifyProperties `json:"properties"`
	Compress       bool                `json:"compress"`
	LargeThreshold int32               `json:"large_threshold"`
	Shard          [2]int32            `json:"shard"`
}

// IdentifyProperties is the properties sent in the identify packet.
type IdentifyProperties struct {
	OS              string `json:"$os"`
	Browser         string `json:"$browser"`
	Device          string `json:"$device"`
	Referrer        string `json:"$referrer"`
	ReferringDomain string `json:"$referring_domain"`
}

// Resume represents a resume packet.
type Resume struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Sequence  int64  `json:"seq"`
}

// RequestGuildMembers represents a request guild members packet.
type RequestGuildMembers struct {
	GuildID Snowflake `json:"guild_id"`
	Query   string    `json:"query"`
	Limit   int32     `json:"limit"`
}
