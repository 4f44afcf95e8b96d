package discord

// Presence represents a user's presence within a guild.
type Presence struct {
	User    User        `json:"user"`
	GuildID Snowflake   `json:"guild_id,omitempty"`
	Roles   []Snowflake `json:"roles,omitempty"`
	Game    *Activity   `json:"game,omitempty"`
	Status  string      `json:"status"`
}

// Activity represents an activity attached to a presence.
type Activity struct {
	Name string `json:"name"`
	Type int32  `json:"type"`
	URL  string `json:"url,omitempty"`
}

// VoiceState represents the voice state of a user.
type VoiceState struct {
	GuildID   Snowflake `json:"guild_id,omitempty"`
	ChannelID Snowflake `json:"channel_id"`
	UserID    Snowflake `json:"user_id"`
	SessionID string    `json:"session_id"`
	Deaf      bool      `json:"deaf"`
	Mute      bool      `json:"mute"`
	SelfDeaf  bool      `json:"self_deaf"`
	SelfMute  bool      `json:"self_mute"`
	Suppress  bool      `json:"suppress"`
}
