package discord

// events.go contains the structures of all received dispatch events.

// Hello represents a hello event received when connecting.
type Hello struct {
	HeartbeatInterval int32    `json:"heartbeat_interval"`
	Trace             []string `json:"_trace,omitempty"`
}

// Ready represents when the client has completed the initial handshake.
type Ready struct {
	Version         int32              `json:"v"`
	User            User               `json:"user"`
	PrivateChannels []Channel          `json:"private_channels"`
	Guilds          []UnavailableGuild `json:"guilds"`
	SessionID       string             `json:"session_id"`
	Trace           []string           `json:"_trace,omitempty"`
}

// Resumed represents the response to a resume.
type Resumed struct {
	Trace []string `json:"_trace,omitempty"`
}

// InvalidSession represents the invalid session event. The data field
// indicates whether the session may still be resumed.
type InvalidSession struct {
	Resumable bool `json:"d"`
}

// ChannelCreate represents a channel create event.
type ChannelCreate Channel

// ChannelUpdate represents a channel update event.
type ChannelUpdate Channel

// ChannelDelete represents a channel delete event.
type ChannelDelete Channel

// GuildCreate represents a guild create event.
type GuildCreate Guild

// GuildUpdate represents a guild update event.
type GuildUpdate Guild

// GuildDelete represents a guild delete event.
type GuildDelete UnavailableGuild

// GuildBanAdd represents a guild ban add event.
type GuildBanAdd struct {
	GuildID Snowflake `json:"guild_id"`
	User    User      `json:"user"`
}

// GuildBanRemove represents a guild ban remove event.
type GuildBanRemove struct {
	GuildID Snowflake `json:"guild_id"`
	User    User      `json:"user"`
}

// GuildEmojisUpdate represents a guild emojis update event.
type GuildEmojisUpdate struct {
	GuildID Snowflake `json:"guild_id"`
	Emojis  []Emoji   `json:"emojis"`
}

// GuildIntegrationsUpdate represents a guild integrations update event.
type GuildIntegrationsUpdate struct {
	GuildID Snowflake `json:"guild_id"`
}

// GuildMemberAdd represents a guild member add event. The gateway attaches
// the owning guild id alongside the plain member object.
type GuildMemberAdd struct {
	GuildMember
	GuildID Snowflake `json:"guild_id"`
}

// GuildMemberRemove represents a guild member remove event.
type GuildMemberRemove struct {
	GuildID Snowflake `json:"guild_id"`
	User    User      `json:"user"`
}

// GuildMemberUpdate represents a guild member update event.
type GuildMemberUpdate struct {
	GuildID Snowflake   `json:"guild_id"`
	Roles   []Snowflake `json:"roles"`
	User    User        `json:"user"`
	Nick    string      `json:"nick"`
}

// GuildMemberChunk represents a chunked response to request guild members.
type GuildMemberChunk struct {
	GuildID Snowflake     `json:"guild_id"`
	Members []GuildMember `json:"members"`
}

// GuildRoleCreate represents a guild role create event.
type GuildRoleCreate struct {
	GuildID Snowflake `json:"guild_id"`
	Role    Role      `json:"role"`
}

// GuildRoleUpdate represents a guild role update event.
type GuildRoleUpdate struct {
	GuildID Snowflake `json:"guild_id"`
	Role    Role      `json:"role"`
}

// GuildRoleDelete represents a guild role delete event.
type GuildRoleDelete struct {
	GuildID Snowflake `json:"guild_id"`
	RoleID  Snowflake `json:"role_id"`
}

// MessageCreate represents a message create event.
type MessageCreate Message

// MessageUpdate represents a message update event. Only fields present in
// the payload are replaced on the cached message, so every mergeable field
// is optional here.
type MessageUpdate struct {
	ID              Snowflake    `json:"id"`
	ChannelID       Snowflake    `json:"channel_id"`
	GuildID         *Snowflake   `json:"guild_id,omitempty"`
	Author          *User        `json:"author,omitempty"`
	Content         *string      `json:"content,omitempty"`
	EditedTimestamp *string      `json:"edited_timestamp,omitempty"`
	Mentions        []User       `json:"mentions,omitempty"`
	MentionRoles    []Snowflake  `json:"mention_roles,omitempty"`
	MentionEveryone *bool        `json:"mention_everyone,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	Embeds          []Embed      `json:"embeds,omitempty"`
	Pinned          *bool        `json:"pinned,omitempty"`
	TTS             *bool        `json:"tts,omitempty"`
}

// MessageDelete represents a message delete event.
type MessageDelete struct {
	ID        Snowflake `json:"id"`
	ChannelID Snowflake `json:"channel_id"`
	GuildID   Snowflake `json:"guild_id,omitempty"`
}

// MessageDeleteBulk represents a message delete bulk event.
type MessageDeleteBulk struct {
	IDs       []Snowflake `json:"ids"`
	ChannelID Snowflake   `json:"channel_id"`
	GuildID   Snowflake   `json:"guild_id,omitempty"`
}

// PresenceUpdate represents a presence update event.
type PresenceUpdate struct {
	User    User        `json:"user"`
	GuildID Snowflake   `json:"guild_id"`
	Roles   []Snowflake `json:"roles,omitempty"`
	Game    *Activity   `json:"game,omitempty"`
	Status  string      `json:"status"`
}

// TypingStart represents a typing start event.
type TypingStart struct {
	ChannelID Snowflake `json:"channel_id"`
	GuildID   Snowflake `json:"guild_id,omitempty"`
	UserID    Snowflake `json:"user_id"`
	Timestamp int64     `json:"timestamp"`
}

// UserUpdate represents a user update event.
type UserUpdate User

// VoiceStateUpdate represents a voice state update event.
type VoiceStateUpdate VoiceState

// VoiceServerUpdate represents a voice server update event.
type VoiceServerUpdate struct {
	Token    string    `json:"token"`
	GuildID  Snowflake `json:"guild_id"`
	Endpoint string    `json:"endpoint"`
}
