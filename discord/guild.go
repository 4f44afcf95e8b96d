package discord

// Guild represents a guild on discord.
type Guild struct {
	ID                Snowflake `json:"id"`
	Name              string    `json:"name"`
	Icon              string    `json:"icon"`
	Splash            string    `json:"splash"`
	OwnerID           Snowflake `json:"owner_id"`
	Region            string    `json:"region"`
	AFKChannelID      Snowflake `json:"afk_channel_id,omitempty"`
	AFKTimeout        int32     `json:"afk_timeout,omitempty"`
	VerificationLevel int32     `json:"verification_level"`
	MFALevel          int32     `json:"mfa_level"`
	Features          []string  `json:"features,omitempty"`
	Large             bool      `json:"large,omitempty"`
	Unavailable       bool      `json:"unavailable,omitempty"`
	MemberCount       int32     `json:"member_count,omitempty"`
	JoinedAt          string    `json:"joined_at,omitempty"`

	Roles     []Role        `json:"roles,omitempty"`
	Emojis    []Emoji       `json:"emojis,omitempty"`
	Members   []GuildMember `json:"members,omitempty"`
	Channels  []Channel     `json:"channels,omitempty"`
	Presences []Presence    `json:"presences,omitempty"`
}

// UnavailableGuild represents a guild which is known to exist but whose
// contents have not been received.
type UnavailableGuild struct {
	ID          Snowflake `json:"id"`
	Unavailable bool      `json:"unavailable"`
}

// GuildMember represents a member of a guild.
type GuildMember struct {
	User     *User       `json:"user,omitempty"`
	Nick     string      `json:"nick,omitempty"`
	Roles    []Snowflake `json:"roles,omitempty"`
	JoinedAt string      `json:"joined_at,omitempty"`
	Deaf     bool        `json:"deaf,omitempty"`
	Mute     bool        `json:"mute,omitempty"`
}
