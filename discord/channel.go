package discord

// ChannelType represents a channel's type.
type ChannelType int32

// Channel types.
const (
	ChannelTypeGuildText ChannelType = iota
	ChannelTypeDM
	ChannelTypeGuildVoice
	ChannelTypeGroupDM
	ChannelTypeGuildCategory
)

// Channel represents a channel on discord.
type Channel struct {
	ID                   Snowflake   `json:"id"`
	Type                 ChannelType `json:"type"`
	GuildID              Snowflake   `json:"guild_id,omitempty"`
	Position             int32       `json:"position,omitempty"`
	PermissionOverwrites []Overwrite `json:"permission_overwrites,omitempty"`
	Name                 string      `json:"name,omitempty"`
	Topic                string      `json:"topic,omitempty"`
	NSFW                 bool        `json:"nsfw,omitempty"`
	LastMessageID        Snowflake   `json:"last_message_id,omitempty"`
	Bitrate              int32       `json:"bitrate,omitempty"`
	UserLimit            int32       `json:"user_limit,omitempty"`
	Recipients           []User      `json:"recipients,omitempty"`
	Icon                 string      `json:"icon,omitempty"`
	OwnerID              Snowflake   `json:"owner_id,omitempty"`
	ParentID             Snowflake   `json:"parent_id,omitempty"`
}

// IsGuildChannel returns true if the channel belongs to a guild.
func (c Channel) IsGuildChannel() bool {
	return c.Type != ChannelTypeDM && c.Type != ChannelTypeGroupDM
}

// Overwrite represents a permission overwrite on a channel.
type Overwrite struct {
	ID    Snowflake `json:"id"`
	Type  string    `json:"type"`
	Allow int64     `json:"allow"`
	Deny  int64     `json:"deny"`
}
