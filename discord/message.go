package discord

// MessageType represents the type of message.
type MessageType int32

// Message represents a message on discord.
type Message struct {
	ID              Snowflake    `json:"id"`
	ChannelID       Snowflake    `json:"channel_id"`
	GuildID         Snowflake    `json:"guild_id,omitempty"`
	Author          *User        `json:"author,omitempty"`
	Member          *GuildMember `json:"member,omitempty"`
	Content         string       `json:"content"`
	Timestamp       string       `json:"timestamp"`
	EditedTimestamp string       `json:"edited_timestamp,omitempty"`
	TTS             bool         `json:"tts,omitempty"`
	MentionEveryone bool         `json:"mention_everyone,omitempty"`
	Mentions        []User       `json:"mentions,omitempty"`
	MentionRoles    []Snowflake  `json:"mention_roles,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	Embeds          []Embed      `json:"embeds,omitempty"`
	Pinned          bool         `json:"pinned,omitempty"`
	WebhookID       Snowflake    `json:"webhook_id,omitempty"`
	Type            MessageType  `json:"type"`
}

// Attachment represents a message attachment.
type Attachment struct {
	ID       Snowflake `json:"id"`
	Filename string    `json:"filename"`
	Size     int32     `json:"size"`
	URL      string    `json:"url"`
	ProxyURL string    `json:"proxy_url"`
	Height   int32     `json:"height,omitempty"`
	Width    int32     `json:"width,omitempty"`
}

// Embed represents a message embed.
type Embed struct {
	Title       string `json:"title,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	Color       int32  `json:"color,omitempty"`
}
