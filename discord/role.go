package discord

// Role represents a role on discord.
type Role struct {
	ID          Snowflake `json:"id"`
	Name        string    `json:"name"`
	Color       int32     `json:"color"`
	Hoist       bool      `json:"hoist"`
	Position    int32     `json:"position"`
	Permissions int64     `json:"permissions"`
	Managed     bool      `json:"managed"`
	Mentionable bool      `json:"mentionable"`
}
