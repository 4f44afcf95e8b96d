package internal

import (
	"sync/atomic"
	"time"

	"github.com/BeaconTeam/Beacon-Gateway/discord"
)

const DefaultMessagesPerChannel = 100

// StateGuild is the cached representation of a guild. Scalar fields live on
// the embedded guild whilst members, channels, roles and emojis are indexed
// by id. Members hold user ids only; users are stored once at the top level
// of the snapshot and resolved on read.
type StateGuild struct {
	Guild    discord.Guild
	Channels map[discord.Snowflake]discord.Channel
	Roles    map[discord.Snowflake]discord.Role
	Emojis   map[discord.Snowflake]discord.Emoji
	Members  map[discord.Snowflake]StateMember
}

// StateMember is the cached representation of a guild member.
type StateMember struct {
	UserID   discord.Snowflake
	Nick     string
	Roles    []discord.Snowflake
	JoinedAt string
	Deaf     bool
	Mute     bool
}

// messageCache is a bounded per-channel message store. Eviction is FIFO by
// insertion order; replacing an existing message keeps its position.
type messageCache struct {
	limit int
	order []discord.Snowflake
	items map[discord.Snowflake]discord.Message
}

func newMessageCache(limit int) *messageCache {
	if limit <= 0 {
		limit = DefaultMessagesPerChannel
	}

	return &messageCache{
		limit: limit,
		order: make([]discord.Snowflake, 0, limit),
		items: make(map[discord.Snowflake]discord.Message),
	}
}

func (mc *messageCache) clone() *messageCache {
	out := &messageCache{
		limit: mc.limit,
		order: make([]discord.Snowflake, len(mc.order)),
		items: make(map[discord.Snowflake]discord.Message, len(mc.items)),
	}

	copy(out.order, mc.order)

	for id, message := range mc.items {
		out.items[id] = message
	}

	return out
}

func (mc *messageCache) put(message discord.Message) {
	if _, ok := mc.items[message.ID]; !ok {
		if len(mc.order) >= mc.limit {
			oldest := mc.order[0]
			mc.order = mc.order[1:]
			delete(mc.items, oldest)
		}

		mc.order = append(mc.order, message.ID)
	}

	mc.items[message.ID] = message
}

func (mc *messageCache) remove(messageID discord.Snowflake) {
	if _, ok := mc.items[messageID]; !ok {
		return
	}

	delete(mc.items, messageID)

	for i, id := range mc.order {
		if id == messageID {
			mc.order = append(mc.order[:i], mc.order[i+1:]...)

			break
		}
	}
}

func (mc *messageCache) get(messageID discord.Snowflake) (discord.Message, bool) {
	message, ok := mc.items[messageID]

	return message, ok
}

func (mc *messageCache) len() int {
	return len(mc.items)
}

// Snapshot is an immutable point-in-time view of all cached gateway state.
// Snapshots are produced atomically by a Builder; readers never observe a
// partially applied event.
type Snapshot struct {
	BotUser *discord.User

	DMChannels      map[discord.Snowflake]discord.Channel
	GroupDMChannels map[discord.Snowflake]discord.Channel

	Guilds            map[discord.Snowflake]StateGuild
	UnavailableGuilds map[discord.Snowflake]discord.UnavailableGuild

	Users map[discord.Snowflake]discord.User

	Messages map[discord.Snowflake]*messageCache

	LastTyped map[discord.Snowflake]map[discord.Snowflake]time.Time
	Presences map[discord.Snowflake]map[discord.Snowflake]discord.Presence
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		DMChannels:      make(map[discord.Snowflake]discord.Channel),
		GroupDMChannels: make(map[discord.Snowflake]discord.Channel),

		Guilds:            make(map[discord.Snowflake]StateGuild),
		UnavailableGuilds: make(map[discord.Snowflake]discord.UnavailableGuild),

		Users: make(map[discord.Snowflake]discord.User),

		Messages: make(map[discord.Snowflake]*messageCache),

		LastTyped: make(map[discord.Snowflake]map[discord.Snowflake]time.Time),
		Presences: make(map[discord.Snowflake]map[discord.Snowflake]discord.Presence),
	}
}

// GetGuild returns a guild from the snapshot.
func (ss *Snapshot) GetGuild(guildID discord.Snowflake) (StateGuild, bool) {
	guild, ok := ss.Guilds[guildID]

	return guild, ok
}

// GetGuildChannel returns a channel belonging to a guild.
func (ss *Snapshot) GetGuildChannel(guildID, channelID discord.Snowflake) (discord.Channel, bool) {
	guild, ok := ss.Guilds[guildID]
	if !ok {
		return discord.Channel{}, false
	}

	channel, ok := guild.Channels[channelID]

	return channel, ok
}

// FindChannel locates a channel by id across guilds, DMs and group DMs.
func (ss *Snapshot) FindChannel(channelID discord.Snowflake) (discord.Channel, bool) {
	if channel, ok := ss.DMChannels[channelID]; ok {
		return channel, true
	}

	if channel, ok := ss.GroupDMChannels[channelID]; ok {
		return channel, true
	}

	for _, guild := range ss.Guilds {
		if channel, ok := guild.Channels[channelID]; ok {
			return channel, true
		}
	}

	return discord.Channel{}, false
}

// GetUser returns a user from the top level user store.
func (ss *Snapshot) GetUser(userID discord.Snowflake) (discord.User, bool) {
	user, ok := ss.Users[userID]

	return user, ok
}

// GetGuildMember resolves a guild member, filling in its user from the top
// level user store.
func (ss *Snapshot) GetGuildMember(guildID, userID discord.Snowflake) (discord.GuildMember, bool) {
	guild, ok := ss.Guilds[guildID]
	if !ok {
		return discord.GuildMember{}, false
	}

	member, ok := guild.Members[userID]
	if !ok {
		return discord.GuildMember{}, false
	}

	resolved := discord.GuildMember{
		Nick:     member.Nick,
		Roles:    member.Roles,
		JoinedAt: member.JoinedAt,
		Deaf:     member.Deaf,
		Mute:     member.Mute,
	}

	if user, ok := ss.Users[member.UserID]; ok {
		resolved.User = &user
	}

	return resolved, true
}

// GetMessage returns a cached message for a channel.
func (ss *Snapshot) GetMessage(channelID, messageID discord.Snowflake) (discord.Message, bool) {
	cache, ok := ss.Messages[channelID]
	if !ok {
		return discord.Message{}, false
	}

	return cache.get(messageID)
}

// GetPresence returns the cached presence of a user within a guild.
func (ss *Snapshot) GetPresence(guildID, userID discord.Snowflake) (discord.Presence, bool) {
	presences, ok := ss.Presences[guildID]
	if !ok {
		return discord.Presence{}, false
	}

	presence, ok := presences[userID]

	return presence, ok
}

// GetLastTyped returns when a user last started typing in a channel.
func (ss *Snapshot) GetLastTyped(channelID, userID discord.Snowflake) (time.Time, bool) {
	users, ok := ss.LastTyped[channelID]
	if !ok {
		return time.Time{}, false
	}

	at, ok := users[userID]

	return at, ok
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}

// Builder is a mutable working copy of a snapshot used whilst applying a
// single event. Construction isolates the builder from the source snapshot;
// Finalize produces the next immutable snapshot.
type Builder struct {
	next         *Snapshot
	messageLimit int
	finalized    bool
}

// NewBuilder creates a builder from a snapshot. No interior container is
// shared with the source.
func NewBuilder(from *Snapshot, messageLimit int) *Builder {
	if messageLimit <= 0 {
		messageLimit = DefaultMessagesPerChannel
	}

	next := &Snapshot{
		BotUser: from.BotUser,

		DMChannels:      copyMap(from.DMChannels),
		GroupDMChannels: copyMap(from.GroupDMChannels),

		Guilds:            make(map[discord.Snowflake]StateGuild, len(from.Guilds)),
		UnavailableGuilds: copyMap(from.UnavailableGuilds),

		Users: copyMap(from.Users),

		Messages: make(map[discord.Snowflake]*messageCache, len(from.Messages)),

		LastTyped: make(map[discord.Snowflake]map[discord.Snowflake]time.Time, len(from.LastTyped)),
		Presences: make(map[discord.Snowflake]map[discord.Snowflake]discord.Presence, len(from.Presences)),
	}

	for guildID, guild := range from.Guilds {
		next.Guilds[guildID] = StateGuild{
			Guild:    guild.Guild,
			Channels: copyMap(guild.Channels),
			Roles:    copyMap(guild.Roles),
			Emojis:   copyMap(guild.Emojis),
			Members:  copyMap(guild.Members),
		}
	}

	for channelID, cache := range from.Messages {
		next.Messages[channelID] = cache.clone()
	}

	for channelID, users := range from.LastTyped {
		next.LastTyped[channelID] = copyMap(users)
	}

	for guildID, presences := range from.Presences {
		next.Presences[guildID] = copyMap(presences)
	}

	return &Builder{next: next, messageLimit: messageLimit}
}

// Finalize seals the builder and returns the next snapshot. Reusing a
// finalized builder is a programming error.
func (b *Builder) Finalize() *Snapshot {
	if b.finalized {
		panic("state: builder finalized twice")
	}

	for guildID := range b.next.Guilds {
		if _, ok := b.next.UnavailableGuilds[guildID]; ok {
			panic("state: guild present in both guilds and unavailable_guilds")
		}
	}

	b.finalized = true

	return b.next
}

func (b *Builder) SetBotUser(user discord.User) {
	b.next.BotUser = &user
	b.next.Users[user.ID] = user
}

func (b *Builder) PutUser(user discord.User) {
	b.next.Users[user.ID] = user
}

func (b *Builder) PutDMChannel(channel discord.Channel) {
	b.next.DMChannels[channel.ID] = channel
}

func (b *Builder) PutGroupDMChannel(channel discord.Channel) {
	b.next.GroupDMChannels[channel.ID] = channel
}

func (b *Builder) RemoveDMChannel(channelID discord.Snowflake) {
	delete(b.next.DMChannels, channelID)
}

func (b *Builder) RemoveGroupDMChannel(channelID discord.Snowflake) {
	delete(b.next.GroupDMChannels, channelID)
}

// PutGuild inserts the full contents of a guild, indexing its channels,
// roles, emojis and members and merging member users into the top level
// user store. Any matching unavailable guild entry is removed.
func (b *Builder) PutGuild(guild discord.Guild) {
	state := StateGuild{
		Channels: make(map[discord.Snowflake]discord.Channel, len(guild.Channels)),
		Roles:    make(map[discord.Snowflake]discord.Role, len(guild.Roles)),
		Emojis:   make(map[discord.Snowflake]discord.Emoji, len(guild.Emojis)),
		Members:  make(map[discord.Snowflake]StateMember, len(guild.Members)),
	}

	for _, channel := range guild.Channels {
		if channel.GuildID == 0 {
			channel.GuildID = guild.ID
		}

		state.Channels[channel.ID] = channel
	}

	for _, role := range guild.Roles {
		state.Roles[role.ID] = role
	}

	for _, emoji := range guild.Emojis {
		state.Emojis[emoji.ID] = emoji
	}

	for _, member := range guild.Members {
		if member.User == nil {
			continue
		}

		b.next.Users[member.User.ID] = *member.User
		state.Members[member.User.ID] = memberState(member)
	}

	for _, presence := range guild.Presences {
		b.setPresenceLocked(guild.ID, discord.Presence{
			User:   presence.User,
			Roles:  presence.Roles,
			Game:   presence.Game,
			Status: presence.Status,
		})
	}

	// Containers are indexed separately, the embedded guild keeps scalars only.
	guild.Channels = nil
	guild.Roles = nil
	guild.Emojis = nil
	guild.Members = nil
	guild.Presences = nil
	guild.Unavailable = false

	state.Guild = guild

	b.next.Guilds[guild.ID] = state
	delete(b.next.UnavailableGuilds, guild.ID)
}

// UpdateGuild replaces the scalar fields of a cached guild. Its cached
// members, channels, roles, emojis and presences are kept as they are; any
// containers carried by the payload are not applied. An uncached guild is
// inserted in full as by PutGuild.
func (b *Builder) UpdateGuild(guild discord.Guild) {
	state, ok := b.next.Guilds[guild.ID]
	if !ok {
		b.PutGuild(guild)

		return
	}

	guild.Channels = nil
	guild.Roles = nil
	guild.Emojis = nil
	guild.Members = nil
	guild.Presences = nil
	guild.Unavailable = false

	if guild.JoinedAt == "" {
		guild.JoinedAt = state.Guild.JoinedAt
	}

	if guild.MemberCount == 0 {
		guild.MemberCount = state.Guild.MemberCount
	}

	state.Guild = guild
	b.next.Guilds[guild.ID] = state
}

// RemoveGuild removes a guild entirely.
func (b *Builder) RemoveGuild(guildID discord.Snowflake) {
	delete(b.next.Guilds, guildID)
	delete(b.next.UnavailableGuilds, guildID)
}

// PutUnavailableGuild marks a guild as unavailable, displacing any full
// guild entry with the same id.
func (b *Builder) PutUnavailableGuild(guild discord.UnavailableGuild) {
	delete(b.next.Guilds, guild.ID)
	b.next.UnavailableGuilds[guild.ID] = guild
}

// PutGuildChannel inserts or replaces a channel within its guild.
func (b *Builder) PutGuildChannel(channel discord.Channel) {
	state, ok := b.next.Guilds[channel.GuildID]
	if !ok {
		return
	}

	state.Channels[channel.ID] = channel
}

// RemoveGuildChannel removes a channel from its guild. Messages indexed by
// the channel id are retained; they remain observable via prior snapshots.
func (b *Builder) RemoveGuildChannel(guildID, channelID discord.Snowflake) {
	state, ok := b.next.Guilds[guildID]
	if !ok {
		return
	}

	delete(state.Channels, channelID)
}

// SetGuildEmojis replaces the emoji set of a guild.
func (b *Builder) SetGuildEmojis(guildID discord.Snowflake, emojis []discord.Emoji) {
	state, ok := b.next.Guilds[guildID]
	if !ok {
		return
	}

	state.Emojis = make(map[discord.Snowflake]discord.Emoji, len(emojis))
	for _, emoji := range emojis {
		state.Emojis[emoji.ID] = emoji
	}

	b.next.Guilds[guildID] = state
}

func memberState(member discord.GuildMember) StateMember {
	return StateMember{
		UserID:   member.User.ID,
		Nick:     member.Nick,
		Roles:    member.Roles,
		JoinedAt: member.JoinedAt,
		Deaf:     member.Deaf,
		Mute:     member.Mute,
	}
}

// PutGuildMember inserts a member into a guild and merges its user into the
// top level user store.
func (b *Builder) PutGuildMember(guildID discord.Snowflake, member discord.GuildMember) {
	state, ok := b.next.Guilds[guildID]
	if !ok || member.User == nil {
		return
	}

	b.next.Users[member.User.ID] = *member.User
	state.Members[member.User.ID] = memberState(member)
}

// RemoveGuildMember removes a member from a guild. The user stays in the top
// level user store as it may be referenced elsewhere.
func (b *Builder) RemoveGuildMember(guildID, userID discord.Snowflake) {
	state, ok := b.next.Guilds[guildID]
	if !ok {
		return
	}

	delete(state.Members, userID)
}

// UpdateGuildMember replaces a member's roles and nickname and updates the
// embedded user.
func (b *Builder) UpdateGuildMember(guildID discord.Snowflake, user discord.User, roles []discord.Snowflake, nick string) {
	b.next.Users[user.ID] = user

	state, ok := b.next.Guilds[guildID]
	if !ok {
		return
	}

	member, ok := state.Members[user.ID]
	if !ok {
		member = StateMember{UserID: user.ID}
	}

	member.Roles = roles
	member.Nick = nick
	state.Members[user.ID] = member
}

// PutGuildRole inserts or replaces a role in a guild.
func (b *Builder) PutGuildRole(guildID discord.Snowflake, role discord.Role) {
	state, ok := b.next.Guilds[guildID]
	if !ok {
		return
	}

	state.Roles[role.ID] = role
}

// RemoveGuildRole removes a role from a guild. Role ids still referenced by
// members are left dangling for the consumer to resolve.
func (b *Builder) RemoveGuildRole(guildID, roleID discord.Snowflake) {
	state, ok := b.next.Guilds[guildID]
	if !ok {
		return
	}

	delete(state.Roles, roleID)
}

// PutMessage inserts a message into its channel's bounded cache.
func (b *Builder) PutMessage(message discord.Message) {
	cache, ok := b.next.Messages[message.ChannelID]
	if !ok {
		cache = newMessageCache(b.messageLimit)
		b.next.Messages[message.ChannelID] = cache
	}

	if message.Author != nil {
		b.next.Users[message.Author.ID] = *message.Author
	}

	cache.put(message)
}

// UpdateMessage merges the fields present in a message update payload over
// the cached message. Returns false when the message was never cached.
func (b *Builder) UpdateMessage(update discord.MessageUpdate) bool {
	cache, ok := b.next.Messages[update.ChannelID]
	if !ok {
		return false
	}

	message, ok := cache.get(update.ID)
	if !ok {
		return false
	}

	if update.GuildID != nil {
		message.GuildID = *update.GuildID
	}

	if update.Author != nil {
		message.Author = update.Author
	}

	if update.Content != nil {
		message.Content = *update.Content
	}

	if update.EditedTimestamp != nil {
		message.EditedTimestamp = *update.EditedTimestamp
	}

	if update.Mentions != nil {
		message.Mentions = update.Mentions
	}

	if update.MentionRoles != nil {
		message.MentionRoles = update.MentionRoles
	}

	if update.MentionEveryone != nil {
		message.MentionEveryone = *update.MentionEveryone
	}

	if update.Attachments != nil {
		message.Attachments = update.Attachments
	}

	if update.Embeds != nil {
		message.Embeds = update.Embeds
	}

	if update.Pinned != nil {
		message.Pinned = *update.Pinned
	}

	if update.TTS != nil {
		message.TTS = *update.TTS
	}

	cache.put(message)

	return true
}

// RemoveMessage removes a message from its channel's cache.
func (b *Builder) RemoveMessage(channelID, messageID discord.Snowflake) {
	cache, ok := b.next.Messages[channelID]
	if !ok {
		return
	}

	cache.remove(messageID)
}

func (b *Builder) setPresenceLocked(guildID discord.Snowflake, presence discord.Presence) {
	presences, ok := b.next.Presences[guildID]
	if !ok {
		presences = make(map[discord.Snowflake]discord.Presence)
		b.next.Presences[guildID] = presences
	}

	presences[presence.User.ID] = presence
}

// SetPresence replaces the presence keyed by (guild, user). When the user is
// already in the top level user store, its username, discriminator and avatar
// are refreshed from the non-empty embedded user fields.
func (b *Builder) SetPresence(guildID discord.Snowflake, presence discord.Presence) {
	b.setPresenceLocked(guildID, presence)

	if existing, ok := b.next.Users[presence.User.ID]; ok {
		if presence.User.Username != "" {
			existing.Username = presence.User.Username
		}

		if presence.User.Discriminator != "" {
			existing.Discriminator = presence.User.Discriminator
		}

		if presence.User.Avatar != "" {
			existing.Avatar = presence.User.Avatar
		}

		b.next.Users[presence.User.ID] = existing
	}
}

// SetLastTyped records when a user started typing in a channel.
func (b *Builder) SetLastTyped(channelID, userID discord.Snowflake, at time.Time) {
	users, ok := b.next.LastTyped[channelID]
	if !ok {
		users = make(map[discord.Snowflake]time.Time)
		b.next.LastTyped[channelID] = users
	}

	users[userID] = at
}

// StateHolder publishes the latest immutable snapshot through an atomically
// swappable handle. The session is the only writer.
type StateHolder struct {
	current atomic.Pointer[Snapshot]
}

// NewStateHolder returns a holder seeded with an empty snapshot.
func NewStateHolder() *StateHolder {
	holder := &StateHolder{}
	holder.current.Store(NewSnapshot())

	return holder
}

// Snapshot returns the latest published snapshot.
func (sh *StateHolder) Snapshot() *Snapshot {
	return sh.current.Load()
}

func (sh *StateHolder) publish(next *Snapshot) {
	sh.current.Store(next)
}
