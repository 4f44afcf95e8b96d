package internal

import (
	"time"

	"github.com/BeaconTeam/Beacon-Gateway/discord"
)

// OnReady handles the READY event. The bot user and private channels are
// cached, every guild in the payload is marked unavailable until its
// GUILD_CREATE arrives, and the session id is stored for resuming.
func OnReady(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var readyPayload discord.Ready

	err := ctx.decodeContent(msg, &readyPayload)
	if err != nil {
		return nil, err
	}

	ctx.Logger.Info().Msg("Received READY payload")

	ctx.SessionID.Store(readyPayload.SessionID)

	ctx.Builder.SetBotUser(readyPayload.User)

	for _, channel := range readyPayload.PrivateChannels {
		if channel.Type == discord.ChannelTypeGroupDM {
			ctx.Builder.PutGroupDMChannel(channel)
		} else {
			ctx.Builder.PutDMChannel(channel)
		}
	}

	for _, guild := range readyPayload.Guilds {
		ctx.Builder.PutUnavailableGuild(guild)
	}

	ctx.IsReady.Store(true)

	select {
	case ctx.ready <- void{}:
	default:
	}

	return readyPayload, nil
}

func readyMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	readyPayload, _ := payload.(discord.Ready)

	return APIMessage{Data: readyPayload.User, Prev: prev, Curr: curr}, true
}

// OnResumed handles the RESUMED event. No cache change.
func OnResumed(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var resumedPayload discord.Resumed

	err := ctx.decodeContent(msg, &resumedPayload)
	if err != nil {
		return nil, err
	}

	ctx.Logger.Info().Msg("Session resumed")

	ctx.IsReady.Store(true)

	select {
	case ctx.ready <- void{}:
	default:
	}

	return resumedPayload, nil
}

func resumedMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	return APIMessage{Data: payload, Prev: prev, Curr: curr}, true
}

func OnChannelCreate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var channelCreatePayload discord.ChannelCreate

	err := ctx.decodeContent(msg, &channelCreatePayload)
	if err != nil {
		return nil, err
	}

	channel := discord.Channel(channelCreatePayload)

	switch channel.Type {
	case discord.ChannelTypeDM:
		ctx.Builder.PutDMChannel(channel)
	case discord.ChannelTypeGroupDM:
		ctx.Builder.PutGroupDMChannel(channel)
	default:
		ctx.Builder.PutGuildChannel(channel)
	}

	return channel, nil
}

func channelCreateMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	channel, _ := payload.(discord.Channel)

	return APIMessage{Data: channel, Prev: prev, Curr: curr}, true
}

func OnChannelUpdate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var channelUpdatePayload discord.ChannelUpdate

	err := ctx.decodeContent(msg, &channelUpdatePayload)
	if err != nil {
		return nil, err
	}

	channel := discord.Channel(channelUpdatePayload)

	switch channel.Type {
	case discord.ChannelTypeDM:
		ctx.Builder.PutDMChannel(channel)
	case discord.ChannelTypeGroupDM:
		ctx.Builder.PutGroupDMChannel(channel)
	default:
		ctx.Builder.PutGuildChannel(channel)
	}

	return channel, nil
}

func channelUpdateMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	channel, _ := payload.(discord.Channel)

	message := APIMessage{Data: channel, Prev: prev, Curr: curr}

	if before, ok := prev.GetGuildChannel(channel.GuildID, channel.ID); ok {
		message.Extra = map[string]interface{}{"before": before}
	}

	return message, true
}

func OnChannelDelete(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var channelDeletePayload discord.ChannelDelete

	err := ctx.decodeContent(msg, &channelDeletePayload)
	if err != nil {
		return nil, err
	}

	channel := discord.Channel(channelDeletePayload)

	switch channel.Type {
	case discord.ChannelTypeDM:
		ctx.Builder.RemoveDMChannel(channel.ID)
	case discord.ChannelTypeGroupDM:
		ctx.Builder.RemoveGroupDMChannel(channel.ID)
	default:
		// Messages indexed by this channel stay cached; they remain
		// observable through prior snapshots.
		ctx.Builder.RemoveGuildChannel(channel.GuildID, channel.ID)
	}

	return channel, nil
}

func channelDeleteMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	channel, _ := payload.(discord.Channel)

	message := APIMessage{Data: channel, Prev: prev, Curr: curr}

	if before, ok := prev.GetGuildChannel(channel.GuildID, channel.ID); ok {
		message.Extra = map[string]interface{}{"before": before}
	}

	return message, true
}

func OnGuildCreate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildCreatePayload discord.GuildCreate

	err := ctx.decodeContent(msg, &guildCreatePayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.PutGuild(discord.Guild(guildCreatePayload))

	return guildCreatePayload, nil
}

func guildCreateMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	guildCreatePayload, _ := payload.(discord.GuildCreate)

	guild, ok := curr.GetGuild(guildCreatePayload.ID)
	if !ok {
		return APIMessage{}, false
	}

	message := APIMessage{Data: guild.Guild, Prev: prev, Curr: curr}

	// Lazy guild creates follow READY rather than an actual join.
	if _, wasUnavailable := prev.UnavailableGuilds[guildCreatePayload.ID]; wasUnavailable {
		message.Extra = map[string]interface{}{"lazy": true}
	}

	return message, true
}

func OnGuildUpdate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildUpdatePayload discord.GuildUpdate

	err := ctx.decodeContent(msg, &guildUpdatePayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.UpdateGuild(discord.Guild(guildUpdatePayload))

	return guildUpdatePayload, nil
}

func guildUpdateMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	guildUpdatePayload, _ := payload.(discord.GuildUpdate)

	guild, ok := curr.GetGuild(guildUpdatePayload.ID)
	if !ok {
		return APIMessage{}, false
	}

	message := APIMessage{Data: guild.Guild, Prev: prev, Curr: curr}

	if before, ok := prev.GetGuild(guildUpdatePayload.ID); ok {
		message.Extra = map[string]interface{}{"before": before.Guild}
	}

	return message, true
}

func OnGuildDelete(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildDeletePayload discord.GuildDelete

	err := ctx.decodeContent(msg, &guildDeletePayload)
	if err != nil {
		return nil, err
	}

	if guildDeletePayload.Unavailable {
		// A server outage, not a removal.
		ctx.Builder.PutUnavailableGuild(discord.UnavailableGuild(guildDeletePayload))
	} else {
		ctx.Builder.RemoveGuild(guildDeletePayload.ID)
	}

	return guildDeletePayload, nil
}

func guildDeleteMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	guildDeletePayload, _ := payload.(discord.GuildDelete)

	message := APIMessage{Data: guildDeletePayload, Prev: prev, Curr: curr}

	if before, ok := prev.GetGuild(guildDeletePayload.ID); ok {
		message.Extra = map[string]interface{}{"before": before.Guild}
	}

	return message, true
}

func OnGuildBanAdd(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildBanAddPayload discord.GuildBanAdd

	err := ctx.decodeContent(msg, &guildBanAddPayload)
	if err != nil {
		return nil, err
	}

	return guildBanAddPayload, nil
}

func guildBanAddMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	return APIMessage{Data: payload, Prev: prev, Curr: curr}, true
}

func OnGuildBanRemove(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildBanRemovePayload discord.GuildBanRemove

	err := ctx.decodeContent(msg, &guildBanRemovePayload)
	if err != nil {
		return nil, err
	}

	return guildBanRemovePayload, nil
}

func guildBanRemoveMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	return APIMessage{Data: payload, Prev: prev, Curr: curr}, true
}

func OnGuildEmojisUpdate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildEmojisUpdatePayload discord.GuildEmojisUpdate

	err := ctx.decodeContent(msg, &guildEmojisUpdatePayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.SetGuildEmojis(guildEmojisUpdatePayload.GuildID, guildEmojisUpdatePayload.Emojis)

	return guildEmojisUpdatePayload, nil
}

func guildEmojisUpdateMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	guildEmojisUpdatePayload, _ := payload.(discord.GuildEmojisUpdate)

	if _, ok := curr.GetGuild(guildEmojisUpdatePayload.GuildID); !ok {
		return APIMessage{}, false
	}

	return APIMessage{Data: guildEmojisUpdatePayload, Prev: prev, Curr: curr}, true
}

func OnGuildIntegrationsUpdate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildIntegrationsUpdatePayload discord.GuildIntegrationsUpdate

	err := ctx.decodeContent(msg, &guildIntegrationsUpdatePayload)
	if err != nil {
		return nil, err
	}

	return guildIntegrationsUpdatePayload, nil
}

func guildIntegrationsUpdateMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	return APIMessage{Data: payload, Prev: prev, Curr: curr}, true
}

func OnGuildMemberAdd(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildMemberAddPayload discord.GuildMemberAdd

	err := ctx.decodeContent(msg, &guildMemberAddPayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.PutGuildMember(guildMemberAddPayload.GuildID, guildMemberAddPayload.GuildMember)

	return guildMemberAddPayload, nil
}

func guildMemberAddMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	guildMemberAddPayload, _ := payload.(discord.GuildMemberAdd)

	if guildMemberAddPayload.User == nil {
		return APIMessage{}, false
	}

	return APIMessage{Data: guildMemberAddPayload, Prev: prev, Curr: curr}, true
}

func OnGuildMemberRemove(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildMemberRemovePayload discord.GuildMemberRemove

	err := ctx.decodeContent(msg, &guildMemberRemovePayload)
	if err != nil {
		return nil, err
	}

	// The user stays in the top level store, it may be referenced elsewhere.
	ctx.Builder.RemoveGuildMember(guildMemberRemovePayload.GuildID, guildMemberRemovePayload.User.ID)

	return guildMemberRemovePayload, nil
}

func guildMemberRemoveMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	guildMemberRemovePayload, _ := payload.(discord.GuildMemberRemove)

	message := APIMessage{Data: guildMemberRemovePayload, Prev: prev, Curr: curr}

	if before, ok := prev.GetGuildMember(guildMemberRemovePayload.GuildID, guildMemberRemovePayload.User.ID); ok {
		message.Extra = map[string]interface{}{"before": before}
	}

	return message, true
}

func OnGuildMemberUpdate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildMemberUpdatePayload discord.GuildMemberUpdate

	err := ctx.decodeContent(msg, &guildMemberUpdatePayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.UpdateGuildMember(
		guildMemberUpdatePayload.GuildID,
		guildMemberUpdatePayload.User,
		guildMemberUpdatePayload.Roles,
		guildMemberUpdatePayload.Nick,
	)

	return guildMemberUpdatePayload, nil
}

func guildMemberUpdateMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	guildMemberUpdatePayload, _ := payload.(discord.GuildMemberUpdate)

	message := APIMessage{Data: guildMemberUpdatePayload, Prev: prev, Curr: curr}

	if before, ok := prev.GetGuildMember(guildMemberUpdatePayload.GuildID, guildMemberUpdatePayload.User.ID); ok {
		message.Extra = map[string]interface{}{"before": before}
	}

	return message, true
}

// OnGuildMemberChunk bulk merges members, used to populate large guilds
// lazily in response to request guild members.
func OnGuildMemberChunk(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildMemberChunkPayload discord.GuildMemberChunk

	err := ctx.decodeContent(msg, &guildMemberChunkPayload)
	if err != nil {
		return nil, err
	}

	for _, member := range guildMemberChunkPayload.Members {
		ctx.Builder.PutGuildMember(guildMemberChunkPayload.GuildID, member)
	}

	ctx.Logger.Debug().
		Int("memberCount", len(guildMemberChunkPayload.Members)).
		Int64("guildID", int64(guildMemberChunkPayload.GuildID)).
		Msg("Chunked guild members")

	return guildMemberChunkPayload, nil
}

func OnGuildRoleCreate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildRoleCreatePayload discord.GuildRoleCreate

	err := ctx.decodeContent(msg, &guildRoleCreatePayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.PutGuildRole(guildRoleCreatePayload.GuildID, guildRoleCreatePayload.Role)

	return guildRoleCreatePayload, nil
}

func guildRoleCreateMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	return APIMessage{Data: payload, Prev: prev, Curr: curr}, true
}

func OnGuildRoleUpdate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildRoleUpdatePayload discord.GuildRoleUpdate

	err := ctx.decodeContent(msg, &guildRoleUpdatePayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.PutGuildRole(guildRoleUpdatePayload.GuildID, guildRoleUpdatePayload.Role)

	return guildRoleUpdatePayload, nil
}

func guildRoleUpdateMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	guildRoleUpdatePayload, _ := payload.(discord.GuildRoleUpdate)

	message := APIMessage{Data: guildRoleUpdatePayload, Prev: prev, Curr: curr}

	if guild, ok := prev.GetGuild(guildRoleUpdatePayload.GuildID); ok {
		if before, ok := guild.Roles[guildRoleUpdatePayload.Role.ID]; ok {
			message.Extra = map[string]interface{}{"before": before}
		}
	}

	return message, true
}

// OnGuildRoleDelete removes a role. Role ids still referenced by members are
// left dangling for the consumer.
func OnGuildRoleDelete(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var guildRoleDeletePayload discord.GuildRoleDelete

	err := ctx.decodeContent(msg, &guildRoleDeletePayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.RemoveGuildRole(guildRoleDeletePayload.GuildID, guildRoleDeletePayload.RoleID)

	return guildRoleDeletePayload, nil
}

func guildRoleDeleteMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	guildRoleDeletePayload, _ := payload.(discord.GuildRoleDelete)

	message := APIMessage{Data: guildRoleDeletePayload, Prev: prev, Curr: curr}

	if guild, ok := prev.GetGuild(guildRoleDeletePayload.GuildID); ok {
		if before, ok := guild.Roles[guildRoleDeletePayload.RoleID]; ok {
			message.Extra = map[string]interface{}{"before": before}
		}
	}

	return message, true
}

func OnMessageCreate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var messageCreatePayload discord.MessageCreate

	err := ctx.decodeContent(msg, &messageCreatePayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.PutMessage(discord.Message(messageCreatePayload))

	return messageCreatePayload, nil
}

func messageCreateMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	messageCreatePayload, _ := payload.(discord.MessageCreate)

	message, ok := curr.GetMessage(messageCreatePayload.ChannelID, messageCreatePayload.ID)
	if !ok {
		return APIMessage{}, false
	}

	return APIMessage{Data: message, Prev: prev, Curr: curr}, true
}

// OnMessageUpdate merges only the fields present in the payload; absent
// fields on the cached message are preserved.
func OnMessageUpdate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var messageUpdatePayload discord.MessageUpdate

	err := ctx.decodeContent(msg, &messageUpdatePayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.UpdateMessage(messageUpdatePayload)

	return messageUpdatePayload, nil
}

func messageUpdateMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	messageUpdatePayload, _ := payload.(discord.MessageUpdate)

	message := APIMessage{Data: messageUpdatePayload, Prev: prev, Curr: curr}

	if before, ok := prev.GetMessage(messageUpdatePayload.ChannelID, messageUpdatePayload.ID); ok {
		message.Extra = map[string]interface{}{"before": before}
	}

	return message, true
}

func OnMessageDelete(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var messageDeletePayload discord.MessageDelete

	err := ctx.decodeContent(msg, &messageDeletePayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.RemoveMessage(messageDeletePayload.ChannelID, messageDeletePayload.ID)

	return messageDeletePayload, nil
}

func messageDeleteMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	messageDeletePayload, _ := payload.(discord.MessageDelete)

	// The deleted body is only observable through the prior snapshot.
	before, ok := prev.GetMessage(messageDeletePayload.ChannelID, messageDeletePayload.ID)
	if !ok {
		return APIMessage{}, false
	}

	return APIMessage{
		Data:  messageDeletePayload,
		Extra: map[string]interface{}{"before": before},
		Prev:  prev,
		Curr:  curr,
	}, true
}

// OnMessageDeleteBulk removes each listed message. Ids that were never
// cached are ignored.
func OnMessageDeleteBulk(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var messageDeleteBulkPayload discord.MessageDeleteBulk

	err := ctx.decodeContent(msg, &messageDeleteBulkPayload)
	if err != nil {
		return nil, err
	}

	for _, messageID := range messageDeleteBulkPayload.IDs {
		ctx.Builder.RemoveMessage(messageDeleteBulkPayload.ChannelID, messageID)
	}

	return messageDeleteBulkPayload, nil
}

func messageDeleteBulkMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	messageDeleteBulkPayload, _ := payload.(discord.MessageDeleteBulk)

	before := make([]discord.Message, 0, len(messageDeleteBulkPayload.IDs))

	for _, messageID := range messageDeleteBulkPayload.IDs {
		if message, ok := prev.GetMessage(messageDeleteBulkPayload.ChannelID, messageID); ok {
			before = append(before, message)
		}
	}

	return APIMessage{
		Data:  messageDeleteBulkPayload,
		Extra: map[string]interface{}{"before": before},
		Prev:  prev,
		Curr:  curr,
	}, true
}

func OnPresenceUpdate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var presenceUpdatePayload discord.PresenceUpdate

	err := ctx.decodeContent(msg, &presenceUpdatePayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.SetPresence(presenceUpdatePayload.GuildID, discord.Presence{
		User:   presenceUpdatePayload.User,
		Roles:  presenceUpdatePayload.Roles,
		Game:   presenceUpdatePayload.Game,
		Status: presenceUpdatePayload.Status,
	})

	return presenceUpdatePayload, nil
}

func presenceUpdateMessage(payload interface{}, prev, curr *Snapshot) (APIMessage, bool) {
	presenceUpdatePayload, _ := payload.(discord.PresenceUpdate)

	message := APIMessage{Data: presenceUpdatePayload, Prev: prev, Curr: curr}

	if before, ok := prev.GetPresence(presenceUpdatePayload.GuildID, presenceUpdatePayload.User.ID); ok {
		message.Extra = map[string]interface{}{"before": before}
	}

	return message, true
}

// OnTypingStart records the typing timestamp. No API message is published
// for typing notifications.
func OnTypingStart(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var typingStartPayload discord.TypingStart

	err := ctx.decodeContent(msg, &typingStartPayload)
	if err != nil {
		return nil, err
	}

	ctx.Builder.SetLastTyped(
		typingStartPayload.ChannelID,
		typingStartPayload.UserID,
		time.Unix(typingStartPayload.Timestamp, 0).UTC(),
	)

	return typingStartPayload, nil
}

func OnUserUpdate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var userUpdatePayload discord.UserUpdate

	err := ctx.decodeContent(msg, &userUpdatePayload)
	if err != nil {
		return nil, err
	}

	ctx.Logger.Warn().Str("type", msg.Type).Msg("Event handling is not implemented")

	return userUpdatePayload, nil
}

func OnVoiceStateUpdate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var voiceStateUpdatePayload discord.VoiceStateUpdate

	err := ctx.decodeContent(msg, &voiceStateUpdatePayload)
	if err != nil {
		return nil, err
	}

	ctx.Logger.Warn().Str("type", msg.Type).Msg("Event handling is not implemented")

	return voiceStateUpdatePayload, nil
}

func OnVoiceServerUpdate(ctx *StateCtx, msg discord.GatewayPayload) (interface{}, error) {
	var voiceServerUpdatePayload discord.VoiceServerUpdate

	err := ctx.decodeContent(msg, &voiceServerUpdatePayload)
	if err != nil {
		return nil, err
	}

	ctx.Logger.Warn().Str("type", msg.Type).Msg("Event handling is not implemented")

	return voiceServerUpdatePayload, nil
}

func init() {
	registerDispatch("READY", OnReady, readyMessage)
	registerDispatch("RESUMED", OnResumed, resumedMessage)

	registerDispatch("CHANNEL_CREATE", OnChannelCreate, channelCreateMessage)
	registerDispatch("CHANNEL_UPDATE", OnChannelUpdate, channelUpdateMessage)
	registerDispatch("CHANNEL_DELETE", OnChannelDelete, channelDeleteMessage)

	registerDispatch("GUILD_CREATE", OnGuildCreate, guildCreateMessage)
	registerDispatch("GUILD_UPDATE", OnGuildUpdate, guildUpdateMessage)
	registerDispatch("GUILD_DELETE", OnGuildDelete, guildDeleteMessage)

	registerDispatch("GUILD_BAN_ADD", OnGuildBanAdd, guildBanAddMessage)
	registerDispatch("GUILD_BAN_REMOVE", OnGuildBanRemove, guildBanRemoveMessage)

	registerDispatch("GUILD_EMOJIS_UPDATE", OnGuildEmojisUpdate, guildEmojisUpdateMessage)
	registerDispatch("GUILD_INTEGRATIONS_UPDATE", OnGuildIntegrationsUpdate, guildIntegrationsUpdateMessage)

	registerDispatch("GUILD_MEMBER_ADD", OnGuildMemberAdd, guildMemberAddMessage)
	registerDispatch("GUILD_MEMBER_REMOVE", OnGuildMemberRemove, guildMemberRemoveMessage)
	registerDispatch("GUILD_MEMBER_UPDATE", OnGuildMemberUpdate, guildMemberUpdateMessage)
	registerDispatch("GUILD_MEMBER_CHUNK", OnGuildMemberChunk, nil)

	registerDispatch("GUILD_ROLE_CREATE", OnGuildRoleCreate, guildRoleCreateMessage)
	registerDispatch("GUILD_ROLE_UPDATE", OnGuildRoleUpdate, guildRoleUpdateMessage)
	registerDispatch("GUILD_ROLE_DELETE", OnGuildRoleDelete, guildRoleDeleteMessage)

	registerDispatch("MESSAGE_CREATE", OnMessageCreate, messageCreateMessage)
	registerDispatch("MESSAGE_UPDATE", OnMessageUpdate, messageUpdateMessage)
	registerDispatch("MESSAGE_DELETE", OnMessageDelete, messageDeleteMessage)
	registerDispatch("MESSAGE_DELETE_BULK", OnMessageDeleteBulk, messageDeleteBulkMessage)

	registerDispatch("PRESENCE_UPDATE", OnPresenceUpdate, presenceUpdateMessage)
	registerDispatch("TYPING_START", OnTypingStart, nil)

	registerDispatch("USER_UPDATE", OnUserUpdate, nil)
	registerDispatch("VOICE_STATE_UPDATE", OnVoiceStateUpdate, nil)
	registerDispatch("VOICE_SERVER_UPDATE", OnVoiceServerUpdate, nil)
}
