package internal

import (
	"testing"

	"github.com/BeaconTeam/Beacon-Gateway/discord"
)

func TestBuilderIsolation(t *testing.T) {
	source := NewSnapshot()
	source.Users[discord.Snowflake(1)] = discord.User{ID: 1, Username: "before"}

	builder := NewBuilder(source, 10)
	builder.PutUser(discord.User{ID: 1, Username: "after"})
	builder.PutUser(discord.User{ID: 2, Username: "new"})

	next := builder.Finalize()

	if source.Users[discord.Snowflake(1)].Username != "before" {
		t.Error("Expected source snapshot untouched by builder mutation")
	}

	if len(source.Users) != 1 {
		t.Errorf("Expected source to keep 1 user, but got %d", len(source.Users))
	}

	if next.Users[discord.Snowflake(1)].Username != "after" || len(next.Users) != 2 {
		t.Error("Expected builder mutations visible in finalized snapshot")
	}
}

func TestBuilderIsolatesMessages(t *testing.T) {
	source := NewSnapshot()

	builder := NewBuilder(source, 10)
	builder.PutMessage(discord.Message{ID: 1, ChannelID: 5, Content: "a"})
	first := builder.Finalize()

	builder = NewBuilder(first, 10)
	builder.PutMessage(discord.Message{ID: 2, ChannelID: 5, Content: "b"})
	second := builder.Finalize()

	if first.Messages[discord.Snowflake(5)].len() != 1 {
		t.Error("Expected prior snapshot message cache unaffected")
	}

	if second.Messages[discord.Snowflake(5)].len() != 2 {
		t.Error("Expected new snapshot to hold both messages")
	}
}

func TestBuilderFinalizeTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on second finalize")
		}
	}()

	builder := NewBuilder(NewSnapshot(), 10)
	builder.Finalize()
	builder.Finalize()
}

func TestMessageCacheFIFOEviction(t *testing.T) {
	cache := newMessageCache(3)

	for i := 1; i <= 4; i++ {
		cache.put(discord.Message{ID: discord.Snowflake(i), ChannelID: 5})
	}

	if cache.len() != 3 {
		t.Errorf("Expected 3 messages after eviction, but got %d", cache.len())
	}

	if _, ok := cache.get(discord.Snowflake(1)); ok {
		t.Error("Expected oldest message evicted")
	}

	if _, ok := cache.get(discord.Snowflake(4)); !ok {
		t.Error("Expected newest message retained")
	}
}

func TestMessageCacheReplaceKeepsPosition(t *testing.T) {
	cache := newMessageCache(3)

	cache.put(discord.Message{ID: 1, Content: "a"})
	cache.put(discord.Message{ID: 2, Content: "b"})
	cache.put(discord.Message{ID: 1, Content: "a2"})

	if cache.len() != 2 {
		t.Errorf("Expected replace not to grow cache, but got %d", cache.len())
	}

	message, _ := cache.get(discord.Snowflake(1))
	if message.Content != "a2" {
		t.Errorf("Expected replaced content, but got %q", message.Content)
	}

	// Message 1 kept its original slot, so it is still the oldest and is the
	// first to be evicted once the cache overflows.
	cache.put(discord.Message{ID: 3, Content: "c"})
	cache.put(discord.Message{ID: 4, Content: "d"})

	if _, ok := cache.get(discord.Snowflake(1)); ok {
		t.Error("Expected replaced message evicted first from its original position")
	}

	if _, ok := cache.get(discord.Snowflake(2)); !ok {
		t.Error("Expected message 2 retained")
	}
}

func TestPutGuildDisplacesUnavailable(t *testing.T) {
	builder := NewBuilder(NewSnapshot(), 10)
	builder.PutUnavailableGuild(discord.UnavailableGuild{ID: 100, Unavailable: true})
	builder.PutGuild(discord.Guild{ID: 100, Name: "guild"})

	next := builder.Finalize()

	if _, ok := next.UnavailableGuilds[discord.Snowflake(100)]; ok {
		t.Error("Expected unavailable entry displaced by full guild")
	}

	if _, ok := next.Guilds[discord.Snowflake(100)]; !ok {
		t.Error("Expected full guild present")
	}
}

func TestPutUnavailableGuildDisplacesGuild(t *testing.T) {
	builder := NewBuilder(NewSnapshot(), 10)
	builder.PutGuild(discord.Guild{ID: 100, Name: "guild"})
	builder.PutUnavailableGuild(discord.UnavailableGuild{ID: 100, Unavailable: true})

	next := builder.Finalize()

	if _, ok := next.Guilds[discord.Snowflake(100)]; ok {
		t.Error("Expected guild displaced by unavailable entry")
	}

	if _, ok := next.UnavailableGuilds[discord.Snowflake(100)]; !ok {
		t.Error("Expected unavailable entry present")
	}
}

func TestPutGuildIndexesMembersByUserID(t *testing.T) {
	user := discord.User{ID: 30, Username: "pal"}

	builder := NewBuilder(NewSnapshot(), 10)
	builder.PutGuild(discord.Guild{
		ID:      100,
		Members: []discord.GuildMember{{User: &user, Nick: "nick"}},
	})

	next := builder.Finalize()

	guild := next.Guilds[discord.Snowflake(100)]

	member, ok := guild.Members[discord.Snowflake(30)]
	if !ok {
		t.Fatal("Expected member indexed by user id")
	}

	if member.UserID != discord.Snowflake(30) {
		t.Error("Expected member to hold the user id only")
	}

	if _, ok := next.Users[discord.Snowflake(30)]; !ok {
		t.Error("Expected member user merged into top level users")
	}
}

func TestStateHolderPublish(t *testing.T) {
	holder := NewStateHolder()

	first := holder.Snapshot()
	if first == nil {
		t.Fatal("Expected holder seeded with empty snapshot")
	}

	builder := NewBuilder(first, 10)
	builder.PutUser(discord.User{ID: 1})
	next := builder.Finalize()

	holder.publish(next)

	if holder.Snapshot() != next {
		t.Error("Expected latest snapshot returned after publish")
	}

	if len(first.Users) != 0 {
		t.Error("Expected prior snapshot to stay immutable")
	}
}

func TestFindChannelSearchesEverywhere(t *testing.T) {
	builder := NewBuilder(NewSnapshot(), 10)
	builder.PutDMChannel(discord.Channel{ID: 20, Type: discord.ChannelTypeDM})
	builder.PutGuild(discord.Guild{ID: 100, Channels: []discord.Channel{{ID: 200, Type: discord.ChannelTypeGuildText}}})

	next := builder.Finalize()

	if _, ok := next.FindChannel(discord.Snowflake(20)); !ok {
		t.Error("Expected dm channel found")
	}

	if _, ok := next.FindChannel(discord.Snowflake(200)); !ok {
		t.Error("Expected guild channel found")
	}

	if _, ok := next.FindChannel(discord.Snowflake(999)); ok {
		t.Error("Expected unknown channel not found")
	}
}
