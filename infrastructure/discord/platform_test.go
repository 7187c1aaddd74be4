package discord

import (
	"log/slog"
	"meetup-bot/contract"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newOfflinePlatform(t *testing.T) *Platform {
	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	return NewPlatform(logs.GetLoggerFromLevel(slog.LevelDebug), session, 4, 10*time.Millisecond)
}

func reaction(messageID, emoji, userID string) *discordgo.MessageReaction {
	return &discordgo.MessageReaction{
		UserID:    userID,
		MessageID: messageID,
		ChannelID: "channel-1",
		Emoji:     discordgo.Emoji{Name: emoji},
	}
}

func TestPlatform_Dispatches_To_Subscribers_In_Order(t *testing.T) {
	req := require.New(t)
	platform := newOfflinePlatform(t)
	ref := contract.MessageRef{ChannelID: "channel-1", MessageID: "message-1"}
	events, cancel := platform.Subscribe(ref)
	defer cancel()

	platform.onReactionAdd(nil, &discordgo.MessageReactionAdd{MessageReaction: reaction("message-1", "✅", "ann")})
	platform.onReactionAdd(nil, &discordgo.MessageReactionAdd{MessageReaction: reaction("other", "✅", "ben")})
	platform.onReactionRemove(nil, &discordgo.MessageReactionRemove{MessageReaction: reaction("message-1", "✅", "ann")})

	req.Equal(contract.ReactionEvent{Kind: contract.ReactionAdded, Ref: ref, Emoji: "✅", UserID: "ann"}, <-events)
	req.Equal(contract.ReactionEvent{Kind: contract.ReactionRemoved, Ref: ref, Emoji: "✅", UserID: "ann"}, <-events)
	req.Empty(events)
}

func TestPlatform_Drops_Events_For_A_Full_Subscriber(t *testing.T) {
	req := require.New(t)
	platform := newOfflinePlatform(t)
	ref := contract.MessageRef{ChannelID: "channel-1", MessageID: "message-1"}
	events, cancel := platform.Subscribe(ref)

	for i := 0; i < 6; i++ {
		platform.onReactionAdd(nil, &discordgo.MessageReactionAdd{MessageReaction: reaction("message-1", "🤔", "ann")})
	}
	req.Len(events, 4)

	// After cancelling, nothing is delivered any more
	cancel()
	platform.onReactionAdd(nil, &discordgo.MessageReactionAdd{MessageReaction: reaction("message-1", "🤔", "ben")})
	req.Len(events, 4)
}

func TestPlatform_Unsubscribe_Does_Not_Wait_For_A_Blocked_Dispatch(t *testing.T) {
	req := require.New(t)
	session, err := discordgo.New("Bot test-token")
	req.NoError(err)
	platform := NewPlatform(logs.GetLoggerFromLevel(slog.LevelDebug), session, 1, time.Second)
	ref := contract.MessageRef{ChannelID: "channel-1", MessageID: "message-1"}
	_, cancel := platform.Subscribe(ref)

	// Given a dispatch blocked on a full subscriber
	platform.onReactionAdd(nil, &discordgo.MessageReactionAdd{MessageReaction: reaction("message-1", "✅", "ann")})
	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		platform.onReactionAdd(nil, &discordgo.MessageReactionAdd{MessageReaction: reaction("message-1", "✅", "ben")})
	}()
	time.Sleep(20 * time.Millisecond)

	// When the subscriber goes away
	cancelled := make(chan struct{})
	go func() {
		defer close(cancelled)
		cancel()
	}()

	// Then unsubscribing returns well before the send timeout
	select {
	case <-cancelled:
	case <-time.After(500 * time.Millisecond):
		req.Fail("unsubscribe waited for the blocked dispatch")
	}
	<-dispatched
}
