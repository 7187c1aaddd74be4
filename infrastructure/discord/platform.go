package discord

import (
	"context"
	"fmt"
	"log/slog"
	"meetup-bot/contract"
	"meetup-bot/domain"
	"slices"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"
)

const reactionsPageSize = 100

type subscription struct {
	events chan contract.ReactionEvent
}

var _ contract.Platform = (*Platform)(nil)

// Platform implements contract.Platform over a Discord session. The session must
// run with SyncEvents so reaction events reach subscribers in gateway order.
type Platform struct {
	session     *discordgo.Session
	log         *slog.Logger
	buffer      int
	sendTimeout time.Duration

	selfID        string
	mu            sync.RWMutex
	subscriptions map[contract.MessageRef][]*subscription
}

func NewPlatform(log *slog.Logger, session *discordgo.Session, buffer int, sendTimeout time.Duration) *Platform {
	p := &Platform{
		session:       session,
		log:           log,
		buffer:        buffer,
		sendTimeout:   sendTimeout,
		subscriptions: make(map[contract.MessageRef][]*subscription),
	}
	session.SyncEvents = true
	session.AddHandler(p.onReactionAdd)
	session.AddHandler(p.onReactionRemove)
	return p
}

// Identify resolves the bot's own user id, which is known before the gateway is ready.
func (p *Platform) Identify(ctx context.Context) error {
	user, err := p.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("identify bot user: %w", err)
	}
	p.selfID = user.ID
	return nil
}

func (p *Platform) SelfID() string {
	if p.selfID != "" {
		return p.selfID
	}
	if p.session.State == nil || p.session.State.User == nil {
		return ""
	}
	return p.session.State.User.ID
}

func (p *Platform) Send(ctx context.Context, channelID string, view domain.View) (contract.MessageRef, error) {
	message, err := p.session.ChannelMessageSendEmbed(channelID, Embed(view), discordgo.WithContext(ctx))
	if err != nil {
		return contract.MessageRef{}, err
	}
	return contract.MessageRef{ChannelID: message.ChannelID, MessageID: message.ID}, nil
}

func (p *Platform) Edit(ctx context.Context, ref contract.MessageRef, view domain.View) error {
	_, err := p.session.ChannelMessageEditEmbed(ref.ChannelID, ref.MessageID, Embed(view), discordgo.WithContext(ctx))
	return err
}

func (p *Platform) Delete(ctx context.Context, ref contract.MessageRef) error {
	return p.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx))
}

func (p *Platform) Fetch(ctx context.Context, ref contract.MessageRef) (contract.Message, error) {
	message, err := p.session.ChannelMessage(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx))
	if err != nil {
		return contract.Message{}, err
	}
	emojis := lo.FilterMap(message.Reactions, func(r *discordgo.MessageReactions, _ int) (string, bool) {
		if r.Emoji == nil || r.Count == 0 {
			return "", false
		}
		return r.Emoji.Name, true
	})
	return contract.Message{Ref: ref, Emojis: emojis}, nil
}

func (p *Platform) React(ctx context.Context, ref contract.MessageRef, emoji string) error {
	return p.session.MessageReactionAdd(ref.ChannelID, ref.MessageID, emoji, discordgo.WithContext(ctx))
}

func (p *Platform) Unreact(ctx context.Context, ref contract.MessageRef, emoji, userID string) error {
	return p.session.MessageReactionRemove(ref.ChannelID, ref.MessageID, emoji, userID, discordgo.WithContext(ctx))
}

// Reactions pages through every user who reacted with emoji.
func (p *Platform) Reactions(ctx context.Context, ref contract.MessageRef, emoji string) ([]contract.User, error) {
	var result []contract.User
	after := ""
	for {
		page, err := p.session.MessageReactions(ref.ChannelID, ref.MessageID, emoji, reactionsPageSize, "", after, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("list %s reactions: %w", emoji, err)
		}
		for _, user := range page {
			result = append(result, contract.User{ID: user.ID, Bot: user.Bot})
		}
		if len(page) < reactionsPageSize {
			return result, nil
		}
		after = page[len(page)-1].ID
	}
}

func (p *Platform) Subscribe(ref contract.MessageRef) (<-chan contract.ReactionEvent, func()) {
	sub := &subscription{events: make(chan contract.ReactionEvent, p.buffer)}
	p.mu.Lock()
	p.subscriptions[ref] = append(p.subscriptions[ref], sub)
	p.mu.Unlock()

	var once sync.Once
	return sub.events, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.subscriptions[ref] = lo.Without(p.subscriptions[ref], sub)
			if len(p.subscriptions[ref]) == 0 {
				delete(p.subscriptions, ref)
			}
		})
	}
}

func (p *Platform) onReactionAdd(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
	p.dispatch(contract.ReactionAdded, r.MessageReaction)
}

func (p *Platform) onReactionRemove(_ *discordgo.Session, r *discordgo.MessageReactionRemove) {
	p.dispatch(contract.ReactionRemoved, r.MessageReaction)
}

// dispatch hands the event to every subscriber of the message. A subscriber that
// stays full for sendTimeout loses the event.
func (p *Platform) dispatch(kind contract.ReactionKind, r *discordgo.MessageReaction) {
	if r == nil {
		return
	}
	event := contract.ReactionEvent{
		Kind:   kind,
		Ref:    contract.MessageRef{ChannelID: r.ChannelID, MessageID: r.MessageID},
		Emoji:  r.Emoji.Name,
		UserID: r.UserID,
	}
	// unsubscribing must not wait behind a full subscriber
	p.mu.RLock()
	subscribers := slices.Clone(p.subscriptions[event.Ref])
	p.mu.RUnlock()
	for _, sub := range subscribers {
		select {
		case sub.events <- event:
		case <-time.After(p.sendTimeout):
			p.log.Warn("Dropping reaction event, announcement is not keeping up",
				"message_id", event.Ref.MessageID, "user_id", event.UserID)
		}
	}
}
