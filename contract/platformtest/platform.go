// Package platformtest provides an in-memory chat platform for tests.
package platformtest

import (
	"context"
	"fmt"
	"meetup-bot/contract"
	"meetup-bot/domain"
	"slices"
	"sync"
)

const (
	SelfID       = "bot"
	streamBuffer = 256
)

type message struct {
	views     []domain.View
	reactions map[string][]contract.User // emoji -> users, in reaction order
}

type subscriber struct {
	ref    contract.MessageRef
	events chan contract.ReactionEvent
}

// Platform keeps messages and reactions in memory and pushes a reaction event to the
// subscribers of a message for every reaction added or removed, including its own.
type Platform struct {
	mu          sync.Mutex
	nextID      int
	messages    map[contract.MessageRef]*message
	subscribers map[int]subscriber
	nextSub     int

	// FailFetch makes Fetch fail for these message ids.
	FailFetch map[string]error
	// FailEdit makes every Edit fail.
	FailEdit error
	// FailSend makes every Send fail.
	FailSend error
	// FailReact makes every React fail.
	FailReact error
	// SendGate, when set, is received from before each Send proceeds.
	SendGate chan struct{}
	// Sending, when set, gets the channel id of each Send before it waits on SendGate.
	Sending chan string
}

var _ contract.Platform = (*Platform)(nil)

func New() *Platform {
	return &Platform{
		messages:    make(map[contract.MessageRef]*message),
		subscribers: make(map[int]subscriber),
		FailFetch:   make(map[string]error),
	}
}

func (p *Platform) SelfID() string {
	return SelfID
}

func (p *Platform) Send(ctx context.Context, channelID string, view domain.View) (contract.MessageRef, error) {
	if p.Sending != nil {
		p.Sending <- channelID
	}
	if p.SendGate != nil {
		select {
		case <-p.SendGate:
		case <-ctx.Done():
			return contract.MessageRef{}, ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailSend != nil {
		return contract.MessageRef{}, p.FailSend
	}
	p.nextID++
	ref := contract.MessageRef{ChannelID: channelID, MessageID: fmt.Sprintf("message-%d", p.nextID)}
	p.messages[ref] = &message{views: []domain.View{view}, reactions: make(map[string][]contract.User)}
	return ref, nil
}

// Seed creates a message that already carries reactions, without emitting events.
func (p *Platform) Seed(ref contract.MessageRef, reactions map[string][]contract.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg := &message{reactions: make(map[string][]contract.User)}
	for emoji, users := range reactions {
		msg.reactions[emoji] = slices.Clone(users)
	}
	p.messages[ref] = msg
}

func (p *Platform) Edit(_ context.Context, ref contract.MessageRef, view domain.View) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailEdit != nil {
		return p.FailEdit
	}
	msg, ok := p.messages[ref]
	if !ok {
		return fmt.Errorf("unknown message %s", ref.MessageID)
	}
	msg.views = append(msg.views, view)
	return nil
}

func (p *Platform) Delete(_ context.Context, ref contract.MessageRef) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.messages[ref]; !ok {
		return fmt.Errorf("unknown message %s", ref.MessageID)
	}
	delete(p.messages, ref)
	return nil
}

func (p *Platform) Fetch(_ context.Context, ref contract.MessageRef) (contract.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.FailFetch[ref.MessageID]; ok {
		return contract.Message{}, err
	}
	msg, ok := p.messages[ref]
	if !ok {
		return contract.Message{}, fmt.Errorf("unknown message %s", ref.MessageID)
	}
	var emojis []string
	for emoji, users := range msg.reactions {
		if len(users) > 0 {
			emojis = append(emojis, emoji)
		}
	}
	slices.Sort(emojis)
	return contract.Message{Ref: ref, Emojis: emojis}, nil
}

func (p *Platform) React(_ context.Context, ref contract.MessageRef, emoji string) error {
	if p.FailReact != nil {
		return p.FailReact
	}
	return p.add(ref, emoji, contract.User{ID: SelfID, Bot: true})
}

func (p *Platform) Unreact(_ context.Context, ref contract.MessageRef, emoji, userID string) error {
	return p.remove(ref, emoji, userID)
}

func (p *Platform) Reactions(_ context.Context, ref contract.MessageRef, emoji string) ([]contract.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg, ok := p.messages[ref]
	if !ok {
		return nil, fmt.Errorf("unknown message %s", ref.MessageID)
	}
	return slices.Clone(msg.reactions[emoji]), nil
}

func (p *Platform) Subscribe(ref contract.MessageRef) (<-chan contract.ReactionEvent, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextSub++
	id := p.nextSub
	events := make(chan contract.ReactionEvent, streamBuffer)
	p.subscribers[id] = subscriber{ref: ref, events: events}
	var once sync.Once
	return events, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			delete(p.subscribers, id)
		})
	}
}

// AddReaction simulates a user reacting to a message.
func (p *Platform) AddReaction(ref contract.MessageRef, emoji, userID string) error {
	return p.add(ref, emoji, contract.User{ID: userID})
}

// RemoveReaction simulates a user withdrawing a reaction.
func (p *Platform) RemoveReaction(ref contract.MessageRef, emoji, userID string) error {
	return p.remove(ref, emoji, userID)
}

func (p *Platform) add(ref contract.MessageRef, emoji string, user contract.User) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg, ok := p.messages[ref]
	if !ok {
		return fmt.Errorf("unknown message %s", ref.MessageID)
	}
	if slices.ContainsFunc(msg.reactions[emoji], func(u contract.User) bool { return u.ID == user.ID }) {
		return nil
	}
	msg.reactions[emoji] = append(msg.reactions[emoji], user)
	p.emit(contract.ReactionEvent{Kind: contract.ReactionAdded, Ref: ref, Emoji: emoji, UserID: user.ID})
	return nil
}

func (p *Platform) remove(ref contract.MessageRef, emoji, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg, ok := p.messages[ref]
	if !ok {
		return fmt.Errorf("unknown message %s", ref.MessageID)
	}
	users := msg.reactions[emoji]
	index := slices.IndexFunc(users, func(u contract.User) bool { return u.ID == userID })
	if index < 0 {
		return nil
	}
	msg.reactions[emoji] = slices.Delete(users, index, index+1)
	p.emit(contract.ReactionEvent{Kind: contract.ReactionRemoved, Ref: ref, Emoji: emoji, UserID: userID})
	return nil
}

// emit must be called with mu held.
func (p *Platform) emit(event contract.ReactionEvent) {
	for _, s := range p.subscribers {
		if s.ref != event.Ref {
			continue
		}
		select {
		case s.events <- event:
		default:
			panic("platformtest: subscriber buffer full")
		}
	}
}

// Views returns every content the message was sent or edited with, oldest first.
func (p *Platform) Views(ref contract.MessageRef) []domain.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg, ok := p.messages[ref]
	if !ok {
		return nil
	}
	return slices.Clone(msg.views)
}

// Exists reports whether the message was sent and not deleted.
func (p *Platform) Exists(ref contract.MessageRef) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.messages[ref]
	return ok
}

// LastView returns the current content of the message.
func (p *Platform) LastView(ref contract.MessageRef) (domain.View, bool) {
	views := p.Views(ref)
	if len(views) == 0 {
		return domain.View{}, false
	}
	return views[len(views)-1], true
}

// Users returns the ids reacting with emoji.
func (p *Platform) Users(ref contract.MessageRef, emoji string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg, ok := p.messages[ref]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(msg.reactions[emoji]))
	for _, u := range msg.reactions[emoji] {
		ids = append(ids, u.ID)
	}
	return ids
}

// Subscribers counts the open subscriptions on ref.
func (p *Platform) Subscribers(ref contract.MessageRef) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, s := range p.subscribers {
		if s.ref == ref {
			count++
		}
	}
	return count
}
