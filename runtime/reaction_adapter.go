package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"meetup-bot/contract"
	"meetup-bot/domain"

	"github.com/samber/lo"
)

const (
	EmojiAttending = "✅"
	EmojiMaybe     = "🤔"
)

// bootstrapOrder feeds maybes first so a user holding both reactions ends up attending.
var bootstrapOrder = []domain.Category{domain.Maybe, domain.Attending}

func emojiFor(category domain.Category) string {
	switch category {
	case domain.Attending:
		return EmojiAttending
	case domain.Maybe:
		return EmojiMaybe
	default:
		panic(fmt.Sprintf("unknown category %d", category))
	}
}

func categoryFor(emoji string) (domain.Category, bool) {
	switch emoji {
	case EmojiAttending:
		return domain.Attending, true
	case EmojiMaybe:
		return domain.Maybe, true
	default:
		return 0, false
	}
}

// ReactionAdapter turns raw reaction events on one announcement message into roster
// operations. It is driven by the announcement loop and is not safe for concurrent use.
type ReactionAdapter struct {
	log         *slog.Logger
	platform    contract.Platform
	ref         contract.MessageRef
	roster      *domain.Roster
	flushed     domain.Snapshot
	events      <-chan contract.ReactionEvent
	unsubscribe func()
}

func NewReactionAdapter(log *slog.Logger, platform contract.Platform, ref contract.MessageRef) *ReactionAdapter {
	roster := domain.NewRoster()
	return &ReactionAdapter{
		log:      log.With("message_id", ref.MessageID),
		platform: platform,
		ref:      ref,
		roster:   roster,
		flushed:  roster.Snapshot(),
	}
}

// Attach seeds a freshly sent announcement with both reactions and starts listening.
func (a *ReactionAdapter) Attach(ctx context.Context) error {
	for _, category := range []domain.Category{domain.Attending, domain.Maybe} {
		if err := a.platform.React(ctx, a.ref, emojiFor(category)); err != nil {
			return fmt.Errorf("seed reaction %s: %w", emojiFor(category), err)
		}
	}
	a.subscribe()
	return nil
}

// AttachExisting rebuilds the roster from the reactions already on message.
// The subscription is opened first so events racing the fetch are queued, not lost.
func (a *ReactionAdapter) AttachExisting(ctx context.Context, message contract.Message) error {
	a.subscribe()
	self := a.platform.SelfID()

	for _, category := range bootstrapOrder {
		emoji := emojiFor(category)
		if !lo.Contains(message.Emojis, emoji) {
			if err := a.platform.React(ctx, a.ref, emoji); err != nil {
				a.Detach()
				return fmt.Errorf("restore reaction %s: %w", emoji, err)
			}
		}
		users, err := a.platform.Reactions(ctx, a.ref, emoji)
		if err != nil {
			a.Detach()
			return fmt.Errorf("fetch reactions %s: %w", emoji, err)
		}
		responders := lo.Filter(users, func(u contract.User, _ int) bool {
			return !u.Bot && u.ID != self
		})
		for _, u := range responders {
			a.upsert(ctx, u.ID, category)
		}
	}
	a.flushed = a.roster.Snapshot()
	return nil
}

func (a *ReactionAdapter) subscribe() {
	if a.unsubscribe != nil {
		return
	}
	a.events, a.unsubscribe = a.platform.Subscribe(a.ref)
}

// Events is nil once detached.
func (a *ReactionAdapter) Events() <-chan contract.ReactionEvent {
	return a.events
}

// Detach stops the subscription. The roster stays readable.
func (a *ReactionAdapter) Detach() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.events, a.unsubscribe = nil, nil
}

// Handle applies one event and reports whether the roster changed.
func (a *ReactionAdapter) Handle(ctx context.Context, event contract.ReactionEvent) bool {
	if event.Ref != a.ref || event.UserID == a.platform.SelfID() {
		return false
	}
	category, ok := categoryFor(event.Emoji)
	if !ok {
		return false
	}
	switch event.Kind {
	case contract.ReactionAdded:
		return a.upsert(ctx, event.UserID, category)
	case contract.ReactionRemoved:
		return a.roster.Remove(event.UserID, category)
	default:
		return false
	}
}

// upsert moves the responder in the roster before pulling their old reaction, so the
// removal event it causes finds the guard already pointing at the new category.
func (a *ReactionAdapter) upsert(ctx context.Context, userID string, category domain.Category) bool {
	previous, had := a.roster.CategoryOf(userID)
	if !a.roster.Upsert(userID, category) {
		return false
	}
	if had && previous != category {
		if err := a.platform.Unreact(ctx, a.ref, emojiFor(previous), userID); err != nil {
			a.log.Warn("Cannot remove previous reaction", "user_id", userID, "emoji", emojiFor(previous), "error", err)
		}
	}
	return true
}

// Snapshot returns the current roster.
func (a *ReactionAdapter) Snapshot() domain.Snapshot {
	return a.roster.Snapshot()
}

// Flush reports the roster if it differs from the last flushed one. Changes that
// cancel out between two flushes produce no notification.
func (a *ReactionAdapter) Flush() (domain.Snapshot, bool) {
	snapshot := a.roster.Snapshot()
	if snapshot.Equal(a.flushed) {
		return snapshot, false
	}
	a.flushed = snapshot
	return snapshot, true
}
