package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"meetup-bot/contract"
	"meetup-bot/domain"
	"meetup-bot/errors"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// Announcement owns one live meetup, its roster and its message.
// Every mutation, render and write for the meetup runs on the goroutine executing Run,
// so the roster needs no lock. Other goroutines go through commands.
type Announcement struct {
	log        *slog.Logger
	platform   contract.Platform
	repository contract.IMeetupRepository
	renderer   domain.Renderer
	now        func() time.Time
	debounce   time.Duration

	// owned by the loop
	meetup   domain.Meetup
	adapter  *ReactionAdapter
	events   <-chan contract.ReactionEvent
	lastView *domain.View

	current   atomic.Pointer[domain.Meetup]
	commands  chan func()
	stopped   chan struct{}
	closeOnce sync.Once
}

func (r *Registry) newAnnouncement(m domain.Meetup, adapter *ReactionAdapter) *Announcement {
	a := &Announcement{
		log:        r.log.With("meetup_id", m.ID),
		platform:   r.platform,
		repository: r.repository,
		renderer:   r.renderer,
		now:        r.now,
		debounce:   r.debounce,
		meetup:     m,
		adapter:    adapter,
		events:     adapter.Events(),
		commands:   make(chan func()),
		stopped:    make(chan struct{}),
	}
	a.current.Store(&m)
	return a
}

func (a *Announcement) ID() string {
	return a.Meetup().ID
}

// Meetup returns the last persisted state. Safe from any goroutine.
func (a *Announcement) Meetup() domain.Meetup {
	return *a.current.Load()
}

// Run drives the announcement until ctx is done.
func (a *Announcement) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case command := <-a.commands:
			command()
		case event, ok := <-a.events:
			if !ok {
				a.log.Warn("Reaction stream closed")
				a.events = nil
				continue
			}
			a.collect(ctx, event)
		}
	}
}

// collect applies event and whatever arrives within the debounce window, then renders
// once if the roster ended up different.
func (a *Announcement) collect(ctx context.Context, first contract.ReactionEvent) {
	a.adapter.Handle(ctx, first)

	if a.debounce > 0 {
		window := time.NewTimer(a.debounce)
		defer window.Stop()
	burst:
		for {
			select {
			case event, ok := <-a.events:
				if !ok {
					a.events = nil
					break burst
				}
				a.adapter.Handle(ctx, event)
			case <-window.C:
				break burst
			case <-ctx.Done():
				return
			}
		}
	}

	// whatever is already queued belongs to the same burst
	for a.events != nil {
		select {
		case event, ok := <-a.events:
			if !ok {
				a.events = nil
				continue
			}
			a.adapter.Handle(ctx, event)
			continue
		default:
		}
		break
	}

	if _, changed := a.adapter.Flush(); changed {
		if err := a.render(ctx); err != nil {
			a.log.Warn("Cannot render roster change", "error", err)
		}
	}
}

// render edits the message unless the content is what was last sent.
func (a *Announcement) render(ctx context.Context) error {
	posted, ok := a.meetup.Announcement.(domain.Posted)
	if !ok {
		return fmt.Errorf("render %s: %w", a.meetup.ID, errors.ErrAnnouncementPending)
	}
	snapshot := domain.NewRoster().Snapshot()
	if a.adapter != nil {
		snapshot = a.adapter.Snapshot()
	}
	view := a.renderer.Render(a.meetup, snapshot)
	if a.lastView != nil && reflect.DeepEqual(*a.lastView, view) {
		return nil
	}
	ref := contract.MessageRef{ChannelID: posted.ChannelID, MessageID: posted.MessageID}
	if err := a.platform.Edit(ctx, ref, view); err != nil {
		return fmt.Errorf("edit announcement %s: %w", ref.MessageID, err)
	}
	a.lastView = &view
	return nil
}

// do runs fn on the loop and waits for its result.
func (a *Announcement) do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	select {
	case a.commands <- func() { result <- fn() }:
	case <-a.stopped:
		return errors.ErrTornDown
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// commit persists next and only then adopts it.
func (a *Announcement) commit(ctx context.Context, next domain.Meetup) error {
	if err := a.repository.Update(ctx, next); err != nil {
		return fmt.Errorf("persist meetup %s: %w", next.ID, err)
	}
	a.meetup = next
	a.current.Store(&next)
	return nil
}

// retire renders the terminal state with the last roster and stops reconciling.
func (a *Announcement) retire(ctx context.Context) {
	if err := a.render(ctx); err != nil {
		a.log.Warn("Cannot render final state", "state", a.meetup.State.Name(), "error", err)
	}
	if a.adapter != nil {
		a.adapter.Detach()
		a.adapter, a.events = nil, nil
	}
}

// Cancel moves a live meetup to Cancelled and replaces the roster with the reason.
func (a *Announcement) Cancel(ctx context.Context, reason string) error {
	return a.do(ctx, func() error {
		next, err := domain.Cancel(a.meetup, reason, a.now())
		if err != nil {
			return err
		}
		if err = a.commit(ctx, next); err != nil {
			return err
		}
		a.log.Info("Meetup cancelled", "reason", reason)
		a.retire(ctx)
		return nil
	})
}

// End closes a live meetup once it is over, keeping the final counts on the message.
func (a *Announcement) End(ctx context.Context) error {
	return a.do(ctx, func() error {
		next, err := domain.End(a.meetup)
		if err != nil {
			return err
		}
		if err = a.commit(ctx, next); err != nil {
			return err
		}
		a.log.Info("Meetup ended")
		a.retire(ctx)
		return nil
	})
}

// Edit applies changes and returns the names of the fields that actually changed.
func (a *Announcement) Edit(ctx context.Context, changes domain.Changes) ([]string, error) {
	var changed []string
	err := a.do(ctx, func() error {
		next, fields, err := domain.Edit(a.meetup, changes)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err = a.commit(ctx, next); err != nil {
			return err
		}
		changed = fields
		if err = a.render(ctx); err != nil {
			a.log.Warn("Cannot render edit", "error", err)
		}
		return nil
	})
	return changed, err
}

// Roster returns the current roster as seen by the loop.
func (a *Announcement) Roster(ctx context.Context) (domain.Snapshot, error) {
	var snapshot domain.Snapshot
	err := a.do(ctx, func() error {
		snapshot = domain.NewRoster().Snapshot()
		if a.adapter != nil {
			snapshot = a.adapter.Snapshot()
		}
		return nil
	})
	return snapshot, err
}

// teardown releases the subscription. It must only run once Run has returned.
func (a *Announcement) teardown() {
	a.closeOnce.Do(func() {
		close(a.stopped)
		if a.adapter != nil {
			a.adapter.Detach()
			a.adapter, a.events = nil, nil
		}
	})
}
