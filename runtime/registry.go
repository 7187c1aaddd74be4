package runtime

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"meetup-bot/contract"
	"meetup-bot/domain"
	"meetup-bot/errors"
	"meetup-bot/runtime/workers"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Debounce        time.Duration
	Concurrency     int
	RestartInterval time.Duration
	Now             func() time.Time
}

// generation is one set of announcements running under their own supervisor.
type generation struct {
	ctx           context.Context
	cancel        context.CancelFunc
	supervisor    contract.ISupervisor
	announcements map[string]*Announcement
}

// Registry holds every live announcement of the process.
// Rebuild replaces the whole set; a reference obtained before a rebuild goes stale.
type Registry struct {
	mu sync.RWMutex
	// rebuildMu is held for writing by Rebuild and Teardown, for reading by Post.
	rebuildMu sync.RWMutex
	root      context.Context
	current   *generation

	log        *slog.Logger
	platform   contract.Platform
	repository contract.IMeetupRepository
	renderer   domain.Renderer
	now        func() time.Time
	debounce   time.Duration
	opts       Options
}

func NewRegistry(
	log *slog.Logger,
	platform contract.Platform,
	repository contract.IMeetupRepository,
	renderer domain.Renderer,
	opts Options,
) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &Registry{
		log:        log,
		platform:   platform,
		repository: repository,
		renderer:   renderer,
		now:        opts.Now,
		debounce:   opts.Debounce,
		opts:       opts,
	}
}

// Init binds the announcement loops to ctx and rebuilds from the store.
func (r *Registry) Init(ctx context.Context) (int, error) {
	r.mu.Lock()
	r.root = ctx
	r.mu.Unlock()
	return r.Rebuild(ctx)
}

func (r *Registry) newGeneration() *generation {
	ctx, cancel := context.WithCancel(r.root)
	return &generation{
		ctx:           ctx,
		cancel:        cancel,
		supervisor:    workers.NewSupervisor(r.log, r.opts.RestartInterval),
		announcements: make(map[string]*Announcement),
	}
}

// Rebuild drops every announcement and rehydrates the live ones from the store.
// A record that cannot be rehydrated is logged and left out. It returns the
// number of announcements registered.
func (r *Registry) Rebuild(ctx context.Context) (int, error) {
	r.rebuildMu.Lock()
	defer r.rebuildMu.Unlock()

	meetups, err := r.repository.Find(ctx, domain.Filter{LiveOnly: true})
	if err != nil {
		return 0, fmt.Errorf("rebuild registry: %w", err)
	}

	r.mu.Lock()
	if r.root == nil {
		r.mu.Unlock()
		return 0, errors.ErrTornDown
	}
	old := r.current
	next := r.newGeneration()
	r.current = next
	r.mu.Unlock()
	stopGeneration(old)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for _, m := range meetups {
		g.Go(func() error {
			announcement, err := r.hydrate(gCtx, m)
			if err != nil {
				r.log.Warn("Skipping meetup on rebuild", "meetup_id", m.ID, "error", err)
				return nil
			}
			r.register(next, announcement)
			return nil
		})
	}
	_ = g.Wait()

	count := r.Count()
	r.log.Info("Registry rebuilt", "live", count, "records", len(meetups))
	return count, nil
}

func (r *Registry) hydrate(ctx context.Context, m domain.Meetup) (*Announcement, error) {
	switch a := m.Announcement.(type) {
	case domain.Pending:
		return nil, errors.ErrAnnouncementPending
	case domain.LegacyExternal:
		return nil, errors.ErrLegacyAnnouncement
	case domain.Posted:
		ref := contract.MessageRef{ChannelID: a.ChannelID, MessageID: a.MessageID}
		message, err := r.platform.Fetch(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("fetch announcement %s: %w", ref.MessageID, err)
		}
		adapter := NewReactionAdapter(r.log, r.platform, ref)
		if err = adapter.AttachExisting(ctx, message); err != nil {
			return nil, err
		}
		announcement := r.newAnnouncement(m, adapter)
		if err = announcement.render(ctx); err != nil {
			adapter.Detach()
			return nil, err
		}
		return announcement, nil
	default:
		panic(fmt.Sprintf("unknown announcement %T", m.Announcement))
	}
}

// register adds the announcement to gen and starts its loop. An announcement
// hydrated for a generation that was replaced meanwhile is dropped.
func (r *Registry) register(gen *generation, announcement *Announcement) bool {
	r.mu.Lock()
	if r.current != gen {
		r.mu.Unlock()
		announcement.teardown()
		return false
	}
	gen.announcements[announcement.ID()] = announcement
	r.mu.Unlock()
	gen.supervisor.Start(gen.ctx, announcement)
	return true
}

// Post announces a Pending meetup in its channel and registers it. A meetup without
// id is inserted first; one with an id is a post that never completed and is retried.
// A rebuild waits for posts in flight, so a posted meetup always lands in the current set.
func (r *Registry) Post(ctx context.Context, m domain.Meetup) (*Announcement, error) {
	pending, ok := m.Announcement.(domain.Pending)
	if !ok {
		return nil, errors.ErrAlreadyPosted
	}
	r.rebuildMu.RLock()
	defer r.rebuildMu.RUnlock()
	r.mu.RLock()
	gen := r.current
	r.mu.RUnlock()
	if gen == nil {
		return nil, errors.ErrTornDown
	}

	var err error
	if m.ID == "" {
		if m, err = r.repository.Insert(ctx, m); err != nil {
			return nil, err
		}
	}

	view := r.renderer.Render(m, domain.NewRoster().Snapshot())
	ref, err := r.platform.Send(ctx, pending.ChannelID, view)
	if err != nil {
		return nil, fmt.Errorf("send announcement: %w", err)
	}
	adapter := NewReactionAdapter(r.log, r.platform, ref)
	if err = adapter.Attach(ctx); err != nil {
		r.discard(ctx, adapter, ref)
		return nil, err
	}

	posted := m
	posted.Announcement = domain.Posted{ChannelID: ref.ChannelID, MessageID: ref.MessageID}
	if err = r.repository.Update(ctx, posted); err != nil {
		r.discard(ctx, adapter, ref)
		return nil, fmt.Errorf("persist announcement %s: %w", ref.MessageID, err)
	}

	announcement := r.newAnnouncement(posted, adapter)
	announcement.lastView = &view
	if !r.register(gen, announcement) {
		return nil, errors.ErrTornDown
	}
	r.log.Info("Meetup posted", "meetup_id", posted.ID, "message_id", ref.MessageID)
	return announcement, nil
}

// discard removes a message whose post could not complete, so a retry leaves a single one.
func (r *Registry) discard(ctx context.Context, adapter *ReactionAdapter, ref contract.MessageRef) {
	adapter.Detach()
	if err := r.platform.Delete(ctx, ref); err != nil {
		r.log.Warn("Cannot delete unfinished announcement", "message_id", ref.MessageID, "error", err)
	}
}

func (r *Registry) Get(id string) (*Announcement, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil, false
	}
	announcement, ok := r.current.announcements[id]
	return announcement, ok
}

// Find returns the announcements whose meetup matches filter.
func (r *Registry) Find(filter domain.Filter) []*Announcement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil
	}
	return lo.Filter(lo.Values(r.current.announcements), func(a *Announcement, _ int) bool {
		return filter.Match(a.Meetup())
	})
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return 0
	}
	return len(r.current.announcements)
}

// EndExpired ends every live meetup that started before cutoff.
func (r *Registry) EndExpired(ctx context.Context, cutoff time.Time) (int, error) {
	expired := lo.Filter(r.Find(domain.Filter{LiveOnly: true}), func(a *Announcement, _ int) bool {
		return a.Meetup().Timestamp.Before(cutoff)
	})
	ended := 0
	var errs []error
	for _, announcement := range expired {
		if err := announcement.End(ctx); err != nil {
			errs = append(errs, fmt.Errorf("end meetup %s: %w", announcement.ID(), err))
			continue
		}
		ended++
	}
	return ended, stderrors.Join(errs...)
}

// Teardown stops every announcement. The registry refuses work afterwards.
func (r *Registry) Teardown() {
	r.rebuildMu.Lock()
	defer r.rebuildMu.Unlock()

	r.mu.Lock()
	old := r.current
	r.current = nil
	r.root = nil
	r.mu.Unlock()
	stopGeneration(old)
}

func stopGeneration(gen *generation) {
	if gen == nil {
		return
	}
	gen.cancel()
	gen.supervisor.Stop()
	for _, announcement := range gen.announcements {
		announcement.teardown()
	}
}
