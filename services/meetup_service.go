//go:generate go run go.uber.org/mock/mockgen -source=meetup_service.go -destination=../mocks/servicemocks/mock_meetup_service.go -package=servicemocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"meetup-bot/contract"
	"meetup-bot/domain"
	"meetup-bot/errors"
	"meetup-bot/runtime"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

type IMeetupService interface {
	Create(ctx context.Context, channelID, organizerID, body string) (domain.Meetup, error)
	List(organizerID string) []domain.Meetup
	Cancel(ctx context.Context, organizerID, id, reason string) error
	Edit(ctx context.Context, organizerID, id, body string) ([]string, error)
	Refresh(ctx context.Context) (int, error)
}

// MeetupService resolves who is asking and what they ask for, then hands the
// operation to the live announcement.
type MeetupService struct {
	log        *slog.Logger
	registry   *runtime.Registry
	repository contract.IMeetupRepository
	now        func() time.Time
}

var _ IMeetupService = (*MeetupService)(nil)

func NewMeetupService(log *slog.Logger, registry *runtime.Registry, repository contract.IMeetupRepository) *MeetupService {
	return &MeetupService{log: log, registry: registry, repository: repository, now: time.Now}
}

// Create validates the options in body and announces the meetup in channelID.
func (s *MeetupService) Create(ctx context.Context, channelID, organizerID, body string) (domain.Meetup, error) {
	props, err := domain.ParseOptions(body, s.now())
	if err != nil {
		return domain.Meetup{}, err
	}
	announcement, err := s.registry.Post(ctx, domain.NewMeetup(channelID, organizerID, props))
	if err != nil {
		return domain.Meetup{}, err
	}
	return announcement.Meetup(), nil
}

// List returns the organizer's live meetups, soonest first.
func (s *MeetupService) List(organizerID string) []domain.Meetup {
	meetups := lo.Map(
		s.registry.Find(domain.Filter{OrganizerID: organizerID, LiveOnly: true}),
		func(a *runtime.Announcement, _ int) domain.Meetup { return a.Meetup() },
	)
	slices.SortFunc(meetups, func(a, b domain.Meetup) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return meetups
}

func (s *MeetupService) Cancel(ctx context.Context, organizerID, id, reason string) error {
	announcement, err := s.resolve(ctx, organizerID, id, errors.ErrAlreadyTerminal)
	if err != nil {
		return err
	}
	return announcement.Cancel(ctx, strings.TrimSpace(reason))
}

func (s *MeetupService) Edit(ctx context.Context, organizerID, id, body string) ([]string, error) {
	announcement, err := s.resolve(ctx, organizerID, id, errors.ErrNotLive)
	if err != nil {
		return nil, err
	}
	changes, err := domain.ParseChanges(body, announcement.Meetup(), s.now())
	if err != nil {
		return nil, err
	}
	return announcement.Edit(ctx, changes)
}

// Refresh rebuilds the live registry from the store.
func (s *MeetupService) Refresh(ctx context.Context) (int, error) {
	return s.registry.Rebuild(ctx)
}

// resolve finds the live announcement for id on behalf of organizerID. A meetup that
// exists but is no longer live yields notLive.
func (s *MeetupService) resolve(ctx context.Context, organizerID, id string, notLive error) (*runtime.Announcement, error) {
	announcement, ok := s.registry.Get(id)
	if !ok {
		stored, err := s.repository.Find(ctx, domain.Filter{OrganizerID: organizerID})
		if err != nil {
			return nil, fmt.Errorf("resolve meetup %s: %w", id, err)
		}
		if lo.ContainsBy(stored, func(m domain.Meetup) bool { return m.ID == id && !m.IsLive() }) {
			return nil, notLive
		}
		return nil, errors.ErrMeetupNotFound
	}
	if announcement.Meetup().OrganizerID != organizerID {
		return nil, errors.ErrNotOrganizer
	}
	return announcement, nil
}
