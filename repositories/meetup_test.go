package repositories

import (
	"context"
	"log/slog"
	"meetup-bot/domain"
	"meetup-bot/errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func openRepository(t *testing.T) *BadgerMeetupRepository {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBadgerMeetupRepository(db, slog.Default())
}

func newMeetup(organizerID string) domain.Meetup {
	return domain.NewMeetup("channel-1", organizerID, domain.Props{
		Title:     "Picnic",
		Timestamp: time.Date(2030, 7, 4, 12, 0, 0, 0, time.UTC),
		Location:  domain.Voice{},
	})
}

func Test_Insert_Assigns_Id_And_Notifies(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := openRepository(t)
	var changed []string
	repository.OnChange(func(id string) { changed = append(changed, id) })

	// When a new meetup is inserted
	inserted, err := repository.Insert(ctx, newMeetup("alice"))

	// Then it gets an id, the current version and stays pending
	req.NoError(err)
	req.NotEmpty(inserted.ID)
	req.Equal(domain.SchemaVersion, inserted.SchemaVersion)
	req.Equal(domain.Pending{ChannelID: "channel-1"}, inserted.Announcement)
	req.Equal([]string{inserted.ID}, changed)

	found, err := repository.Find(ctx, domain.Filter{})
	req.NoError(err)
	req.Equal([]domain.Meetup{inserted}, found)
}

func Test_Insert_Rejects_Posted_Meetup(t *testing.T) {
	req := require.New(t)
	repository := openRepository(t)
	meetup := newMeetup("alice")
	meetup.Announcement = domain.Posted{ChannelID: "c", MessageID: "m"}

	_, err := repository.Insert(context.Background(), meetup)

	req.ErrorIs(err, errors.ErrAlreadyPosted)
}

func Test_Update_Replaces_Record(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := openRepository(t)
	inserted, err := repository.Insert(ctx, newMeetup("alice"))
	req.NoError(err)

	// When the meetup is posted then cancelled
	inserted.Announcement = domain.Posted{ChannelID: "channel-1", MessageID: "message-1"}
	cancelled, err := domain.Cancel(inserted, "rain", time.Date(2030, 7, 1, 0, 0, 0, 0, time.UTC))
	req.NoError(err)
	req.NoError(repository.Update(ctx, cancelled))

	// Then only the live filter excludes it
	all, err := repository.Find(ctx, domain.Filter{})
	req.NoError(err)
	req.Equal([]domain.Meetup{cancelled}, all)

	live, err := repository.Find(ctx, domain.Filter{LiveOnly: true})
	req.NoError(err)
	req.Empty(live)
}

func Test_Update_Unknown_Meetup(t *testing.T) {
	req := require.New(t)
	meetup := newMeetup("alice")
	meetup.ID = "missing"

	err := openRepository(t).Update(context.Background(), meetup)

	req.ErrorIs(err, errors.ErrMeetupNotFound)
}

func Test_Find_Filters_By_Organizer(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := openRepository(t)
	for _, organizer := range []string{"alice", "bob", "alice"} {
		_, err := repository.Insert(ctx, newMeetup(organizer))
		req.NoError(err)
	}

	found, err := repository.Find(ctx, domain.Filter{OrganizerID: "alice"})

	req.NoError(err)
	req.Len(found, 2)
}

func Test_Find_Migrates_Imported_Legacy_Records(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := openRepository(t)

	// Given a legacy record and an unreadable future record
	id, err := repository.Import(legacyDocument())
	req.NoError(err)
	req.Equal("legacy-1", id)
	_, err = repository.Import(bson.M{versionKey: int32(9), "id": "future"})
	req.NoError(err)

	// When reading everything back
	found, err := repository.Find(ctx, domain.Filter{})

	// Then the legacy record is migrated and the future one is skipped
	req.NoError(err)
	req.Len(found, 1)
	req.Equal("Ramen night", found[0].Title)
	req.Equal(domain.LegacyExternal{AnnouncementID: "info-message", RsvpID: "rsvp-message"}, found[0].Announcement)
}
