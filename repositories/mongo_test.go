package repositories

import (
	"context"
	"log/slog"
	"meetup-bot/domain"
	"meetup-bot/errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoTestConfig struct {
	// MONGO_TEST_URI points the Mongo repository tests at a disposable server; they are skipped without it
	URI string `envconfig:"MONGO_TEST_URI"`
}

func openMongoRepository(t *testing.T) *MongoMeetupRepository {
	var config mongoTestConfig
	require.NoError(t, envconfig.Process("", &config))
	if config.URI == "" {
		t.Skip("MONGO_TEST_URI is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URI))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("meetup-bot-test-" + uuid.NewString())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	repository := NewMongoMeetupRepository(db, slog.Default())
	require.NoError(t, repository.EnsureIndexes(ctx))
	return repository
}

func Test_Mongo_Insert_Update_Find(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := openMongoRepository(t)
	var changed []string
	repository.OnChange(func(id string) { changed = append(changed, id) })

	// Given an inserted meetup
	inserted, err := repository.Insert(ctx, newMeetup("alice"))
	req.NoError(err)

	// When it is posted
	posted := inserted
	posted.Announcement = domain.Posted{ChannelID: "channel-1", MessageID: "message-1"}
	req.NoError(repository.Update(ctx, posted))

	// Then the stored record is replaced and both writes are notified
	found, err := repository.Find(ctx, domain.Filter{OrganizerID: "alice"})
	req.NoError(err)
	req.Equal([]domain.Meetup{posted}, found)
	req.Equal([]string{inserted.ID, inserted.ID}, changed)
}

func Test_Mongo_Update_Unknown_Meetup(t *testing.T) {
	req := require.New(t)
	repository := openMongoRepository(t)
	unknown := newMeetup("alice")
	unknown.ID = "missing"
	unknown.Announcement = domain.Posted{ChannelID: "channel-1", MessageID: "message-1"}

	err := repository.Update(context.Background(), unknown)

	req.ErrorIs(err, errors.ErrMeetupNotFound)
}

func Test_Mongo_Find_Migrates_Legacy_Documents(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := openMongoRepository(t)

	// Given a document written by the first schema
	_, err := repository.collection.InsertOne(ctx, legacyDocument())
	req.NoError(err)

	// When reading it back
	found, err := repository.Find(ctx, domain.Filter{})

	// Then it comes out in the current shape
	req.NoError(err)
	req.Len(found, 1)
	req.Equal("Ramen night", found[0].Title)
	req.Equal("organizer-7", found[0].OrganizerID)
	req.Equal(domain.LegacyExternal{AnnouncementID: "info-message", RsvpID: "rsvp-message"}, found[0].Announcement)
}
