package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"meetup-bot/contract"
	"meetup-bot/domain"
	"meetup-bot/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const meetupCollection = "meetups"

var _ contract.IMeetupRepository = (*MongoMeetupRepository)(nil)

// MongoMeetupRepository keeps meetups in the "meetups" collection, the store the
// first schema lived in. Legacy documents are migrated on read, never rewritten.
type MongoMeetupRepository struct {
	collection *mongo.Collection
	log        *slog.Logger
	listeners
}

func NewMongoMeetupRepository(db *mongo.Database, log *slog.Logger) *MongoMeetupRepository {
	return &MongoMeetupRepository{collection: db.Collection(meetupCollection), log: log}
}

// EnsureIndexes makes the meetup id unique.
func (r *MongoMeetupRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoMeetupRepository) Insert(ctx context.Context, m domain.Meetup) (domain.Meetup, error) {
	m, err := prepareInsert(m)
	if err != nil {
		return domain.Meetup{}, err
	}
	if _, err = r.collection.InsertOne(ctx, fromMeetup(m)); err != nil {
		return domain.Meetup{}, fmt.Errorf("insert meetup %s: %w", m.ID, err)
	}
	r.notify(m.ID)
	return m, nil
}

func (r *MongoMeetupRepository) Update(ctx context.Context, m domain.Meetup) error {
	if err := domain.CheckInvariants(m); err != nil {
		return err
	}
	result, err := r.collection.ReplaceOne(ctx, bson.M{"id": m.ID}, fromMeetup(m))
	if err != nil {
		return fmt.Errorf("update meetup %s: %w", m.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("update meetup %s: %w", m.ID, errors.ErrMeetupNotFound)
	}
	r.notify(m.ID)
	return nil
}

// Find loads every document and filters after migration, since legacy documents do
// not carry the current field names.
func (r *MongoMeetupRepository) Find(ctx context.Context, filter domain.Filter) ([]domain.Meetup, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find meetups: %w", err)
	}
	var raws []bson.M
	if err = cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("find meetups: %w", err)
	}
	return decodeAll(r.log, raws, filter), nil
}
