package repositories

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"meetup-bot/contract"
	"meetup-bot/domain"
	"meetup-bot/errors"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

const meetupPrefix = "meetup:"

var _ contract.IMeetupRepository = (*BadgerMeetupRepository)(nil)

type BadgerMeetupRepository struct {
	db  *badger.DB
	log *slog.Logger
	listeners
}

func NewBadgerMeetupRepository(db *badger.DB, log *slog.Logger) *BadgerMeetupRepository {
	return &BadgerMeetupRepository{db: db, log: log}
}

func meetupKey(id string) []byte {
	return []byte(meetupPrefix + id)
}

// Insert stores a new, not yet announced meetup under "meetup:{id}".
func (r *BadgerMeetupRepository) Insert(ctx context.Context, m domain.Meetup) (domain.Meetup, error) {
	m, err := prepareInsert(m)
	if err != nil {
		return domain.Meetup{}, err
	}
	bytes, err := bson.Marshal(fromMeetup(m))
	if err != nil {
		return domain.Meetup{}, err
	}
	if err = ctx.Err(); err != nil {
		return domain.Meetup{}, err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(meetupKey(m.ID), bytes)
	})
	if err != nil {
		return domain.Meetup{}, fmt.Errorf("insert meetup %s: %w", m.ID, err)
	}
	r.notify(m.ID)
	return m, nil
}

// Update replaces the stored record with the same id.
func (r *BadgerMeetupRepository) Update(ctx context.Context, m domain.Meetup) error {
	if err := domain.CheckInvariants(m); err != nil {
		return err
	}
	bytes, err := bson.Marshal(fromMeetup(m))
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(meetupKey(m.ID)); err != nil {
			if stderrors.Is(err, badger.ErrKeyNotFound) {
				return errors.ErrMeetupNotFound
			}
			return err
		}
		return txn.Set(meetupKey(m.ID), bytes)
	})
	if err != nil {
		return fmt.Errorf("update meetup %s: %w", m.ID, err)
	}
	r.notify(m.ID)
	return nil
}

// Find scans every record, migrates it to the current schema and keeps the matches.
func (r *BadgerMeetupRepository) Find(ctx context.Context, filter domain.Filter) ([]domain.Meetup, error) {
	var raws []bson.M
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(meetupPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			err := item.Value(func(value []byte) error {
				var raw bson.M
				if err := bson.Unmarshal(value, &raw); err != nil {
					r.log.Warn("Skipping undecodable meetup record", "key", string(item.Key()), "error", err)
					return nil
				}
				raws = append(raws, raw)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find meetups: %w", err)
	}
	return decodeAll(r.log, raws, filter), nil
}

// Import stores a raw document exactly as given, typically one exported from the
// first schema. It is migrated when read back.
func (r *BadgerMeetupRepository) Import(raw bson.M) (string, error) {
	id := asString(raw["id"])
	if id == "" {
		id = asString(raw["_id"])
	}
	if id == "" {
		return "", fmt.Errorf("%w: document has no id", errors.ErrUnsupportedSchema)
	}
	bytes, err := bson.Marshal(raw)
	if err != nil {
		return "", err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(meetupKey(id), bytes)
	})
	if err != nil {
		return "", fmt.Errorf("import meetup %s: %w", id, err)
	}
	r.notify(id)
	return id, nil
}

func prepareInsert(m domain.Meetup) (domain.Meetup, error) {
	if _, ok := m.Announcement.(domain.Pending); !ok {
		return domain.Meetup{}, errors.ErrAlreadyPosted
	}
	if err := domain.CheckInvariants(m); err != nil {
		return domain.Meetup{}, err
	}
	m.ID = uuid.NewString()
	m.SchemaVersion = domain.SchemaVersion
	return m, nil
}

// listeners fans record-changed notifications out to whoever registered.
type listeners struct {
	mu  sync.RWMutex
	fns []func(id string)
}

func (l *listeners) OnChange(listener func(id string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fns = append(l.fns, listener)
}

func (l *listeners) notify(id string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, fn := range l.fns {
		fn(id)
	}
}

// DecodeValue migrates one value stored under the meetup prefix.
func DecodeValue(value []byte) (domain.Meetup, error) {
	var raw bson.M
	if err := bson.Unmarshal(value, &raw); err != nil {
		return domain.Meetup{}, fmt.Errorf("%w: %v", errors.ErrUnsupportedSchema, err)
	}
	return decodeRaw(raw)
}

// Prefix is the key prefix of every meetup record.
func Prefix() []byte {
	return []byte(meetupPrefix)
}
