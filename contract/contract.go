//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"meetup-bot/domain"
	"reflect"
)

type ISupervisor interface {
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// MessageRef locates a message on the chat platform.
type MessageRef struct {
	ChannelID string
	MessageID string
}

type ReactionKind int

const (
	ReactionAdded ReactionKind = iota + 1
	ReactionRemoved
)

// ReactionEvent is a raw add or remove of an emoji on one message.
type ReactionEvent struct {
	Kind   ReactionKind
	Ref    MessageRef
	Emoji  string
	UserID string
}

type User struct {
	ID  string
	Bot bool
}

// Message is what the platform tells us about an existing message.
type Message struct {
	Ref    MessageRef
	Emojis []string
}

// Platform is the part of the chat platform the announcements rely on.
// Every method may block on network I/O.
type Platform interface {
	SelfID() string
	Send(ctx context.Context, channelID string, view domain.View) (MessageRef, error)
	Edit(ctx context.Context, ref MessageRef, view domain.View) error
	Delete(ctx context.Context, ref MessageRef) error
	Fetch(ctx context.Context, ref MessageRef) (Message, error)
	React(ctx context.Context, ref MessageRef, emoji string) error
	Unreact(ctx context.Context, ref MessageRef, emoji, userID string) error
	Reactions(ctx context.Context, ref MessageRef, emoji string) ([]User, error)
	// Subscribe delivers reaction events on ref in the order they were observed
	// until the returned cancel function is called.
	Subscribe(ref MessageRef) (<-chan ReactionEvent, func())
}

type IMeetupRepository interface {
	// Insert assigns an id and the current schema version and stores meetup as Pending.
	Insert(ctx context.Context, meetup domain.Meetup) (domain.Meetup, error)
	Update(ctx context.Context, meetup domain.Meetup) error
	Find(ctx context.Context, filter domain.Filter) ([]domain.Meetup, error)
	OnChange(listener func(id string))
}
