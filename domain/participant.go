// Package domain contains core concepts of the meetup bot.
// This file defines the participant roster and its mutual exclusion invariant.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"maps"
	"slices"

	"github.com/samber/lo"
)

// Category is the kind of response a participant left on an announcement.
type Category int

const (
	Attending Category = iota + 1
	Maybe
)

func (c Category) String() string {
	switch c {
	case Attending:
		return "attending"
	case Maybe:
		return "maybe"
	default:
		return "unknown"
	}
}

type Members map[string]struct{}

// Sorted returns the members in a stable order.
func (s Members) Sorted() []string {
	keys := lo.Keys(s)
	slices.Sort(keys)
	return keys
}

// Snapshot is a point in time copy of a roster. Attending and Maybe never share a member.
type Snapshot struct {
	Attending Members
	Maybe     Members
}

func (s Snapshot) Equal(other Snapshot) bool {
	return maps.Equal(s.Attending, other.Attending) && maps.Equal(s.Maybe, other.Maybe)
}

// Roster maps each participant to exactly one category.
// It is owned by a single announcement and is not safe for concurrent use.
type Roster struct {
	participants map[string]Category
}

func NewRoster() *Roster {
	return &Roster{participants: make(map[string]Category)}
}

// Upsert puts the participant in category, moving them out of any other one in the
// same write. It reports whether the roster changed.
func (r *Roster) Upsert(participantID string, category Category) bool {
	if current, ok := r.participants[participantID]; ok && current == category {
		return false
	}
	r.participants[participantID] = category
	return true
}

// Remove drops the participant only while they are still in category.
// A removal for a category they already switched away from is ignored.
func (r *Roster) Remove(participantID string, category Category) bool {
	if current, ok := r.participants[participantID]; !ok || current != category {
		return false
	}
	delete(r.participants, participantID)
	return true
}

func (r *Roster) CategoryOf(participantID string) (Category, bool) {
	c, ok := r.participants[participantID]
	return c, ok
}

func (r *Roster) Len() int {
	return len(r.participants)
}

func (r *Roster) Snapshot() Snapshot {
	snapshot := Snapshot{Attending: make(Members), Maybe: make(Members)}
	for id, category := range r.participants {
		switch category {
		case Attending:
			snapshot.Attending[id] = struct{}{}
		case Maybe:
			snapshot.Maybe[id] = struct{}{}
		}
	}
	return snapshot
}
