package domain

import (
	"meetup-bot/errors"
	"slices"
	"time"
)

// Field names reported back to organizers after an edit.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTimestamp   = "date"
	FieldLocation    = "location"
	FieldLinks       = "links"
)

// Change carries an optional new value for one field.
type Change[T any] struct {
	Value T
	Set   bool
}

func Set[T any](value T) Change[T] {
	return Change[T]{Value: value, Set: true}
}

// Changes is a partial update of a meetup. Unset fields are left untouched.
type Changes struct {
	Title       Change[string]
	Description Change[string]
	Timestamp   Change[time.Time]
	Location    Change[Location]
	Links       Change[[]Link]
}

// Apply returns the edited meetup and the names of the fields that actually changed.
func (c Changes) Apply(m Meetup) (Meetup, []string) {
	next := m
	next.Links = slices.Clone(m.Links)
	var changed []string

	if c.Title.Set && c.Title.Value != m.Title {
		next.Title = c.Title.Value
		changed = append(changed, FieldTitle)
	}
	if c.Description.Set && c.Description.Value != m.Description {
		next.Description = c.Description.Value
		changed = append(changed, FieldDescription)
	}
	if c.Timestamp.Set && !c.Timestamp.Value.Equal(m.Timestamp) {
		next.Timestamp = c.Timestamp.Value
		changed = append(changed, FieldTimestamp)
	}
	if c.Location.Set && c.Location.Value != m.Location {
		next.Location = c.Location.Value
		changed = append(changed, FieldLocation)
	}
	if c.Links.Set && !slices.Equal(c.Links.Value, m.Links) {
		next.Links = slices.Clone(c.Links.Value)
		changed = append(changed, FieldLinks)
	}
	return next, changed
}

// Cancel moves a created meetup to Cancelled.
func Cancel(m Meetup, reason string, at time.Time) (Meetup, error) {
	if err := requireCreated(m, errors.ErrAlreadyTerminal); err != nil {
		return Meetup{}, err
	}
	m.State = Cancelled{Reason: reason, CancelledOn: at.UTC()}
	return m, nil
}

// End moves a created meetup to Ended.
func End(m Meetup) (Meetup, error) {
	if err := requireCreated(m, errors.ErrAlreadyTerminal); err != nil {
		return Meetup{}, err
	}
	m.State = Ended{}
	return m, nil
}

// Edit applies changes to a created meetup.
func Edit(m Meetup, c Changes) (Meetup, []string, error) {
	if err := requireCreated(m, errors.ErrNotLive); err != nil {
		return Meetup{}, nil, err
	}
	next, changed := c.Apply(m)
	return next, changed, nil
}

func requireCreated(m Meetup, otherwise error) error {
	if !m.IsLive() {
		return otherwise
	}
	// A record that was never announced cannot leave Created.
	if _, ok := m.Announcement.(Pending); ok {
		return errors.ErrAnnouncementPending
	}
	return nil
}

// CheckInvariants rejects records that can never exist.
func CheckInvariants(m Meetup) error {
	if m.State == nil || m.Announcement == nil {
		return errors.ErrUnsupportedSchema
	}
	if _, ok := m.Announcement.(Pending); ok && !m.IsLive() {
		return errors.ErrAnnouncementPending
	}
	return nil
}
