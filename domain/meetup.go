// Package domain contains core concepts of the meetup bot.
// This file defines the Meetup record and its closed variants.
// No runtime, network, or storage logic should be added here.
package domain

import (
	"fmt"
	"slices"
	"time"
)

// SchemaVersion is the version stamped on every record written by this build.
const SchemaVersion = 1

// Meetup is the persisted representation of a scheduled event.
type Meetup struct {
	ID            string
	SchemaVersion int
	OrganizerID   string
	Title         string
	Description   string
	Timestamp     time.Time
	Location      Location
	Links         []Link
	State         State
	Announcement  Announcement
}

type Link struct {
	Name string
	URL  string
}

// Props are the user supplied details of a meetup, already validated.
type Props struct {
	Title       string
	Description string
	Timestamp   time.Time
	Location    Location
	Links       []Link
}

// NewMeetup builds an unsaved record waiting to be announced in channelID.
func NewMeetup(channelID, organizerID string, props Props) Meetup {
	return Meetup{
		SchemaVersion: SchemaVersion,
		OrganizerID:   organizerID,
		Title:         props.Title,
		Description:   props.Description,
		Timestamp:     props.Timestamp,
		Location:      props.Location,
		Links:         slices.Clone(props.Links),
		State:         Created{},
		Announcement:  Pending{ChannelID: channelID},
	}
}

// IsLive reports whether the meetup still accepts RSVPs.
func (m Meetup) IsLive() bool {
	switch m.State.(type) {
	case Created:
		return true
	case Cancelled, Ended:
		return false
	default:
		panic(fmt.Sprintf("unknown meetup state %T", m.State))
	}
}

// Location is one of None (nil), Address, Private or Voice.
type Location interface {
	isLocation()
}

type Address struct {
	Value    string
	Comments string
}

type Private struct {
	Value    string
	Comments string
}

type Voice struct{}

func (Address) isLocation() {}
func (Private) isLocation() {}
func (Voice) isLocation()   {}

// State is one of Created, Cancelled or Ended. Cancelled and Ended are terminal.
type State interface {
	isState()
	Name() string
}

type Created struct{}

type Cancelled struct {
	Reason      string
	CancelledOn time.Time
}

type Ended struct{}

func (Created) isState()   {}
func (Cancelled) isState() {}
func (Ended) isState()     {}

func (Created) Name() string   { return "created" }
func (Cancelled) Name() string { return "cancelled" }
func (Ended) Name() string     { return "ended" }

// Announcement describes where the live message lives.
type Announcement interface {
	isAnnouncement()
	Name() string
}

// Pending is a record whose message has not been sent yet.
type Pending struct {
	ChannelID string
}

type Posted struct {
	ChannelID string
	MessageID string
}

// LegacyExternal comes from records migrated off the first schema, where the
// announcement and the rsvp list were two separate messages. It is read only.
type LegacyExternal struct {
	AnnouncementID string
	RsvpID         string
}

func (Pending) isAnnouncement()        {}
func (Posted) isAnnouncement()         {}
func (LegacyExternal) isAnnouncement() {}

func (Pending) Name() string        { return "pending" }
func (Posted) Name() string         { return "posted" }
func (LegacyExternal) Name() string { return "legacy" }

// Filter selects persisted records. The zero value matches everything.
type Filter struct {
	OrganizerID string
	LiveOnly    bool
}

func (f Filter) Match(m Meetup) bool {
	if f.OrganizerID != "" && f.OrganizerID != m.OrganizerID {
		return false
	}
	if f.LiveOnly && !m.IsLive() {
		return false
	}
	return true
}
