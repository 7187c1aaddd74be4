package repositories

import (
	"fmt"
	"log/slog"
	"meetup-bot/domain"
	"meetup-bot/errors"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	stateCreated   = "created"
	stateCancelled = "cancelled"
	stateEnded     = "ended"

	announcementPending = "pending"
	announcementPosted  = "inChannel"
	announcementLegacy  = "announcements"

	locationAddress = "ADDRESS"
	locationPrivate = "PRIVATE"
	locationVoice   = "VOICE"
)

// meetupDocument is the stored shape of schema version 1.
type meetupDocument struct {
	Version      int                  `bson:"__version"`
	ID           string               `bson:"id"`
	Title        string               `bson:"title"`
	Description  string               `bson:"description"`
	OrganizerID  string               `bson:"organizerId"`
	Timestamp    string               `bson:"timestamp"`
	Location     *locationDocument    `bson:"location,omitempty"`
	Links        []linkDocument       `bson:"links"`
	State        stateDocument        `bson:"state"`
	Announcement announcementDocument `bson:"announcement"`
}

type locationDocument struct {
	Type     string `bson:"type"`
	Value    string `bson:"value"`
	Comments string `bson:"comments,omitempty"`
}

type linkDocument struct {
	Name string `bson:"name,omitempty"`
	URL  string `bson:"url"`
}

type stateDocument struct {
	Type        string `bson:"type"`
	Reason      string `bson:"reason,omitempty"`
	CancelledOn string `bson:"cancelledOn,omitempty"`
}

type announcementDocument struct {
	Type           string `bson:"type"`
	ChannelID      string `bson:"channelId,omitempty"`
	MessageID      string `bson:"messageId,omitempty"`
	AnnouncementID string `bson:"announcementId,omitempty"`
	RsvpID         string `bson:"rsvpId,omitempty"`
}

func fromMeetup(m domain.Meetup) meetupDocument {
	doc := meetupDocument{
		Version:     domain.SchemaVersion,
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		OrganizerID: m.OrganizerID,
		Timestamp:   m.Timestamp.UTC().Format(time.RFC3339Nano),
		Links: lo.Map(m.Links, func(link domain.Link, _ int) linkDocument {
			return linkDocument{Name: link.Name, URL: link.URL}
		}),
	}

	switch l := m.Location.(type) {
	case nil:
	case domain.Address:
		doc.Location = &locationDocument{Type: locationAddress, Value: l.Value, Comments: l.Comments}
	case domain.Private:
		doc.Location = &locationDocument{Type: locationPrivate, Value: l.Value, Comments: l.Comments}
	case domain.Voice:
		doc.Location = &locationDocument{Type: locationVoice}
	default:
		panic(fmt.Sprintf("unknown location %T", m.Location))
	}

	switch s := m.State.(type) {
	case domain.Created:
		doc.State = stateDocument{Type: stateCreated}
	case domain.Cancelled:
		doc.State = stateDocument{
			Type:        stateCancelled,
			Reason:      s.Reason,
			CancelledOn: s.CancelledOn.UTC().Format(time.RFC3339Nano),
		}
	case domain.Ended:
		doc.State = stateDocument{Type: stateEnded}
	default:
		panic(fmt.Sprintf("unknown meetup state %T", m.State))
	}

	switch a := m.Announcement.(type) {
	case domain.Pending:
		doc.Announcement = announcementDocument{Type: announcementPending, ChannelID: a.ChannelID}
	case domain.Posted:
		doc.Announcement = announcementDocument{Type: announcementPosted, ChannelID: a.ChannelID, MessageID: a.MessageID}
	case domain.LegacyExternal:
		doc.Announcement = announcementDocument{Type: announcementLegacy, AnnouncementID: a.AnnouncementID, RsvpID: a.RsvpID}
	default:
		panic(fmt.Sprintf("unknown announcement %T", m.Announcement))
	}
	return doc
}

func toMeetup(doc meetupDocument) (domain.Meetup, error) {
	timestamp, err := time.Parse(time.RFC3339Nano, doc.Timestamp)
	if err != nil {
		return domain.Meetup{}, fmt.Errorf("invalid timestamp %q: %w", doc.Timestamp, err)
	}
	m := domain.Meetup{
		ID:            doc.ID,
		SchemaVersion: doc.Version,
		OrganizerID:   doc.OrganizerID,
		Title:         doc.Title,
		Description:   doc.Description,
		Timestamp:     timestamp.UTC(),
		Links: lo.Map(doc.Links, func(link linkDocument, _ int) domain.Link {
			return domain.Link{Name: link.Name, URL: link.URL}
		}),
	}
	if len(m.Links) == 0 {
		m.Links = nil
	}

	if doc.Location != nil {
		switch doc.Location.Type {
		case locationAddress:
			m.Location = domain.Address{Value: doc.Location.Value, Comments: doc.Location.Comments}
		case locationPrivate:
			m.Location = domain.Private{Value: doc.Location.Value, Comments: doc.Location.Comments}
		case locationVoice:
			m.Location = domain.Voice{}
		default:
			return domain.Meetup{}, fmt.Errorf("%w: location type %q", errors.ErrUnsupportedSchema, doc.Location.Type)
		}
	}

	switch doc.State.Type {
	case stateCreated:
		m.State = domain.Created{}
	case stateCancelled:
		cancelledOn, err := time.Parse(time.RFC3339Nano, doc.State.CancelledOn)
		if err != nil {
			return domain.Meetup{}, fmt.Errorf("invalid cancellation time %q: %w", doc.State.CancelledOn, err)
		}
		m.State = domain.Cancelled{Reason: doc.State.Reason, CancelledOn: cancelledOn.UTC()}
	case stateEnded:
		m.State = domain.Ended{}
	default:
		return domain.Meetup{}, fmt.Errorf("%w: state %q", errors.ErrUnsupportedSchema, doc.State.Type)
	}

	switch doc.Announcement.Type {
	case announcementPending:
		m.Announcement = domain.Pending{ChannelID: doc.Announcement.ChannelID}
	case announcementPosted:
		m.Announcement = domain.Posted{ChannelID: doc.Announcement.ChannelID, MessageID: doc.Announcement.MessageID}
	case announcementLegacy:
		m.Announcement = domain.LegacyExternal{AnnouncementID: doc.Announcement.AnnouncementID, RsvpID: doc.Announcement.RsvpID}
	default:
		return domain.Meetup{}, fmt.Errorf("%w: announcement %q", errors.ErrUnsupportedSchema, doc.Announcement.Type)
	}
	return m, nil
}

// decodeRaw migrates a raw document and turns it into a Meetup.
func decodeRaw(raw bson.M) (domain.Meetup, error) {
	migrated := Migrate(raw)
	version, ok := schemaVersion(migrated)
	if !ok || version != domain.SchemaVersion {
		return domain.Meetup{}, fmt.Errorf("%w: version %v", errors.ErrUnsupportedSchema, migrated[versionKey])
	}
	bytes, err := bson.Marshal(migrated)
	if err != nil {
		return domain.Meetup{}, err
	}
	var doc meetupDocument
	if err = bson.Unmarshal(bytes, &doc); err != nil {
		return domain.Meetup{}, err
	}
	return toMeetup(doc)
}

// decodeAll keeps every record matching filter. A record that cannot be decoded is
// logged and left out so one bad document never hides the others.
func decodeAll(log *slog.Logger, raws []bson.M, filter domain.Filter) []domain.Meetup {
	meetups := make([]domain.Meetup, 0, len(raws))
	for _, raw := range raws {
		m, err := decodeRaw(raw)
		if err != nil {
			log.Warn("Skipping unreadable meetup record", "id", asString(raw["id"]), "error", err)
			continue
		}
		if filter.Match(m) {
			meetups = append(meetups, m)
		}
	}
	return meetups
}
