package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleMeetup() Meetup {
	m := NewMeetup("channel-1", "organizer-1", Props{
		Title:       "Hike at Mission Peak",
		Description: "Bring water",
		Timestamp:   time.Date(2030, 6, 1, 16, 0, 0, 0, time.UTC),
		Location:    Address{Value: "Stanford Ave, Fremont", Comments: "Meet at the gate"},
		Links:       []Link{{Name: "Trail", URL: "https://example.com/trail"}},
	})
	m.ID = "m-1"
	m.Announcement = Posted{ChannelID: "channel-1", MessageID: "message-1"}
	return m
}

func TestRenderer_Render_Created(t *testing.T) {
	req := require.New(t)
	renderer := NewRenderer(time.UTC)
	roster := NewRoster()
	roster.Upsert("b", Attending)
	roster.Upsert("a", Attending)
	roster.Upsert("c", Maybe)

	view := renderer.Render(sampleMeetup(), roster.Snapshot())

	req.Equal("Hike at Mission Peak", view.Title)
	req.True(view.ShowRoster)
	req.Equal([]string{"a", "b"}, view.Attending)
	req.Equal([]string{"c"}, view.Maybe)
	req.Nil(view.Cancelled)
	req.Equal("https://www.google.com/maps/search/?api=1&query=Stanford+Ave%2C+Fremont\nMeet at the gate", view.Location)
	req.Len(view.Links, 2)
	req.Equal("Add to Google Calendar", view.Links[1].Name)
	req.Contains(view.Links[1].URL, "dates=20300601T160000Z%2F20300601T180000Z")
	req.Equal("Saturday, June 01 at 4:00 PM UTC", view.Time)
}

func TestRenderer_Render_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	renderer := NewRenderer(time.UTC)
	roster := NewRoster()
	for _, id := range []string{"z", "y", "x", "w"} {
		roster.Upsert(id, Attending)
	}
	meetup := sampleMeetup()

	req.Equal(renderer.Render(meetup, roster.Snapshot()), renderer.Render(meetup, roster.Snapshot()))
}

func TestRenderer_Render_Cancelled_Hides_Roster(t *testing.T) {
	req := require.New(t)
	renderer := NewRenderer(time.UTC)
	roster := NewRoster()
	roster.Upsert("a", Attending)

	cancelled, err := Cancel(sampleMeetup(), "weather", time.Now())
	req.NoError(err)

	view := renderer.Render(cancelled, roster.Snapshot())

	req.NotNil(view.Cancelled)
	req.Equal("weather", view.Cancelled.Reason)
	req.False(view.ShowRoster)
	req.Empty(view.Attending)
	req.Empty(view.Maybe)
}

func TestRenderer_Render_Locations(t *testing.T) {
	req := require.New(t)
	renderer := NewRenderer(time.UTC)
	meetup := sampleMeetup()

	meetup.Location = Voice{}
	req.Equal("Voice Chat", renderer.Render(meetup, NewRoster().Snapshot()).Location)

	meetup.Location = Private{Value: "DM for address"}
	req.Equal("DM for address", renderer.Render(meetup, NewRoster().Snapshot()).Location)

	meetup.Location = nil
	req.Empty(renderer.Render(meetup, NewRoster().Snapshot()).Location)
}
