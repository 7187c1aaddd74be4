package domain

import (
	"fmt"
	"net/url"
	"time"

	"github.com/samber/lo"
)

const (
	timeLayout     = "Monday, January 02 at 3:04 PM MST"
	calendarLayout = "20060102T150405Z"
	calendarLength = 2 * time.Hour
)

// View is the fully resolved content of an announcement, ready to be formatted
// for the chat platform.
type View struct {
	Title       string
	Description string
	OrganizerID string
	Time        string
	Location    string
	Links       []ViewLink
	Attending   []string
	Maybe       []string
	ShowRoster  bool
	Cancelled   *CancelledView
	Ended       bool
}

type ViewLink struct {
	Name string
	URL  string
}

type CancelledView struct {
	Reason string
}

// Renderer turns a meetup and its roster into a View. Render is a pure function of
// its inputs: the same meetup and snapshot always give the same View.
type Renderer struct {
	Zone *time.Location
}

func NewRenderer(zone *time.Location) Renderer {
	if zone == nil {
		zone = time.UTC
	}
	return Renderer{Zone: zone}
}

func (r Renderer) Render(m Meetup, snapshot Snapshot) View {
	view := View{
		Title:       m.Title,
		Description: m.Description,
		OrganizerID: m.OrganizerID,
		Time:        m.Timestamp.In(r.Zone).Format(timeLayout),
		Location:    locationDisplay(m.Location),
		Links:       r.links(m),
	}

	switch state := m.State.(type) {
	case Created:
		view.ShowRoster = true
		view.Attending = snapshot.Attending.Sorted()
		view.Maybe = snapshot.Maybe.Sorted()
	case Cancelled:
		view.Cancelled = &CancelledView{Reason: state.Reason}
	case Ended:
		view.Ended = true
		view.Attending = snapshot.Attending.Sorted()
		view.Maybe = snapshot.Maybe.Sorted()
	default:
		panic(fmt.Sprintf("unknown meetup state %T", m.State))
	}
	return view
}

func locationDisplay(location Location) string {
	var value, comments string
	switch l := location.(type) {
	case nil:
		return ""
	case Address:
		value = "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(l.Value)
		comments = l.Comments
	case Private:
		value = l.Value
		comments = l.Comments
	case Voice:
		value = "Voice Chat"
	default:
		panic(fmt.Sprintf("unknown location %T", location))
	}
	if comments != "" {
		return value + "\n" + comments
	}
	return value
}

func (r Renderer) links(m Meetup) []ViewLink {
	links := lo.Map(m.Links, func(link Link, _ int) ViewLink {
		return ViewLink{Name: link.Name, URL: link.URL}
	})
	return append(links, ViewLink{Name: "Add to Google Calendar", URL: calendarURL(m)})
}

func calendarURL(m Meetup) string {
	start := m.Timestamp.UTC()
	query := url.Values{}
	query.Set("action", "TEMPLATE")
	query.Set("text", m.Title)
	query.Set("dates", start.Format(calendarLayout)+"/"+start.Add(calendarLength).Format(calendarLayout))
	query.Set("details", m.Description)
	switch l := m.Location.(type) {
	case Address:
		query.Set("location", l.Value)
	case Private, Voice, nil:
	}
	return "https://calendar.google.com/calendar/render?" + query.Encode()
}
