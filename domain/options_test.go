package domain

import (
	"meetup-bot/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

func TestParseOptions(t *testing.T) {
	req := require.New(t)
	body := `
title: Boba run
description: After work
date: 2030-01-02T18:30:00-08:00
location: 123 Main St
location_type: address
location_comments: Parking in the back
links:
  - name: Menu
    url: https://example.com/menu
`
	props, err := ParseOptions(body, now)

	req.NoError(err)
	req.Equal("Boba run", props.Title)
	req.Equal("After work", props.Description)
	req.Equal(time.Date(2030, 1, 3, 2, 30, 0, 0, time.UTC), props.Timestamp)
	req.Equal(Address{Value: "123 Main St", Comments: "Parking in the back"}, props.Location)
	req.Equal([]Link{{Name: "Menu", URL: "https://example.com/menu"}}, props.Links)
}

func TestParseOptions_Rejects_Invalid(t *testing.T) {
	cases := map[string]string{
		"past date":        "title: t\ndate: 2020-01-01T00:00:00Z",
		"missing title":    "date: 2030-02-01T00:00:00Z",
		"blank title":      "title: \"   \"\ndate: 2030-02-01T10:00:00Z",
		"bad date":         "title: t\ndate: tomorrow",
		"missing location": "title: t\ndate: 2030-02-01T00:00:00Z\nlocation_type: private",
		"bad link":         "title: t\ndate: 2030-02-01T00:00:00Z\nlinks:\n  - url: not a url",
		"not yaml":         "title: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOptions(body, now)
			require.ErrorIs(t, err, errors.ErrInvalidOptions)
		})
	}
}

func TestParseChanges(t *testing.T) {
	req := require.New(t)
	current := sampleMeetup()

	changes, err := ParseChanges("title: New title\nlocation_comments: Second gate", current, now)

	req.NoError(err)
	req.Equal(Set("New title"), changes.Title)
	req.False(changes.Description.Set)
	req.Equal(Set[Location](Address{Value: "Stanford Ave, Fremont", Comments: "Second gate"}), changes.Location)

	_, changed := changes.Apply(current)
	req.Equal([]string{FieldTitle, FieldLocation}, changed)
}

func TestParseChanges_Clears_Location(t *testing.T) {
	req := require.New(t)

	changes, err := ParseChanges("location_type: none", sampleMeetup(), now)

	req.NoError(err)
	req.True(changes.Location.Set)
	req.Nil(changes.Location.Value)
}

func TestParseChanges_Rejects_Invalid(t *testing.T) {
	noLocation := sampleMeetup()
	noLocation.Location = nil

	cases := map[string]string{
		"blank title":               "title: \"  \"",
		"location without its type": "location: 1 Main St",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseChanges(body, noLocation, now)
			require.ErrorIs(t, err, errors.ErrInvalidOptions)
		})
	}
}

func TestParseChanges_Location_Value_Keeps_Current_Type(t *testing.T) {
	req := require.New(t)

	changes, err := ParseChanges("location: Mission Peak", sampleMeetup(), now)

	req.NoError(err)
	req.Equal(Set[Location](Address{Value: "Mission Peak", Comments: "Meet at the gate"}), changes.Location)
}

func TestParseOptions_Explains_Validation_Errors(t *testing.T) {
	req := require.New(t)

	_, err := ParseOptions("date: 2030-02-01T00:00:00Z", now)
	req.EqualError(err, "invalid meetup options: title is required")

	_, err = ParseOptions("title: t\ndate: 2030-02-01T00:00:00Z\nlocation_type: boat", now)
	req.EqualError(err, "invalid meetup options: location_type must be one of address private voice")
}
