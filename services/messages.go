package services

import (
	stderrors "errors"
	"meetup-bot/errors"
	"strings"
)

// UserMessage turns an error into the one line shown in chat.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, errors.ErrInvalidOptions):
		// validation messages are written for organizers already
		return strings.TrimPrefix(err.Error(), errors.ErrInvalidOptions.Error()+": ")
	case stderrors.Is(err, errors.ErrMeetupNotFound):
		return "I can't find a meetup with that id."
	case stderrors.Is(err, errors.ErrNotOrganizer):
		return "Only the organizer can change this meetup."
	case stderrors.Is(err, errors.ErrAlreadyTerminal):
		return "This meetup is already cancelled or over."
	case stderrors.Is(err, errors.ErrNotLive):
		return "This meetup can no longer be edited."
	case stderrors.Is(err, errors.ErrAlreadyPosted):
		return "This meetup has already been announced."
	case stderrors.Is(err, errors.ErrUnknownCommand):
		return "Unknown command. Try `!meetup create`, `!meetup list`, `!meetup cancel <id> <reason>` or `!meetup edit <id>`."
	default:
		return "Something went wrong, please try again later."
	}
}
