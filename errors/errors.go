package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrAlreadyPosted       = fmt.Errorf("meetup has already been posted")
	ErrAlreadyTerminal     = fmt.Errorf("meetup is already cancelled or ended")
	ErrNotLive             = fmt.Errorf("meetup is no longer live")
	ErrAnnouncementPending = fmt.Errorf("meetup announcement was never posted")
	ErrLegacyAnnouncement  = fmt.Errorf("legacy announcements are not reconciled")
	ErrMeetupNotFound      = fmt.Errorf("meetup not found")
	ErrNotOrganizer        = fmt.Errorf("only the organizer can change a meetup")
	ErrUnsupportedSchema   = fmt.Errorf("unsupported meetup schema")
	ErrInvalidOptions      = fmt.Errorf("invalid meetup options")
	ErrTornDown            = fmt.Errorf("announcement has been torn down")
	ErrUnknownCommand      = fmt.Errorf("unknown command")
)
