package discord

import (
	"context"
	"fmt"
	"log/slog"
	"meetup-bot/domain"
	"meetup-bot/services"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"
)

// Messenger is the part of the Discord session the router writes with.
type Messenger interface {
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

var _ Messenger = (*discordgo.Session)(nil)

// Router turns chat commands into meetup service calls and replies in the channel.
type Router struct {
	log            *slog.Logger
	messenger      Messenger
	service        services.IMeetupService
	adminChannelID string
	timeout        time.Duration
	zone           *time.Location
}

func NewRouter(
	log *slog.Logger,
	messenger Messenger,
	service services.IMeetupService,
	adminChannelID string,
	timeout time.Duration,
	zone *time.Location,
) *Router {
	return &Router{
		log:            log,
		messenger:      messenger,
		service:        service,
		adminChannelID: adminChannelID,
		timeout:        timeout,
		zone:           zone,
	}
}

// OnMessageCreate is registered as a session handler.
func (r *Router) OnMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	command, err := ParseCommand(m.Content)
	if err != nil {
		r.reply(m.Message, services.UserMessage(err))
		return
	}
	if command.Kind == CommandNone {
		return
	}
	// events are dispatched synchronously, keep the gateway moving
	go r.handle(m.Message, command)
}

func (r *Router) handle(m *discordgo.Message, command Command) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	log := r.log.With("command", command.Kind, "author_id", m.Author.ID, "channel_id", m.ChannelID)

	switch command.Kind {
	case CommandCreate:
		meetup, err := r.service.Create(ctx, m.ChannelID, m.Author.ID, command.Body)
		if err != nil {
			log.Info("Create refused", "error", err)
			r.reply(m, services.UserMessage(err))
			return
		}
		log.Info("Meetup created", "meetup_id", meetup.ID)
		if err = r.messenger.ChannelMessageDelete(m.ChannelID, m.ID, discordgo.WithContext(ctx)); err != nil {
			log.Warn("Cannot delete create command", "error", err)
		}
	case CommandList:
		r.reply(m, r.describe(r.service.List(m.Author.ID)))
	case CommandCancel:
		if err := r.service.Cancel(ctx, m.Author.ID, command.ID, command.Reason); err != nil {
			log.Info("Cancel refused", "meetup_id", command.ID, "error", err)
			r.reply(m, services.UserMessage(err))
			return
		}
		r.reply(m, "Meetup cancelled.")
	case CommandEdit:
		changed, err := r.service.Edit(ctx, m.Author.ID, command.ID, command.Body)
		if err != nil {
			log.Info("Edit refused", "meetup_id", command.ID, "error", err)
			r.reply(m, services.UserMessage(err))
			return
		}
		r.reply(m, lo.Ternary(len(changed) == 0, "Nothing changed.", "Updated "+strings.Join(changed, ", ")+"."))
	case CommandRefresh:
		if m.ChannelID != r.adminChannelID {
			return
		}
		count, err := r.service.Refresh(ctx)
		if err != nil {
			log.Error("Refresh failed", "error", err)
			r.reply(m, services.UserMessage(err))
			return
		}
		r.reply(m, fmt.Sprintf("Refreshed, %d live meetups.", count))
	}
}

func (r *Router) describe(meetups []domain.Meetup) string {
	if len(meetups) == 0 {
		return "You have no upcoming meetups."
	}
	lines := lo.Map(meetups, func(m domain.Meetup, _ int) string {
		return fmt.Sprintf("`%s` %s, %s", m.ID, m.Title, m.Timestamp.In(r.zone).Format("Jan 02 3:04 PM MST"))
	})
	return "Your upcoming meetups:\n" + strings.Join(lines, "\n")
}

func (r *Router) reply(m *discordgo.Message, content string) {
	if content == "" {
		return
	}
	if _, err := r.messenger.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		r.log.Warn("Cannot reply", "channel_id", m.ChannelID, "error", err)
	}
}
