package discord

import (
	"log/slog"
	"meetup-bot/domain"
	"meetup-bot/errors"
	"meetup-bot/mocks/servicemocks"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const adminChannel = "admin"

type recordingMessenger struct {
	mu      sync.Mutex
	replies []string
	deleted []string
}

func (m *recordingMessenger) ChannelMessageSendReply(channelID string, content string, _ *discordgo.MessageReference, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (m *recordingMessenger) ChannelMessageDelete(_, messageID string, _ ...discordgo.RequestOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, messageID)
	return nil
}

func newRouter(t *testing.T) (*Router, *servicemocks.MockIMeetupService, *recordingMessenger) {
	ctrl := gomock.NewController(t)
	service := servicemocks.NewMockIMeetupService(ctrl)
	messenger := &recordingMessenger{}
	router := NewRouter(logs.GetLoggerFromLevel(slog.LevelDebug), messenger, service, adminChannel, time.Second, time.UTC)
	return router, service, messenger
}

func message(channelID, content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "command-1",
		ChannelID: channelID,
		GuildID:   "guild-1",
		Content:   content,
		Author:    &discordgo.User{ID: "alice"},
	}
}

func TestRouter_Refresh_Only_From_Admin_Channel(t *testing.T) {
	t.Run("should ignore refresh outside the admin channel", func(t *testing.T) {
		req := require.New(t)
		router, _, messenger := newRouter(t)

		// No Refresh expectation: any call fails the test
		router.handle(message("general", "$meetup refresh"), Command{Kind: CommandRefresh})

		req.Empty(messenger.replies)
	})

	t.Run("should rebuild from the admin channel", func(t *testing.T) {
		req := require.New(t)
		router, service, messenger := newRouter(t)
		service.EXPECT().Refresh(gomock.Any()).Return(2, nil)

		router.handle(message(adminChannel, "$meetup refresh"), Command{Kind: CommandRefresh})

		req.Equal([]string{"Refreshed, 2 live meetups."}, messenger.replies)
	})
}

func TestRouter_Edit_Replies_With_Changed_Fields(t *testing.T) {
	req := require.New(t)
	router, service, messenger := newRouter(t)
	command := Command{Kind: CommandEdit, ID: "m-1", Body: "title: Picnic"}

	gomock.InOrder(
		service.EXPECT().Edit(gomock.Any(), "alice", "m-1", "title: Picnic").Return(nil, nil),
		service.EXPECT().Edit(gomock.Any(), "alice", "m-1", "title: Picnic").
			Return([]string{domain.FieldTitle, domain.FieldLocation}, nil),
		service.EXPECT().Edit(gomock.Any(), "alice", "m-1", "title: Picnic").Return(nil, errors.ErrNotOrganizer),
	)

	for range 3 {
		router.handle(message("general", ""), command)
	}

	req.Equal([]string{
		"Nothing changed.",
		"Updated title, location.",
		"Only the organizer can change this meetup.",
	}, messenger.replies)
}

func TestRouter_Create_Deletes_The_Command(t *testing.T) {
	req := require.New(t)
	router, service, messenger := newRouter(t)
	body := "title: Picnic"

	gomock.InOrder(
		service.EXPECT().Create(gomock.Any(), "general", "alice", body).Return(domain.Meetup{ID: "m-1"}, nil),
		service.EXPECT().Create(gomock.Any(), "general", "alice", body).Return(domain.Meetup{}, errors.ErrInvalidOptions),
	)

	// When the create succeeds the command message goes away without a reply
	router.handle(message("general", ""), Command{Kind: CommandCreate, Body: body})
	req.Equal([]string{"command-1"}, messenger.deleted)
	req.Empty(messenger.replies)

	// When it fails the command stays and the organizer is told why
	router.handle(message("general", ""), Command{Kind: CommandCreate, Body: body})
	req.Len(messenger.deleted, 1)
	req.Len(messenger.replies, 1)
}

func TestRouter_Ignores_Bots_And_Chatter(t *testing.T) {
	req := require.New(t)
	router, _, messenger := newRouter(t)

	bot := message("general", "!meetup list")
	bot.Author.Bot = true
	router.OnMessageCreate(nil, &discordgo.MessageCreate{Message: bot})
	router.OnMessageCreate(nil, &discordgo.MessageCreate{Message: message("general", "see you there")})

	req.Empty(messenger.replies)
	req.Empty(messenger.deleted)
}
