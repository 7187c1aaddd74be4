package discord

import (
	"fmt"
	"meetup-bot/domain"
	"meetup-bot/runtime"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"
)

const (
	colorLive      = 0x2ecc71
	colorCancelled = 0xe74c3c
	colorEnded     = 0x95a5a6
)

// Embed formats a view as a Discord embed.
func Embed(view domain.View) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       view.Title,
		Description: view.Description,
		Color:       colorLive,
	}
	switch {
	case view.Cancelled != nil:
		embed.Title = "~~" + view.Title + "~~"
		embed.Color = colorCancelled
		embed.Description = "**Cancelled:** " + lo.Ternary(view.Cancelled.Reason == "", "no reason given", view.Cancelled.Reason)
	case view.Ended:
		embed.Title = view.Title + " (ended)"
		embed.Color = colorEnded
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "Organizer", Value: mention(view.OrganizerID), Inline: true},
		&discordgo.MessageEmbedField{Name: "Time", Value: view.Time, Inline: true},
	)
	if view.Location != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Location", Value: view.Location})
	}
	if len(view.Links) > 0 {
		links := lo.Map(view.Links, func(link domain.ViewLink, _ int) string {
			if link.Name == "" {
				return link.URL
			}
			return fmt.Sprintf("[%s](%s)", link.Name, link.URL)
		})
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Links", Value: strings.Join(links, "\n")})
	}
	if view.Cancelled == nil {
		embed.Fields = append(embed.Fields,
			rosterField(runtime.EmojiAttending+" Attending", view.Attending),
			rosterField(runtime.EmojiMaybe+" Maybe", view.Maybe),
		)
	}
	if view.ShowRoster {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("React with %s if you're coming, %s if you might", runtime.EmojiAttending, runtime.EmojiMaybe),
		}
	}
	return embed
}

func rosterField(name string, ids []string) *discordgo.MessageEmbedField {
	value := "-"
	if len(ids) > 0 {
		value = strings.Join(lo.Map(ids, func(id string, _ int) string { return mention(id) }), "\n")
	}
	return &discordgo.MessageEmbedField{Name: fmt.Sprintf("%s (%d)", name, len(ids)), Value: value, Inline: true}
}

func mention(userID string) string {
	return "<@" + userID + ">"
}
