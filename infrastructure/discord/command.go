package discord

import (
	"fmt"
	"meetup-bot/errors"
	"strings"
)

const (
	userPrefix  = "!meetup"
	adminPrefix = "$meetup"
)

type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandCreate
	CommandList
	CommandCancel
	CommandEdit
	CommandRefresh
)

// Command is a parsed chat command. Body holds the YAML following the first line.
type Command struct {
	Kind   CommandKind
	ID     string
	Reason string
	Body   string
}

// ParseCommand reads a chat message. Messages that do not start with a command
// prefix give CommandNone.
func ParseCommand(content string) (Command, error) {
	content = strings.TrimSpace(content)
	head, body, _ := strings.Cut(content, "\n")
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return Command{}, nil
	}

	switch fields[0] {
	case adminPrefix:
		if len(fields) == 2 && fields[1] == "refresh" {
			return Command{Kind: CommandRefresh}, nil
		}
		return Command{}, fmt.Errorf("%w: %s", errors.ErrUnknownCommand, head)
	case userPrefix:
	default:
		return Command{}, nil
	}

	if len(fields) < 2 {
		return Command{}, fmt.Errorf("%w: %s", errors.ErrUnknownCommand, head)
	}
	switch fields[1] {
	case "create":
		return Command{Kind: CommandCreate, Body: stripFence(body)}, nil
	case "list":
		return Command{Kind: CommandList}, nil
	case "cancel":
		if len(fields) < 3 {
			return Command{}, fmt.Errorf("%w: cancel needs a meetup id", errors.ErrUnknownCommand)
		}
		reason := strings.TrimSpace(strings.Join(fields[3:], " ") + "\n" + body)
		return Command{Kind: CommandCancel, ID: fields[2], Reason: reason}, nil
	case "edit":
		if len(fields) < 3 {
			return Command{}, fmt.Errorf("%w: edit needs a meetup id", errors.ErrUnknownCommand)
		}
		return Command{Kind: CommandEdit, ID: fields[2], Body: stripFence(body)}, nil
	default:
		return Command{}, fmt.Errorf("%w: %s", errors.ErrUnknownCommand, fields[1])
	}
}

// stripFence removes a surrounding ``` or ```yaml code block.
func stripFence(body string) string {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "```") {
		return body
	}
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimPrefix(body, "yaml")
	body = strings.TrimPrefix(body, "yml")
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
