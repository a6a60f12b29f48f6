package proto

import (
	"strings"

	"chatrelay/internal/errors"
)

// Kind identifies a protocol command.
type Kind int

const (
	KindLogin Kind = iota
	KindMsg
	KindWho
	KindDM
	KindPing
)

// String returns the wire name of the command kind.
func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "LOGIN"
	case KindMsg:
		return "MSG"
	case KindWho:
		return "WHO"
	case KindDM:
		return "DM"
	case KindPing:
		return "PING"
	default:
		return "UNKNOWN"
	}
}

// Command is one parsed client command.  Name is the username argument
// (LOGIN target or DM recipient, verbatim as sent); Text is the message
// body with inter-word whitespace collapsed to single spaces.
type Command struct {
	Kind Kind
	Name string
	Text string
}

// Parse maps one trimmed line to a Command.  The verb is
// case-insensitive; arguments are whitespace-separated tokens.
// Malformed arity yields errors.ErrInvalidCommand, an unrecognised
// verb errors.ErrUnknownCommand.  Parse never consults session state.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.ErrUnknownCommand
	}

	switch strings.ToUpper(fields[0]) {
	case "LOGIN":
		if len(fields) < 2 {
			return Command{}, errors.ErrInvalidCommand
		}
		return Command{Kind: KindLogin, Name: fields[1]}, nil

	case "MSG":
		if len(fields) < 2 {
			return Command{}, errors.ErrInvalidCommand
		}
		return Command{Kind: KindMsg, Text: strings.Join(fields[1:], " ")}, nil

	case "WHO":
		// Extra tokens are ignored.
		return Command{Kind: KindWho}, nil

	case "DM":
		if len(fields) < 3 {
			return Command{}, errors.ErrInvalidCommand
		}
		return Command{Kind: KindDM, Name: fields[1], Text: strings.Join(fields[2:], " ")}, nil

	case "PING":
		return Command{Kind: KindPing}, nil

	default:
		return Command{}, errors.ErrUnknownCommand
	}
}
