package commands

import (
	"fmt"
	"strings"
	"unicode"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeFilter Type = "filter"
	TypeClear  Type = "clear"
	TypeEdit   Type = "edit"
	TypeDone   Type = "done"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

type FilterArgs struct {
	Name string
}

// EditArgs carries replacement text for the selected task.
type EditArgs struct {
	Text string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Filter *FilterArgs
	Edit   *EditArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest := raw, ""
	if i := strings.IndexFunc(raw, unicode.IsSpace); i >= 0 {
		head, rest = raw[:i], strings.TrimSpace(raw[i:])
	}

	switch Type(strings.ToLower(head)) {
	case TypeAdd:
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
		}
		return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Text: rest}}, nil
	case TypeFilter:
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires all, pending or completed"}
		}
		return Command{Type: TypeFilter, Raw: input, Filter: &FilterArgs{Name: strings.ToLower(rest)}}, nil
	case TypeEdit:
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires new text"}
		}
		return Command{Type: TypeEdit, Raw: input, Edit: &EditArgs{Text: rest}}, nil
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeDone:
		return Command{Type: TypeDone, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}
