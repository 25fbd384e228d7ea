package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd           Type = "add"
	TypeDone          Type = "done"
	TypeDelete        Type = "delete"
	TypeRemind        Type = "remind"
	TypeClearReminder Type = "clear-reminder"
	TypeShow          Type = "show"
	TypeImport        Type = "import"
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
	Title string
}

type DoneArgs struct {
	Target string
}

type DeleteArgs struct {
	Target string
}

type RemindArgs struct {
	Target  string
	Minutes int
}

type ClearReminderArgs struct {
	Target string
}

type ShowArgs struct {
	View string
}

type ImportArgs struct {
	Path string
}

type Command struct {
	Type          Type
	Raw           string
	Add           *AddArgs
	Done          *DoneArgs
	Delete        *DeleteArgs
	Remind        *RemindArgs
	ClearReminder *ClearReminderArgs
	Show          *ShowArgs
	Import        *ImportArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseTargetOnly(input, args, TypeDone)
	case TypeDelete:
		return parseTargetOnly(input, args, TypeDelete)
	case TypeRemind:
		return parseRemind(input, args)
	case TypeClearReminder:
		return parseTargetOnly(input, args, TypeClearReminder)
	case TypeShow:
		return parseShow(input, args)
	case TypeImport:
		return parseImport(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseTargetOnly(raw string, args []string, typ Type) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task reference", typ)}
	}
	target := strings.TrimSpace(args[0])
	cmd := Command{Type: typ, Raw: raw}
	switch typ {
	case TypeDone:
		cmd.Done = &DoneArgs{Target: target}
	case TypeDelete:
		cmd.Delete = &DeleteArgs{Target: target}
	case TypeClearReminder:
		cmd.ClearReminder = &ClearReminderArgs{Target: target}
	}
	return cmd, nil
}

func parseRemind(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "remind requires a task reference and minutes"}
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil || minutes < 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid reminder minutes: %s", args[1])}
	}
	return Command{Type: TypeRemind, Raw: raw, Remind: &RemindArgs{Target: strings.TrimSpace(args[0]), Minutes: minutes}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{View: "all"}}, nil
	}
	view := strings.ToLower(args[0])
	switch view {
	case "all", "today", "upcoming", "completed", "priority":
		return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{View: view}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view: %s", view)}
	}
}

func parseImport(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "import requires a file path"}
	}
	return Command{Type: TypeImport, Raw: raw, Import: &ImportArgs{Path: args[0]}}, nil
}
