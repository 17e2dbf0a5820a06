package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/remindd/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeEdit     Type = "edit"
	TypeDone     Type = "done"
	TypeFavorite Type = "fav"
	TypeDelete   Type = "del"
	TypeFilter   Type = "filter"
	TypeActivate Type = "activate"
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

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type AddArgs struct {
	Input model.TaskInput
}

type EditArgs struct {
	ID    int64
	Input model.TaskInput
}

// TargetArgs names the task a done/fav/del command acts on.
type TargetArgs struct {
	ID int64
}

type FilterArgs struct {
	Mode model.FilterMode
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Edit   *EditArgs
	Target *TargetArgs
	Filter *FilterArgs
}

var aliases = map[string]Type{
	"new":      TypeAdd,
	"complete": TypeDone,
	"toggle":   TypeDone,
	"favorite": TypeFavorite,
	"star":     TypeFavorite,
	"delete":   TypeDelete,
	"rm":       TypeDelete,
	"show":     TypeFilter,
}

// Parse reads one palette line. The leading slash is optional.
//
//	/add HH:MM <frequency> <name...>
//	/edit <id> HH:MM <frequency> <name...>
//	/done <id>, /fav <id>, /del <id>
//	/filter <all|pending|completed|favorites>
//	/activate
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	kind := Type(head)
	if alias, ok := aliases[head]; ok {
		kind = alias
	}

	switch kind {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeEdit:
		return parseEdit(input, args)
	case TypeDone, TypeFavorite, TypeDelete:
		return parseTarget(input, kind, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeActivate:
		if len(args) != 0 {
			return Command{}, invalid("activate takes no arguments")
		}
		return Command{Type: TypeActivate, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	in, err := parseTaskFields("add", args)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Input: in}}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("edit requires a task id")
	}
	id, err := parseID(args[0])
	if err != nil {
		return Command{}, err
	}
	in, err := parseTaskFields("edit", args[1:])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{ID: id, Input: in}}, nil
}

func parseTaskFields(verb string, args []string) (model.TaskInput, error) {
	if len(args) < 3 {
		return model.TaskInput{}, invalid("%s requires HH:MM, frequency and name", verb)
	}
	if !model.ValidClock(args[0]) {
		return model.TaskInput{}, invalid("time %q is not HH:MM", args[0])
	}
	return model.TaskInput{
		Time:      args[0],
		Frequency: args[1],
		Name:      strings.Join(args[2:], " "),
	}, nil
}

func parseTarget(raw string, kind Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires exactly one task id", kind)
	}
	id, err := parseID(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: kind, Raw: raw, Target: &TargetArgs{ID: id}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("filter requires a mode")
	}
	mode, err := model.ParseFilterMode(args[0])
	if err != nil {
		return Command{}, invalid("unknown filter %q", args[0])
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Mode: mode}}, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid("task id %q is not a positive number", s)
	}
	return id, nil
}
