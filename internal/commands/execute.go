package commands

type Result struct {
	Message string
}

type Handlers struct {
	Add           func(AddArgs) (Result, error)
	Done          func(DoneArgs) (Result, error)
	Delete        func(DeleteArgs) (Result, error)
	Remind        func(RemindArgs) (Result, error)
	ClearReminder func(ClearReminderArgs) (Result, error)
	Show          func(ShowArgs) (Result, error)
	Import        func(ImportArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.Done(*cmd.Done)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.Delete(*cmd.Delete)
	case TypeRemind:
		if handlers.Remind == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.Remind(*cmd.Remind)
	case TypeClearReminder:
		if handlers.ClearReminder == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.ClearReminder(*cmd.ClearReminder)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.Show(*cmd.Show)
	case TypeImport:
		if handlers.Import == nil {
			return Result{}, handlerMissing(cmd.Type)
		}
		return handlers.Import(*cmd.Import)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: "unsupported command type: " + string(cmd.Type)}
	}
}

func handlerMissing(typ Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: "no handler registered for " + string(typ)}
}
