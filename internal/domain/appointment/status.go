package appointment

import "strings"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ===============================
// Actions
// ===============================

type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionNoShow   Action = "no_show"
)

// ParseStatus accepts the canonical value in any case.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// ParseAction accepts "no-show" as an alias of "no_show".
func ParseAction(s string) (Action, bool) {
	a := Action(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch a {
	case ActionConfirm, ActionStart, ActionComplete, ActionCancel, ActionNoShow:
		return a, true
	}
	return "", false
}

// ===============================
// Transitions
// ===============================

// Next returns the status reached by applying action to from.
func Next(from Status, action Action) (Status, error) {
	switch from {
	case StatusScheduled:
		switch action {
		case ActionConfirm:
			return StatusConfirmed, nil
		case ActionCancel:
			return StatusCancelled, nil
		}
	case StatusConfirmed:
		switch action {
		case ActionStart:
			return StatusInProgress, nil
		case ActionCancel:
			return StatusCancelled, nil
		case ActionNoShow:
			return StatusNoShow, nil
		}
	case StatusInProgress:
		switch action {
		case ActionComplete:
			return StatusCompleted, nil
		case ActionCancel:
			return StatusCancelled, nil
		}
	case StatusCompleted, StatusCancelled, StatusNoShow:
		// terminal
	}
	return from, &InvalidTransitionError{From: from, Action: action}
}

// AvailableActions lists the actions exposed at s, in display order.
func AvailableActions(s Status) []Action {
	switch s {
	case StatusScheduled:
		return []Action{ActionConfirm, ActionCancel}
	case StatusConfirmed:
		return []Action{ActionStart, ActionCancel, ActionNoShow}
	case StatusInProgress:
		return []Action{ActionComplete, ActionCancel}
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return nil
	}
	return nil
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	case StatusScheduled, StatusConfirmed, StatusInProgress:
		return false
	}
	return false
}

// CanEdit define se linhas, horário, profissional ou desconto podem mudar
func (s Status) CanEdit() bool {
	switch s {
	case StatusScheduled, StatusConfirmed:
		return true
	case StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return false
	}
	return false
}

// BlocksAgenda reports whether an appointment in s occupies the professional's time.
func (s Status) BlocksAgenda() bool {
	switch s {
	case StatusCancelled:
		return false
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusNoShow:
		return true
	}
	return true
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Presentation
// ===============================

func (s Status) Label() string {
	switch s {
	case StatusScheduled:
		return "Agendado"
	case StatusConfirmed:
		return "Confirmado"
	case StatusInProgress:
		return "Em andamento"
	case StatusCompleted:
		return "Concluído"
	case StatusCancelled:
		return "Cancelado"
	case StatusNoShow:
		return "Não compareceu"
	}
	return string(s)
}

func (s Status) Color() string {
	switch s {
	case StatusScheduled:
		return "#3b82f6"
	case StatusConfirmed:
		return "#10b981"
	case StatusInProgress:
		return "#f59e0b"
	case StatusCompleted:
		return "#6b7280"
	case StatusCancelled:
		return "#ef4444"
	case StatusNoShow:
		return "#8b5cf6"
	}
	return "#9ca3af"
}

func (a Action) Label() string {
	switch a {
	case ActionConfirm:
		return "Confirmar"
	case ActionStart:
		return "Iniciar"
	case ActionComplete:
		return "Concluir"
	case ActionCancel:
		return "Cancelar"
	case ActionNoShow:
		return "Não compareceu"
	}
	return string(a)
}
