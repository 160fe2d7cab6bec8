package appointment

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// UserError is implemented by every rejection the core raises. Code is stable
// and machine readable, UserMessage is what the salon staff reads.
type UserError interface {
	error
	Code() string
	UserMessage() string
}

// ===============================
// Validation
// ===============================

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Code)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Code() string { return "validation_error" }

func (e *ValidationError) UserMessage() string {
	if len(e.Fields) == 0 {
		return "Dados inválidos."
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, " ")
}

func (e *ValidationError) add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

// ===============================
// Availability
// ===============================

type ConflictError struct {
	ProfessionalID uint
	Start          time.Time
	End            time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time conflict for professional %d in [%s, %s)",
		e.ProfessionalID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *ConflictError) Code() string { return "time_conflict" }

func (e *ConflictError) UserMessage() string { return "Horário não disponível." }

// ===============================
// Stock
// ===============================

type StockError struct {
	ProductID   uint
	ProductName string
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

func (e *StockError) Code() string { return "insufficient_stock" }

func (e *StockError) UserMessage() string {
	name := e.ProductName
	if name == "" {
		name = fmt.Sprintf("#%d", e.ProductID)
	}
	return fmt.Sprintf("Estoque insuficiente para o produto %s.", name)
}

// ===============================
// Status
// ===============================

type InvalidTransitionError struct {
	From   Status
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s from %s", e.Action, e.From)
}

func (e *InvalidTransitionError) Code() string { return "invalid_transition" }

func (e *InvalidTransitionError) UserMessage() string {
	return "Ação inválida para o status atual."
}

type NotEditableError struct {
	Status Status
}

func (e *NotEditableError) Error() string {
	return fmt.Sprintf("appointment in status %s cannot be edited", e.Status)
}

func (e *NotEditableError) Code() string { return "appointment_not_editable" }

func (e *NotEditableError) UserMessage() string {
	return fmt.Sprintf("Agendamento %s não pode ser alterado.", strings.ToLower(e.Status.Label()))
}

// ===============================
// Lookups / collaborators
// ===============================

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Code() string { return e.Entity + "_not_found" }

func (e *NotFoundError) UserMessage() string {
	switch e.Entity {
	case "appointment":
		return "Agendamento não encontrado."
	case "product":
		return "Produto não encontrado."
	case "service":
		return "Serviço não encontrado."
	case "professional":
		return "Profissional não encontrado."
	}
	return "Registro não encontrado."
}

// ErrStaleStatus is returned by the store when another request changed the
// appointment status between the read and the write.
var ErrStaleStatus = errors.New("appointment status changed concurrently")

// CollaboratorError wraps any failure of the store or catalogs. The core never
// retries; the caller sees the collaborator's message.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

func (e *CollaboratorError) Code() string { return "collaborator_error" }

func (e *CollaboratorError) UserMessage() string {
	if errors.Is(e.Err, ErrStaleStatus) {
		return "O agendamento foi alterado por outro usuário. Recarregue e tente novamente."
	}
	return fmt.Sprintf("Falha ao %s: %v", e.Op, e.Err)
}

// Wrap lets typed rejections pass through and turns anything else into a
// CollaboratorError for op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ue UserError
	if errors.As(err, &ue) {
		return err
	}
	return &CollaboratorError{Op: op, Err: err}
}
