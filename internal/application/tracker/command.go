package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alem-hub/attendance-tracker/internal/domain/attendance"
	"github.com/alem-hub/attendance-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMMANDS
// Input for the write operations that take user-entered fields. Struct tags
// are checked first; the domain invariant is checked again on the record.
// ══════════════════════════════════════════════════════════════════════════════

// AddSubject contains the data to create a record.
type AddSubject struct {
	// Name is the subject name. Surrounding whitespace is trimmed.
	Name string `validate:"required"`

	// Total is the number of classes already held. It is declared before
	// Attended so a negative total is reported as such.
	Total int `validate:"gte=0"`

	// Attended is the number of classes already attended.
	Attended int `validate:"gte=0,ltefield=Total"`
}

// EditSubject contains the replacement fields of an existing record.
type EditSubject struct {
	// ID of the record to edit.
	ID attendance.ID `validate:"required"`

	Name     string `validate:"required"`
	Total    int    `validate:"gte=0"`
	Attended int    `validate:"gte=0,ltefield=Total"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate validates the command.
func (c AddSubject) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	return validationError("Add", validate.Struct(c))
}

// Validate validates the command.
func (c EditSubject) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.ID = attendance.ID(strings.TrimSpace(string(c.ID)))
	return validationError("Edit", validate.Struct(c))
}

// validationError maps the first failed tag onto a domain error kind.
func validationError(op string, err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return shared.WrapError("tracker", op, shared.ErrValidation, "invalid input", err)
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		if fe.Field() == "ID" {
			return shared.NewDomainError("tracker", op, shared.ErrInvalidID, "record id is required")
		}
		return shared.NewDomainError("tracker", op, shared.ErrEmptyValue, field+" cannot be empty")
	case "gte":
		return shared.NewDomainError("tracker", op, shared.ErrNegativeValue, field+" cannot be negative")
	case "ltefield":
		return shared.NewDomainError("tracker", op, shared.ErrValueOutOfRange,
			fmt.Sprintf("%s cannot exceed %s", field, strings.ToLower(fe.Param())))
	default:
		return shared.WrapError("tracker", op, shared.ErrValidation, field+" is invalid", err)
	}
}
