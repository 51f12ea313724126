package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fintrack/internal/model"
)

// Field-level messages shown to the user.
const (
	MsgAmount          = "Amount must be greater than 0"
	MsgDescription     = "Description is required"
	MsgCategory        = "Category is required"
	MsgDate            = "Date is required"
	MsgDateFormat      = "Date must be YYYY-MM-DD"
	MsgKind            = "Type must be income or expense"
	msgCategoryForKind = "Category %q is not valid for %s"
)

// ValidationError describes a single invalid field of a Draft.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field of a Draft.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Field returns the message for field, or "" if the field is valid.
func (errs ValidationErrors) Field(field string) string {
	for _, e := range errs {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Draft is a transaction without an ID, as entered by the user.
type Draft struct {
	Kind        model.Kind
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        string
}

// DraftOf returns t without its ID.
func DraftOf(t model.Transaction) Draft {
	return Draft{
		Kind:        t.Kind,
		Amount:      t.Amount,
		Description: t.Description,
		Category:    t.Category,
		Date:        t.Date,
	}
}

// Validate checks every field of d and returns all violations, or nil.
func Validate(d Draft) ValidationErrors {
	var errs ValidationErrors

	if !d.Kind.Valid() {
		errs = append(errs, ValidationError{Field: "type", Message: MsgKind})
	}

	if !d.Amount.IsPositive() {
		errs = append(errs, ValidationError{Field: "amount", Message: MsgAmount})
	}

	if strings.TrimSpace(d.Description) == "" {
		errs = append(errs, ValidationError{Field: "description", Message: MsgDescription})
	}

	switch {
	case d.Category == "":
		errs = append(errs, ValidationError{Field: "category", Message: MsgCategory})
	case d.Kind.Valid() && !model.ValidCategory(d.Kind, d.Category):
		errs = append(errs, ValidationError{
			Field:   "category",
			Message: fmt.Sprintf(msgCategoryForKind, d.Category, strings.ToLower(d.Kind.Label())),
		})
	}

	if d.Date == "" {
		errs = append(errs, ValidationError{Field: "date", Message: MsgDate})
	} else if _, err := model.ParseDate(d.Date); err != nil {
		errs = append(errs, ValidationError{Field: "date", Message: MsgDateFormat})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ParseAmount parses user-entered amount text. Unparseable text fails the
// same way a non-positive amount does.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, ValidationErrors{{Field: "amount", Message: MsgAmount}}
	}
	return d, nil
}

func (d Draft) normalized() Draft {
	d.Description = strings.TrimSpace(d.Description)
	return d
}

func (d Draft) transaction(id string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Kind:        d.Kind,
		Amount:      d.Amount,
		Description: d.Description,
		Category:    d.Category,
		Date:        d.Date,
	}
}
