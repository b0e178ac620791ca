package wizard

import (
	"errors"
	"fmt"
)

// Rule names the check that rejected a step.
type Rule string

const (
	RuleDateRequired         Rule = "DateRequired"
	RuleInvalidDate          Rule = "InvalidDate"
	RuleTimeRequired         Rule = "TimeRequired"
	RuleInvalidTimeRange     Rule = "InvalidTimeRange"
	RuleGuestCountOutOfRange Rule = "GuestCountOutOfRange"
	RuleTitleTooShort        Rule = "TitleTooShort"
	RuleCityTooShort         Rule = "CityTooShort"
	RuleBasePriceNotPositive Rule = "BasePriceNotPositive"
	RuleNoImageProvided      Rule = "NoImageProvided"
)

// ValidationError reports the first rule a step fails. It is a value for the
// caller to render; advancing simply does nothing while a step is invalid.
type ValidationError struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Rule    Rule   `json:"rule"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d (%s): %s: %s", e.Step, e.Label, e.Rule, e.Message)
}

// Invalid builds a ValidationError for use inside step validators.
func Invalid(rule Rule, field, message string) *ValidationError {
	return &ValidationError{Rule: rule, Field: field, Message: message}
}

var (
	ErrNoSteps           = errors.New("wizard needs at least one step")
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidFieldValue = errors.New("invalid field value")
)

// FieldError wraps ErrUnknownField or ErrInvalidFieldValue with the offending path.
type FieldError struct {
	Path string
	Err  error
	Msg  string
}

func (e *FieldError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Path, e.Err, e.Msg)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
