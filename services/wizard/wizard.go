// Package wizard drives linear, step-gated data entry flows.
//
// A Wizard holds an ordered list of steps, the index of the current step and a
// form value. Each step carries its own validator; moving forward is refused
// (not errored) while the current step is invalid, moving back is always allowed.
// A Wizard is not safe for concurrent use; callers serialize access.
package wizard

import (
	"errors"
)

// Form is implemented by form values that can produce an independent copy.
type Form[T any] interface {
	Clone() T
}

// Step is one page of a wizard. A nil Validate means the step never blocks.
type Step[T any] struct {
	Label    string
	Validate func(form T) *ValidationError
}

// StepState is the derived view of a step for rendering a stepper.
type StepState struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Active   bool   `json:"active"`
	Complete bool   `json:"complete"`
	Valid    bool   `json:"valid"`
}

type Wizard[T Form[T]] struct {
	steps   []Step[T]
	current int
	form    T
}

func New[T Form[T]](initial T, steps ...Step[T]) (*Wizard[T], error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	return &Wizard[T]{
		steps: append([]Step[T](nil), steps...),
		form:  initial.Clone(),
	}, nil
}

func (w *Wizard[T]) Current() int {
	return w.current
}

func (w *Wizard[T]) Len() int {
	return len(w.steps)
}

func (w *Wizard[T]) AtLastStep() bool {
	return w.current == len(w.steps)-1
}

// Form returns a copy of the current form.
func (w *Wizard[T]) Form() T {
	return w.form.Clone()
}

// Steps reports every step with completion derived from the current index.
func (w *Wizard[T]) Steps() []StepState {
	out := make([]StepState, len(w.steps))
	for i, s := range w.steps {
		out[i] = StepState{
			Index:    i,
			Label:    s.Label,
			Active:   i == w.current,
			Complete: w.current > i,
			Valid:    w.IsStepValid(i),
		}
	}
	return out
}

// Validate runs the validator of step i against the current form.
// It returns nil for valid steps and for out-of-range indexes.
func (w *Wizard[T]) Validate(i int) *ValidationError {
	if i < 0 || i >= len(w.steps) || w.steps[i].Validate == nil {
		return nil
	}
	verr := w.steps[i].Validate(w.form.Clone())
	if verr == nil {
		return nil
	}
	out := *verr
	out.Step = i
	out.Label = w.steps[i].Label
	return &out
}

func (w *Wizard[T]) IsStepValid(i int) bool {
	return w.Validate(i) == nil
}

// ValidateAll returns the first failing step, or nil when every step passes.
func (w *Wizard[T]) ValidateAll() *ValidationError {
	for i := range w.steps {
		if verr := w.Validate(i); verr != nil {
			return verr
		}
	}
	return nil
}

// Next advances one step. It is a no-op at the last step and while the current step is invalid.
func (w *Wizard[T]) Next() bool {
	if w.AtLastStep() || !w.IsStepValid(w.current) {
		return false
	}
	w.current++
	return true
}

// Back retreats one step without validation. It is a no-op at the first step.
func (w *Wizard[T]) Back() bool {
	if w.current == 0 {
		return false
	}
	w.current--
	return true
}

// GoTo jumps to step i for review or editing. Out-of-range indexes are ignored,
// and a forward jump is refused unless every step it skips over is valid.
func (w *Wizard[T]) GoTo(i int) bool {
	if i < 0 || i >= len(w.steps) || i == w.current {
		return false
	}
	for s := w.current; s < i; s++ {
		if !w.IsStepValid(s) {
			return false
		}
	}
	w.current = i
	return true
}

// Update applies fn to a copy of the form and stores the copy. It never moves the current step.
func (w *Wizard[T]) Update(fn func(form *T)) {
	next := w.form.Clone()
	fn(&next)
	w.form = next
}

// UpdateField replaces the value at a dotted JSON path such as "contactInfo.email"
// or "images.1". Values are coerced to the field type where unambiguous ("50" to 50).
func (w *Wizard[T]) UpdateField(path string, value any) error {
	next, err := setField(w.form, path, value)
	if err != nil {
		var ferr *FieldError
		if errors.As(err, &ferr) {
			return err
		}
		return &FieldError{Path: path, Err: ErrInvalidFieldValue, Msg: err.Error()}
	}
	w.form = next
	return nil
}
