package profiles

import (
	"errors"
	"strings"
)

// The onboarding wizard is a strictly linear four-step flow:
// role -> focus tags -> critical categories -> communication style.
// Each step has a completeness predicate that gates Next; Back is refused on
// the first step. The wizard itself holds no persistence: Complete hands the
// accumulated selections to the caller for a single upsert.

type Step int

const (
	StepRole Step = iota
	StepFocus
	StepCategories
	StepStyle
)

func (s Step) String() string {
	switch s {
	case StepRole:
		return "role"
	case StepFocus:
		return "focus"
	case StepCategories:
		return "critical_categories"
	case StepStyle:
		return "communication_style"
	}
	return "unknown"
}

var (
	ErrStepIncomplete = errors.New("current step is incomplete")
	ErrFirstStep      = errors.New("already on the first step")
	ErrNotFinalStep   = errors.New("wizard has remaining steps")
)

// Selections accumulates the user's choices across steps.
type Selections struct {
	Role               string   `json:"role"`
	FocusTags          []string `json:"focus_tags"`
	CriticalCategories []string `json:"critical_categories"`
	CommunicationStyle string   `json:"communication_style"`
}

type Wizard struct {
	step Step
	sel  Selections
}

func NewWizard() *Wizard {
	return &Wizard{step: StepRole}
}

func (w *Wizard) Step() Step             { return w.step }
func (w *Wizard) Selections() Selections { return w.sel }
func (w *Wizard) SetRole(role string)    { w.sel.Role = role }
func (w *Wizard) SetFocusTags(tags []string) {
	w.sel.FocusTags = cleanList(tags)
}
func (w *Wizard) SetCriticalCategories(cats []string) {
	w.sel.CriticalCategories = cleanList(cats)
}
func (w *Wizard) SetCommunicationStyle(style string) {
	w.sel.CommunicationStyle = style
}

// CanAdvance is the completeness predicate for the current step.
func (w *Wizard) CanAdvance() bool {
	return stepComplete(w.step, w.sel)
}

func stepComplete(step Step, sel Selections) bool {
	switch step {
	case StepRole:
		return ValidRole(sel.Role)
	case StepFocus:
		return len(sel.FocusTags) > 0
	case StepCategories:
		return len(sel.CriticalCategories) > 0
	case StepStyle:
		return ValidStyle(sel.CommunicationStyle)
	}
	return false
}

// Next advances to the following step, refusing while the current step's
// predicate does not hold.
func (w *Wizard) Next() error {
	if !w.CanAdvance() {
		return ErrStepIncomplete
	}
	if w.step < StepStyle {
		w.step++
	}
	return nil
}

// Back returns to the previous step. Selections are kept.
func (w *Wizard) Back() error {
	if w.step == StepRole {
		return ErrFirstStep
	}
	w.step--
	return nil
}

// Complete returns the accumulated selections, valid only on the final step
// with its predicate satisfied. The caller performs the one upsert.
func (w *Wizard) Complete() (Selections, error) {
	if w.step != StepStyle {
		return Selections{}, ErrNotFinalStep
	}
	if !w.CanAdvance() {
		return Selections{}, ErrStepIncomplete
	}
	return w.sel, nil
}

// ValidateSelections runs every step predicate against a full payload, for
// handlers that receive the finished wizard in one request.
func ValidateSelections(sel Selections) error {
	for step := StepRole; step <= StepStyle; step++ {
		if !stepComplete(step, sel) {
			return ErrStepIncomplete
		}
	}
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
