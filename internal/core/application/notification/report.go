// Package notification models the best effort side effects that follow a committed
// order change: ledger movements, published events and upward propagation hops.
// A failure here never undoes the local change. It is logged, counted and recorded
// in a Report so callers and tests can tell "committed, notification ok" apart from
// "committed, notification failed".
package notification

import (
	"errors"
	"strings"
)

// Outcome is the result of one downstream step.
type Outcome struct {
	Target string
	Err    error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

// Report collects outcomes in the order they happened. The zero value is ready to use.
type Report struct {
	outcomes []Outcome
}

func (r *Report) Record(target string, err error) {
	r.outcomes = append(r.outcomes, Outcome{Target: target, Err: err})
}

// Merge appends the outcomes of other.
func (r *Report) Merge(other Report) {
	r.outcomes = append(r.outcomes, other.outcomes...)
}

func (r Report) Outcomes() []Outcome {
	return append([]Outcome(nil), r.outcomes...)
}

func (r Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// OK is true when every recorded step succeeded, including when nothing was recorded.
func (r Report) OK() bool {
	return len(r.Failures()) == 0
}

// Err joins the failures, nil when there are none.
func (r Report) Err() error {
	var errs []error
	for _, o := range r.Failures() {
		errs = append(errs, errors.New(o.Target+": "+o.Err.Error()))
	}
	return errors.Join(errs...)
}

func (r Report) String() string {
	if len(r.outcomes) == 0 {
		return "no downstream steps"
	}
	parts := make([]string, 0, len(r.outcomes))
	for _, o := range r.outcomes {
		if o.OK() {
			parts = append(parts, o.Target+": ok")
			continue
		}
		parts = append(parts, o.Target+": "+o.Err.Error())
	}
	return strings.Join(parts, "; ")
}
