package controlorder

import (
	"fmt"
	"time"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"
)

// Step is one scheduled task of a control order's instruction block.
type Step struct {
	Sequence  int
	ItemID    kernel.ID
	ItemName  string
	Quantity  int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

func (s Step) Validate() error {
	if err := s.ItemID.Validate(); err != nil {
		return err
	}
	if s.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("step quantity", fmt.Errorf("%d is not greater than 0", s.Quantity))
	}
	if !s.EndTime.IsZero() && s.EndTime.Before(s.StartTime) {
		return errs.NewValueIsInvalidErrorWithCause("step window", fmt.Errorf("step %d ends before it starts", s.Sequence))
	}
	return nil
}
