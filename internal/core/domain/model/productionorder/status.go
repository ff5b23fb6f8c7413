package productionorder

import (
	"fmt"

	"factory/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Created
	Submitted
	Scheduled
	InProgress
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Created:    "CREATED",
		Submitted:  "SUBMITTED",
		Scheduled:  "SCHEDULED",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
		Cancelled:  "CANCELLED",
	}
}

func ParseStatus(raw string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == raw {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", raw))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Priority orders production requests for the scheduling service.
type Priority int

const (
	UnknownPriority Priority = iota
	Low
	Normal
	High
	Urgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		UnknownPriority: "UNKNOWN",
		Low:             "LOW",
		Normal:          "NORMAL",
		High:            "HIGH",
		Urgent:          "URGENT",
	}
}

func ParsePriority(raw string) (Priority, error) {
	for priority, str := range getPriorityStrings() {
		if priority != UnknownPriority && str == raw {
			return priority, nil
		}
	}
	return UnknownPriority, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", raw))
}

func (p Priority) Validate() error {
	if p < Low || p > Urgent {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}
