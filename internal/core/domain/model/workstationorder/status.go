package workstationorder

import (
	"fmt"

	"factory/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Pending
	WaitingForParts
	InProgress
	Halted
	Completed
	Abandoned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "UNKNOWN",
		Pending:         "PENDING",
		WaitingForParts: "WAITING_FOR_PARTS",
		InProgress:      "IN_PROGRESS",
		Halted:          "HALTED",
		Completed:       "COMPLETED",
		Abandoned:       "ABANDONED",
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
	if s <= Unknown || s > Abandoned {
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

func (s Status) IsFinal() bool {
	return s == Completed || s == Abandoned
}
