package supplyorder

import (
	"fmt"

	"factory/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Pending
	InProgress
	Fulfilled
	Rejected
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		InProgress: "IN_PROGRESS",
		Fulfilled:  "FULFILLED",
		Rejected:   "REJECTED",
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
