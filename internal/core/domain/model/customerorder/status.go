package customerorder

import (
	"fmt"

	"factory/internal/pkg/errs"
)

// Status represents the lifecycle state of a customer order.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	Pending
	Confirmed
	Processing
	Completed
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Confirmed:  "CONFIRMED",
		Processing: "PROCESSING",
		Completed:  "COMPLETED",
		Delivered:  "DELIVERED",
		Cancelled:  "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "PENDING",
		Confirmed:  "CONFIRMED",
		Processing: "PROCESSING",
		Completed:  "COMPLETED",
		Delivered:  "DELIVERED",
		Cancelled:  "CANCELLED",
	}
}

// ParseStatus converts the persisted or wire representation of a status.
func ParseStatus(raw string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == raw {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", raw))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
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

// IsFinal is true for statuses without outgoing transitions.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}
