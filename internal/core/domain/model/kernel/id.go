package kernel

import (
	"fmt"
	"strconv"

	"factory/internal/pkg/errs"
)

// ID is the opaque numeric identity of an order or catalog entry. Valid IDs are positive.
type ID int64

// ParseID converts the decimal representation of an ID, as found in URLs and messages.
func ParseID(raw string) (ID, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	id := ID(value)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id is invalid", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Ptr returns a pointer to a copy of id; used for optional parent references.
func (id ID) Ptr() *ID {
	return &id
}

// OrderNumber renders a human readable order number such as ORD-0001 or PO-00001.
func OrderNumber(prefix string, width int, id ID) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, int64(id))
}
