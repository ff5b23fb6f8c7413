// Package guard holds the constructor guard shared by commands and value objects.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as created through its constructor. Embedding it lets a
// type tell a properly built instance from a zero value:
//
//	type ConfirmCommand struct {
//	    orderID kernel.ID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c ConfirmCommand) Validate() error {
//	    return c.guard.Validate(ErrConfirmCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
