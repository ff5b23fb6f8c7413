// Package memory is an arena style order store: every order type lives in its own
// table keyed by id and parents are found by scanning for parent ids. It implements
// the same unit of work contract as the postgres adapter, including optimistic
// version checks, and backs the application tests and the service's memory mode.
package memory
