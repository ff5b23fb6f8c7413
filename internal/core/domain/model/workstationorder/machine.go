package workstationorder

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

// Event names of the workstation order state machine.
const (
	EventWaitForParts = "wait_for_parts"
	EventStart        = "start"
	EventHalt         = "halt"
	EventResume       = "resume"
	EventComplete     = "complete"
	EventAbandon      = "abandon"
)

func transitions() fsm.Events {
	return fsm.Events{
		{Name: EventWaitForParts, Src: []string{Pending.String()}, Dst: WaitingForParts.String()},
		{Name: EventStart, Src: []string{Pending.String(), WaitingForParts.String()}, Dst: InProgress.String()},
		{Name: EventHalt, Src: []string{InProgress.String()}, Dst: Halted.String()},
		{Name: EventResume, Src: []string{Halted.String()}, Dst: Pending.String()},
		{Name: EventComplete, Src: []string{InProgress.String()}, Dst: Completed.String()},
		{
			Name: EventAbandon,
			Src:  []string{Pending.String(), WaitingForParts.String(), InProgress.String(), Halted.String()},
			Dst:  Abandoned.String(),
		},
	}
}

// fire runs event against a machine positioned at from and returns the resulting status.
// The machine is rebuilt per call; the aggregate's status field stays the source of truth.
func fire(from Status, event string) (Status, error) {
	machine := fsm.NewFSM(from.String(), transitions(), fsm.Callbacks{})
	if err := machine.Event(context.Background(), event); err != nil {
		var noTransition fsm.NoTransitionError
		if errors.As(err, &noTransition) {
			return from, nil
		}
		return from, err
	}
	return ParseStatus(machine.Current())
}

// Can reports whether event is allowed from status.
func Can(status Status, event string) bool {
	return fsm.NewFSM(status.String(), transitions(), fsm.Callbacks{}).Can(event)
}
