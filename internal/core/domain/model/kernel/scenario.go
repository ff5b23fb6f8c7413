package kernel

import (
	"fmt"

	"factory/internal/pkg/errs"
)

// Scenario is the fulfillment branch chosen for a customer order.
//
//	DirectFulfillment   modules are in stock, debit and assemble
//	ProductionRequired  modules are short, a production order restocks the depot
//	DirectProduction    large lot, the warehouse is bypassed entirely
type Scenario int

const (
	NoScenario Scenario = iota
	DirectFulfillment
	ProductionRequired
	DirectProduction
)

func getScenarioStrings() map[Scenario]string {
	return map[Scenario]string{
		NoScenario:         "",
		DirectFulfillment:  "DIRECT_FULFILLMENT",
		ProductionRequired: "PRODUCTION_REQUIRED",
		DirectProduction:   "DIRECT_PRODUCTION",
	}
}

func ParseScenario(raw string) (Scenario, error) {
	for scenario, str := range getScenarioStrings() {
		if str == raw {
			return scenario, nil
		}
	}
	return NoScenario, errs.NewValueIsInvalidErrorWithCause("scenario", fmt.Errorf("%q is not a known scenario", raw))
}

func (s Scenario) String() string {
	return getScenarioStrings()[s]
}

// IsSet reports whether a scenario has been decided.
func (s Scenario) IsSet() bool {
	return s != NoScenario
}
