package domain

import "time"

// RegistryBuild is the persisted record of one registry build.
type RegistryBuild struct {
	ID              string                `json:"id"`
	Trigger         string                `json:"trigger"`
	BuiltAt         time.Time             `json:"builtAt"`
	Entries         int                   `json:"entries"`
	SourceBreakdown map[AddressSource]int `json:"sourceBreakdown"`
	DynamicError    string                `json:"dynamicError,omitempty"`
	Valid           bool                  `json:"valid"`
	Errors          []string              `json:"errors"`
	Warnings        []string              `json:"warnings"`
	Addresses       []DepositAddress      `json:"addresses,omitempty"`
}
