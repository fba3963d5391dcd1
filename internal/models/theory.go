package models

import (
	"fmt"
	"strings"
)

// Condition is a single predicate a theory applies to a feature value.
type Condition struct {
	Key      string `json:"key"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Signal names an auxiliary signal a theory consumes, with free-form params.
type Signal struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// TheorySpec is a domain-agnostic description of a wagering strategy. It is
// validated at construction and never mutated afterward.
type TheorySpec struct {
	Conditions   []Condition    `json:"conditions,omitempty"`
	Signals      []Signal       `json:"signals,omitempty"`
	TargetMarket string         `json:"target_market"`
	Params       map[string]any `json:"params,omitempty"`
}

// NewTheorySpec builds a TheorySpec, rejecting a blank target market.
func NewTheorySpec(targetMarket string, conditions []Condition, signals []Signal, params map[string]any) (*TheorySpec, error) {
	if strings.TrimSpace(targetMarket) == "" {
		return nil, fmt.Errorf("theory spec: target_market must not be empty")
	}
	return &TheorySpec{
		Conditions:   conditions,
		Signals:      signals,
		TargetMarket: targetMarket,
		Params:       params,
	}, nil
}
