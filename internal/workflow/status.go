// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package workflow implements the project status state machine. Legal
// transitions are a fixed table; guards are evaluated against the project's
// persisted state at transition time. There is no forward skip: slides_ready
// is reachable only through analysis_done.
package workflow

import (
	"errors"
	"fmt"
)

// Status is a project's pipeline stage.
type Status string

const (
	StatusURLInput        Status = "url_input"
	StatusAnalyzing       Status = "analyzing"
	StatusAnalysisDone    Status = "analysis_done"
	StatusSupplementInput Status = "supplement_input"
	StatusSlidesReady     Status = "slides_ready"

	// StatusPromptsReady is a legacy synonym of slides_ready. It is legal
	// when read from storage but never written by new code.
	StatusPromptsReady Status = "prompts_ready"
)

// ErrIllegalTransition is returned when a requested transition is not in
// the legal-transition table or a guard rejected it.
var ErrIllegalTransition = errors.New("workflow: illegal status transition")

// transitions is the legal-transition table. Self-loops model re-entry
// (e.g. re-analysis while already in analysis_done).
var transitions = map[Status][]Status{
	StatusURLInput:  {StatusAnalyzing},
	StatusAnalyzing: {StatusAnalysisDone},
	StatusAnalysisDone: {
		StatusSupplementInput,
		StatusAnalysisDone, // re-analysis
	},
	StatusSupplementInput: {
		StatusAnalysisDone, // explicit back, or re-analysis re-entry
		StatusSlidesReady,
	},
	StatusSlidesReady:  {StatusSupplementInput},
	StatusPromptsReady: {StatusSupplementInput},
}

// Guards carries the persisted-state facts a transition may depend on.
type Guards struct {
	HasAnalysis bool
	HasSlides   bool
}

// Valid reports whether s is a known status value.
func Valid(s Status) bool {
	switch s {
	case StatusURLInput, StatusAnalyzing, StatusAnalysisDone,
		StatusSupplementInput, StatusSlidesReady, StatusPromptsReady:
		return true
	}
	return false
}

// Terminal reports whether s is a terminal-ish state: slides exist and
// further slide edits or prompt regeneration no longer change the status.
func Terminal(s Status) bool {
	return s == StatusSlidesReady || s == StatusPromptsReady
}

// CanTransition reports whether from -> to is in the legal-transition
// table, ignoring guards.
func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to against the table and the guards and
// returns the resulting status. Guard rules:
//
//   - analysis_done -> supplement_input requires a present analysis
//   - supplement_input -> slides_ready requires a present analysis
//   - back transitions (supplement_input -> analysis_done,
//     slides_ready -> supplement_input) discard nothing and need no guard
func Transition(from, to Status, g Guards) (Status, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	switch {
	case from == StatusAnalysisDone && to == StatusSupplementInput:
		if !g.HasAnalysis {
			return from, fmt.Errorf("%w: %s -> %s requires marketing analysis", ErrIllegalTransition, from, to)
		}
	case from == StatusSupplementInput && to == StatusSlidesReady:
		if !g.HasAnalysis {
			return from, fmt.Errorf("%w: %s -> %s requires marketing analysis", ErrIllegalTransition, from, to)
		}
	}

	return to, nil
}
