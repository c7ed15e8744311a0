// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runner

// Result is the recorded outcome of one target's operation.
type Result struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	// Detail is the failure diagnostic, or optional success detail.
	Detail string `json:"detail,omitempty"`
}

// Report aggregates one run's outcomes.
type Report struct {
	// Operation is the verb of the operation that ran.
	Operation string `json:"operation"`

	// Total is the number of canonical targets in the run.
	Total int `json:"total"`

	// Cancelled is set when the confirmation function declined; no
	// operations were performed.
	Cancelled bool `json:"cancelled,omitempty"`

	// Interrupted is set when the process was interrupted mid-run;
	// targets after the interruption point were not attempted.
	Interrupted bool `json:"interrupted,omitempty"`

	// Results holds per-target outcomes in execution order.
	Results []Result `json:"results"`
}

// Successes counts targets whose operation succeeded.
func (r *Report) Successes() int {
	n := 0
	for _, result := range r.Results {
		if result.OK {
			n++
		}
	}
	return n
}

// Failures returns the attempted targets whose operation failed, in
// execution order. Summaries list these with their diagnostics.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, result := range r.Results {
		if !result.OK {
			failed = append(failed, result)
		}
	}
	return failed
}

// FullSuccess reports whether every target was attempted and
// succeeded. Cancelled or interrupted runs are never fully
// successful.
func (r *Report) FullSuccess() bool {
	return !r.Cancelled && !r.Interrupted && r.Successes() == r.Total
}

// SequenceReport aggregates the two phases of a power-cycle sequence.
// The phases are independent attempts: phase two runs against every
// target even when phase one failed for some of them.
type SequenceReport struct {
	// Cancelled is set when the confirmation function declined.
	Cancelled bool `json:"cancelled,omitempty"`

	// ForceOff and PowerCycle are the per-phase reports. Nil when the
	// run was cancelled before execution.
	ForceOff   *Report `json:"force_off,omitempty"`
	PowerCycle *Report `json:"power_cycle,omitempty"`
}

// FullSuccess reports whether both phases fully succeeded.
func (s *SequenceReport) FullSuccess() bool {
	if s.Cancelled || s.ForceOff == nil || s.PowerCycle == nil {
		return false
	}
	return s.ForceOff.FullSuccess() && s.PowerCycle.FullSuccess()
}
