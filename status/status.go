package status

import (
	"fmt"
	"strings"
)

// Code identifies one of the fixed workflow states, or the aging-qualified
// family produced by fail streak refinement.
type Code int

const (
	Unknown Code = iota
	ScrapLackTask
	ScrapHasTask
	WaitingApprovalScrap
	ApprovedBGA
	WaitingApprovalBGA
	CantRepairProcess
	WaitingScrap
	ReworkFG
	RepairInRE
	WaitingCheckOut
	RepairInPD
	PendingInstructions
	AgingQualified
)

var codeLabels = map[Code]string{
	ScrapLackTask:        "ScrapLackTask",
	ScrapHasTask:         "ScrapHasTask",
	WaitingApprovalScrap: "WaitingApprovalScrap",
	ApprovedBGA:          "ApprovedBGA",
	WaitingApprovalBGA:   "WaitingApprovalBGA",
	CantRepairProcess:    "Can'tRepairProcess",
	WaitingScrap:         "WaitingScrap",
	ReworkFG:             "ReworkFG",
	RepairInRE:           "RepairInRE",
	WaitingCheckOut:      "WaitingCheckOut",
	RepairInPD:           "RepairInPD",
	PendingInstructions:  "PendingInstructions",
}

// fixedOrder is the order labels are listed in by Labels.
var fixedOrder = []Code{
	ScrapLackTask, ScrapHasTask, WaitingApprovalScrap, ApprovedBGA, WaitingApprovalBGA,
	CantRepairProcess, WaitingScrap, ReworkFG, RepairInRE, WaitingCheckOut, RepairInPD,
	PendingInstructions,
}

// RepairPhase is how many times a unit has already cycled through repair
// in its current test group.
type RepairPhase int

const (
	WaitingRepair RepairPhase = iota + 1
	RepairedOnce
	RepairedTwice
)

func (p RepairPhase) String() string {
	switch p {
	case WaitingRepair:
		return "waiting repair"
	case RepairedOnce:
		return "CB repaired once but"
	case RepairedTwice:
		return "CB repaired twice but"
	}
	return ""
}

// AgingBucket splits units by days since check-in.
type AgingBucket int

const (
	Under30 AgingBucket = iota + 1
	Over30
)

func (b AgingBucket) String() string {
	switch b {
	case Under30:
		return "aging day <30"
	case Over30:
		return "aging day >30"
	}
	return ""
}

// Status is the single workflow state assigned to a unit. Phase and Bucket
// are only meaningful when Code is AgingQualified.
type Status struct {
	Code   Code
	Phase  RepairPhase
	Bucket AgingBucket
}

// Of returns the fixed status for c.
func Of(c Code) Status {
	return Status{Code: c}
}

// Aging returns the refined status for a repair unit.
func Aging(phase RepairPhase, bucket AgingBucket) Status {
	return Status{Code: AgingQualified, Phase: phase, Bucket: bucket}
}

func (s Status) String() string {
	if s.Code == AgingQualified {
		if s.Phase.String() == "" || s.Bucket.String() == "" {
			return ""
		}
		return s.Phase.String() + " " + s.Bucket.String()
	}
	return codeLabels[s.Code]
}

// Allowed reports whether s may appear in report output. The check is an
// exact membership test; labels merely containing an allowed label are not
// accepted.
func (s Status) Allowed() bool {
	return s.String() != ""
}

// IsRepair reports whether s is one of the two in-repair states refined by
// fail streak analysis.
func (s Status) IsRepair() bool {
	return s.Code == RepairInRE || s.Code == RepairInPD
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Allowed() {
		return nil, fmt.Errorf("status: cannot marshal unclassified status %+v", s)
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("status: unknown label %q", string(text))
	}
	*s = parsed
	return nil
}

var byLabel = func() map[string]Status {
	m := make(map[string]Status)
	for c, label := range codeLabels {
		m[label] = Of(c)
	}
	for _, p := range []RepairPhase{WaitingRepair, RepairedOnce, RepairedTwice} {
		for _, b := range []AgingBucket{Under30, Over30} {
			st := Aging(p, b)
			m[st.String()] = st
		}
	}
	return m
}()

// Parse resolves an exact serialized label back into a Status.
func Parse(label string) (Status, bool) {
	s, ok := byLabel[strings.TrimSpace(label)]
	return s, ok
}

// Labels lists every label a report can contain: the fixed states first,
// then each aging-qualified combination.
func Labels() []string {
	labels := make([]string, 0, len(byLabel))
	for _, c := range fixedOrder {
		labels = append(labels, codeLabels[c])
	}
	for _, p := range []RepairPhase{WaitingRepair, RepairedOnce, RepairedTwice} {
		for _, b := range []AgingBucket{Under30, Over30} {
			labels = append(labels, Aging(p, b).String())
		}
	}
	return labels
}
