package orchestration

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/threadbench/internal/errors"
)

// Phase is the coordinator state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePartitioned
	PhaseRunning
	PhaseJoined
	PhaseDone
)

var phaseNames = [...]string{"IDLE", "PARTITIONED", "RUNNING", "JOINED", "DONE"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MergeMode selects how local results reach the shared result.
type MergeMode string

const (
	// MergeLock folds each local result into one mutex-protected accumulator.
	MergeLock MergeMode = "lock"
	// MergeSlots stores each local result in a private cell folded after join.
	MergeSlots MergeMode = "slots"
)

// MergeModes lists the accepted values of --merge.
func MergeModes() []string { return []string{string(MergeLock), string(MergeSlots)} }

// ParseMergeMode validates a --merge value.
func ParseMergeMode(s string) (MergeMode, error) {
	switch m := MergeMode(strings.ToLower(s)); m {
	case MergeLock, MergeSlots:
		return m, nil
	case "":
		return MergeLock, nil
	default:
		return "", apperrors.NewInvalidArgument("merge", s, "must be one of "+strings.Join(MergeModes(), ", "))
	}
}
