package ingest

import (
	"time"
)

// Step is one stage of the ingestion run, in execution order.
type Step int

const (
	StepConnect Step = iota + 1
	StepProvision
	StepIngest
	StepVerify
)

// Steps lists every step in the order the pipeline runs them.
var Steps = []Step{StepConnect, StepProvision, StepIngest, StepVerify}

func (s Step) String() string {
	switch s {
	case StepConnect:
		return "connect"
	case StepProvision:
		return "provision"
	case StepIngest:
		return "ingest"
	case StepVerify:
		return "verify"
	default:
		return "unknown"
	}
}

func (s Step) sentinel() error {
	switch s {
	case StepConnect:
		return ErrAuthentication
	case StepProvision:
		return ErrProvisioning
	case StepIngest:
		return ErrIngestion
	default:
		return ErrVerification
	}
}

// Status is the outcome of a step.
type Status int

const (
	StatusPending Status = iota
	StatusOK
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// StepResult records how a step ended.
type StepResult struct {
	Step     Step
	Status   Status
	Duration time.Duration
	Err      error
}
