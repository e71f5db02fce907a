package provisioner

// Status is the result of one provisioning step.
type Status string

const (
	// StatusDone means the step made its change.
	StatusDone Status = "done"
	// StatusAlreadyPresent means the change was already in place.
	StatusAlreadyPresent Status = "already-present"
	// StatusSkipped means the step did not apply to this host.
	StatusSkipped Status = "skipped"
	// StatusFailed means a best-effort step failed and the run continued.
	StatusFailed Status = "failed-non-fatal"
)

// StepOutcome records a finished step for the summary.
type StepOutcome struct {
	Step   string
	Status Status
	Detail string
}
