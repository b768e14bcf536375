package catalog

// WorkflowStep describes one step of the fixed hand-off process. The list is
// reference data for the progress indicator; it does not gate lifecycle
// transitions.
type WorkflowStep struct {
	Key       string
	Name      string
	Automated bool
}

var workflowSteps = []WorkflowStep{
	{Key: "metadata_prepared", Name: "Prepare release metadata", Automated: true},
	{Key: "files_validated", Name: "Validate audio and cover files", Automated: true},
	{Key: "package_generated", Name: "Generate hand-off package", Automated: true},
	{Key: "internal_review", Name: "Internal review", Automated: false},
	{Key: "routenote_uploaded", Name: "Upload to RouteNote", Automated: false},
	{Key: "distribution_confirmed", Name: "Confirm distribution live", Automated: false},
	{Key: "monitoring", Name: "Monitor streams and revenue", Automated: false},
}

// Steps returns the ordered hand-off workflow steps.
func Steps() []WorkflowStep {
	cp := make([]WorkflowStep, len(workflowSteps))
	copy(cp, workflowSteps)
	return cp
}

// StepCount returns the number of hand-off workflow steps.
func StepCount() int {
	return len(workflowSteps)
}
