package constants

// JobStatus is the canonical status for rows in extract_jobs.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued    JobStatus = "QUEUED"     // optional: queued for processing
	JobStatusRunning   JobStatus = "RUNNING"    // in progress
	JobStatusExtracted JobStatus = "EXTRACT_OK" // stage 1 completed (content normalized)
	JobStatusDegraded  JobStatus = "DEGRADED"   // stage 1 completed with a placeholder result
	JobStatusQuizOK    JobStatus = "QUIZ_OK"    // stage 2 completed (summary + quiz stored)
	JobStatusFailed    JobStatus = "FAILED"     // terminal failure
)

var allJobStatuses = []JobStatus{
	JobStatusQueued, JobStatusRunning, JobStatusExtracted, JobStatusDegraded, JobStatusQuizOK, JobStatusFailed,
}

func JobStatusesAsStringSlice() []string {
	out := make([]string, len(allJobStatuses))
	for i, s := range allJobStatuses {
		out[i] = string(s)
	}
	return out
}
