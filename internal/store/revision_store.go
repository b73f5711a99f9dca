package store

import "time"

// Revision is a rendered pipeline document kept for later retrieval.
type Revision struct {
	RevisionID  string    `json:"revision_id"`
	Mode        string    `json:"mode"`
	Kind        string    `json:"kind"`
	JobCount    int64     `json:"job_count"`
	Format      string    `json:"format"`
	Document    string    `json:"document,omitempty"`
	GeneratedOn time.Time `json:"generated_on"`
}
