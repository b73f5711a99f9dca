package types

type LockMode string

const (
	LockRead  LockMode = "read"
	LockWrite LockMode = "write"
)

// Lock is a named shared resource a job must hold while it runs. Read locks
// are compatible with each other, a write lock excludes every other holder.
type Lock struct {
	ID   string   `json:"id"   yaml:"id"`
	Mode LockMode `json:"mode" yaml:"mode"`
}

// FailureAction is what the orchestrator does with a job when one of its
// dependencies fails or is cancelled.
type FailureAction string

const (
	ActionAddProblem  FailureAction = "ADD_PROBLEM"
	ActionFailToStart FailureAction = "FAIL_TO_START"
	ActionIgnore      FailureAction = "IGNORE"
	ActionCancel      FailureAction = "CANCEL"
)

type Dependency struct {
	JobID     string        `json:"job_id"     yaml:"job_id"`
	OnFailure FailureAction `json:"on_failure" yaml:"on_failure"`
	OnCancel  FailureAction `json:"on_cancel"  yaml:"on_cancel"`
}

type Step struct {
	Name             string `json:"name"                    yaml:"name"`
	Script           string `json:"script"                  yaml:"script"`
	WorkingDirectory string `json:"working_directory"       yaml:"working_directory"`
	// Run even when an earlier step of the job failed.
	RunOnFailure bool `json:"run_on_failure"          yaml:"run_on_failure"`
	// A failure of this step does not fail the job.
	AllowFailure bool `json:"allow_failure,omitempty" yaml:"allow_failure,omitempty"`
	Disabled     bool `json:"disabled,omitempty"      yaml:"disabled,omitempty"`
}

type FailureConditions struct {
	NonZeroExitCode     bool  `json:"non_zero_exit_code"    yaml:"non_zero_exit_code"`
	ExecutionTimeoutMin int64 `json:"execution_timeout_min" yaml:"execution_timeout_min"`
}

type NotificationPolicy struct {
	ConnectionID               string `json:"connection_id"                  yaml:"connection_id"`
	Destination                string `json:"destination"                    yaml:"destination"`
	OnStart                    bool   `json:"on_start"                       yaml:"on_start"`
	OnFailure                  bool   `json:"on_failure"                     yaml:"on_failure"`
	OnFailedToStart            bool   `json:"on_failed_to_start"             yaml:"on_failed_to_start"`
	OnFirstFailure             bool   `json:"on_first_failure"               yaml:"on_first_failure"`
	OnFirstSuccessAfterFailure bool   `json:"on_first_success_after_failure" yaml:"on_first_success_after_failure"`
	OnSuccess                  bool   `json:"on_success"                     yaml:"on_success"`
}

// Trigger is a recurring schedule. An empty Weekday means every day.
type Trigger struct {
	Weekday      string `json:"weekday,omitempty" yaml:"weekday,omitempty"`
	Hour         int    `json:"hour"              yaml:"hour"`
	Minute       int    `json:"minute"            yaml:"minute"`
	Timezone     string `json:"timezone"          yaml:"timezone"`
	BranchFilter string `json:"branch_filter"     yaml:"branch_filter"`
}

type JobRole string

const (
	RoleSetup       JobRole = "setup"
	RoleService     JobRole = "service"
	RoleCleanup     JobRole = "cleanup"
	RolePullRequest JobRole = "pull_request"
	RoleSweeper     JobRole = "sweeper"
)

type BuildJob struct {
	ID                string              `json:"id"                      yaml:"id"`
	Name              string              `json:"name"                    yaml:"name"`
	Role              JobRole             `json:"role"                    yaml:"role"`
	Service           string              `json:"service,omitempty"       yaml:"service,omitempty"`
	Steps             []Step              `json:"steps"                   yaml:"steps"`
	Dependencies      []Dependency        `json:"dependencies,omitempty"  yaml:"dependencies,omitempty"`
	Locks             []Lock              `json:"locks,omitempty"         yaml:"locks,omitempty"`
	Env               map[string]string   `json:"env,omitempty"           yaml:"env,omitempty"`
	FailureConditions FailureConditions   `json:"failure_conditions"      yaml:"failure_conditions"`
	Notifications     *NotificationPolicy `json:"notifications,omitempty" yaml:"notifications,omitempty"`
}

// DependsOn reports whether the job declares a dependency on jobID.
func (j *BuildJob) DependsOn(jobID string) bool {
	for _, d := range j.Dependencies {
		if d.JobID == jobID {
			return true
		}
	}
	return false
}

func (j *BuildJob) HasLock(id string, mode LockMode) bool {
	for _, l := range j.Locks {
		if l.ID == id && l.Mode == mode {
			return true
		}
	}
	return false
}

type PipelineKind string

const (
	KindFull        PipelineKind = "full"
	KindPullRequest PipelineKind = "pull_request"
	KindSweeper     PipelineKind = "sweeper"
)

type Pipeline struct {
	ID            string              `json:"id"                      yaml:"id"`
	Name          string              `json:"name"                    yaml:"name"`
	Kind          PipelineKind        `json:"kind"                    yaml:"kind"`
	Mode          string              `json:"mode"                    yaml:"mode"`
	Jobs          []BuildJob          `json:"jobs"                    yaml:"jobs"`
	Trigger       *Trigger            `json:"trigger,omitempty"       yaml:"trigger,omitempty"`
	Notifications *NotificationPolicy `json:"notifications,omitempty" yaml:"notifications,omitempty"`
}

func (p *Pipeline) Job(id string) (*BuildJob, bool) {
	for i := range p.Jobs {
		if p.Jobs[i].ID == id {
			return &p.Jobs[i], true
		}
	}
	return nil, false
}

func (p *Pipeline) JobsWithRole(role JobRole) []*BuildJob {
	jobs := make([]*BuildJob, 0)
	for i := range p.Jobs {
		if p.Jobs[i].Role == role {
			jobs = append(jobs, &p.Jobs[i])
		}
	}
	return jobs
}
