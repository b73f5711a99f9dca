package service

import (
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/haatos/provider-ci/internal"
	"github.com/haatos/provider-ci/internal/registry"
	"github.com/haatos/provider-ci/internal/settings"
	"github.com/haatos/provider-ci/internal/types"
	"github.com/haatos/provider-ci/internal/util"
)

const (
	SetupJobID       = "SetUp"
	CleanupJobID     = "CleanUp"
	PullRequestJobID = "PullRequest"
	SweeperJobID     = "Sweeper"
	serviceJobPrefix = "Service_"
)

// ServiceJobID is the job ID of the test job for a service key.
func ServiceJobID(key string) string {
	return serviceJobPrefix + util.ToIdentifier(key)
}

// PipelineGenerator turns a service registry into a pipeline description.
// It only describes the graph; running it is up to the CI orchestrator.
type PipelineGenerator struct {
	settings *settings.AppSettings
	config   *internal.Configuration
}

func NewPipelineGenerator(
	settings *settings.AppSettings,
	config *internal.Configuration,
) *PipelineGenerator {
	if config == nil {
		config = internal.DefaultConfiguration()
	}
	return &PipelineGenerator{settings: settings, config: config}
}

// Generate builds the pipeline for r. When only is not empty, test jobs are
// limited to those service keys.
func (g *PipelineGenerator) Generate(
	r *registry.Registry,
	only ...string,
) (*types.Pipeline, error) {
	if g.settings.PullRequestBuild && g.settings.SweeperOnly {
		return nil, internal.NewConfigurationError(
			"PROVIDERCI_PULL_REQUEST_BUILD",
			"cannot be combined with PROVIDERCI_SWEEPER_ONLY",
			nil,
		)
	}

	notifications, err := g.notificationPolicy()
	if err != nil {
		return nil, err
	}

	p := &types.Pipeline{
		Mode:          string(r.Mode()),
		Trigger:       g.trigger(),
		Notifications: notifications,
	}

	switch {
	case g.settings.PullRequestBuild:
		p.Kind = types.KindPullRequest
		p.Jobs = []types.BuildJob{g.pullRequestJob()}
	case g.settings.SweeperOnly:
		p.Kind = types.KindSweeper
		p.Jobs = []types.BuildJob{g.sweeperJob()}
	default:
		p.Kind = types.KindFull
		specs, err := selectServices(r, only)
		if err != nil {
			return nil, err
		}
		jobs := make([]types.BuildJob, 0, len(specs)+2)
		jobs = append(jobs, g.setupJob())
		serviceIDs := make([]string, 0, len(specs))
		for _, spec := range specs {
			job, err := g.serviceJob(spec)
			if err != nil {
				return nil, err
			}
			serviceIDs = append(serviceIDs, job.ID)
			jobs = append(jobs, job)
		}
		jobs = append(jobs, g.cleanupJob(serviceIDs))
		p.Jobs = jobs
	}

	p.ID = util.ToIdentifier(fmt.Sprintf("AcceptanceTests_%s_%s", p.Mode, p.Kind))
	p.Name = fmt.Sprintf("Acceptance Tests (%s, %s)", p.Mode, p.Kind)

	if err := ValidatePipeline(p); err != nil {
		return nil, err
	}
	return p, nil
}

func selectServices(r *registry.Registry, only []string) ([]registry.ServiceSpec, error) {
	if len(only) == 0 {
		return r.Enumerate(), nil
	}
	for _, key := range only {
		if _, err := r.Lookup(key); err != nil {
			return nil, internal.NewConfigurationError("service", "unknown service key", err)
		}
	}
	specs := make([]registry.ServiceSpec, 0, len(only))
	for _, spec := range r.Enumerate() {
		if slices.Contains(only, spec.Key) {
			specs = append(specs, spec)
		}
	}
	return specs, nil
}

// baseEnv is the environment shared by every job.
func (g *PipelineGenerator) baseEnv() map[string]string {
	s := g.settings
	env := map[string]string{
		"TF_ACC":              "1",
		"AWS_ACCOUNT_ID":      s.AccountID,
		"AWS_DEFAULT_REGION":  s.DefaultRegion,
		"ACCTEST_PARALLELISM": strconv.FormatInt(s.AcctestParallelism, 10),
	}
	optional := map[string]string{
		"AWS_ALTERNATE_ACCOUNT_ID":      s.AlternateAccountID,
		"AWS_ALTERNATE_REGION":          s.AlternateRegion,
		"TF_ACC_ASSUME_ROLE_ARN":        s.AssumeRoleARN,
		"AWS_ALTERNATE_ASSUME_ROLE_ARN": s.AlternateAssumeRoleARN,
		"TF_LOG":                        s.TFLog,
	}
	for k, v := range optional {
		if v != "" {
			env[k] = v
		}
	}
	return env
}

func (g *PipelineGenerator) sweeperEnv() map[string]string {
	env := g.baseEnv()
	env["SWEEPER_REGIONS"] = strings.Join(g.settings.SweeperRegions, ",")
	return env
}

func configureGoEnvStep(runOnFailure bool) types.Step {
	return types.Step{
		Name:             "Configure Go Environment",
		Script:           internal.ScriptConfigureGoEnv,
		WorkingDirectory: ".",
		RunOnFailure:     runOnFailure,
	}
}

func failureConditions(timeout internal.HoursDuration) types.FailureConditions {
	return types.FailureConditions{
		NonZeroExitCode:     true,
		ExecutionTimeoutMin: timeout.Minutes(),
	}
}

// isolated records a failed or cancelled dependency on the dependent job,
// which still runs.
func isolated(jobID string) types.Dependency {
	return types.Dependency{
		JobID:     jobID,
		OnFailure: types.ActionAddProblem,
		OnCancel:  types.ActionIgnore,
	}
}

func (g *PipelineGenerator) setupJob() types.BuildJob {
	return types.BuildJob{
		ID:   SetupJobID,
		Name: "Set Up",
		Role: types.RoleSetup,
		Steps: []types.Step{
			configureGoEnvStep(false),
			{
				Name:             "Pre-Sweeper",
				Script:           internal.ScriptSweeper,
				WorkingDirectory: ".",
				AllowFailure:     true,
				Disabled:         !g.settings.EnablePreSweeper,
			},
			{
				Name:             "Run Provider Unit Tests",
				Script:           internal.ScriptProviderUnitTests,
				WorkingDirectory: ".",
			},
			{
				Name:             "Run Provider Acceptance Tests",
				Script:           internal.ScriptProviderAcceptanceTests,
				WorkingDirectory: ".",
			},
		},
		Env:               g.sweeperEnv(),
		FailureConditions: failureConditions(g.config.SetupTimeoutHours),
	}
}

func (g *PipelineGenerator) serviceJob(spec registry.ServiceSpec) (types.BuildJob, error) {
	serviceDir := path.Join(internal.ServiceDirRoot, spec.PackageName())
	// path.Join drops the leading "./"
	serviceDir = "./" + serviceDir

	env := g.baseEnv()
	env["SERVICE_DIR"] = serviceDir
	env["TEST_PATTERN"] = internal.DefaultTestPattern
	if spec.TestPatternOverride != "" {
		env["TEST_PATTERN"] = spec.TestPatternOverride
	}
	if spec.ExcludePattern != "" {
		env["TEST_EXCLUDE_PATTERN"] = spec.ExcludePattern
	}
	if spec.RegionOverride != "" {
		env["AWS_DEFAULT_REGION"] = spec.RegionOverride
	}
	if spec.ParallelismOverride > 0 {
		env["ACCTEST_PARALLELISM"] = strconv.FormatInt(spec.ParallelismOverride, 10)
	}

	job := types.BuildJob{
		ID:      ServiceJobID(spec.Key),
		Name:    spec.DisplayName,
		Role:    types.RoleService,
		Service: spec.Key,
		Steps: []types.Step{
			configureGoEnvStep(false),
			{
				Name:             "Compile Test Binary",
				Script:           internal.ScriptCompileTestBinary,
				WorkingDirectory: serviceDir,
			},
			{
				Name:             "Run Acceptance Tests",
				Script:           internal.ScriptServiceAcceptanceTests,
				WorkingDirectory: serviceDir,
			},
		},
		Dependencies:      []types.Dependency{isolated(SetupJobID)},
		Env:               env,
		FailureConditions: failureConditions(g.config.ServiceTimeoutHours),
	}

	if spec.RequiresExclusiveLock {
		if g.settings.VPCLockID == "" {
			return job, internal.NewConfigurationError(
				"PROVIDERCI_VPC_LOCK_ID",
				fmt.Sprintf("required by service %q", spec.Key),
				nil,
			)
		}
		job.Locks = []types.Lock{{ID: g.settings.VPCLockID, Mode: types.LockRead}}
	}

	return job, nil
}

func (g *PipelineGenerator) cleanupJob(serviceJobIDs []string) types.BuildJob {
	deps := make([]types.Dependency, 0, len(serviceJobIDs))
	for _, id := range serviceJobIDs {
		deps = append(deps, isolated(id))
	}
	if len(deps) == 0 {
		deps = append(deps, isolated(SetupJobID))
	}

	job := types.BuildJob{
		ID:   CleanupJobID,
		Name: "Clean Up",
		Role: types.RoleCleanup,
		Steps: []types.Step{
			configureGoEnvStep(true),
			{
				Name:             "Post-Sweeper",
				Script:           internal.ScriptSweeper,
				WorkingDirectory: ".",
				RunOnFailure:     true,
				AllowFailure:     true,
				Disabled:         !g.settings.EnablePostSweeper,
			},
		},
		Dependencies:      deps,
		Env:               g.sweeperEnv(),
		FailureConditions: failureConditions(g.config.SetupTimeoutHours),
	}
	if g.settings.EnablePostSweeper && g.settings.VPCLockID != "" {
		job.Locks = []types.Lock{{ID: g.settings.VPCLockID, Mode: types.LockWrite}}
	}
	return job
}

func (g *PipelineGenerator) pullRequestJob() types.BuildJob {
	job := types.BuildJob{
		ID:   PullRequestJobID,
		Name: "Pull Request",
		Role: types.RolePullRequest,
		Steps: []types.Step{
			configureGoEnvStep(false),
			{
				Name:             "Run Pull Request Tests",
				Script:           internal.ScriptPullRequestTests,
				WorkingDirectory: ".",
			},
		},
		Env:               g.baseEnv(),
		FailureConditions: failureConditions(g.config.ServiceTimeoutHours),
	}
	if g.settings.VPCLockID != "" {
		job.Locks = []types.Lock{{ID: g.settings.VPCLockID, Mode: types.LockRead}}
	}
	return job
}

func (g *PipelineGenerator) sweeperJob() types.BuildJob {
	job := types.BuildJob{
		ID:   SweeperJobID,
		Name: "Sweeper",
		Role: types.RoleSweeper,
		Steps: []types.Step{
			configureGoEnvStep(false),
			{
				Name:             "Run Sweeper",
				Script:           internal.ScriptSweeper,
				WorkingDirectory: ".",
			},
		},
		Env:               g.sweeperEnv(),
		FailureConditions: failureConditions(g.config.SetupTimeoutHours),
	}
	if g.settings.VPCLockID != "" {
		job.Locks = []types.Lock{{ID: g.settings.VPCLockID, Mode: types.LockWrite}}
	}
	return job
}

func (g *PipelineGenerator) trigger() *types.Trigger {
	if !g.settings.EnableNightly {
		return nil
	}
	schedule := g.settings.Schedule
	t := &types.Trigger{
		Hour:         schedule.Hour,
		Minute:       schedule.Minute,
		Timezone:     schedule.Timezone(),
		BranchFilter: "+:refs/heads/" + g.settings.Branch,
	}
	if schedule.Weekday != nil {
		t.Weekday = schedule.Weekday.String()
	}
	return t
}

func (g *PipelineGenerator) notificationPolicy() (*types.NotificationPolicy, error) {
	if g.settings.NotifierConnectionID == "" {
		return nil, nil
	}
	if g.settings.NotifierDestination == "" {
		return nil, internal.NewConfigurationError(
			"PROVIDERCI_NOTIFIER_DESTINATION",
			"required when PROVIDERCI_NOTIFIER_CONNECTION_ID is set",
			nil,
		)
	}
	return &types.NotificationPolicy{
		ConnectionID:               g.settings.NotifierConnectionID,
		Destination:                g.settings.NotifierDestination,
		OnStart:                    true,
		OnFailure:                  true,
		OnFailedToStart:            true,
		OnFirstFailure:             true,
		OnFirstSuccessAfterFailure: true,
		OnSuccess:                  true,
	}, nil
}
