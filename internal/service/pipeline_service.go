package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/haatos/provider-ci/internal"
	"github.com/haatos/provider-ci/internal/registry"
	"github.com/haatos/provider-ci/internal/store"
	"github.com/haatos/provider-ci/internal/types"
	"github.com/haatos/provider-ci/internal/util"
)

type UUIDGenerator interface {
	GenerateUUID() string
}

func NewUUIDGen() *UUIDGen {
	return &UUIDGen{}
}

type UUIDGen struct{}

func (ug *UUIDGen) GenerateUUID() string {
	return uuid.NewString()
}

type RevisionWriter interface {
	CreateRevision(context.Context, *store.Revision) error
	PruneRevisions(context.Context, int64) (int64, error)
}

type RevisionReader interface {
	ReadRevisionByID(context.Context, string) (*store.Revision, error)
	ReadLatestRevision(context.Context) (*store.Revision, error)
	ListRevisions(context.Context) ([]*store.Revision, error)
}

type RevisionStore interface {
	RevisionWriter
	RevisionReader
}

type PipelineService struct {
	registry      *registry.Registry
	generator     *PipelineGenerator
	revisionStore RevisionStore
	uuidGenerator UUIDGenerator
	scheduler     gocron.Scheduler
	config        *internal.Configuration
	now           func() time.Time
}

func NewPipelineService(
	registry *registry.Registry,
	generator *PipelineGenerator,
	revisionStore RevisionStore,
	uuidGenerator UUIDGenerator,
	scheduler gocron.Scheduler,
	config *internal.Configuration,
) *PipelineService {
	if config == nil {
		config = internal.DefaultConfiguration()
	}
	return &PipelineService{
		registry:      registry,
		generator:     generator,
		revisionStore: revisionStore,
		uuidGenerator: uuidGenerator,
		scheduler:     scheduler,
		config:        config,
		now:           time.Now,
	}
}

func (s *PipelineService) ListServices() []registry.ServiceSpec {
	return s.registry.Enumerate()
}

func (s *PipelineService) GetService(key string) (registry.ServiceSpec, error) {
	return s.registry.Lookup(key)
}

func (s *PipelineService) GeneratePipeline(only ...string) (*types.Pipeline, error) {
	return s.generator.Generate(s.registry, only...)
}

// RenderPipeline generates a fresh pipeline document without storing it.
func (s *PipelineService) RenderPipeline(
	format DocumentFormat,
	only ...string,
) ([]byte, error) {
	p, err := s.GeneratePipeline(only...)
	if err != nil {
		return nil, err
	}
	return RenderPipeline(p, format)
}

// CreateRevision generates, renders and stores a pipeline document, then
// prunes revisions beyond the configured retention.
func (s *PipelineService) CreateRevision(
	ctx context.Context,
	format DocumentFormat,
) (*store.Revision, error) {
	p, err := s.GeneratePipeline()
	if err != nil {
		return nil, err
	}
	doc, err := RenderPipeline(p, format)
	if err != nil {
		return nil, err
	}

	r := &store.Revision{
		RevisionID:  s.uuidGenerator.GenerateUUID(),
		Mode:        p.Mode,
		Kind:        string(p.Kind),
		JobCount:    int64(len(p.Jobs)),
		Format:      string(format),
		Document:    string(doc),
		GeneratedOn: s.now().UTC(),
	}
	if err := s.revisionStore.CreateRevision(ctx, r); err != nil {
		return nil, err
	}

	pruned, err := s.revisionStore.PruneRevisions(ctx, s.config.RevisionsToKeep)
	if err != nil {
		return nil, err
	}
	if pruned > 0 {
		slog.Info("pruned pipeline revisions", "count", pruned)
	}
	return r, nil
}

func (s *PipelineService) GetRevision(
	ctx context.Context,
	id string,
) (*store.Revision, error) {
	return s.revisionStore.ReadRevisionByID(ctx, id)
}

func (s *PipelineService) GetLatestRevision(ctx context.Context) (*store.Revision, error) {
	return s.revisionStore.ReadLatestRevision(ctx)
}

func (s *PipelineService) ListRevisions(ctx context.Context) ([]*store.Revision, error) {
	return s.revisionStore.ListRevisions(ctx)
}

// ScheduleRegeneration registers a job that stores a new revision on the
// pipeline's trigger schedule. It returns nil when the pipeline has no trigger.
func (s *PipelineService) ScheduleRegeneration(format DocumentFormat) (*string, error) {
	if s.scheduler == nil {
		return nil, nil
	}
	p, err := s.GeneratePipeline()
	if err != nil {
		return nil, err
	}
	if p.Trigger == nil {
		return nil, nil
	}

	definition, err := triggerJobDefinition(p.Trigger)
	if err != nil {
		return nil, err
	}
	job, err := s.scheduler.NewJob(
		definition,
		gocron.NewTask(func() {
			r, err := s.CreateRevision(context.Background(), format)
			if err != nil {
				slog.Error("scheduled pipeline revision failed", "error", err)
				return
			}
			slog.Info("scheduled pipeline revision stored", "revision_id", r.RevisionID)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("error scheduling pipeline regeneration: %+w", err)
	}
	return util.AsPtr(job.ID().String()), nil
}
