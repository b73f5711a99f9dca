package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/haatos/provider-ci/internal"
	"github.com/haatos/provider-ci/internal/dag"
	"github.com/haatos/provider-ci/internal/types"
)

type DocumentFormat string

const (
	FormatYAML DocumentFormat = "yaml"
	FormatJSON DocumentFormat = "json"
)

func ParseDocumentFormat(s string) (DocumentFormat, error) {
	switch DocumentFormat(strings.ToLower(s)) {
	case "", FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", internal.NewConfigurationError("format", fmt.Sprintf("unsupported format %q", s), nil)
}

func (f DocumentFormat) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "application/yaml"
}

func pipelineGraph(p *types.Pipeline) (*dag.Graph, error) {
	g := dag.New()
	seen := make(map[string]bool, len(p.Jobs))
	for _, job := range p.Jobs {
		if job.ID == "" {
			return nil, fmt.Errorf("job %q has no id", job.Name)
		}
		if seen[job.ID] {
			return nil, fmt.Errorf("duplicate job id %q", job.ID)
		}
		seen[job.ID] = true
		g.AddNode(job.ID)
	}
	for _, job := range p.Jobs {
		for _, d := range job.Dependencies {
			if !seen[d.JobID] {
				return nil, fmt.Errorf("job %q depends on unknown job %q", job.ID, d.JobID)
			}
			if err := g.AddEdge(d.JobID, job.ID); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// ValidatePipeline checks that job ids are unique, every dependency points
// at a job of the pipeline and the job graph has no cycles.
func ValidatePipeline(p *types.Pipeline) error {
	g, err := pipelineGraph(p)
	if err != nil {
		return fmt.Errorf("invalid pipeline: %w", err)
	}
	if err := g.DetectCycles(); err != nil {
		return fmt.Errorf("invalid pipeline: %w", err)
	}
	return nil
}

// RenderPipeline serializes p with its jobs in dependency order.
func RenderPipeline(p *types.Pipeline, format DocumentFormat) ([]byte, error) {
	g, err := pipelineGraph(p)
	if err != nil {
		return nil, err
	}
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	ordered := *p
	ordered.Jobs = make([]types.BuildJob, 0, len(order))
	for _, id := range order {
		job, _ := p.Job(id)
		ordered.Jobs = append(ordered.Jobs, *job)
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(ordered, "", "  ")
	case FormatYAML:
		return yaml.Marshal(ordered)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
