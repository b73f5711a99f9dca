package registry

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/haatos/provider-ci/internal"
	"github.com/zclconf/go-cty/cty"
)

// hclServicesFile is the top-level structure of a services file:
//
//	service "ec2ebs" {
//	  name             = "EBS (EC2)"
//	  pattern_override = "TestAccEC2EBS"
//	  split_package    = "ec2"
//	  region           = var.alternate_region
//	}
type hclServicesFile struct {
	Services []*hclService `hcl:"service,block"`
}

type hclService struct {
	Key             string  `hcl:"key,label"`
	Name            string  `hcl:"name"`
	PatternOverride *string `hcl:"pattern_override,optional"`
	ExcludePattern  *string `hcl:"exclude_pattern,optional"`
	Region          *string `hcl:"region,optional"`
	Parallelism     *int64  `hcl:"parallelism,optional"`
	VPCLock         *bool   `hcl:"vpc_lock,optional"`
	SplitPackage    *string `hcl:"split_package,optional"`
}

func (s *hclService) toSpec() ServiceSpec {
	spec := ServiceSpec{Key: s.Key, DisplayName: s.Name}
	if s.PatternOverride != nil {
		spec.TestPatternOverride = *s.PatternOverride
	}
	if s.ExcludePattern != nil {
		spec.ExcludePattern = *s.ExcludePattern
	}
	if s.Region != nil {
		spec.RegionOverride = *s.Region
	}
	if s.Parallelism != nil {
		spec.ParallelismOverride = *s.Parallelism
	}
	if s.VPCLock != nil {
		spec.RequiresExclusiveLock = *s.VPCLock
	}
	if s.SplitPackage != nil {
		spec.SplitPackage = *s.SplitPackage
	}
	return spec
}

// evalContext exposes vars to the file as var.<name>.
func evalContext(vars map[string]string) *hcl.EvalContext {
	values := make(map[string]cty.Value, len(vars))
	for name, value := range vars {
		values[name] = cty.StringVal(value)
	}
	varObject := cty.EmptyObjectVal
	if len(values) > 0 {
		varObject = cty.ObjectVal(values)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": varObject},
	}
}

// LoadHCLFile reads a custom registry from an HCL services file.
func LoadHCLFile(path string, vars map[string]string) (*Registry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, internal.NewConfigurationError(path, "failed to parse services file", diags)
	}
	return decodeServices(file, path, vars)
}

// ParseHCL reads a custom registry from HCL source. filename is only used in
// diagnostics.
func ParseHCL(src []byte, filename string, vars map[string]string) (*Registry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, internal.NewConfigurationError(filename, "failed to parse services file", diags)
	}
	return decodeServices(file, filename, vars)
}

func decodeServices(file *hcl.File, filename string, vars map[string]string) (*Registry, error) {
	var parsed hclServicesFile
	diags := gohcl.DecodeBody(file.Body, evalContext(vars), &parsed)
	if diags.HasErrors() {
		return nil, internal.NewConfigurationError(filename, "failed to decode services file", diags)
	}

	specs := make([]ServiceSpec, 0, len(parsed.Services))
	for _, s := range parsed.Services {
		specs = append(specs, s.toSpec())
	}
	return New(ModeCustom, specs...)
}
