package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/haatos/provider-ci/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_New(t *testing.T) {
	t.Run("success - insertion order is kept", func(t *testing.T) {
		// act
		r, err := New(ModeCustom,
			ServiceSpec{Key: "s3", DisplayName: "S3"},
			ServiceSpec{Key: "acm", DisplayName: "ACM"},
			ServiceSpec{Key: "ec2"},
		)

		// assert
		require.NoError(t, err)
		assert.Equal(t, 3, r.Len())
		specs := r.Enumerate()
		assert.Equal(t, "s3", specs[0].Key)
		assert.Equal(t, "acm", specs[1].Key)
		assert.Equal(t, "ec2", specs[2].Key)
		assert.Equal(t, "ec2", specs[2].DisplayName)
	})
	t.Run("failure - invalid and duplicate keys", func(t *testing.T) {
		cases := map[string][]ServiceSpec{
			"empty key":         {{Key: ""}},
			"uppercase key":     {{Key: "EC2"}},
			"dashed key":        {{Key: "ec2-ebs"}},
			"duplicate key":     {{Key: "s3"}, {Key: "s3"}},
			"bad split package": {{Key: "ec2ebs", SplitPackage: "../ec2"}},
			"negative parallel": {{Key: "s3", ParallelismOverride: -1}},
		}
		for name, specs := range cases {
			t.Run(name, func(t *testing.T) {
				r, err := New(ModeCustom, specs...)

				assert.Nil(t, r)
				var configErr *internal.ConfigurationError
				assert.True(t, errors.As(err, &configErr))
			})
		}
	})
}

func TestRegistry_Lookup(t *testing.T) {
	t.Run("success - service is found", func(t *testing.T) {
		r, err := ForMode(ModeFull)
		require.NoError(t, err)

		spec, err := r.Lookup("ec2ebs")

		assert.NoError(t, err)
		assert.Equal(t, "EBS (EC2)", spec.DisplayName)
		assert.Equal(t, "ec2", spec.PackageName())
	})
	t.Run("failure - unknown service", func(t *testing.T) {
		r, err := ForMode(ModeFull)
		require.NoError(t, err)

		_, err = r.Lookup("doesnotexist")

		assert.True(t, errors.Is(err, ErrServiceNotFound))
	})
}

func TestRegistry_Enumerate(t *testing.T) {
	t.Run("success - repeated calls are stable and independent", func(t *testing.T) {
		r, err := ForMode(ModeFull)
		require.NoError(t, err)

		first := r.Enumerate()
		first[0].DisplayName = "mutated"
		second := r.Enumerate()
		third := r.Enumerate()

		assert.Equal(t, second, third)
		assert.NotEqual(t, "mutated", second[0].DisplayName)
		assert.Len(t, second, r.Len())
	})
}

func TestRegistry_ForMode(t *testing.T) {
	t.Run("success - built-in registries", func(t *testing.T) {
		full, err := ForMode(ModeFull)
		require.NoError(t, err)
		org, err := ForMode(ModeOrgAccount)
		require.NoError(t, err)

		assert.Equal(t, ModeFull, full.Mode())
		assert.Equal(t, ModeOrgAccount, org.Mode())
		assert.Greater(t, full.Len(), org.Len())

		backup, err := org.Lookup("backup")
		require.NoError(t, err)
		assert.Equal(t, "TestAccBackupGlobalSettings_basic", backup.TestPatternOverride)
	})
	t.Run("failure - unknown mode", func(t *testing.T) {
		r, err := ForMode(Mode("partial"))

		assert.Nil(t, r)
		var configErr *internal.ConfigurationError
		assert.True(t, errors.As(err, &configErr))
	})
}

func TestRegistry_ParseMode(t *testing.T) {
	mode, err := ParseMode("org")
	assert.NoError(t, err)
	assert.Equal(t, ModeOrgAccount, mode)

	_, err = ParseMode("custom")
	assert.Error(t, err)
}

func TestRegistry_ParseHCL(t *testing.T) {
	t.Run("success - services are decoded with variables", func(t *testing.T) {
		// arrange
		src := []byte(`
service "ec2" {
  name             = "EC2"
  exclude_pattern  = "TestAccEC2EBS"
  vpc_lock         = true
}

service "ec2ebs" {
  name             = "EBS (EC2)"
  pattern_override = "TestAccEC2EBS"
  split_package    = "ec2"
  region           = var.alternate_region
  parallelism      = 5
}
`)

		// act
		r, err := ParseHCL(src, "services.hcl", map[string]string{"alternate_region": "us-east-1"})

		// assert
		require.NoError(t, err)
		assert.Equal(t, ModeCustom, r.Mode())
		specs := r.Enumerate()
		require.Len(t, specs, 2)
		assert.Equal(t, ServiceSpec{
			Key:                   "ec2",
			DisplayName:           "EC2",
			ExcludePattern:        "TestAccEC2EBS",
			RequiresExclusiveLock: true,
		}, specs[0])
		assert.Equal(t, ServiceSpec{
			Key:                 "ec2ebs",
			DisplayName:         "EBS (EC2)",
			TestPatternOverride: "TestAccEC2EBS",
			SplitPackage:        "ec2",
			RegionOverride:      "us-east-1",
			ParallelismOverride: 5,
		}, specs[1])
	})
	t.Run("success - account id variables are interpolated", func(t *testing.T) {
		// arrange
		src := []byte(`
service "organizations" {
  name             = "Organizations (${var.account_id})"
  pattern_override = "TestAccOrganizations_serial"
  exclude_pattern  = "TestAccOrganizations_${var.alternate_account_id}"
}
`)
		vars := map[string]string{
			"account_id":           "123456789012",
			"alternate_account_id": "210987654321",
		}

		// act
		r, err := ParseHCL(src, "services.hcl", vars)

		// assert
		require.NoError(t, err)
		specs := r.Enumerate()
		require.Len(t, specs, 1)
		assert.Equal(t, "Organizations (123456789012)", specs[0].DisplayName)
		assert.Equal(t, "TestAccOrganizations_210987654321", specs[0].ExcludePattern)
	})
	t.Run("failure - unknown variable", func(t *testing.T) {
		src := []byte(`
service "s3" {
  name   = "S3"
  region = var.third_region
}
`)

		r, err := ParseHCL(src, "services.hcl", nil)

		assert.Nil(t, r)
		var configErr *internal.ConfigurationError
		assert.True(t, errors.As(err, &configErr))
	})
	t.Run("failure - syntax error", func(t *testing.T) {
		r, err := ParseHCL([]byte(`service "s3" {`), "services.hcl", nil)

		assert.Nil(t, r)
		assert.Error(t, err)
	})
	t.Run("failure - duplicate keys", func(t *testing.T) {
		src := []byte(`
service "s3" { name = "S3" }
service "s3" { name = "S3 again" }
`)

		r, err := ParseHCL(src, "services.hcl", nil)

		assert.Nil(t, r)
		assert.ErrorContains(t, err, "duplicate service key")
	})
}

func TestRegistry_LoadHCLFile(t *testing.T) {
	t.Run("success - file is read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "services.hcl")
		err := os.WriteFile(path, []byte(`service "sqs" { name = "SQS" }`), 0o644)
		require.NoError(t, err)

		r, err := LoadHCLFile(path, nil)

		require.NoError(t, err)
		spec, err := r.Lookup("sqs")
		assert.NoError(t, err)
		assert.Equal(t, "SQS", spec.DisplayName)
	})
	t.Run("failure - missing file", func(t *testing.T) {
		_, err := LoadHCLFile(filepath.Join(t.TempDir(), "missing.hcl"), nil)

		assert.Error(t, err)
	})
}
