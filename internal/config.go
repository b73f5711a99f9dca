package internal

import (
	"encoding/json"
	"os"
	"time"

	"github.com/haatos/provider-ci/internal/util"
)

type HoursDuration time.Duration

func NewHoursDuration(hours int64) HoursDuration {
	return HoursDuration(time.Duration(hours) * time.Hour)
}

func (hd HoursDuration) MarshalJSON() ([]byte, error) {
	hours := float64(time.Duration(hd)) / float64(time.Hour)
	return json.Marshal(hours)
}

func (hd *HoursDuration) UnmarshalJSON(data []byte) error {
	var hours float64
	if err := json.Unmarshal(data, &hours); err != nil {
		return err
	}
	*hd = HoursDuration(hours * float64(time.Hour))
	return nil
}

// Minutes is the duration in whole minutes, the unit build timeouts are
// declared in.
func (hd HoursDuration) Minutes() int64 {
	return int64(time.Duration(hd) / time.Minute)
}

// Configuration holds build tunables that are not environment specific.
type Configuration struct {
	SetupTimeoutHours   HoursDuration `json:"setup_timeout_hours"`
	ServiceTimeoutHours HoursDuration `json:"service_timeout_hours"`
	RevisionsToKeep     int64         `json:"revisions_to_keep"`
}

func DefaultConfiguration() *Configuration {
	return &Configuration{
		SetupTimeoutHours:   NewHoursDuration(2),
		ServiceTimeoutHours: NewHoursDuration(12),
		RevisionsToKeep:     30,
	}
}

// LoadConfiguration reads the configuration file at path. A missing file is
// created with the defaults.
func LoadConfiguration(path string) (*Configuration, error) {
	config := DefaultConfiguration()

	configFileExists, _ := util.PathExists(path)
	if !configFileExists {
		b, err := json.MarshalIndent(config, "", "    ")
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return nil, err
		}
		return config, nil
	}

	configBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(configBytes, config); err != nil {
		return nil, NewConfigurationError(path, "invalid configuration file", err)
	}
	if config.RevisionsToKeep < 1 {
		return nil, NewConfigurationError("revisions_to_keep", "must be at least 1", nil)
	}
	return config, nil
}
