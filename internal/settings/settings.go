package settings

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/haatos/provider-ci/internal"
)

// AppSettings is assembled once at startup and passed explicitly to every
// component that needs it. It is never modified afterwards.
type AppSettings struct {
	ServiceMode  string
	ServicesFile string

	AccountID              string
	AlternateAccountID     string
	DefaultRegion          string
	AlternateRegion        string
	AssumeRoleARN          string
	AlternateAssumeRoleARN string
	SweeperRegions         []string
	AcctestParallelism     int64
	TFLog                  string
	VPCLockID              string

	NotifierConnectionID string
	NotifierDestination  string
	Schedule             Schedule
	Branch               string

	EnableNightly     bool
	PullRequestBuild  bool
	SweeperOnly       bool
	EnablePreSweeper  bool
	EnablePostSweeper bool

	Port        string
	DatabaseURL string
	HashKey     string

	PublishHost    string
	PublishUser    string
	PublishKeyPath string
	PublishPath    string
}

// Schedule is the recurring trigger time. A nil Weekday means every day.
type Schedule struct {
	Weekday  *time.Weekday
	Hour     int
	Minute   int
	Location *time.Location
}

func (s Schedule) Timezone() string {
	if s.Location == nil {
		return time.UTC.String()
	}
	return s.Location.String()
}

func NewSettings() (*AppSettings, error) {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	settings := AppSettings{
		ServiceMode:            getEnvOrDefault("PROVIDERCI_SERVICE_MODE", "full"),
		ServicesFile:           getEnvOrDefault("PROVIDERCI_SERVICES_FILE", ""),
		AccountID:              getEnvOrDefault("AWS_ACCOUNT_ID", ""),
		AlternateAccountID:     getEnvOrDefault("AWS_ALTERNATE_ACCOUNT_ID", ""),
		DefaultRegion:          getEnvOrDefault("AWS_DEFAULT_REGION", ""),
		AlternateRegion:        getEnvOrDefault("AWS_ALTERNATE_REGION", ""),
		AssumeRoleARN:          getEnvOrDefault("TF_ACC_ASSUME_ROLE_ARN", ""),
		AlternateAssumeRoleARN: getEnvOrDefault("AWS_ALTERNATE_ASSUME_ROLE_ARN", ""),
		TFLog:                  getEnvOrDefault("TF_LOG", ""),
		VPCLockID:              getEnvOrDefault("PROVIDERCI_VPC_LOCK_ID", "aws_vpc_lock"),
		NotifierConnectionID:   getEnvOrDefault("PROVIDERCI_NOTIFIER_CONNECTION_ID", ""),
		NotifierDestination:    getEnvOrDefault("PROVIDERCI_NOTIFIER_DESTINATION", ""),
		Branch:                 getEnvOrDefault("PROVIDERCI_BRANCH", "main"),
		Port:                   getEnvOrDefault("PROVIDERCI_PORT", ":8080"),
		DatabaseURL:            getEnvOrDefault("PROVIDERCI_DB_PATH", "file:providerci.sqlite"),
		HashKey:                getEnvOrDefault("PROVIDERCI_HASH_KEY", ""),
		PublishHost:            getEnvOrDefault("PROVIDERCI_PUBLISH_HOST", ""),
		PublishUser:            getEnvOrDefault("PROVIDERCI_PUBLISH_USER", ""),
		PublishKeyPath:         getEnvOrDefault("PROVIDERCI_PUBLISH_KEY_PATH", ""),
		PublishPath:            getEnvOrDefault("PROVIDERCI_PUBLISH_PATH", ""),
	}
	if !strings.HasPrefix(settings.Port, ":") {
		settings.Port = ":" + settings.Port
	}

	if settings.AccountID == "" {
		collect(internal.NewConfigurationError("AWS_ACCOUNT_ID", "required parameter is missing", nil))
	}
	if settings.DefaultRegion == "" {
		collect(internal.NewConfigurationError("AWS_DEFAULT_REGION", "required parameter is missing", nil))
	}

	settings.SweeperRegions = splitList(getEnvOrDefault("SWEEPER_REGIONS", settings.DefaultRegion))

	var err error
	settings.AcctestParallelism, err = getEnvInt("ACCTEST_PARALLELISM", 20)
	collect(err)
	settings.EnableNightly, err = getEnvBool("PROVIDERCI_ENABLE_NIGHTLY", false)
	collect(err)
	settings.PullRequestBuild, err = getEnvBool("PROVIDERCI_PULL_REQUEST_BUILD", false)
	collect(err)
	settings.SweeperOnly, err = getEnvBool("PROVIDERCI_SWEEPER_ONLY", false)
	collect(err)
	settings.EnablePreSweeper, err = getEnvBool("PROVIDERCI_ENABLE_PRE_SWEEPER", true)
	collect(err)
	settings.EnablePostSweeper, err = getEnvBool("PROVIDERCI_ENABLE_POST_SWEEPER", false)
	collect(err)

	settings.Schedule, err = parseSchedule(
		getEnvOrDefault("PROVIDERCI_SCHEDULE_DAY", ""),
		getEnvOrDefault("PROVIDERCI_SCHEDULE_TIME", "23:00"),
		getEnvOrDefault("PROVIDERCI_SCHEDULE_TIMEZONE", "Etc/UTC"),
	)
	collect(err)

	if settings.PullRequestBuild && settings.SweeperOnly {
		collect(internal.NewConfigurationError(
			"PROVIDERCI_PULL_REQUEST_BUILD",
			"cannot be combined with PROVIDERCI_SWEEPER_ONLY",
			nil,
		))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &settings, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, internal.NewConfigurationError(key, "expected a boolean", err)
	}
	return b, nil
}

func getEnvInt(key string, defaultValue int64) (int64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue, internal.NewConfigurationError(key, "expected an integer", err)
	}
	if v < 1 {
		return defaultValue, internal.NewConfigurationError(key, "must be at least 1", nil)
	}
	return v, nil
}

func splitList(s string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

func parseSchedule(day, at, timezone string) (Schedule, error) {
	s := Schedule{}

	if day != "" && !strings.EqualFold(day, "daily") {
		key := strings.ToLower(day)
		if len(key) > 3 {
			key = key[:3]
		}
		wd, ok := weekdays[key]
		if !ok {
			return s, internal.NewConfigurationError(
				"PROVIDERCI_SCHEDULE_DAY", fmt.Sprintf("unknown day of week %q", day), nil,
			)
		}
		s.Weekday = &wd
	}

	t, err := time.Parse("15:04", at)
	if err != nil {
		return s, internal.NewConfigurationError("PROVIDERCI_SCHEDULE_TIME", "expected HH:MM", err)
	}
	s.Hour, s.Minute = t.Hour(), t.Minute()

	s.Location, err = time.LoadLocation(timezone)
	if err != nil {
		return s, internal.NewConfigurationError("PROVIDERCI_SCHEDULE_TIMEZONE", "unknown timezone", err)
	}

	return s, nil
}

// HCLVariables are the values a services file can reference as var.<name>.
func (as *AppSettings) HCLVariables() map[string]string {
	return map[string]string{
		"account_id":           as.AccountID,
		"alternate_account_id": as.AlternateAccountID,
		"default_region":       as.DefaultRegion,
		"alternate_region":     as.AlternateRegion,
	}
}

func (as *AppSettings) IsPostgres() bool {
	return strings.HasPrefix(as.DatabaseURL, "postgres://") ||
		strings.HasPrefix(as.DatabaseURL, "postgresql://")
}

func (as *AppSettings) SQLiteDbString(readonly bool) string {
	params := make(url.Values)
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "synchronous(NORMAL)")
	params.Add("_pragma", "foreign_keys(1)")
	if readonly {
		params.Add("mode", "ro")
	} else {
		params.Add("_txlock", "immediate")
		params.Add("mode", "rwc")
	}

	return as.DatabaseURL + "?" + params.Encode()
}

// ReadDotenv exports KEY=value lines from the file at path. A missing file is
// not an error.
func ReadDotenv(path string) {
	re := regexp.MustCompile(`^[^0-9][A-Z0-9_]+=.+$`)
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal("err opening dotenv: ", err)
		}
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) > 0 && line[0] != '#' && re.Match(line) {
			name, value, _ := strings.Cut(string(line), "=")
			name = strings.TrimSpace(name)
			value = strings.TrimSpace(value)
			value = strings.Trim(value, `"`)
			os.Setenv(name, value)
		}
	}
}
