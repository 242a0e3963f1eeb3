package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

// Snapshot source drivers.
const (
	SourcePostgres = "postgres"
	SourceCSV      = "csv"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// Snapshot selects where the input facts come from.
	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Analytics tunes the report builders.
	Analytics AnalyticsConfig `json:"analytics" yaml:"analytics"`

	// Output configures where the dashboard document is published.
	Output OutputConfig `json:"output" yaml:"output"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// SnapshotConfig selects the snapshot source.
type SnapshotConfig struct {
	// Source is one of "postgres" or "csv".
	Source string `json:"source" yaml:"source"`
	// CSVDir is the directory holding the per-table CSV files when Source is "csv".
	CSVDir string `json:"csvDir" yaml:"csvDir"`
}

// AnalyticsConfig holds the report thresholds. Zero values fall back to the
// defaults in the analytics package.
type AnalyticsConfig struct {
	// ReferenceDate anchors RFM recency, ISO date (2006-01-02).
	// Empty means the newest order date in the snapshot.
	ReferenceDate string `json:"referenceDate" yaml:"referenceDate"`

	// ParetoThresholdPct is the cumulative revenue share separating top
	// performer categories from supporting ones.
	ParetoThresholdPct float64 `json:"paretoThresholdPct" yaml:"paretoThresholdPct"`

	// ABCClassAPct and ABCClassBPct are the cumulative sales share cut lines.
	ABCClassAPct float64 `json:"abcClassAPct" yaml:"abcClassAPct"`
	ABCClassBPct float64 `json:"abcClassBPct" yaml:"abcClassBPct"`

	// MinShipmentSample excludes courier groups with fewer shipments.
	MinShipmentSample int `json:"minShipmentSample" yaml:"minShipmentSample"`

	// CohortHorizonMonths truncates the retention matrix.
	CohortHorizonMonths int `json:"cohortHorizonMonths" yaml:"cohortHorizonMonths"`
}

// OutputConfig configures the published document.
type OutputConfig struct {
	// BucketURL is a gocloud blob URL, e.g. "file:///var/data/dashboard"
	// or "s3://analytics-exports?region=us-east-1".
	BucketURL string `json:"bucketURL" yaml:"bucketURL"`
	// ObjectKey is the key written inside the bucket.
	ObjectKey string `json:"objectKey" yaml:"objectKey"`
	// Pretty enables indented JSON for human inspection.
	Pretty bool `json:"pretty" yaml:"pretty"`
}

// LoadWithEnv loads .yaml files through koanf and overlays environment variables.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: OUTPUT_BUCKETURL -> output.bucketURL (not output.bucketurl)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// normalize applies defaults and rejects values the pipeline cannot run with.
func (cfg *Config) normalize() error {
	if cfg.Snapshot.Source == "" {
		cfg.Snapshot.Source = SourcePostgres
	}
	if cfg.Snapshot.Source != SourcePostgres && cfg.Snapshot.Source != SourceCSV {
		return errors.Errorf("unknown snapshot source: %s", cfg.Snapshot.Source)
	}
	if cfg.Snapshot.Source == SourceCSV && cfg.Snapshot.CSVDir == "" {
		return errors.New("snapshot.csvDir is required for the csv source")
	}
	if cfg.Output.ObjectKey == "" {
		cfg.Output.ObjectKey = "dashboard_data.json"
	}
	if cfg.Analytics.ReferenceDate != "" {
		if _, err := time.Parse("2006-01-02", cfg.Analytics.ReferenceDate); err != nil {
			return errors.Wrap(err, "invalid analytics.referenceDate")
		}
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
