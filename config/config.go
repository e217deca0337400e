package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultCartKey            = "boulevardCart"
	defaultCatalogPath        = "config/catalog.yaml"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Catalog locates the static product catalog file.
	Catalog struct {
		Path string `json:"path" yaml:"path"`
	} `json:"catalog" yaml:"catalog"`

	// Storage configures the durable cart store.
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// OrderIntake configures delivery of completed orders.
	OrderIntake *OrderIntakeConfig `json:"orderIntake" yaml:"orderIntake"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StorageConfig selects and parameterizes the cart storage adapter.
type StorageConfig struct {
	// Provider type: "file", "redis" or "memory"
	Provider string `json:"provider" yaml:"provider"`

	// Key under which the serialized cart is stored
	Key string `json:"key" yaml:"key"`

	// Directory backing the file provider
	Path string `json:"path" yaml:"path"`

	// Redis connection settings (for redis provider)
	Redis struct {
		Addr     string `json:"addr" yaml:"addr"`
		Password string `json:"password" yaml:"password"`
		DB       int    `json:"db" yaml:"db"`
	} `json:"redis" yaml:"redis"`
}

// OrderIntakeConfig selects and parameterizes the intake endpoint. The exact
// backend (spreadsheet webhook vs. static form host) is a deployment choice,
// so the payload shape is driven by configuration rather than code.
type OrderIntakeConfig struct {
	// Provider type: "sheet" for a JSON webhook, "form" for an urlencoded
	// static form post, "noop" to log and accept orders locally
	Provider string `json:"provider" yaml:"provider"`

	// Endpoint is the single HTTP POST target
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Timeout bounds one delivery attempt
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// FieldMapping renames the payload fields for the sheet provider
	FieldMapping FieldMapping `json:"fieldMapping" yaml:"fieldMapping"`

	// FormName identifies the form for the form provider
	FormName string `json:"formName" yaml:"formName"`

	// CurrencySuffix is appended to the rendered total for the form provider
	CurrencySuffix string `json:"currencySuffix" yaml:"currencySuffix"`
}

// FieldMapping holds the JSON field names the sheet webhook expects. Empty
// fields fall back to the Apps Script defaults.
type FieldMapping struct {
	CustomerName string `json:"customerName" yaml:"customerName"`
	Address      string `json:"address" yaml:"address"`
	Phone        string `json:"phone" yaml:"phone"`
	Items        string `json:"items" yaml:"items"`
	GrandTotal   string `json:"grandTotal" yaml:"grandTotal"`
}

// LoadWithEnv loads .yaml files through koanf.
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
			// Example: ORDERINTAKE_FORMNAME -> orderIntake.formName (not orderintake.formname)
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

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if strings.TrimSpace(cfg.Catalog.Path) == "" {
		cfg.Catalog.Path = defaultCatalogPath
	}
	if cfg.Storage != nil && strings.TrimSpace(cfg.Storage.Key) == "" {
		cfg.Storage.Key = defaultCartKey
	}

	return cfg, nil
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
