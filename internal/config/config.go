package config

import (
	"encoding/json"
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	LLM      *llmConfig
	Analysis *analysisConfig
	Ecfr     *ecfrConfig
	Archive  *archiveConfig
	Worker   *workerConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"ecfr"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Name             string   `envconfig:"SERVICE_NAME" default:"ecfr-analyzer"`
	Address          string   `envconfig:"SERVICE_ADDRESS" default:":3001"`
	MetricsAddress   string   `envconfig:"METRICS_ADDRESS" default:":8080"`
	LogLevel         string   `envconfig:"LOG_LEVEL" default:"info"`
	MigrationFolder  string   `envconfig:"MIGRATIONS_FOLDER" default:""`
	ElasticsearchURL string   `envconfig:"ELASTICSEARCH_URL" default:"http://localhost:9200"`
	AllowedOrigins   []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type llmConfig struct {
	APIKey         string        `envconfig:"LLM_API_KEY" default:""`
	APIURL         string        `envconfig:"LLM_API_URL" default:"https://api.openai.com/v1"`
	DefaultModel   string        `envconfig:"LLM_DEFAULT_MODEL" default:"gpt-4o-mini"`
	TimeoutSeconds int           `envconfig:"LLM_TIMEOUT_SECONDS" default:"120"`
	Temperature    float64       `envconfig:"LLM_TEMPERATURE" default:"0.2"`
	MaxRetries     int           `envconfig:"LLM_MAX_RETRIES" default:"2"`
	MinInterval    time.Duration `envconfig:"LLM_MIN_INTERVAL" default:"500ms"`
	MaxInputTokens int           `envconfig:"LLM_MAX_INPUT_TOKENS" default:"6000"`
}

type analysisConfig struct {
	SystemPrompt string   `envconfig:"ANALYSIS_SYSTEM_PROMPT" default:""`
	Version      string   `envconfig:"ANALYSIS_VERSION" default:"2"`
	Keywords     []string `envconfig:"ANALYSIS_KEYWORDS" default:"shall,must,required,prohibited,may not"`
}

type ecfrConfig struct {
	BaseURL        string `envconfig:"ECFR_API_URL" default:"https://www.ecfr.gov"`
	TimeoutSeconds int    `envconfig:"ECFR_TIMEOUT_SECONDS" default:"30"`
	MaxRetries     int    `envconfig:"ECFR_MAX_RETRIES" default:"3"`
}

type archiveConfig struct {
	Endpoint  string `envconfig:"ARCHIVE_ENDPOINT" default:""`
	Bucket    string `envconfig:"ARCHIVE_BUCKET" default:"ecfr-versions"`
	AccessKey string `envconfig:"ARCHIVE_ACCESS_KEY" default:""`
	SecretKey string `envconfig:"ARCHIVE_SECRET_KEY" default:""`
	UseSSL    bool   `envconfig:"ARCHIVE_USE_SSL" default:"false"`
}

type workerConfig struct {
	StopGrace    time.Duration `envconfig:"WORKER_STOP_GRACE" default:"1s"`
	ResumeOnBoot bool          `envconfig:"WORKER_RESUME_ON_BOOT" default:"false"`
	InProcess    bool          `envconfig:"WORKER_IN_PROCESS" default:"false"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			singleConfig = nil
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a fresh configuration built from the environment and the
// declared defaults, bypassing the process-wide cache.
func NewDefault() *Config {
	cfg := new(Config)
	_ = envconfig.Process("", cfg)
	return cfg
}

func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

func (c *Config) EcfrTimeout() time.Duration {
	return time.Duration(c.Ecfr.TimeoutSeconds) * time.Second
}

func (c *Config) String() string {
	redacted := *c
	if c.Database != nil {
		db := *c.Database
		db.Password = "********"
		redacted.Database = &db
	}
	if c.LLM != nil {
		llm := *c.LLM
		if llm.APIKey != "" {
			llm.APIKey = "********"
		}
		redacted.LLM = &llm
	}
	if c.Archive != nil {
		archive := *c.Archive
		archive.SecretKey = "********"
		redacted.Archive = &archive
	}
	val, _ := json.Marshal(redacted)
	return string(val)
}
