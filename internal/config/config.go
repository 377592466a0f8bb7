package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Portkey   PortkeyConfig   `yaml:"portkey" mapstructure:"portkey"`
	Models    ModelsConfig    `yaml:"models" mapstructure:"models"`
	Proxycurl ProxycurlConfig `yaml:"proxycurl" mapstructure:"proxycurl"`
	OCR       OCRConfig       `yaml:"ocr" mapstructure:"ocr"`
	Analysis  AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	Upload    UploadConfig    `yaml:"upload" mapstructure:"upload"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port      int    `yaml:"port" mapstructure:"port"`
	StaticDir string `yaml:"static_dir" mapstructure:"static_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// PortkeyConfig holds LLM-gateway credentials and routing.
type PortkeyConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Provider    string `yaml:"provider" mapstructure:"provider"`
	ProviderKey string `yaml:"provider_key" mapstructure:"provider_key"`
}

// ModelsConfig selects the completion model per pipeline stage.
type ModelsConfig struct {
	Summary string `yaml:"summary" mapstructure:"summary"`
	Memo    string `yaml:"memo" mapstructure:"memo"`
}

// ProxycurlConfig holds profile-enrichment API settings.
type ProxycurlConfig struct {
	Key           string  `yaml:"key" mapstructure:"key"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// OCRConfig configures scanned-PDF text extraction.
type OCRConfig struct {
	Provider        string `yaml:"provider" mapstructure:"provider"`
	CredentialsPath string `yaml:"credentials_path" mapstructure:"credentials_path"`
	BaseURL         string `yaml:"base_url" mapstructure:"base_url"`
}

// AnalysisConfig configures the external market-analysis process.
type AnalysisConfig struct {
	PythonPath  string `yaml:"python_path" mapstructure:"python_path"`
	ScriptPath  string `yaml:"script_path" mapstructure:"script_path"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// UploadConfig configures temporary blob storage for uploads.
type UploadConfig struct {
	TempDir     string `yaml:"temp_dir" mapstructure:"temp_dir"`
	MaxMemoryMB int    `yaml:"max_memory_mb" mapstructure:"max_memory_mb"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MEMOGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Credential keys default to empty so AutomaticEnv can see
	// them; viper only resolves env vars for keys it already knows.
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.static_dir", "dist")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("portkey.key", "")
	v.SetDefault("portkey.provider_key", "")
	v.SetDefault("portkey.base_url", "https://api.portkey.ai/v1")
	v.SetDefault("portkey.provider", "openai")
	v.SetDefault("models.summary", "gpt-4o")
	v.SetDefault("models.memo", "o1-preview")
	v.SetDefault("proxycurl.key", "")
	v.SetDefault("proxycurl.base_url", "https://nubela.co/proxycurl")
	v.SetDefault("proxycurl.rate_per_second", 2)
	v.SetDefault("ocr.provider", "vision")
	v.SetDefault("ocr.credentials_path", "")
	v.SetDefault("ocr.base_url", "https://vision.googleapis.com")
	v.SetDefault("analysis.python_path", "python")
	v.SetDefault("analysis.script_path", "main.py")
	v.SetDefault("analysis.timeout_secs", 0)
	v.SetDefault("upload.temp_dir", "temp")
	v.SetDefault("upload.max_memory_mb", 32)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
