package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Files    FilesConfig    `mapstructure:"files"`
	Tasks    TasksConfig    `mapstructure:"tasks"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	Production   bool          `mapstructure:"production"`
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type FilesConfig struct {
	UploadDir     string `mapstructure:"upload_dir"`
	TempDir       string `mapstructure:"temp_dir"`
	OutputDir     string `mapstructure:"output_dir"`
	MaxUploadSize int    `mapstructure:"max_upload_size"` // bytes
}

type TasksConfig struct {
	MaxConcurrent          int           `mapstructure:"max_concurrent"`
	MaxRetry               int           `mapstructure:"max_retry"`
	Expiry                 time.Duration `mapstructure:"expiry"`
	CleanupCron            string        `mapstructure:"cleanup_cron"`
	MaxChunkSize           int           `mapstructure:"max_chunk_size"`
	TranslationConcurrency int           `mapstructure:"translation_concurrency"`
	TranslationWindowDelay time.Duration `mapstructure:"translation_window_delay"`
}

type LoggerConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("database.path", "data/tasks.db")
	viper.SetDefault("openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("openai.model", "gpt-3.5-turbo")
	viper.SetDefault("openai.timeout", "120s")
	viper.SetDefault("files.upload_dir", "uploads")
	viper.SetDefault("files.temp_dir", "temp")
	viper.SetDefault("files.output_dir", "outputs")
	viper.SetDefault("files.max_upload_size", 10*1024*1024)
	viper.SetDefault("tasks.max_concurrent", 3)
	viper.SetDefault("tasks.max_retry", 3)
	viper.SetDefault("tasks.expiry", "168h")
	viper.SetDefault("tasks.cleanup_cron", "0 0 * * *")
	viper.SetDefault("tasks.max_chunk_size", 3000)
	viper.SetDefault("tasks.translation_concurrency", 5)
	viper.SetDefault("tasks.translation_window_delay", "500ms")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.output_paths", []string{"stdout"})
	viper.SetDefault("logger.error_output_paths", []string{"stderr"})
}

func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetEnvPrefix("DOCUGLOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
