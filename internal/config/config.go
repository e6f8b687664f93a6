package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	WebSocket WebSocketConfig `yaml:"websocket" envconfig:"WEBSOCKET"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	ReportTimeout   time.Duration `yaml:"report_timeout" envconfig:"REPORT_TIMEOUT" default:"5m"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains file system paths configuration. Relative paths
// are resolved against the executable directory at startup.
type PathsConfig struct {
	AttendanceDir string `yaml:"attendance_dir" envconfig:"ATTENDANCE_DIR" default:"attendance"`
	ReportsDir    string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	WebDir        string `yaml:"web_dir" envconfig:"WEB_DIR" default:"web"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
	RosterFile    string `yaml:"roster_file" envconfig:"ROSTER_FILE" default:"roster.yaml"`
}

// WebSocketConfig contains WebSocket configuration
type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size" envconfig:"READ_BUFFER_SIZE" default:"1024"`
	WriteBufferSize int           `yaml:"write_buffer_size" envconfig:"WRITE_BUFFER_SIZE" default:"1024"`
	PingPeriod      time.Duration `yaml:"ping_period" envconfig:"PING_PERIOD" default:"30s"`
	PongWait        time.Duration `yaml:"pong_wait" envconfig:"PONG_WAIT" default:"60s"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Environment variables take precedence over the file.
	if err := envconfig.Process("ROLLCALL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := findConfigFile(); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence).
// envconfig fills unset variables with the struct defaults, so a field
// still carrying its default is treated as unset and yields to the file.
// An env variable explicitly set to the default value also yields; that
// ambiguity is inherent to the default tags.
func mergeConfigs(fileConfig, envConfig Config) Config {
	def := Default()
	if fileConfig.Server.Port != 0 && (envConfig.Server.Port == 0 || envConfig.Server.Port == def.Server.Port) {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if fileConfig.Server.ReadTimeout != 0 && (envConfig.Server.ReadTimeout == 0 || envConfig.Server.ReadTimeout == def.Server.ReadTimeout) {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if fileConfig.Server.WriteTimeout != 0 && (envConfig.Server.WriteTimeout == 0 || envConfig.Server.WriteTimeout == def.Server.WriteTimeout) {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if fileConfig.Server.ReportTimeout != 0 && (envConfig.Server.ReportTimeout == 0 || envConfig.Server.ReportTimeout == def.Server.ReportTimeout) {
		envConfig.Server.ReportTimeout = fileConfig.Server.ReportTimeout
	}
	if fileConfig.Logging.Level != "" && (envConfig.Logging.Level == "" || envConfig.Logging.Level == def.Logging.Level) {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Paths.AttendanceDir != "" && (envConfig.Paths.AttendanceDir == "" || envConfig.Paths.AttendanceDir == def.Paths.AttendanceDir) {
		envConfig.Paths.AttendanceDir = fileConfig.Paths.AttendanceDir
	}
	if fileConfig.Paths.ReportsDir != "" && (envConfig.Paths.ReportsDir == "" || envConfig.Paths.ReportsDir == def.Paths.ReportsDir) {
		envConfig.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}
	if fileConfig.Paths.RosterFile != "" && (envConfig.Paths.RosterFile == "" || envConfig.Paths.RosterFile == def.Paths.RosterFile) {
		envConfig.Paths.RosterFile = fileConfig.Paths.RosterFile
	}
	return envConfig
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "stdout" {
		c.Logging.Output = "both"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// findConfigFile returns the path to the config file, if one exists
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			ReportTimeout:   5 * time.Minute,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			AttendanceDir: "attendance",
			ReportsDir:    "reports",
			WebDir:        "web",
			LogsDir:       "logs",
			RosterFile:    "roster.yaml",
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			PingPeriod:      30 * time.Second,
			PongWait:        60 * time.Second,
		},
	}
}
