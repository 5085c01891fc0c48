package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Chatbot  ChatbotConfig  `mapstructure:"chatbot"`
	Business BusinessConfig `mapstructure:"business"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Web      WebConfig      `mapstructure:"web"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

// ChatbotConfig points the relay at the hosted chatbot service.
type ChatbotConfig struct {
	APIURL        string        `mapstructure:"api_url"`
	DefaultUserID string        `mapstructure:"default_user_id"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// BusinessConfig describes salon opening hours and slot generation.
type BusinessConfig struct {
	OpenTime     string `mapstructure:"open_time"`
	CloseTime    string `mapstructure:"close_time"`
	ClosedDays   []int  `mapstructure:"closed_days"`
	SlotDuration int    `mapstructure:"slot_duration"`
	BufferTime   int    `mapstructure:"buffer_time"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StorageConfig struct {
	Path     string `mapstructure:"path"`
	SeedFile string `mapstructure:"seed_file"`
}

type WebConfig struct {
	Dir string `mapstructure:"dir"`
}

var cfg *Config

func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SALON")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Config file wins; fall back to the bare env var for deployments
	// that only set the upstream URL.
	if cfg.Chatbot.APIURL == "" {
		if url := os.Getenv("SALON_CHATBOT_API_URL"); url != "" {
			cfg.Chatbot.APIURL = url
		}
		if url := os.Getenv("CHATBOT_API_URL"); url != "" {
			cfg.Chatbot.APIURL = url
		}
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.max_header_bytes", 1<<20)

	viper.SetDefault("chatbot.default_user_id", "user123")
	viper.SetDefault("chatbot.timeout", "30s")

	viper.SetDefault("business.open_time", "09:00")
	viper.SetDefault("business.close_time", "18:00")
	viper.SetDefault("business.closed_days", []int{6})
	viper.SetDefault("business.slot_duration", 30)
	viper.SetDefault("business.buffer_time", 15)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("storage.path", "./data/salon.db")
	viper.SetDefault("web.dir", "./web")
}

func Get() *Config {
	return cfg
}
