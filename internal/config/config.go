package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Spotify struct {
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
		RedirectURI  string `mapstructure:"redirect_uri"`
		DeviceID     string `mapstructure:"device_id"`
	} `mapstructure:"spotify"`
	ElevenLabs struct {
		APIKey string `mapstructure:"api_key"`
		Model  string `mapstructure:"model"`
	} `mapstructure:"elevenlabs"`
	LLM struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
		Model   string `mapstructure:"model"`
	} `mapstructure:"llm"`
	SoundStat struct {
		APIKey string `mapstructure:"api_key"`
	} `mapstructure:"soundstat"`
	Server struct {
		Port        string `mapstructure:"port"`
		MetricsPort string `mapstructure:"metrics_port"`
		FrontendURL string `mapstructure:"frontend_url"`
		JWTSecret   string `mapstructure:"jwt_secret"`
		LogLevel    string `mapstructure:"log_level"`
	} `mapstructure:"server"`
	Radio struct {
		BumperThreshold   int     `mapstructure:"bumper_threshold"`
		DuckVolume        float64 `mapstructure:"duck_volume"`
		DuckDelayMS       int     `mapstructure:"duck_delay_ms"`
		SettleDelayMS     int     `mapstructure:"settle_delay_ms"`
		FadeStep          float64 `mapstructure:"fade_step"`
		FadeIntervalMS    int     `mapstructure:"fade_interval_ms"`
		PollSeconds       int     `mapstructure:"poll_seconds"`
		FrameRate         int     `mapstructure:"frame_rate"`
		QueueSize         int     `mapstructure:"queue_size"`
		DiscoveryFraction float64 `mapstructure:"discovery_fraction"`
	} `mapstructure:"radio"`
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Storage struct {
		Provider     string `mapstructure:"provider"`
		KeyID        string `mapstructure:"key_id"`
		AppKey       string `mapstructure:"app_key"`
		Endpoint     string `mapstructure:"endpoint"`
		Region       string `mapstructure:"region"`
		BucketAssets string `mapstructure:"bucket_assets"`
		LocalPath    string `mapstructure:"local_path"`
	} `mapstructure:"storage"`
}

func Load() *Config {
	viper.SetEnvPrefix("YOURFM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register keys
	viper.BindEnv("spotify.client_id")
	viper.BindEnv("spotify.client_secret")
	viper.BindEnv("spotify.redirect_uri")
	viper.BindEnv("spotify.device_id")
	viper.BindEnv("elevenlabs.api_key")
	viper.BindEnv("elevenlabs.model")
	viper.BindEnv("llm.api_key")
	viper.BindEnv("llm.base_url")
	viper.BindEnv("llm.model")
	viper.BindEnv("soundstat.api_key")

	viper.BindEnv("server.port")
	viper.BindEnv("server.metrics_port")
	viper.BindEnv("server.frontend_url")
	viper.BindEnv("server.jwt_secret")
	viper.BindEnv("server.log_level")

	// Radio Config Bindings
	viper.BindEnv("radio.bumper_threshold")
	viper.BindEnv("radio.duck_volume")
	viper.BindEnv("radio.duck_delay_ms")
	viper.BindEnv("radio.settle_delay_ms")
	viper.BindEnv("radio.fade_step")
	viper.BindEnv("radio.fade_interval_ms")
	viper.BindEnv("radio.poll_seconds")
	viper.BindEnv("radio.frame_rate")
	viper.BindEnv("radio.queue_size")
	viper.BindEnv("radio.discovery_fraction")

	// Register Database keys
	viper.BindEnv("database.host")
	viper.BindEnv("database.port")
	viper.BindEnv("database.user")
	viper.BindEnv("database.password")
	viper.BindEnv("database.name")

	// Storage
	viper.BindEnv("storage.provider")
	viper.BindEnv("storage.key_id")
	viper.BindEnv("storage.app_key")
	viper.BindEnv("storage.endpoint")
	viper.BindEnv("storage.region")
	viper.BindEnv("storage.bucket_assets")
	viper.BindEnv("storage.local_path")

	// Defaults
	viper.SetDefault("server.port", ":8081")
	viper.SetDefault("server.metrics_port", ":9091")
	viper.SetDefault("server.frontend_url", "http://localhost:3000")
	viper.SetDefault("server.log_level", "error")
	viper.SetDefault("elevenlabs.model", "eleven_turbo_v2_5")
	viper.SetDefault("llm.base_url", "https://generativelanguage.googleapis.com/v1beta/openai")
	viper.SetDefault("llm.model", "gemini-2.0-flash")

	// Playback Defaults (Tuned for perceived responsiveness)
	viper.SetDefault("radio.bumper_threshold", 3)
	viper.SetDefault("radio.duck_volume", 0.15)
	viper.SetDefault("radio.duck_delay_ms", 500)
	viper.SetDefault("radio.settle_delay_ms", 100)
	viper.SetDefault("radio.fade_step", 0.08)
	viper.SetDefault("radio.fade_interval_ms", 100)
	viper.SetDefault("radio.poll_seconds", 1)
	viper.SetDefault("radio.frame_rate", 60)
	viper.SetDefault("radio.queue_size", 50)
	viper.SetDefault("radio.discovery_fraction", 0.80)

	viper.SetDefault("storage.provider", "local")
	viper.SetDefault("storage.local_path", "./data/assets")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	if cfg.Server.JWTSecret == "" {
		cfg.Server.JWTSecret = "change-me-yourfm-secret"
		log.Println("⚠️ YOURFM_SERVER_JWT_SECRET not set, using insecure default")
	}

	return &cfg
}

// Timing helpers so callers don't re-derive durations from ints everywhere.

func (c *Config) DuckDelay() time.Duration {
	return time.Duration(c.Radio.DuckDelayMS) * time.Millisecond
}

func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Radio.SettleDelayMS) * time.Millisecond
}

func (c *Config) FadeInterval() time.Duration {
	return time.Duration(c.Radio.FadeIntervalMS) * time.Millisecond
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Radio.PollSeconds) * time.Second
}
