package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port        int    `yaml:"port"`
	GinMode     string `yaml:"gin_mode"`
	FrontendURL string `yaml:"frontend_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	ResendWindow string `yaml:"resend_window"`
}

type ResetConfig struct {
	TTL string `yaml:"ttl"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Reset    ResetConfig    `yaml:"reset"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	CORS     CORSConfig     `yaml:"cors"`
}

type Config struct {
	Port            string
	GinMode         string
	FrontendURL     string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	TokenTTL        time.Duration
	OTPTTL          time.Duration
	OTPResendWindow time.Duration
	ResetTTL        time.Duration
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
	SMTPFromName    string
	AllowedOrigins  []string
}

// Load reads config/config.yml and applies environment overrides for the
// secrets that should never live in the file.
func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}

	tokenTTL, err := parseTTL("jwt.ttl", configFile.JWT.TTL, 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	otpTTL, err := parseTTL("otp.ttl", configFile.OTP.TTL, 10*time.Minute)
	if err != nil {
		return nil, err
	}
	resendWindow, err := parseTTL("otp.resend_window", configFile.OTP.ResendWindow, 0)
	if err != nil {
		return nil, err
	}
	resetTTL, err := parseTTL("reset.ttl", configFile.Reset.TTL, 10*time.Minute)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		FrontendURL:     env("FRONTEND_URL", configFile.App.FrontendURL),
		DSN:             env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:       env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       configFile.JWT.Issuer,
		TokenTTL:        tokenTTL,
		OTPTTL:          otpTTL,
		OTPResendWindow: resendWindow,
		ResetTTL:        resetTTL,
		SMTPHost:        env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:        configFile.SMTP.Port,
		SMTPUsername:    env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword:    env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:        env("SMTP_FROM", configFile.SMTP.From),
		SMTPFromName:    configFile.SMTP.FromName,
		AllowedOrigins:  configFile.CORS.AllowedOrigins,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func parseTTL(name, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("could not parse %s duration %q: %w", name, value, err)
	}
	return d, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
