package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"schoolPortal/internal/storage"
)

type Config struct {
	Port        string
	LogLevel    string
	Environment string

	StorageDriver string
	DatabasePath  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StoragePrefix string

	SessionSecret  []byte
	SessionMaxAge  int
	SessionTimeout time.Duration

	LoginRatePerMinute int
	LoginBurst         int
	// TrustedProxies are the peers whose X-Real-IP and X-Forwarded-For
	// headers are believed.
	TrustedProxies []*net.IPNet

	GoogleClientID     string
	GoogleClientSecret string
	GoogleTokenFile    string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config := &Config{
		Port:               getEnvWithDefault("PORT", "8080"),
		LogLevel:           getEnvWithDefault("LOG_LEVEL", "INFO"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "development"),
		StorageDriver:      getEnvWithDefault("STORAGE_DRIVER", "sqlite"),
		DatabasePath:       getEnvWithDefault("DATABASE_PATH", "./portal.db"),
		RedisAddr:          getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		StoragePrefix:      getEnvWithDefault("STORAGE_PREFIX", "portal-escolar-"),
		SessionSecret:      []byte(os.Getenv("SESSION_SECRET")),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleTokenFile:    os.Getenv("GOOGLE_TOKEN_FILE"),
	}

	var err error
	if config.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if config.LoginRatePerMinute, err = getEnvAsInt("LOGIN_RATE_PER_MINUTE", 5); err != nil {
		return nil, err
	}
	if config.LoginBurst, err = getEnvAsInt("LOGIN_BURST", 10); err != nil {
		return nil, err
	}
	if config.SessionTimeout, err = getEnvDuration("SESSION_TIMEOUT", 24*time.Hour); err != nil {
		return nil, err
	}
	// The cookie must outlive the session, or renewal never reaches it.
	if config.SessionMaxAge, err = getEnvAsInt("SESSION_MAX_AGE", int(config.SessionTimeout/time.Second)); err != nil {
		return nil, err
	}
	if config.TrustedProxies, err = parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")); err != nil {
		return nil, err
	}

	if config.LoginRatePerMinute <= 0 {
		return nil, fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}

	return config, nil
}

// ValidateServer checks the settings only the HTTP server needs.
func (c *Config) ValidateServer() error {
	if len(c.SessionSecret) == 0 {
		return fmt.Errorf("SESSION_SECRET environment variable is required")
	}
	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}
	if time.Duration(c.SessionMaxAge)*time.Second < c.SessionTimeout {
		return fmt.Errorf("SESSION_MAX_AGE (%ds) must not be shorter than SESSION_TIMEOUT (%s)", c.SessionMaxAge, c.SessionTimeout)
	}
	return nil
}

// SheetsEnabled reports whether report export to Google Sheets is configured.
func (c *Config) SheetsEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleTokenFile != ""
}

func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver:        c.StorageDriver,
		DatabasePath:  c.DatabasePath,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		Prefix:        c.StoragePrefix,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

// parseTrustedProxies reads a comma separated list of IPs and CIDR blocks.
func parseTrustedProxies(value string) ([]*net.IPNet, error) {
	var nets []*net.IPNet
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "/") {
			ip := net.ParseIP(part)
			if ip == nil {
				return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q", part)
			}
			bits := 32
			if ip.To4() == nil {
				bits = 128
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipNet, err := net.ParseCIDR(part)
		if err != nil {
			return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %v", part, err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}

// GenerateSecureToken returns length random bytes, hex encoded.
func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
