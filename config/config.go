package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultVideos is the built-in hero playlist, used whenever the backend list
// is unavailable or empty. Must stay non-empty.
var defaultVideos = []string{
	"https://www.youtube.com/embed/k4UNU0dDvMA?autoplay=1&mute=1&controls=0&loop=1&playlist=k4UNU0dDvMA&rel=0",
	"https://www.youtube.com/embed/sEwdYLadc_Q?autoplay=1&mute=1&controls=0&loop=1&playlist=sEwdYLadc_Q&rel=0",
	"https://www.youtube.com/embed/PPt220id6KM?autoplay=1&mute=1&controls=0&loop=1&playlist=PPt220id6KM&rel=0",
}

// Config holds application configuration loaded from environment.
type Config struct {
	Page      PageConfig
	Backend   BackendConfig
	Video     VideoConfig
	Verify    VerifyConfig
	Relay     RelayConfig
	Analytics AnalyticsConfig
	Redis     RedisConfig
}

// PageConfig holds settings for the landing page itself.
type PageConfig struct {
	Host           string // host the page is served from; drives backend origin selection
	LaunchDate     time.Time
	ToastAutoClose time.Duration
	ThankYouFlash  time.Duration
	HTTPTimeout    time.Duration
}

// BackendConfig holds backend origin selection settings.
type BackendConfig struct {
	LocalURL string
	ProdURL  string
}

// VideoConfig holds hero video rotation settings.
type VideoConfig struct {
	DefaultPlaylist []string
	RotateInterval  time.Duration
}

// VerifyConfig holds the optional email-deliverability check settings.
type VerifyConfig struct {
	Enabled         bool
	URL             string
	APIKey          string
	AllowedProvider string // single free-mail provider domain the check accepts
}

// RelayConfig holds the fire-and-forget form relay settings. Empty URL disables.
type RelayConfig struct {
	URL string
}

// AnalyticsConfig holds settings for forwarding dataLayer events to the
// external marketing consumer.
type AnalyticsConfig struct {
	Forward bool
	ListKey string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BackendURL resolves the backend origin from the page host. A local
// development host resolves to the local origin; anything else to production.
// Selection happens once at load time.
func (c *Config) BackendURL() string {
	host := c.Page.Host
	if strings.Contains(host, "localhost") || host == "127.0.0.1" {
		return c.Backend.LocalURL
	}
	return c.Backend.ProdURL
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env

	launch, err := time.Parse(time.RFC3339, getEnv("LAUNCH_DATE", "2025-10-18T00:00:00Z"))
	if err != nil {
		return nil, err
	}

	videos := splitTrim(getEnv("DEFAULT_VIDEOS", ""), ",")
	if len(videos) == 0 {
		videos = defaultVideos
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cfg := &Config{
		Page: PageConfig{
			Host:           getEnv("PAGE_HOST", "localhost"),
			LaunchDate:     launch,
			ToastAutoClose: time.Duration(getEnvInt("TOAST_AUTOCLOSE_MS", 3500)) * time.Millisecond,
			ThankYouFlash:  time.Duration(getEnvInt("THANKYOU_MS", 2500)) * time.Millisecond,
			HTTPTimeout:    time.Duration(getEnvInt("HTTP_TIMEOUT_SEC", 10)) * time.Second,
		},
		Backend: BackendConfig{
			LocalURL: getEnv("BACKEND_LOCAL_URL", "http://localhost:5000"),
			ProdURL:  getEnv("BACKEND_URL", "https://escrawl-backend.onrender.com"),
		},
		Video: VideoConfig{
			DefaultPlaylist: videos,
			RotateInterval:  time.Duration(getEnvInt("VIDEO_ROTATE_SEC", 20)) * time.Second,
		},
		Verify: VerifyConfig{
			Enabled:         getEnvBool("VERIFY_EMAILS", false),
			URL:             getEnv("EMAIL_VERIFY_URL", "https://emailvalidation.abstractapi.com/v1/"),
			APIKey:          getEnv("EMAIL_VERIFY_API_KEY", ""),
			AllowedProvider: getEnv("EMAIL_VERIFY_PROVIDER", "gmail.com"),
		},
		Relay: RelayConfig{
			URL: getEnv("RELAY_URL", ""),
		},
		Analytics: AnalyticsConfig{
			Forward: getEnvBool("ANALYTICS_FORWARD", false),
			ListKey: getEnv("ANALYTICS_LIST_KEY", "marketing:datalayer"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, sep) {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
