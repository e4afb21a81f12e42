package config

import (
	"bufio"
	"os"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	// Session slot persistence: memory, redis or postgres.
	SessionStoreType string
	SessionTTL       time.Duration
	SessionSweepSpec string
	RedisURL         string
	DatabaseURL      string

	// Resume blob persistence.
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	// Collaborator service base URLs.
	ProfileServiceURL  string
	SalaryServiceURL   string
	AnalyzerServiceURL string
	JobSearchURL       string
	GeocodeURL         string

	// Upper bound for any single collaborator call.
	CollaboratorTimeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),

		SessionStoreType: normalizeStoreType(getEnv("SESSION_STORE", "memory")),
		SessionTTL:       getDuration("SESSION_TTL", 24*time.Hour),
		SessionSweepSpec: getEnv("SESSION_SWEEP_SPEC", "@every 10m"),
		RedisURL:         os.Getenv("REDIS_URL"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),

		ObjectStoreType: normalizeObjectStore(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),

		ProfileServiceURL:  getEnv("PROFILE_SERVICE_URL", "http://127.0.0.1:5003"),
		SalaryServiceURL:   getEnv("SALARY_SERVICE_URL", "http://127.0.0.1:5000"),
		AnalyzerServiceURL: getEnv("ANALYZER_SERVICE_URL", "http://127.0.0.1:5001"),
		JobSearchURL:       getEnv("JOB_SEARCH_URL", "http://127.0.0.1:5002"),
		GeocodeURL:         getEnv("GEOCODE_URL", "https://nominatim.openstreetmap.org"),

		CollaboratorTimeout: getDuration("COLLABORATOR_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "redis":
		return "redis"
	case "postgres", "pg":
		return "postgres"
	default:
		return "memory"
	}
}

func normalizeObjectStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

// loadEnvFiles loads simple KEY=VALUE pairs from the given files if they exist.
// It is a best-effort helper for local development; errors are ignored.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}
			key := strings.TrimSpace(parts[0])
			val := strings.TrimSpace(parts[1])
			val = strings.Trim(val, `"`)
			if key != "" {
				os.Setenv(key, val)
			}
		}
		_ = f.Close()
	}
}
