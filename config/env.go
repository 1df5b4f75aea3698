// Package config loads service settings from defaults, config/app.json,
// .env and the process environment, in increasing order of precedence.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"

	DiskS3    = "s3"
	DiskLocal = "local"
)

// Config is built once at startup and handed to every component that needs it.
type Config struct {
	AppEnv  string
	AppPort string

	DBDriver          string
	MongoURI          string
	MongoDB           string
	MongoTransactions bool

	StorageDisk      string
	StorageLocalRoot string
	StorageURL       string
	S3               S3Config

	RedisAddr         string
	RedisPassword     string
	DashboardCacheTTL time.Duration

	JWTSecret      string
	CORSOrigins    []string
	MaxBodyBytes   int64
	MaxUploadBytes int64
}

// S3Config holds the object storage settings for product images.
type S3Config struct {
	Bucket   string
	Region   string
	Key      string
	Secret   string
	Endpoint string
	URL      string
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "production", "prod":
		return true
	}
	return false
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.AppPort, ":")
}

// aliases maps a canonical key to the legacy names also accepted for it.
var aliases = map[string][]string{
	"S3_BUCKET":   {"PRODUCT_IMAGES_BUCKET_NAME"},
	"S3_REGION":   {"AWS_REGION"},
	"S3_KEY":      {"AWS_ACCESS_KEY_ID"},
	"S3_SECRET":   {"AWS_SECRET_ACCESS_KEY"},
	"S3_ENDPOINT": {"AWS_LOCAL_ENDPOINT"},
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":             "local",
		"APP_PORT":            "8080",
		"DB_DRIVER":           DriverMongo,
		"MONGO_URI":           "mongodb://dbuser:dbpassword@db:27017/",
		"MONGO_DB":            "db",
		"MONGO_TRANSACTIONS":  "false",
		"STORAGE_DISK":        DiskS3,
		"STORAGE_LOCAL_ROOT":  "storage",
		"STORAGE_URL":         "http://localhost:8080/storage",
		"S3_BUCKET":           "",
		"S3_REGION":           "us-east-1",
		"S3_KEY":              "",
		"S3_SECRET":           "",
		"S3_ENDPOINT":         "",
		"S3_URL":              "",
		"REDIS_ADDR":          "",
		"REDIS_PASSWORD":      "",
		"DASHBOARD_CACHE_TTL": "0s",
		"JWT_SECRET":          "",
		"CORS_ORIGINS":        "*",
		"MAX_BODY_BYTES":      "4194304",
		"MAX_UPLOAD_BYTES":    "10485760",
	}
}

// Load reads config/app.json and .env from the working directory.
func Load() (*Config, error) {
	return LoadFrom("config/app.json", ".env")
}

// LoadFrom is Load with explicit file locations. Missing files are skipped.
func LoadFrom(configPath, envPath string) (*Config, error) {
	values := defaultValues()

	if err := mergeJSONConfig(configPath, values); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err := mergeDotEnv(envPath, values); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	mergeEnviron(values)

	return build(values)
}

func build(v map[string]string) (*Config, error) {
	cfg := &Config{
		AppEnv:           v["APP_ENV"],
		AppPort:          v["APP_PORT"],
		DBDriver:         strings.ToLower(v["DB_DRIVER"]),
		MongoURI:         v["MONGO_URI"],
		MongoDB:          v["MONGO_DB"],
		StorageDisk:      strings.ToLower(v["STORAGE_DISK"]),
		StorageLocalRoot: v["STORAGE_LOCAL_ROOT"],
		StorageURL:       v["STORAGE_URL"],
		S3: S3Config{
			Bucket:   v["S3_BUCKET"],
			Region:   v["S3_REGION"],
			Key:      v["S3_KEY"],
			Secret:   v["S3_SECRET"],
			Endpoint: v["S3_ENDPOINT"],
			URL:      v["S3_URL"],
		},
		RedisAddr:     v["REDIS_ADDR"],
		RedisPassword: v["REDIS_PASSWORD"],
		JWTSecret:     v["JWT_SECRET"],
		CORSOrigins:   splitList(v["CORS_ORIGINS"]),
	}

	switch cfg.DBDriver {
	case DriverMongo, DriverMemory:
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q (supported: mongo, memory)", cfg.DBDriver)
	}
	switch cfg.StorageDisk {
	case DiskS3, DiskLocal:
	default:
		return nil, fmt.Errorf("config: unsupported STORAGE_DISK %q (supported: s3, local)", cfg.StorageDisk)
	}

	var err error
	if cfg.MongoTransactions, err = strconv.ParseBool(v["MONGO_TRANSACTIONS"]); err != nil {
		return nil, fmt.Errorf("config: MONGO_TRANSACTIONS: %w", err)
	}
	if cfg.DashboardCacheTTL, err = time.ParseDuration(v["DASHBOARD_CACHE_TTL"]); err != nil {
		return nil, fmt.Errorf("config: DASHBOARD_CACHE_TTL: %w", err)
	}
	if cfg.MaxBodyBytes, err = parseSize("MAX_BODY_BYTES", v["MAX_BODY_BYTES"]); err != nil {
		return nil, err
	}
	if cfg.MaxUploadBytes, err = parseSize("MAX_UPLOAD_BYTES", v["MAX_UPLOAD_BYTES"]); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseSize(key, raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive byte count, got %q", key, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]any
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		var s string
		switch t := val.(type) {
		case string:
			s = t
		case bool, float64:
			s = fmt.Sprint(t)
		default:
			continue
		}
		set(out, key, s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		set(out, key, strings.Trim(strings.TrimSpace(value), `"'`))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

// mergeEnviron overlays process environment variables for every known key.
func mergeEnviron(out map[string]string) {
	for key := range defaultValues() {
		for _, alias := range aliases[key] {
			if v, ok := os.LookupEnv(alias); ok && strings.TrimSpace(v) != "" {
				out[key] = strings.TrimSpace(v)
			}
		}
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			out[key] = strings.TrimSpace(v)
		}
	}
}

// set stores value under the canonical name of key. Empty values are ignored
// so a blank line in .env does not wipe a default.
func set(out map[string]string, key, value string) {
	k := canonical(strings.ToUpper(strings.TrimSpace(key)))
	value = strings.TrimSpace(value)
	if k == "" || value == "" {
		return
	}
	out[k] = value
}

func canonical(key string) string {
	for name, alts := range aliases {
		for _, alt := range alts {
			if alt == key {
				return name
			}
		}
	}
	return key
}
