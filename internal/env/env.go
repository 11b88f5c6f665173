package env

import (
	"errors"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// actual environment variables
var MONGO_URI string
var MONGO_DATABASE string
var STORE string
var REDIS_ADDR string
var REDIS_PASSWORD string
var REDIS_DB int
var CACHE_TTL time.Duration
var NATS_URL string
var INGEST_SUBJECT string
var MAX_PER_PAGE int
var LIVE_BUFFER int
var CREATE_RATE_LIMIT float64
var CREATE_RATE_BURST int
var REQUEST_TIMEOUT time.Duration
var PREFORK bool
var LOG_LEVEL string
var LOG_FORMAT string

// this is required
var VERSION string

// DEPLOYMENT is the profile the process was started with (dev|test|prod).
var DEPLOYMENT string

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

func Init(deployment string, envRoot string, appVersion string) {
	loadEnv(envRoot)
	loadVersion(appVersion)

	DEPLOYMENT = strings.TrimSpace(deployment)

	MONGO_URI = os.Getenv("MONGO_URI")
	MONGO_DATABASE = stringOr("MONGO_DATABASE", "audit_service")
	if DEPLOYMENT == "test" && !strings.HasSuffix(MONGO_DATABASE, "_test") {
		MONGO_DATABASE += "_test"
	}
	STORE = strings.ToLower(stringOr("STORE", StoreMongo))

	REDIS_ADDR = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	REDIS_PASSWORD = os.Getenv("REDIS_PASSWORD")
	REDIS_DB = intOr("REDIS_DB", 0)
	CACHE_TTL = durationOr("CACHE_TTL", 10*time.Minute)

	NATS_URL = strings.TrimSpace(os.Getenv("NATS_URL"))
	INGEST_SUBJECT = stringOr("INGEST_SUBJECT", "audit.events.create")

	MAX_PER_PAGE = intOr("MAX_PER_PAGE", 100)
	LIVE_BUFFER = intOr("LIVE_BUFFER", 64)

	// creates per second per client IP, 0 disables
	CREATE_RATE_LIMIT = floatOr("CREATE_RATE_LIMIT", 0)
	CREATE_RATE_BURST = intOr("CREATE_RATE_BURST", 20)
	REQUEST_TIMEOUT = durationOr("REQUEST_TIMEOUT", 10*time.Second)

	PREFORK, _ = strconv.ParseBool(os.Getenv("PREFORK"))
	LOG_LEVEL = stringOr("LOG_LEVEL", "info")
	LOG_FORMAT = stringOr("LOG_FORMAT", defaultLogFormat(DEPLOYMENT))
}

// loadEnv overlays <envRoot>/.env on the process environment. A missing
// file is fine for environment-only deployments; a broken one is not.
func loadEnv(envRoot string) {
	if envRoot == "" {
		envRoot = repoRoot()
	}

	path := path.Join(envRoot, ".env")
	if err := godotenv.Overload(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("failed to load env file %s: %v", path, err)
	}
}

func loadVersion(appVersion string) {
	if appVersion != "" {
		VERSION = appVersion
		return
	}

	data, err := os.ReadFile(filepath.Join(repoRoot(), "VERSION"))
	if err != nil {
		VERSION = "unknown"
		return
	}

	if trimmed := strings.TrimSpace(string(data)); trimmed != "" {
		VERSION = trimmed
	} else {
		VERSION = "unknown"
	}
}

func defaultLogFormat(deployment string) string {
	if deployment == "prod" {
		return "json"
	}
	return "text"
}

func stringOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return n
}

func floatOr(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || f < 0 {
		return fallback
	}
	return f
}

func durationOr(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func repoRoot() string {
	_, b, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(b), "../..")
}
