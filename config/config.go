package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS     = "" // e.g. "example.com,example2.com"
	BIND_ADDRESS    = "0.0.0.0:8080"
	MYSQL_DSN       = ""            // MySQL will be used if this is set
	SQLITE_FILE     = "blog.sqlite" // SQLite will be used if MYSQL_DSN is not configured
	IMAGES_DIR      = "static/images"
	S3_BUCKET       = "" // Uploads go to S3 instead of IMAGES_DIR if this is set
	S3_REGION       = "us-east-1"
	S3_PREFIX       = "static/images"
	S3_ENDPOINT     = "" // For S3 compatible services (MinIO, Wasabi, etc)
	S3_KEY          = ""
	S3_SECRET       = ""
	SESSION_KEY     = ""       // Random key per process if empty, i.e. sessions don't survive restarts
	SESSION_STORE   = "gorm"   // "gorm" or "cookie"
	SESSION_MAX_AGE = 30 * 86400
	CORS_ORIGINS    = "" // e.g. "https://a.example.com,https://b.example.com"
	GZIP            = true
	METRICS         = true // Prometheus metrics on /metrics
	DEBUG_MODE      = true
)

func init() {
	Load()
}

// Load (re)reads the environment. A .env file in the working directory is applied first,
// without overriding variables that are already set.
func Load() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Cannot read .env: %v", err)
	}
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("IMAGES_DIR", &IMAGES_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvString("SESSION_STORE", &SESSION_STORE)
	readEnvInt("SESSION_MAX_AGE", &SESSION_MAX_AGE)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvBool("GZIP", &GZIP)
	readEnvBool("METRICS", &METRICS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
}

// CorsOrigins returns the non-empty entries of CORS_ORIGINS
func CorsOrigins() (result []string) {
	for _, origin := range strings.Split(CORS_ORIGINS, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			result = append(result, origin)
		}
	}
	return
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}
