package initializers

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port               string
	DatabaseURL        string
	CORSOrigins        []string
	APIBaseURL         string
	UploadDir          string
	S3Bucket           string
	StrictVariantMatch bool
}

var AppConfig Config

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadConfig reads the process environment into AppConfig.
func LoadConfig() Config {
	port := getEnv("PORT", "4000")
	strict, _ := strconv.ParseBool(os.Getenv("STRICT_VARIANT_MATCH"))

	AppConfig = Config{
		Port:               port,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		CORSOrigins:        splitList(getEnv("CORS_ORIGIN", "http://localhost:3000")),
		APIBaseURL:         strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:"+port), "/"),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		StrictVariantMatch: strict,
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("JWT_SECRET is not set, signing tokens with the development secret")
	}
	return AppConfig
}
