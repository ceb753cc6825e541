package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes caps uploaded documents at 50MB unless overridden
// via MAX_UPLOAD_BYTES.
const DefaultMaxUploadBytes = 50 << 20

// Config holds the project config values
type Config struct {
	URL            string
	DatabaseName   string
	BaseURL        string
	Port           string
	JWTSecret      string
	LandingAIKey   string
	LandingAIURL   string
	GeminiKey      string
	GeminiModel    string
	CloudinaryURL  string
	SendgridKey    string
	WebhookSecret  string
	MaxUploadBytes int64
}

// New sets up all config related services
func New() *Config {

	// .env is optional, real envs win in deployed environments
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	maxUpload := int64(DefaultMaxUploadBytes)
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			maxUpload = parsed
		}
	}

	return &Config{
		URL:            os.Getenv("DB_URI"),
		DatabaseName:   os.Getenv("DB_NAME"),
		BaseURL:        os.Getenv("BASE_URL"),
		Port:           os.Getenv("PORT"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		LandingAIKey:   os.Getenv("LANDINGAI_API_KEY"),
		LandingAIURL:   os.Getenv("LANDINGAI_BASE_URL"),
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    os.Getenv("GEMINI_MODEL"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		SendgridKey:    os.Getenv("SENDGRID_API_KEY"),
		WebhookSecret:  os.Getenv("CLERK_WEBHOOK_SECRET"),
		MaxUploadBytes: maxUpload,
	}

}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
