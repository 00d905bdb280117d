package app

import (
	"strings"

	"github.com/aurawear/aurawear-backend/internal/clients/stylist"
	"github.com/aurawear/aurawear-backend/internal/platform/envutil"
)

// Config is built once at startup and never mutated afterwards; components
// receive the values they need explicitly.
type Config struct {
	ProjectName string
	Version     string

	HTTPAddr         string
	CORSAllowOrigins []string

	Stylist stylist.Config
}

func LoadConfig() Config {
	origins := strings.Split(envutil.String(
		"BACKEND_CORS_ORIGINS",
		"http://localhost:3000,http://localhost:8080",
	), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return Config{
		ProjectName:      "AuraWear Backend API",
		Version:          envutil.String("APP_VERSION", "1.0.0"),
		HTTPAddr:         envutil.String("HTTP_ADDR", ":8000"),
		CORSAllowOrigins: origins,
		Stylist:          stylist.ConfigFromEnv(),
	}
}
