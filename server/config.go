package server

import (
	"os"
	"strconv"
	"strings"

	"github.com/synesenom/dl/svgdoc"
	"github.com/synesenom/dl/svgpath"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	BodyLimit    int // bytes

	// conversion defaults
	Author    string
	AngleUnit svgpath.AngleUnit
	Strict    bool
	MaxPixels int // png budget, 0 for the default
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() *Config {
	unit := svgpath.Degrees
	if strings.EqualFold(getEnv("ANGLE_UNIT", "deg"), "rad") {
		unit = svgpath.Radians
	}
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		BodyLimit:    getEnvAsInt("BODY_LIMIT", 4*1024*1024),
		Author:       getEnv("AUTHOR", svgdoc.DefaultAuthor),
		AngleUnit:    unit,
		Strict:       getEnvAsBool("STRICT", false),
		MaxPixels:    getEnvAsInt("MAX_PIXELS", 0),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
