package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DatabaseDSN string // reporting projection; in-memory unless set
	Timezone    string
	Seed        bool
	Debug       bool
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
	return &Config{
		Addr:        getEnv("ADDR", ":8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "file:kindernet?mode=memory&cache=shared&_foreign_keys=on"),
		Timezone:    getEnv("TIMEZONE", "Asia/Jakarta"),
		Seed:        getEnvBool("SEED", true),
		Debug:       getEnvBool("DEBUG", false),
	}
}

// Location resolves Timezone, falling back to WIB (UTC+7) when tzdata is missing.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("timezone %q: %v; using WIB", c.Timezone, err)
		return time.FixedZone("WIB", 7*3600)
	}
	return loc
}

// Debugf logs a formatted message only when DEBUG is enabled
func (c *Config) Debugf(format string, v ...interface{}) {
	if c.Debug {
		log.Printf("[DEBUG] "+format, v...)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
