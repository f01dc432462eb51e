package config

import "os"

// Config holds process-level settings read from the environment.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	RedisURL    string
}

func Load() Config {
	addr := os.Getenv("STOREFUN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}
}
