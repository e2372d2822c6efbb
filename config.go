package main

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI    string
	MongoDB     string
	JWTSecret   string
	Port        string
	ORNLBaseURL string
	CMRBaseURL  string
	GIBSBaseURL string
}

func mustConfig() Config {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getenv("MONGO_DB", "bloomwatch"),
		JWTSecret:   getenv("JWT_SECRET", "change_me"),
		Port:        getenv("PORT", "8080"),
		ORNLBaseURL: getenv("NASA_ORNL_URL", ""),
		CMRBaseURL:  getenv("NASA_CMR_URL", ""),
		GIBSBaseURL: getenv("NASA_GIBS_URL", ""),
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
