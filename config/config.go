package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Defaults point at the public SDC3 simulation-data bucket on the CSCS
// Ceph RGW. Region is unused in unsigned mode; kept for reference.
const (
	DefaultEndpoint = "https://rgw.cscs.ch"
	DefaultBucket   = "sdc3-simdata"
	DefaultTenant   = "ska"
	DefaultRegion   = "cscs-zonegroup"
)

type Config struct {
	Endpoint   string
	BucketName string
	Tenant     string
	Region     string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables only")
	}

	config := &Config{
		Endpoint:   getEnv("ENDPOINT", DefaultEndpoint),
		BucketName: getEnv("BUCKET_NAME", DefaultBucket),
		Tenant:     getEnv("TENANT", DefaultTenant),
		Region:     getEnv("REGION", DefaultRegion),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
