package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func InitConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
		return
	}

	log.Println("Successfully loaded environment variables")
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}

	return b, nil
}

// Addr returns the listen address, defaulting to :8080.
func Addr() string {
	if v, err := GetEnvVariable("ADDR"); err == nil {
		return v
	}
	return ":8080"
}

// TuningPath returns the optional YAML tuning override path; empty means
// compiled-in defaults.
func TuningPath() string {
	v, _ := GetEnvVariable("TUNING_FILE")
	return v
}
