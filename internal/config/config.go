package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const jwtSecretFile = "data/.sk"

// Config is everything the server reads from the environment. A .env
// file in the working directory is loaded first when present.
type Config struct {
	ListenAddr string
	DBPath     string
	JWTSecret  string

	// Master credential. When either is empty, master login is
	// disabled and only staff accounts can sign in.
	MasterID  string
	MasterKey string

	GeminiAPIKey string
	GeminiModel  string
}

// Load reads the configuration. The JWT secret is loaded from (or
// generated into) data/.sk rather than the environment so it survives
// restarts without any setup.
func Load() (Config, error) {
	// Missing .env is fine; real deployments use actual env vars.
	_ = godotenv.Load()

	jwtSecret, err := loadOrCreateJWTSecret()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ListenAddr:   envOr("LISTEN_ADDR", ":9090"),
		DBPath:       envOr("DB_PATH", "data/corenexus.db"),
		JWTSecret:    jwtSecret,
		MasterID:     os.Getenv("MASTER_ID"),
		MasterKey:    os.Getenv("MASTER_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func loadOrCreateJWTSecret() (string, error) {
	secretBytes, err := os.ReadFile(jwtSecretFile)
	if err == nil {
		return string(secretBytes), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read JWT secret file: %w", err)
	}

	newSecret, err := generateRandomString(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(jwtSecretFile), 0700); err != nil {
		return "", err
	}
	if err := os.WriteFile(jwtSecretFile, []byte(newSecret), 0600); err != nil {
		return "", fmt.Errorf("failed to write JWT secret to file: %w", err)
	}
	return newSecret, nil
}

func generateRandomString(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
