package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	AllowedOrigins   []string
	MaxRooms         int
	KeepEmptyRooms   bool
	ConnectRateLimit int
	AdminJWTSecret   string
	LogLevel         string
	LogPretty        bool
}

func LoadConfig() (*Config, error) {
	godotenv.Load()
	cfg := &Config{
		Port:           getEnv("PORT", "4040"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
	var err error
	if cfg.MaxRooms, err = strconv.Atoi(getEnv("MAX_ROOMS", "10")); err != nil || cfg.MaxRooms <= 0 {
		return nil, fmt.Errorf("MAX_ROOMS must be a positive integer, got %q", os.Getenv("MAX_ROOMS"))
	}
	if cfg.ConnectRateLimit, err = strconv.Atoi(getEnv("CONNECT_RATE_LIMIT", "30")); err != nil || cfg.ConnectRateLimit < 0 {
		return nil, fmt.Errorf("CONNECT_RATE_LIMIT must be a non-negative integer, got %q", os.Getenv("CONNECT_RATE_LIMIT"))
	}
	if cfg.KeepEmptyRooms, err = strconv.ParseBool(getEnv("KEEP_EMPTY_ROOMS", "false")); err != nil {
		return nil, fmt.Errorf("KEEP_EMPTY_ROOMS: %w", err)
	}
	if cfg.LogPretty, err = strconv.ParseBool(getEnv("LOG_PRETTY", "false")); err != nil {
		return nil, fmt.Errorf("LOG_PRETTY: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
