package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/siegeai/schemascope/srv"
)

func main() {
	_ = godotenv.Load()
	host := getEnv("SCHEMASCOPE_HOST", "")
	port := getEnv("SCHEMASCOPE_PORT", "8080")
	level := getEnv("SCHEMASCOPE_LOG", "info")

	if err := setupLogging(level); err != nil {
		slog.Error("could not init logging", "err", err)
		return
	}

	addr := fmt.Sprintf("%s:%s", host, port)
	s := srv.NewServer()

	slog.Info("listening", "addr", addr)
	if err := s.ListenAndServe(addr); err != nil {
		slog.Error("server stopped", "err", err)
	}
}

func setupLogging(level string) error {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(level))
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
	return err
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
