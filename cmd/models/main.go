// Command models prints the Gemini models the configured key can call with
// generateContent, to help pick GEMINI_MODEL_NAME.
package main

import (
	"HeadTurner/internal/config"
	"HeadTurner/pkg/gemini"
	"HeadTurner/pkg/log"
	"context"
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strings"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	client, err := gemini.NewGeminiClient(cfg.Gemini)
	if err != nil {
		logger.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer client.Close()

	models, err := client.ListModels(context.Background())
	if err != nil {
		logger.Fatalf("Failed to list models: %v", err)
	}

	divider := strings.Repeat("=", 50)
	fmt.Println(divider)
	fmt.Printf("Models supporting generateContent (%d)\n", len(models))
	fmt.Println(divider)
	for _, m := range models {
		marker := ""
		if strings.TrimPrefix(m.Name, "models/") == cfg.Gemini.ModelName {
			marker = "  <- configured"
		}
		fmt.Printf("Model name:   %s%s\n", m.Name, marker)
		fmt.Printf("Display name: %s\n", m.DisplayName)
		fmt.Printf("Description:  %s\n\n", m.Description)
	}
	fmt.Println(divider)
	fmt.Println("Set GEMINI_MODEL_NAME to one of the names above.")
}
