package main

import (
	"fmt"
	"os"

	"audioscribe/cmd/a2t/cmd"
	"audioscribe/internal/config"
)

func main() {
	// Initialize configuration (non-blocking - only warns about missing keys)
	apiKeys, err := config.InitializeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
		fmt.Fprintf(os.Stderr, "Copy .env.example to .env and add your API keys to enable remote providers\n")
	} else {
		if apiKeys.OpenAI != "" {
			os.Setenv("OPENAI_API_KEY", apiKeys.OpenAI)
		}
		if apiKeys.Gemini != "" {
			os.Setenv("GEMINI_API_KEY", apiKeys.Gemini)
		}
		if apiKeys.ElevenLabs != "" {
			os.Setenv("ELEVENLABS_API_KEY", apiKeys.ElevenLabs)
		}
	}

	cmd.Execute()
}
