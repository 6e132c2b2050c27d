package providers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"audioscribe/internal/app"
)

var checkHealth bool

func init() {
	Cmd.Flags().BoolVar(&checkHealth, "health", false, "run a health check against every provider")
}

// Cmd represents the providers command
var Cmd = &cobra.Command{
	Use:   "providers",
	Short: "List the configured transcription providers",
	Long: `List the configured transcription providers.

Providers come from configs/providers.yaml (or A2T_PROVIDERS_CONFIG).
With --health every provider is probed and its status is reported.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := app.LoadProvidersConfig()
		registry, err := app.BuildRegistry(cfg)
		if err != nil {
			log.Fatalf("Failed to build provider registry: %v\n", err)
		}

		var health map[string]error
		if checkHealth {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			health = registry.HealthCheckAll(ctx)
		}

		for _, name := range registry.ListProviders() {
			p, err := registry.GetProvider(name)
			if err != nil {
				continue
			}
			info := p.GetProviderInfo()

			marker := " "
			if name == cfg.DefaultProvider {
				marker = "*"
			}
			fmt.Printf("%s %-16s %-10s %s (model: %s)\n", marker, name, info.Type, info.DisplayName, info.DefaultModel)

			if checkHealth {
				if healthErr := health[name]; healthErr != nil {
					fmt.Printf("    health: FAIL - %v\n", healthErr)
				} else {
					fmt.Printf("    health: ok\n")
				}
			}
		}
	},
}
