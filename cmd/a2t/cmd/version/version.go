package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "v0.9.0"

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of a2t",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("a2t %s\n", version)
	},
}
