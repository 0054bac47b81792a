package cmd

import (
	"fmt"

	"github.com/chibuka/algoviz/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [--api-url <url>] [--speed <ms>]",
	Short: "Save player settings",
	Long: `Save where the compute service lives and how fast steps play.

Settings are stored in ~/.algoviz/config.json. Any of them can be
overridden with ALGOVIZ_* environment variables, e.g. ALGOVIZ_API_URL.

Examples:
  algoviz init --api-url http://localhost:8080
  algoviz init --speed 500 --prime-speed 1500
  algoviz init --size 15

  # Start over from defaults:
  algoviz init --reset`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appCfg

		reset, _ := cmd.Flags().GetBool("reset")
		if reset {
			var err error
			cfg, err = config.Reset()
			if err != nil {
				return fmt.Errorf("failed to reset settings: %w", err)
			}
		}

		flags := cmd.Flags()
		if flags.Changed("api-url") {
			cfg.APIUrl, _ = flags.GetString("api-url")
		}
		if flags.Changed("speed") {
			cfg.SpeedMs, _ = flags.GetInt("speed")
		}
		if flags.Changed("prime-speed") {
			cfg.PrimeSpeedMs, _ = flags.GetInt("prime-speed")
		}
		if flags.Changed("size") {
			cfg.ArraySize, _ = flags.GetInt("size")
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid settings: %w", err)
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}

		fmt.Printf("✓ Settings saved!\n")
		fmt.Printf("  API URL: %s\n", cfg.GetAPIURL())
		fmt.Printf("  Sort speed: %s\n", cfg.Speed())
		fmt.Printf("  Prime speed: %s\n", cfg.PrimeSpeed())
		fmt.Printf("  Array size: %d\n", cfg.ArraySize)
		fmt.Println("\nTip: Start the compute service with 'algoviz serve' before playing")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("api-url", "", "Base URL of the compute service")
	initCmd.Flags().Int("speed", 0, "Delay between sort steps in milliseconds")
	initCmd.Flags().Int("prime-speed", 0, "Delay between primality steps in milliseconds")
	initCmd.Flags().Int("size", 0, "Default random array size (5-20)")
	initCmd.Flags().Bool("reset", false, "Delete saved settings first")
}
