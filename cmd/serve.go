package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chibuka/algoviz/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve [--addr <host:port>]",
	Short: "Run the compute service",
	Long: `Run the compute service that generates algorithm traces.

The service answers POST /api/sort/bubble and GET /api/prime/check?n=<n>
with the full list of steps. The sort and prime commands play them back.

Examples:
  algoviz serve
  algoviz serve --addr 127.0.0.1:9090`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appCfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		addr, err := cmd.Flags().GetString("addr")
		if err != nil {
			return fmt.Errorf("failed to get addr flag: %w", err)
		}
		if addr == "" {
			addr = appCfg.ListenAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := service.New(service.Options{
			Addr:           addr,
			MaxArrayLen:    appCfg.MaxArrayLen,
			MaxPrime:       appCfg.MaxPrime,
			RateLimitRPS:   appCfg.RateLimitRPS,
			RateLimitBurst: appCfg.RateLimitBurst,
			AllowOrigin:    appCfg.AllowOrigin,
		}, logger)

		fmt.Printf("✓ Compute service listening on %s\n", addr)
		logger.Info("starting compute service", zap.String("addr", addr))
		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("compute service failed: %w", err)
		}
		fmt.Println("Compute service stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default from listen_addr)")
}
