package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/chibuka/algoviz/client"
	"github.com/chibuka/algoviz/internal/playback"
	"github.com/chibuka/algoviz/internal/steps"
	"github.com/chibuka/algoviz/ui"
	"github.com/chibuka/algoviz/ui/messages"
	"github.com/spf13/cobra"
)

var primeCmd = &cobra.Command{
	Use:   "prime [n]",
	Short: "Step through a primality test by trial division",
	Long: `Play a trial-division primality test step by step.

Every divisor from 2 up to the square root of n is tried in turn until one
divides n or none is left. Without n the player asks for one.

Examples:
  algoviz prime 97
  algoviz prime 1000003 --speed 2x
  algoviz prime 91 --plain

Controls: space pause/resume, ←/→ step, g restart, G skip to end,
s speed, n new number, q quit.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{quietLogs: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appCfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		var n int64
		if len(args) > 0 {
			// Anything that isn't a number >= 2 just doesn't start a check.
			n, _ = steps.ParseCandidate(args[0])
		}

		speedFlag, _ := cmd.Flags().GetString("speed")
		speed, err := resolveSpeed(speedFlag, playback.PrimePresets, appCfg.PrimeSpeed())
		if err != nil {
			return err
		}
		plain, _ := cmd.Flags().GetBool("plain")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		c := client.New(appCfg, logger)

		if !plain {
			return runProgram(ctx, ui.NewPrimeModel(ctx, c, ui.PrimeOptions{
				Number: n,
				Speed:  speed,
				Logger: logger,
			}))
		}

		if n == 0 {
			return fmt.Errorf("a whole number >= 2 is required with --plain")
		}
		res, err := c.CheckPrime(ctx, n)
		if err != nil {
			return fetchError(err)
		}
		fmt.Println(ui.PrimeHeader(n))

		verdict := messages.VerdictMsg{Result: res}
		if len(res.Steps) == 0 {
			fmt.Println(ui.RenderVerdict(res))
			return nil
		}
		return playPlain(ctx, res.Steps, speed, func(s steps.PrimeStep, st playback.State) messages.Msg {
			return messages.PrimeStepMsg{Step: s, State: st}
		}, verdict)
	},
}

func init() {
	rootCmd.AddCommand(primeCmd)
	primeCmd.Flags().String("speed", "", "Playback speed preset: 0.5x, 1x or 2x")
	primeCmd.Flags().Bool("plain", false, "Print steps instead of opening the interactive player")
}
