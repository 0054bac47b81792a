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
	"go.uber.org/zap"
)

var sortCmd = &cobra.Command{
	Use:   "sort [values...]",
	Short: "Step through a bubble sort",
	Long: `Play a bubble sort step by step.

Without values a random array is sorted. Its size comes from --size or the
array_size setting and is kept between 5 and 20.

Examples:
  algoviz sort 5 2 9 1
  algoviz sort --size 15 --speed 2x
  algoviz sort 3 1 2 --plain

Controls: space pause/resume, ←/→ step, g restart, G skip to end,
s speed, r randomize, +/- size, enter run again, q quit.`,
	Annotations: map[string]string{quietLogs: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appCfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		values, err := parseValues(args)
		if err != nil {
			return err
		}

		speedFlag, _ := cmd.Flags().GetString("speed")
		speed, err := resolveSpeed(speedFlag, playback.SortPresets, appCfg.Speed())
		if err != nil {
			return err
		}

		size := appCfg.ArraySize
		if cmd.Flags().Changed("size") {
			size, _ = cmd.Flags().GetInt("size")
		}
		plain, _ := cmd.Flags().GetBool("plain")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		c := client.New(appCfg, logger)
		logger.Debug("sort requested", zap.Ints("values", values), zap.Int("size", size), zap.Duration("speed", speed))

		if !plain {
			return runProgram(ctx, ui.NewSortModel(ctx, c, ui.SortOptions{
				Values: values,
				Size:   size,
				Speed:  speed,
				Logger: logger,
			}))
		}

		if len(values) == 0 {
			values = steps.RandomArray(steps.ClampArraySize(size), nil)
		}
		res, err := c.BubbleSort(ctx, values)
		if err != nil {
			return fetchError(err)
		}
		fmt.Printf("Sorting %v (%d steps)\n", values, len(res.Steps))

		return playPlain(ctx, res.Steps, speed, func(s steps.SortStep, st playback.State) messages.Msg {
			return messages.SortStepMsg{Step: s, State: st}
		})
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().Int("size", steps.DefaultArraySize, "Length of the random array (5-20)")
	sortCmd.Flags().String("speed", "", "Playback speed preset: 0.5x, 1x or 2x")
	sortCmd.Flags().Bool("plain", false, "Print steps instead of opening the interactive player")
}
