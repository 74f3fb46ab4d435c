package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"latte.dev/pkg/latte/internal/controller"
	"latte.dev/pkg/latte/internal/domain"
)

var runTimeoutFlag string
var runHookFailuresFlag string
var runColorFlag string
var runSpillDirFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [patterns...]",
		Short: "Run test suites",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := domain.ParseHookFailurePolicy(viper.GetString(hookFailuresKey))
			if err != nil {
				return err
			}

			timeout, err := parseTimeout(viper.GetString(timeoutKey))
			if err != nil {
				return err
			}

			color, err := useColor(viper.GetString(colorKey), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			reporter := controller.NewDefaultReporter(
				cmd.OutOrStdout(),
				controller.WithColor(color),
				controller.WithSpillDir(viper.GetString(spillDirKey)),
			)

			totals, err := workflow.Run(cmd.Context(), domain.RunArgs{
				LoadArgs: domain.LoadArgs{
					Patterns: args,
					Exclude:  viper.GetStringSlice(excludeConfigKey),
					Parallel: viper.GetInt(parallelConfigKey),
				},
				Reporter:     reporter,
				Timeout:      timeout,
				HookFailures: policy,
			})
			if err != nil {
				return err
			}

			if totals.Failing > 0 {
				// The recap already explains the failures.
				cmd.SilenceUsage = true
				return fmt.Errorf("%d failing", totals.Failing)
			}

			return nil
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&runTimeoutFlag, timeoutFlagName, "t", viper.GetString(timeoutKey), "timeout for every case and hook, e.g. 2s (0 disables it)")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), timeoutKey)

	cmd.Flags().StringVar(&runHookFailuresFlag, hookFailuresFlagName, viper.GetString(hookFailuresKey), "record a failing beforeEach hook per-case or once")
	bindFlagToConfig(cmd.Flags().Lookup(hookFailuresFlagName), hookFailuresKey)

	cmd.Flags().StringVar(&runColorFlag, colorFlagName, viper.GetString(colorKey), "colorize output: auto, always or never")
	bindFlagToConfig(cmd.Flags().Lookup(colorFlagName), colorKey)

	cmd.Flags().StringVar(&runSpillDirFlag, spillDirFlagName, viper.GetString(spillDirKey), "directory for the temporary failure log (default: system temp dir)")
	bindFlagToConfig(cmd.Flags().Lookup(spillDirFlagName), spillDirKey)
}

// useColor resolves a color mode against the writer the report goes to.
func useColor(mode string, out io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case colorAlways:
		return true, nil
	case colorNever:
		return false, nil
	case colorAuto, "":
		f, ok := out.(*os.File)
		if !ok {
			return false, nil
		}

		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}

func parseTimeout(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return 0, nil
	}

	timeout, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", value, err)
	}

	if timeout < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", value)
	}

	return timeout, nil
}
