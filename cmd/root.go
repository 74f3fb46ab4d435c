// Package cmd provides the root command and CLI setup for latte.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"latte.dev/pkg/latte/internal/adapter"
	"latte.dev/pkg/latte/internal/domain"
)

var suiteFSAdapter adapter.SuiteFSAdapter
var commandRunner adapter.CommandRunnerAdapter
var suiteLoader adapter.SuiteLoader
var workflow domain.Workflow

// excludePatterns is a root-level flag that filters suite files for applicable commands.
var excludePatterns []string

// parallelFlag bounds how many suite files are decoded at once.
var parallelFlag int

var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	suiteFSAdapter = adapter.NewLocalSuiteFSAdapter()
	commandRunner = adapter.NewLocalCommandRunnerAdapter()
	suiteLoader = adapter.NewYAMLSuiteAdapter(suiteFSAdapter, commandRunner)
	workflow = domain.NewWorkflow(suiteFSAdapter, suiteLoader)
}

const patternsHelp = `Suites are YAML files selected with doublestar globs:
  - (none)                 every ` + adapter.DefaultSuitePattern + ` below the current directory
  - ./suites               every suite file below ./suites
  - 'api/**/*.yaml'        any glob, quoted so the shell leaves it alone`

const rootLongDescription = `Latte runs BDD style test suites: nested describe and when groups of
cases with before, after, beforeEach and afterEach hooks. Results are
streamed to the console as an indented tree followed by a numbered
recap of every failure.

` + patternsHelp

const runLongDescription = `Run the suites matched by the given patterns (default: every suite below
the current directory). Exits non-zero when anything fails.

` + patternsHelp

const listLongDescription = `List suite files with the number of groups, cases and hooks they declare.

` + patternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latte",
		Short: "BDD test runner",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude suite files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of suite files decoded in parallel")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// An interrupt cancels the run; cases not started yet are reported pending.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
