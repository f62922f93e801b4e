// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jordanamos/sas-cli/cmd/configcmd"
	"github.com/jordanamos/sas-cli/cmd/datacmd"
	"github.com/jordanamos/sas-cli/cmd/doctorcmd"
	"github.com/jordanamos/sas-cli/cmd/filecmd"
	"github.com/jordanamos/sas-cli/cmd/runcmd"
	"github.com/jordanamos/sas-cli/cmd/sessioncmd"
	"github.com/jordanamos/sas-cli/cmd/updatecmd"
	"github.com/jordanamos/sas-cli/pkg/application"
	"github.com/jordanamos/sas-cli/pkg/config"
	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/prompts"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

var (
	app = application.New()

	Version = "1.0.0"

	logLevel       string
	cfgFile        string
	nonInteractive bool
	verboseFlag    bool
	debugFlag      bool
	quietFlag      bool
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "sas [PROGRAM...]",
		Long: `sas - Run SAS programs from the command line.

Submits .sas programs to a SAS runtime (a local install or a remote
host over SSH), streams the log back with display-manager coloring,
and renders result tables in the terminal.

COMMAND OVERVIEW:

  run       Submit one or more .sas programs
  data      Inspect and export datasets (libs/tables/head/describe/export)
  session   Test the connection and show runtime details
  file      Transfer files to and from the session host
  config    CLI settings and connection profiles
  doctor    Check the local environment

QUICK START:

  # Describe how to reach your SAS runtime
  sas config init

  # Run a program (both forms are equivalent)
  sas run report.sas
  sas report.sas

  # Look at the output dataset
  sas data head work.report

For detailed command help, use: sas <command> --help`,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: createApp,
		Version:           Version,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			// bare `sas program.sas` forwards to run
			for _, arg := range args {
				if !strings.HasSuffix(arg, constants.ProgramSuffix) {
					return fmt.Errorf("unknown command %q for %q", arg, cmd.CommandPath())
				}
			}
			return runcmd.RunPrograms(cmd.Context(), app, args, runcmd.DefaultOptions(app))
		},
	}

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sas-cli/cli.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level for the application log file")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false,
		"Disable prompts; fail if required values are missing (also enabled when stdin is not a TTY or CI=1)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Show verbose output (info level logs)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Show debug output (debug level logs)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Show only errors (quiet mode)")

	rootCmd.AddCommand(runcmd.NewCmd(app))
	rootCmd.AddCommand(datacmd.NewCmd(app))
	rootCmd.AddCommand(sessioncmd.NewCmd(app))
	rootCmd.AddCommand(filecmd.NewCmd(app))
	rootCmd.AddCommand(configcmd.NewCmd(app))
	rootCmd.AddCommand(doctorcmd.NewCmd(app))
	rootCmd.AddCommand(updatecmd.NewCmd(app, Version))

	return rootCmd
}

func createApp(cmd *cobra.Command, _ []string) error {
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}
	log, err := setupLogging(baseDir)
	if err != nil {
		return err
	}

	// If --non-interactive is set, propagate to env so IsInteractive() sees it
	if nonInteractive {
		_ = os.Setenv(prompts.EnvNonInteractive, "1")
	}

	prompter := prompts.NewPrompterForMode(nonInteractive)
	app.Setup(baseDir, log, config.New(), prompter)

	initConfig()
	return nil
}

func setupEnv() (string, error) {
	usr, err := user.Current()
	if err != nil {
		// no logger here yet
		fmt.Printf("unable to get system user %s\n", err)
		return "", err
	}
	baseDir := filepath.Join(usr.HomeDir, constants.BaseDirName)

	for _, dir := range []string{
		baseDir,
		filepath.Join(baseDir, constants.LogDir),
		filepath.Join(baseDir, constants.ResultsDir),
	} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			fmt.Printf("failed creating directory %s: %s\n", dir, err)
			return "", err
		}
	}
	return baseDir, nil
}

func setupLogging(baseDir string) (*zap.SugaredLogger, error) {
	level := zapcore.WarnLevel
	switch {
	case debugFlag:
		level = zapcore.DebugLevel
	case verboseFlag:
		level = zapcore.InfoLevel
	case quietFlag:
		level = zapcore.ErrorLevel
	case logLevel != "":
		parsed, err := zapcore.ParseLevel(logLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		level = parsed
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	logPath := filepath.Join(baseDir, constants.LogDir, constants.AppLogName)
	cfg.OutputPaths = []string{logPath}
	cfg.ErrorOutputPaths = []string{logPath}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed setting up logging: %w", err)
	}
	// User output goes to stdout, logs go to the log file
	ux.NewUserLog(logger.Sugar(), os.Stdout)
	return logger.Sugar(), nil
}

// initConfig reads in config file and ENV variables if set.
// Priority: flags > env vars > config file > defaults
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(app.GetBaseDir())
		viper.SetConfigType(constants.DefaultConfigFileType)
		viper.SetConfigName(constants.DefaultConfigFileName)
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		app.Log.Debugf("using config file %s", viper.ConfigFileUsed())
	}
	// No config file is normal - most users don't have one, so we silently continue
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: %s\n", err)
		os.Exit(1)
	}
}
