/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/Taskify/internal/logger"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// version is the application version.
	version = "1.0.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskify",
	Short: "Taskify - a small, fast task list for your terminal",
	Long: `Taskify keeps a personal task list with due dates, priorities, subtasks
and a completion streak. Tasks live in a data directory (one JSON file per
slot) or a SQLite database, and several terminals can follow the same list.

Run "taskify tui" for the interactive screen.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.HandlePanic()
	logger.SetVersion(version)

	if err := rootCmd.Execute(); err != nil {
		printCommandError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.taskify/.taskify.yaml or $HOME/.taskify.yaml)")
	pf.BoolP("verbose", "v", false, "enable verbose output")
	pf.Bool("json", false, "print machine-readable JSON")
	pf.BoolP("quiet", "q", false, "print only essential output")
	pf.String("data-dir", "", "directory holding the task data")
	pf.String("backend", "", "storage backend: file or sqlite")

	bindFlags()
}

// bindFlags binds the persistent flags to their viper keys.
func bindFlags() {
	pf := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("config", pf.Lookup("config"))
	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("json", pf.Lookup("json"))
	_ = viper.BindPFlag("quiet", pf.Lookup("quiet"))
	_ = viper.BindPFlag("data.dir", pf.Lookup("data-dir"))
	_ = viper.BindPFlag("data.backend", pf.Lookup("backend"))
}

// setupCommand loads the configuration and the process logger before any
// subcommand runs.
func setupCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	GlobalAppConfig = cfg

	slog.SetDefault(logger.New(cmd.ErrOrStderr(), cfg.Verbose))
	logger.SetBasePath(cfg.Data.Dir)
	logger.SetCommand(cmd.CommandPath())
	return nil
}
