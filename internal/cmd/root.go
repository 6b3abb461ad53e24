package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	logFile   string
	outputFmt string
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "weblogs",
	Short: "weblogs — web portal access log analytics",
	Long: `weblogs parses the portal access log (an ad-hoc quoted line format with
mixed-language field names), attributes every visit to an organizational
unit, and aggregates visits per unit and per employee over a date range.
Results are rendered as terminal tables or served as a live web dashboard.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.weblogs.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "f", "", "path to the access log (default: cess_log.txt)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format: text, json")

	viper.SetDefault("log_file", "cess_log.txt")
	viper.SetDefault("port", "8080")
	viper.SetDefault("log_level", "info")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".weblogs")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	if logFile == "" {
		logFile = viper.GetString("log_file")
	}

	if level, err := log.ParseLevel(viper.GetString("log_level")); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&log.TextFormatter{TimestampFormat: "2006-01-02 15:04:05", FullTimestamp: true})
}

// configuredUnits returns the unit universe from config, if overridden.
// An empty return means the built-in six-unit default applies.
func configuredUnits() []string {
	return viper.GetStringSlice("units")
}
