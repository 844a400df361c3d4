package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gameday/internal/config"
	"gameday/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "gameday",
	Short: "NFL game analysis and prediction pipeline",
	Long: `Gameday analyzes an upcoming NFL matchup by running a workflow of
specialist analyzers over recent game data, injury reports, and the
game-day forecast, then combines their output into a prediction.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/gameday/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("GAMEDAY")
	// GAMEDAY_SPORTSDATA_API_KEY maps to sportsdata.api_key
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func newLogger(cfg *config.Config) *logging.Logger {
	return logging.New(os.Stderr, cfg.Logging.Level)
}
