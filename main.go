package main

import (
	"fmt"
	"os"

	"github.com/go-i2p/logger"
	"github.com/keylime/go-keylime/lib/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	log       = logger.GetGoI2PLogger()
	constants = config.DefaultConstants()
)

var rootCmd = &cobra.Command{
	Use:   "keylime-agent-config",
	Short: "Resolve keylime agent settings and harden secure paths",
	Long: `Resolves agent settings from the environment, then the configuration
file (KEYLIME_CONFIG, default /etc/keylime.conf), and transfers ownership of
sensitive paths to root.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "configuration file (default $KEYLIME_CONFIG or "+constants.DefaultConfig+")")
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		panic(fmt.Sprintf("failed to bind config flag: %v", err))
	}
	if err := viper.BindEnv("config", constants.ConfigEnv); err != nil {
		panic(fmt.Sprintf("failed to bind %s: %v", constants.ConfigEnv, err))
	}

	rootCmd.AddCommand(pathCmd, getCmd, settingsCmd, secureCmd)
}

// newResolver returns a resolver reading the process environment, except
// that a --config flag takes the place of the config path variable.
func newResolver() *config.Resolver {
	r := config.NewResolver(constants)
	cfgFile := viper.GetString("config")
	if cfgFile == "" {
		return r
	}
	log.WithField("config", cfgFile).Debug("using configuration file from flag or environment")
	r.Getenv = func(name string) string {
		if name == constants.ConfigEnv {
			return cfgFile
		}
		return os.Getenv(name)
	}
	return r
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
