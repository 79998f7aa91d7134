package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/my0373/nbcli/cmd/nbcli/commands"
	"github.com/my0373/nbcli/internal/constants"
	"github.com/my0373/nbcli/pkg/netbox"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "nbcli",
	Short: "Interrogate a NetBox API from the command line",
	Long: `A command-line client for the NetBox REST API.

nbcli browses the catalog (status, get, list), follows pagination, selects
values with dotted paths, and dumps every reachable endpoint to a file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.nbcli/config.yaml)")
	rootCmd.PersistentFlags().String("url", "", "NetBox base URL")
	rootCmd.PersistentFlags().StringP("token", "t", "", "NetBox API token")
	rootCmd.PersistentFlags().StringP("output", "o", constants.DefaultOutputFormat, "output format (pretty, json, yaml, csv)")
	rootCmd.PersistentFlags().Float64("timeout", 30, "HTTP timeout in seconds")
	rootCmd.PersistentFlags().Bool("insecure", false, "disable TLS certificate verification")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("insecure", rootCmd.PersistentFlags().Lookup("insecure"))
	_ = viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewStatusCommand())
	rootCmd.AddCommand(commands.NewGetCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewDumpCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		// Search config in ~/.nbcli/config.yaml
		viper.AddConfigPath(filepath.Join(home, constants.ConfigDirName))
		viper.SetConfigType(constants.ConfigFileType)
		viper.SetConfigName(constants.ConfigFileName)
	}

	// Read in environment variables that match (NETBOX_URL, NETBOX_TOKEN, ...)
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(netbox.ExitCode(err))
	}
}

// reportError writes the failure the way the exit-code contract expects:
// HTTP errors print status, reason, and raw body to stderr; a non-JSON 2xx
// body is still meaningful content and goes to stdout.
func reportError(err error) {
	var httpErr *netbox.HTTPError
	if errors.As(err, &httpErr) {
		fmt.Fprintf(os.Stderr, "%d %s\n", httpErr.StatusCode, httpErr.Reason)
		fmt.Fprintln(os.Stderr, httpErr.Body)

		return
	}

	var notJSON *netbox.NotJSONError
	if errors.As(err, &notJSON) {
		fmt.Println(notJSON.Body)

		return
	}

	fmt.Fprintln(os.Stderr, err)
}
