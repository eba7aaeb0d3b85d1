package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dhoelle/botwire"
)

var (
	cfgPath   string
	tokenFlag string
	hostFlag  string
	verbose   bool

	appConfig *config
)

var rootCmd = &cobra.Command{
	Use:           "botwire",
	Short:         "botwire - talk to the Telegram Bot API from the command line",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appConfig, err = loadConfig(cfgPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default ~/.botwire.yaml)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "bot token (overrides config and $BOTWIRE_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "API host (default api.telegram.org)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log outgoing calls")
}

// newClient resolves the token from flag, environment and config, in that
// order, and builds the API client.
func newClient() (*botwire.Client, error) {
	token := tokenFlag
	if token == "" {
		token = os.Getenv("BOTWIRE_TOKEN")
	}
	if token == "" {
		token = appConfig.Token
	}
	if token == "" {
		return nil, fmt.Errorf("no bot token: use --token, $BOTWIRE_TOKEN or the config file")
	}

	opts := []botwire.ClientOption{}
	host := hostFlag
	if host == "" {
		host = appConfig.Host
	}
	if host != "" {
		opts = append(opts, botwire.WithHost(host))
	}
	if verbose {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
		opts = append(opts, botwire.WithLogger(log))
	}
	return botwire.NewClient(token, opts...), nil
}

// parseChat turns a --chat argument into a ChatRef: "@name" stays a
// username, anything else must be a numeric chat ID.
func parseChat(s string) (botwire.ChatRef, error) {
	if s == "" {
		s = appConfig.Chat
	}
	if s == "" {
		return nil, fmt.Errorf("no chat: use --chat or the config file")
	}
	if strings.HasPrefix(s, "@") {
		return botwire.ChatUsername(s), nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("chat must be a numeric ID or @username: %q", s)
	}
	return botwire.ChatID(id), nil
}
