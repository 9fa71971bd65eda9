// Package cli implements the bizyair command line tool.
package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bizyair/bizyair-go"
)

// app carries flag values and collaborators shared by all commands.
type app struct {
	cfgFile string
	server  string
	apiKey  string
	verbose bool

	getenv     func(string) string
	httpClient *http.Client
	log        *logrus.Logger
}

// Execute runs the CLI and reports any error on stderr.
func Execute() error {
	cmd := NewRootCommand()
	err := cmd.Execute()
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
	}
	return err
}

// NewRootCommand builds the bizyair command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{getenv: os.Getenv, log: logrus.New()})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "bizyair",
		Short: "Run BizyAir workflows from the command line",
		Long: `bizyair sends a workflow to a BizyAir endpoint and prints the result,
either as a single response or as a stream of server-sent events.

The API key is read from --api-key, $BIZYAIR_API_KEY, or the config file
(see 'bizyair config set-key'), in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log.SetOutput(cmd.ErrOrStderr())
			a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			a.log.SetLevel(logrus.WarnLevel)
			if a.verbose {
				a.log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", defaultConfigPath(), "Path to the bizyair config file")
	root.PersistentFlags().StringVar(&a.server, "server", "", "Workflow endpoint URL (overrides config)")
	root.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "API key (overrides config and $"+envAPIKey+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newSendCommand(a))
	root.AddCommand(newStreamCommand(a))
	root.AddCommand(newConfigCommand(a))
	root.AddCommand(newVersionCommand())
	return root
}

// resolve merges the config file, environment and flags.
func (a *app) resolve() (Config, error) {
	fileCfg, err := LoadConfig(a.cfgFile)
	if err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", a.cfgFile, err)
	}
	cfg := fileCfg.withEnv(a.getenv)
	if a.server != "" {
		cfg.Server = a.server
	}
	if a.apiKey != "" {
		cfg.APIKey = a.apiKey
	}
	if cfg.Server == "" {
		return Config{}, fmt.Errorf("no server configured; pass --server, set $%s or run 'bizyair config set-server'", envServer)
	}
	a.log.WithFields(logrus.Fields{
		"config": a.cfgFile,
		"server": cfg.Server,
		"key":    cfg.APIKey != "",
	}).Debug("resolved configuration")
	return cfg, nil
}

func (a *app) clientOptions(cfg Config) []bizyair.Option {
	opts := []bizyair.Option{bizyair.WithAPIKey(cfg.APIKey)}
	if a.httpClient != nil {
		opts = append(opts, bizyair.WithHTTPClient(a.httpClient))
	}
	return opts
}
