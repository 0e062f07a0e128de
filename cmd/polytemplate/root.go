package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/robbyt/go-polytemplate/engines/types"
	"github.com/robbyt/go-polytemplate/options"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg     cliConfig
	handler slog.Handler
	closer  func() error
	stdout  io.Writer
}

func (a *app) options() ([]options.Option, error) {
	engineType, err := types.Parse(a.cfg.Engine)
	if err != nil {
		return nil, err
	}
	opts := []options.Option{
		options.WithLogHandler(a.handler),
		options.WithEngineType(engineType),
	}
	if a.cfg.NullText != "" {
		opts = append(opts, options.WithNullText(a.cfg.NullText))
	}
	return opts, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout}

	root := &cobra.Command{
		Use:          "polytemplate",
		Short:        "Resolve ${placeholder} and #{expression} templates",
		Long:         `Resolve string templates against YAML or JSON contexts, and build every template of a definition.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			handler, closer, err := newLogHandler(cfg, stderr)
			if err != nil {
				return err
			}
			a.cfg, a.handler, a.closer = cfg, handler, closer
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closer == nil {
				return nil
			}
			return a.closer()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.String("engine", types.Default.String(), fmt.Sprintf("expression engine %v", types.All()))
	flags.Bool("strict", false, "fail on placeholders without a value or default")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-file", "", "also write JSON logs to this file")
	flags.String("null-text", "", "text substituted for placeholders whose value is null")
	flags.String("config", "", "config file, defaults to ./polytemplate.yaml when present")

	root.AddCommand(newResolveCmd(a), newBuildCmd(a))
	return root
}
