package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	projectapi "github.com/CircleCI-Public/circleci-env-vars/api/project"
	"github.com/CircleCI-Public/circleci-env-vars/envvar"
	"github.com/CircleCI-Public/circleci-env-vars/errs"
	"github.com/CircleCI-Public/circleci-env-vars/logger"
	"github.com/CircleCI-Public/circleci-env-vars/settings"
	"github.com/CircleCI-Public/circleci-env-vars/version"
)

const rootHelpLong = `Mass update of environment variables in CircleCI.
Every project followed by the owner of the token is updated.

Use case: rotate AWS keys.`

type rootOptions struct {
	cfg    *settings.Config
	action string
	name   string
	value  string

	parsed envvar.Action
}

// Execute builds the root command and runs it against os.Args.
// This function is called by main.main().
func Execute() error {
	err := MakeCommand(settings.New()).Execute()
	logger.NewLogger(false).Error("Error: ", err)
	return err
}

// MakeCommand returns the root command. Flags are written into cfg.
func MakeCommand(cfg *settings.Config) *cobra.Command {
	opts := &rootOptions{cfg: cfg}

	command := &cobra.Command{
		Use:     "circleci-env-vars --token TOKEN --action ACTION --name NAME [--value VALUE]",
		Short:   "Create, update or delete an environment variable on all followed CircleCI projects",
		Long:    rootHelpLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		// Execute prints the error through the logger.
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			// cobra checks required flags only after PreRunE.
			if err := cmd.ValidateRequiredFlags(); err != nil {
				return err
			}
			return opts.validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			log := logger.NewLoggerWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.cfg.Debug)
			return run(cmd, opts, log)
		},
	}

	flags := command.Flags()
	flags.BoolVar(&cfg.Debug, "debug", false, "Print debug info")
	flags.StringVar(&cfg.Token, "token", "", "CircleCI token")
	flags.StringVar(&opts.action, "action", "", "Should be one of create/update/delete")
	flags.StringVar(&opts.name, "name", "", "Environment variable name to create/update/delete")
	flags.StringVar(&opts.value, "value", "", "New value for environment variable, ignored for delete")
	flags.StringVar(&cfg.Host, "host", cfg.Host, "URL of your CircleCI host")
	flags.StringVar(&cfg.RestEndpoint, "rest-endpoint", cfg.RestEndpoint, "URI of the CircleCI v1.1 REST API on the host")

	for _, name := range []string{"token", "action", "name"} {
		if err := command.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
	for _, name := range []string{"host", "rest-endpoint"} {
		if err := flags.MarkHidden(name); err != nil {
			panic(err)
		}
	}

	return command
}

func (opts *rootOptions) validate() error {
	action, err := envvar.ParseAction(opts.action)
	if err != nil {
		return err
	}
	opts.parsed = action

	if opts.cfg.Token == "" {
		return errs.AuthRequired(errors.New("--token must not be empty"))
	}
	if opts.name == "" {
		return errs.InvalidArgumentf("--name must not be empty")
	}
	if action.NeedsValue() && opts.value == "" {
		return errs.InvalidArgumentf("--value is required for %s", action)
	}
	return nil
}

func run(cmd *cobra.Command, opts *rootOptions, log *logger.Logger) error {
	client, err := projectapi.NewProjectRestClient(opts.cfg, log)
	if err != nil {
		return err
	}

	value := opts.value
	if !opts.parsed.NeedsValue() {
		value = ""
	}

	results, err := envvar.NewManager(client, log).Run(opts.parsed, opts.name, value)
	if err != nil {
		return err
	}

	renderSummary(cmd.OutOrStdout(), opts.name, results)
	log.Infoln("Done")
	return nil
}
