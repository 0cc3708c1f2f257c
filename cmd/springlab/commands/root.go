package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// RunFunc starts the application with the raw process arguments
type RunFunc func(ctx context.Context, args []string) error

// NewRootCmd creates the root command. Flag parsing is disabled so every
// argument reaches run untouched; the container interprets --name=value
// arguments as property overrides.
func NewRootCmd(run RunFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "springlab [--name=value ...]",
		Short: "Start the springlab application container",
		Long: `Start the springlab application container.

Arguments of the form --name=value override configuration properties,
for example --server.port=9090 or --profiles.active=dev. --config=<path>
selects the configuration file. Other arguments are accepted and ignored.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args)
		},
	}
}

// Execute runs the root command with args
func Execute(ctx context.Context, args []string, run RunFunc) error {
	if args == nil {
		args = []string{}
	}
	if completionRequest(args) {
		return run(ctx, args)
	}

	cmd := NewRootCmd(run)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// completionRequest reports whether cobra would dispatch args to its hidden
// shell completion commands instead of the root command.
func completionRequest(args []string) bool {
	for _, arg := range args {
		if arg == cobra.ShellCompRequestCmd || arg == cobra.ShellCompNoDescRequestCmd {
			return true
		}
	}
	return false
}
