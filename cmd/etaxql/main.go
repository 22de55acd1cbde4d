package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/etaxql/etaxql/cmd/etaxql/cli"
	"github.com/etaxql/etaxql/internal/query"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command tree and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	exitCode := 0
	root := newRootCommand(&exitCode)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "etaxql: %v\n", err)
		return 1
	}
	return exitCode
}

func newRootCommand(exitCode *int) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the e-tax documents over GraphQL",
		Long: `Load the five e-tax document fixtures and serve them through the GraphQL
endpoint at /graphql. Configuration comes from the environment (and an
optional .env file): APP_ADDR, FIXTURE_DIR, LOG_FORMAT, GRAPHQL_INTROSPECTION
and friends.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			*exitCode = runServe(cmd.Context())
		},
	}

	root := &cobra.Command{
		Use:           "etaxql",
		Short:         "GraphQL façade over Thai e-tax sample documents",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run:           serveCmd.Run,
	}

	var checkOpts cli.CheckOptions
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify every fixture is served back unchanged",
		Example: `  # Check the bundled fixtures
  etaxql check

  # Machine readable report for another directory
  etaxql check --dir ./fixtures --json`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			checkOpts.Stdout = cmd.OutOrStdout()
			checkOpts.Stderr = cmd.ErrOrStderr()
			*exitCode = cli.CheckCommand(cmd.Context(), checkOpts)
		},
	}
	checkCmd.Flags().StringVar(&checkOpts.Dir, "dir", defaultFixtureDir(), "directory holding the fixture files")
	checkCmd.Flags().BoolVar(&checkOpts.JSONOutput, "json", false, "print the report as JSON")

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the GraphQL schema definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), query.SDL())
			return err
		},
	}

	root.AddCommand(serveCmd, checkCmd, schemaCmd)
	return root
}

func defaultFixtureDir() string {
	if dir := os.Getenv("FIXTURE_DIR"); dir != "" {
		return dir
	}
	return "data"
}
