// Command sojus is the command-line front end of the SOJUS service desk.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{out: stdout, errOut: stderr}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.showMetrics {
		a.printMetrics()
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", apperrors.MessageOf(err, err.Error()))
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sojus",
		Short: "SOJUS service desk client",
		Long: `Command-line client for the SOJUS service desk.

The session is kept in the configured credential store, so a login survives
between invocations until it is revoked or the server rejects the token.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.baseURL, "api-url", "", "API base URL (overrides SOJUS_API_BASE_URL)")
	root.PersistentFlags().BoolVar(&a.showMetrics, "metrics", false, "Print request counters to stderr on exit")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newViewsCmd(a),
		newTicketsCmd(a),
		newInventoryCmd(a),
		newContractsCmd(a),
		newDashboardCmd(a),
		newUsersCmd(a),
		newAuditCmd(a),
		newCourtsCmd(a),
	)
	return root
}
