package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/egoavara/verify-structure/internal/i18n"
	"github.com/egoavara/verify-structure/internal/report"
	"github.com/egoavara/verify-structure/internal/verify"
	"github.com/spf13/cobra"
)

// ExitError carries a process exit code without an error message
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// env is what every command needs from main
type env struct {
	tr     *i18n.Translator
	logger *slog.Logger
	// getwd locates the marketplace root
	getwd func() (string, error)
}

// NewRootCmd builds the command tree. Nil arguments fall back to English
// messages and a discarding logger.
func NewRootCmd(tr *i18n.Translator, logger *slog.Logger) *cobra.Command {
	if tr == nil {
		tr = i18n.MustNew("en-US")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &env{tr: tr, logger: logger, getwd: os.Getwd}

	var strict bool
	rootCmd := &cobra.Command{
		Use:           "verify-structure",
		Short:         "Verify a Claude Code plugin marketplace",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `verify-structure checks the Claude Code plugin marketplace in the
current directory: .claude-plugin/marketplace.json and every local
plugin it declares (manifests, skills, commands, agents, hooks, MCP
servers and custom paths).

Exit status is 0 when the marketplace is valid and 1 otherwise.
Warnings only fail the run with --strict.

Examples:
  verify-structure              # Normal mode (warnings allowed)
  verify-structure --strict     # Strict mode (warnings fail)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runVerify(cmd, strict)
		},
	}
	rootCmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors (useful for CI/CD)")

	rootCmd.AddCommand(newConfigCmd(e))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func (e *env) runVerify(cmd *cobra.Command, strict bool) error {
	root, err := e.getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}

	p := report.New(cmd.OutOrStdout(), e.tr)
	p.Heading(strict)

	res := verify.NewChecker(root, verify.WithLogger(e.logger)).Run()
	p.Render(res, strict)

	if code := verify.Tally(res).ExitCode(strict); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// Execute runs the command line and returns the process exit code
func Execute(tr *i18n.Translator, logger *slog.Logger) int {
	return run(NewRootCmd(tr, logger), os.Args[1:])
}

func run(rootCmd *cobra.Command, args []string) int {
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		return 2
	}
	return 0
}
