package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treeship/treeship/pkg/log"
	"github.com/treeship/treeship/pkg/output"
	"github.com/treeship/treeship/pkg/sync"
)

var (
	branchFlag string
	tokenFlag  string
	authorFlag string
	repoFlag   string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "treeship <local-dir> <remote>",
	Short: "Publish a monorepo directory as the full history of its own repository",
	Long: `Treeship extracts the commit history of a single directory inside a
monorepo and republishes it as the complete history of an independent
repository, doing the work only when that directory actually changed in the
current git event.

It is built to run inside GitHub Actions workflows, where it reads the
ambient event context (push, pull request, tag) to pick the comparison base
and the target branch, but it also works as a standalone command against any
git remote.

Examples:
  treeship packages/frontend git@github.com:acme/frontend.git
  treeship packages/backend https://github.com/acme/backend.git -t $GITHUB_TOKEN -b main
  treeship libs/shared /srv/git/shared.git -a "Release Bot <bot@acme.dev>"

Two result variables, pushed and skipped, are written to the file named by
GITHUB_OUTPUT, or printed as legacy ::set-output markers when it is unset.
Exit code is 0 when the run pushed or skipped, 1 on any failure.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Init(log.Level(logLevel))
		defer func() { _ = log.Sync() }()

		token := tokenFlag
		if token == "" {
			token = os.Getenv("GITHUB_TOKEN")
		}

		result, err := sync.Run(cmd.Context(), sync.Options{
			RepoDir:  repoFlag,
			LocalDir: args[0],
			Remote:   args[1],
			Branch:   branchFlag,
			Token:    token,
			Author:   authorFlag,
		})

		sink := output.NewSinkFromEnv()
		if outErr := sink.SetBool("pushed", result.Pushed); outErr != nil {
			log.Warn("failed to write pushed output variable", "error", outErr)
		}
		if outErr := sink.SetBool("skipped", result.Skipped); outErr != nil {
			log.Warn("failed to write skipped output variable", "error", outErr)
		}

		return err
	},
}

func init() {
	rootCmd.Flags().StringVarP(&branchFlag, "branch", "b", "", "Target branch to publish to (default: derived from the event, then the remote's default branch)")
	rootCmd.Flags().StringVarP(&tokenFlag, "token", "t", "", "Credential for HTTPS remotes (defaults to GITHUB_TOKEN env var)")
	rootCmd.Flags().StringVarP(&authorFlag, "author", "a", "", "Commit identity as \"Name <email>\"")
	rootCmd.Flags().StringVarP(&repoFlag, "repo", "C", ".", "Path to the monorepo working copy")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
