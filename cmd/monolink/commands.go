package monolink

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/monolink/monolink/internal/version"
	"github.com/monolink/monolink/pkg/core"
	"github.com/monolink/monolink/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		rootDir   string
	)

	rootCmd := &cobra.Command{
		Use:     "monolink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand given. Show help but still fail, so scripts
			// notice the misuse.
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", MsgFlagRoot)

	rootCmd.AddCommand(newLinkCmd(&rootDir))
	rootCmd.AddCommand(newUnlinkCmd(&rootDir))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// workspaceRoot resolves the --root flag, falling back to the current
// directory.
func workspaceRoot(rootDir string) (string, error) {
	if rootDir != "" {
		return rootDir, nil
	}
	return os.Getwd()
}

func newLinkCmd(rootDir *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "link",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.link")

			root, err := workspaceRoot(*rootDir)
			if err != nil {
				return err
			}
			logger.Info().Str("root", root).Bool("force", force).Msg("Starting link")

			result, err := core.Link(core.LinkOptions{
				RootFolder: root,
				Force:      force,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Skipped {
				fmt.Fprint(out, MsgLinkSkipped)
				return nil
			}
			fmt.Fprintf(out, MsgLinkDone, len(result.Projects))
			for _, name := range result.Projects {
				fmt.Fprintf(out, MsgProjectsHint, name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	return cmd
}

func newUnlinkCmd(rootDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink",
		Short: MsgUnlinkShort,
		Long:  MsgUnlinkLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceRoot(*rootDir)
			if err != nil {
				return err
			}
			if err := core.Unlink(core.UnlinkOptions{RootFolder: root}); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), MsgUnlinkDone)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "monolink version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}
