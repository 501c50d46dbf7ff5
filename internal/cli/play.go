package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <player> e <move>",
		Short: "Submit a command to the open round",
		Long: `Submit a command line to the server. "<player> e <move>" records a move
for the player; the resolve directive ("play" in English) resolves the round.`,
		Example: `  rpsls play Alice e Rock
  rpsls play Bob e "Spock (Scissors)"
  rpsls play play`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submit(cmd, strings.Join(args, " "))
		},
	}
}

func newResolveCmd() *cobra.Command {
	var directive string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the open round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return submit(cmd, directive)
		},
	}

	cmd.Flags().StringVar(&directive, "directive", getEnvOrDefault("RPSLS_DIRECTIVE", "play"),
		"Resolve directive of the server locale (env: RPSLS_DIRECTIVE)")

	return cmd
}

func submit(cmd *cobra.Command, line string) error {
	req := map[string]string{"command": line}
	var result PlayResult

	if err := client.Post(cmd.Context(), "/api/v1/play", req, &result); err != nil {
		return err
	}

	output(cmd).Print(result)
	return nil
}

func newRoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Show the open round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Round

			if err := client.Get(cmd.Context(), "/api/v1/round", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Discard the open round without archiving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), "/api/v1/round"); err != nil {
				return err
			}

			output(cmd).PrintMessage("Round reset")
			return nil
		},
	})

	return cmd
}
