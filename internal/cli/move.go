package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move registry commands",
	}

	cmd.AddCommand(newMoveAddCmd())
	cmd.AddCommand(newMoveListCmd())
	cmd.AddCommand(newMoveGetCmd())
	cmd.AddCommand(newMoveDeleteCmd())

	return cmd
}

func newMoveAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Register a move by its localized name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": strings.Join(args, " ")}
			var result Move

			if err := client.Post(cmd.Context(), "/api/v1/moves", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newMoveListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered moves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Move

			if err := client.Get(cmd.Context(), "/api/v1/moves", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newMoveGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show a registered move",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Move

			if err := client.Get(cmd.Context(), pathf("/api/v1/moves/%s", strings.Join(args, " ")), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newMoveDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a registered move",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			if err := client.Delete(cmd.Context(), pathf("/api/v1/moves/%s", name)); err != nil {
				return err
			}

			output(cmd).PrintMessage(fmt.Sprintf("Move %s removed", name))
			return nil
		},
	}
}
