package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
)

func newBreakdownCommand(open Opener) *cobra.Command {
	var userID, accountID string

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Print the current-month expense breakdown of an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			account, err := parseAccount(accountID)
			if err != nil {
				return err
			}

			services, cleanup, err := open(cmd.Context())
			if err != nil {
				return fmt.Errorf("opening services: %w", err)
			}
			defer cleanup()

			view, err := services.Breakdown.Execute(cmd.Context(), dashboard.GetExpenseBreakdownInput{
				UserID:    user,
				AccountID: account,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.ToExpenseBreakdownResponse(view))
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&accountID, "account", "", "account id, the default account when omitted")

	return cmd
}
