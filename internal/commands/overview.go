package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
)

func newOverviewCommand(open Opener) *cobra.Command {
	var userID, accountID, rangeKey string

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Print the daily income and expense series of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := overviewInput(userID, accountID, rangeKey)
			if err != nil {
				return err
			}

			services, cleanup, err := open(cmd.Context())
			if err != nil {
				return fmt.Errorf("opening services: %w", err)
			}
			defer cleanup()

			view, err := services.Overview.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.ToOverviewResponse(view))
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&rangeKey, "range", "", "range key: 7D, 1M, 3M, 6M or ALL (required)")
	_ = cmd.MarkFlagRequired("range")
	cmd.Flags().StringVar(&accountID, "account", "", "restrict to one account id")

	return cmd
}

func overviewInput(userID, accountID, rangeKey string) (dashboard.GetTransactionOverviewInput, error) {
	var input dashboard.GetTransactionOverviewInput

	user, err := uuid.Parse(userID)
	if err != nil {
		return input, fmt.Errorf("invalid --user: %w", err)
	}
	key, err := dashboard.ParseRangeKey(rangeKey)
	if err != nil {
		return input, err
	}
	account, err := parseAccount(accountID)
	if err != nil {
		return input, err
	}

	input.UserID = user
	input.AccountID = account
	input.RangeKey = key
	return input, nil
}

func parseAccount(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --account: %w", err)
	}
	return &id, nil
}
