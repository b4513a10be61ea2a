package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fastprodman/lucksy/internal/api"
	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/services/wallet"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Evaluate due draws once: settle the funded ones, postpone the rest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withServices(cmd.Context(), func(s *services) error {
			report, err := s.draws.Sweep(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(cmd, report)
		})
	},
}

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Inspect and settle individual draws",
}

var drawRunCmd = &cobra.Command{
	Use:   "run DRAW_ID",
	Short: "Settle a draw now, ignoring its deadline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		drawID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("draw id: %w", err)
		}

		return withServices(cmd.Context(), func(s *services) error {
			res, err := s.draws.ForceDraw(cmd.Context(), drawID)
			if errors.Is(err, domain.ErrAlreadySettled) {
				stderr("draw %s was already settled", drawID)

				d, gerr := s.draws.Get(cmd.Context(), drawID)
				if gerr != nil {
					return gerr
				}

				return printJSON(cmd, d)
			}

			if err != nil {
				return err
			}

			return printJSON(cmd, res)
		})
	},
}

var drawCancelCmd = &cobra.Command{
	Use:   "cancel DRAW_ID",
	Short: "Cancel an active draw and refund its entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		drawID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("draw id: %w", err)
		}

		return withServices(cmd.Context(), func(s *services) error {
			res, err := s.draws.CancelDraw(cmd.Context(), drawID)
			if err != nil {
				return err
			}

			return printJSON(cmd, res)
		})
	},
}

var drawProofCmd = &cobra.Command{
	Use:   "proof DRAW_ID",
	Short: "Recompute a settled draw's proof and compare it to the stored one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		drawID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("draw id: %w", err)
		}

		return withServices(cmd.Context(), func(s *services) error {
			check, err := s.draws.VerifyProof(cmd.Context(), drawID)
			if err != nil {
				return err
			}

			err = printJSON(cmd, check)
			if err != nil {
				return err
			}

			if !check.Valid {
				return errors.New("proof mismatch")
			}

			return nil
		})
	},
}

var creditCmd = &cobra.Command{
	Use:   "credit ACCOUNT_ID TICKETS PAYMENT_REFERENCE",
	Short: "Credit purchased tickets once per payment reference",
	Long: `Credit purchased tickets to an account. Repeating the command with the
same payment reference is a no-op, so it is safe for replaying payments the
webhook missed.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("account id: %w", err)
		}

		tickets, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("tickets: %w", err)
		}

		desc, _ := cmd.Flags().GetString("description")

		return withServices(cmd.Context(), func(s *services) error {
			balance, err := s.wallet.CreditTickets(cmd.Context(), wallet.CreditRequest{
				AccountID:        accountID,
				Tickets:          tickets,
				PaymentReference: args[2],
				Description:      desc,
			})
			if errors.Is(err, domain.ErrAlreadyCredited) {
				stderr("payment %s was already credited", args[2])
				return nil
			}

			if err != nil {
				return err
			}

			return printJSON(cmd, map[string]any{"accountId": accountID, "balance": balance})
		})
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile ACCOUNT_ID",
	Short: "Compare an account balance with the sum of its ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("account id: %w", err)
		}

		return withServices(cmd.Context(), func(s *services) error {
			rec, err := s.wallet.Reconcile(cmd.Context(), accountID)
			if err != nil {
				return err
			}

			err = printJSON(cmd, rec)
			if err != nil {
				return err
			}

			if !rec.Balanced {
				return fmt.Errorf("account %s is off by %d", accountID, rec.Balance-rec.LedgerSum)
			}

			return nil
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token ACCOUNT_ID",
	Short: "Issue an API bearer token, signed with JWT_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("account id: %w", err)
		}

		secret, _ := cmd.Flags().GetString("secret")
		if secret == "" {
			_ = godotenv.Load()
			secret = os.Getenv("JWT_SECRET")
		}

		if secret == "" {
			return errors.New("JWT secret required: --secret or JWT_SECRET")
		}

		admin, _ := cmd.Flags().GetBool("admin")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		role := ""
		if admin {
			role = api.RoleAdmin
		}

		tok, err := api.IssueToken([]byte(secret), accountID, role, ttl)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), tok)

		return nil
	},
}

func init() {
	drawCmd.AddCommand(drawRunCmd, drawCancelCmd, drawProofCmd)

	creditCmd.Flags().String("description", "", "Ledger description of the purchase")

	tokenCmd.Flags().Bool("admin", false, "Grant the admin role")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	tokenCmd.Flags().String("secret", "", "Signing secret (defaults to $JWT_SECRET)")
}
