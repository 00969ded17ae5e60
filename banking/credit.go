package banking

import (
	"context"
	"fmt"
	"strconv"

	"github.com/agilbank/assistant/engine"
	"github.com/agilbank/assistant/tool"
)

type queryLimitArgs struct {
	CPF string `json:"cpf" desc:"Client CPF, 11 digits" required:"true"`
}

type limitIncreaseArgs struct {
	CPF      string  `json:"cpf" desc:"Client CPF, 11 digits" required:"true"`
	NewLimit float64 `json:"new_limit" desc:"Desired new credit limit in reais" required:"true"`
}

// QueryCreditLimit looks up a client's current credit limit and score.
func (s *Service) QueryCreditLimit() tool.Registration {
	return tool.Func(engine.ToolQueryCreditLimit,
		"Query the client's current credit limit by CPF.",
		func(ctx context.Context, args queryLimitArgs) (string, error) {
			cpfClean := normalizeCPF(args.CPF)

			records, err := s.readClients()
			if err != nil {
				s.logger.Error("failed to read client database", "error", err)
				return "SYSTEM_ERROR: Could not access the client database. Please try again later.", nil
			}

			idx := findClient(records, cpfClean)
			if idx < 0 {
				return "ERROR: Client not found in the database.", nil
			}

			client := records[idx]
			return fmt.Sprintf(
				"LIMIT: Client %s (CPF: %s). Current credit limit: R$ %s. Score: %s.",
				client.Name, client.CPF, client.CreditLimit, client.Score,
			), nil
		})
}

// RequestLimitIncrease evaluates a limit increase request against the
// score table, logs the request, and persists the new limit on approval.
func (s *Service) RequestLimitIncrease() tool.Registration {
	return tool.Func(engine.ToolRequestLimitIncrease,
		"Request a credit limit increase. The system checks the client's score against the score table, records the request, and applies the new limit when approved.",
		func(ctx context.Context, args limitIncreaseArgs) (string, error) {
			cpfClean := normalizeCPF(args.CPF)

			records, err := s.readClients()
			if err != nil {
				s.logger.Error("failed to read client database", "error", err)
				return "SYSTEM_ERROR: Could not access the client database. Please try again later.", nil
			}

			idx := findClient(records, cpfClean)
			if idx < 0 {
				return "ERROR: Client not found in the database.", nil
			}

			client := &records[idx]
			currentLimit, err := strconv.ParseFloat(client.CreditLimit, 64)
			if err != nil {
				s.logger.Error("malformed credit limit in client record", "cpf", cpfClean, "value", client.CreditLimit)
				return "SYSTEM_ERROR: An unexpected error occurred while reading the client record. Please try again later.", nil
			}
			score, err := strconv.Atoi(client.Score)
			if err != nil {
				s.logger.Error("malformed score in client record", "cpf", cpfClean, "value", client.Score)
				return "SYSTEM_ERROR: An unexpected error occurred while reading the client record. Please try again later.", nil
			}

			if args.NewLimit <= currentLimit {
				return fmt.Sprintf(
					"INFO: The requested limit (R$ %.2f) is less than or equal to the current limit (R$ %.2f). No increase is needed.",
					args.NewLimit, currentLimit,
				), nil
			}

			maxAllowed, ok, err := s.maxLimitForScore(score)
			if err != nil {
				s.logger.Error("failed to read score table", "error", err)
				return "SYSTEM_ERROR: Could not access the score table. Please try again later.", nil
			}
			if !ok {
				return fmt.Sprintf(
					"SYSTEM_ERROR: Could not determine the maximum limit for score %d. Please try again later.",
					score,
				), nil
			}

			status := "approved"
			if args.NewLimit > maxAllowed {
				status = "rejected"
			}

			if err := s.appendLimitRequest(cpfClean, currentLimit, args.NewLimit, status); err != nil {
				s.logger.Error("failed to record limit request", "error", err)
				return "SYSTEM_ERROR: Could not record the request. Please try again later.", nil
			}

			if status == "approved" {
				client.CreditLimit = strconv.FormatFloat(args.NewLimit, 'f', 2, 64)
				if err := s.writeClients(records); err != nil {
					s.logger.Error("failed to persist new limit", "error", err)
					// The request is already logged; report partial success.
					return fmt.Sprintf(
						"APPROVED: Request approved, but an error occurred while updating the limit in the database. Previous limit: R$ %.2f. Requested new limit: R$ %.2f.",
						currentLimit, args.NewLimit,
					), nil
				}

				return fmt.Sprintf(
					"APPROVED: Limit increase approved! Previous limit: R$ %.2f. New limit: R$ %.2f. Current score: %d.",
					currentLimit, args.NewLimit, score,
				), nil
			}

			return fmt.Sprintf(
				"REJECTED: Limit increase rejected. Current limit: R$ %.2f. Requested limit: R$ %.2f. Maximum limit allowed for score %d: R$ %.2f. The client can take a credit interview to try to improve their score.",
				currentLimit, args.NewLimit, score, maxAllowed,
			), nil
		})
}
