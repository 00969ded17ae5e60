package banking

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agilbank/assistant/engine"
	"github.com/agilbank/assistant/tool"
)

// Credit score formula weights. The income component is
// round(income / (expenses + 1) * WeightIncome); the remaining components
// are flat additions, and the total is clamped to [0, 1000].
const (
	WeightIncome                 = 30
	WeightEmploymentFormal       = 300
	WeightEmploymentSelfEmployed = 200
	WeightEmploymentUnemployed   = 0
	WeightNoDependents           = 100
	WeightOneDependent           = 80
	WeightTwoDependents          = 60
	WeightThreePlusDependents    = 30
	WeightDebts                  = 100
)

// MaxScore is the upper clamp of the credit score scale.
const MaxScore = 1000

type calculateScoreArgs struct {
	MonthlyIncome  float64 `json:"monthly_income" desc:"Gross monthly income in reais" required:"true"`
	EmploymentType string  `json:"employment_type" desc:"Employment situation" required:"true" enum:"formal,self_employed,unemployed"`
	FixedExpenses  float64 `json:"fixed_expenses" desc:"Fixed monthly expenses in reais" required:"true"`
	NumDependents  int     `json:"num_dependents" desc:"Number of dependents" required:"true"`
	HasDebts       string  `json:"has_debts" desc:"Whether the client has outstanding debts" required:"true" enum:"yes,no"`
}

type updateScoreArgs struct {
	CPF      string `json:"cpf" desc:"Client CPF, 11 digits" required:"true"`
	NewScore int    `json:"new_score" desc:"New credit score, 0 to 1000" required:"true"`
}

// CalculateCreditScore computes a credit score from the interview answers.
// Pure function of its arguments; nothing is persisted.
func (s *Service) CalculateCreditScore() tool.Registration {
	return tool.Func(engine.ToolCalculateCreditScore,
		"Calculate a credit score from interview answers: income, employment type, expenses, dependents and debts.",
		func(ctx context.Context, args calculateScoreArgs) (string, error) {
			if args.MonthlyIncome < 0 {
				return "ERROR: Monthly income cannot be negative.", nil
			}
			if args.FixedExpenses < 0 {
				return "ERROR: Fixed expenses cannot be negative.", nil
			}
			if args.NumDependents < 0 {
				return "ERROR: The number of dependents cannot be negative.", nil
			}

			var employment int
			switch strings.ToLower(strings.TrimSpace(args.EmploymentType)) {
			case "formal":
				employment = WeightEmploymentFormal
			case "self_employed":
				employment = WeightEmploymentSelfEmployed
			case "unemployed":
				employment = WeightEmploymentUnemployed
			default:
				return fmt.Sprintf("ERROR: Invalid employment type %q. Use formal, self_employed or unemployed.", args.EmploymentType), nil
			}

			var debts int
			switch strings.ToLower(strings.TrimSpace(args.HasDebts)) {
			case "yes":
				debts = -WeightDebts
			case "no":
				debts = WeightDebts
			default:
				return fmt.Sprintf("ERROR: Invalid debts answer %q. Use yes or no.", args.HasDebts), nil
			}

			var dependents int
			switch {
			case args.NumDependents == 0:
				dependents = WeightNoDependents
			case args.NumDependents == 1:
				dependents = WeightOneDependent
			case args.NumDependents == 2:
				dependents = WeightTwoDependents
			default:
				dependents = WeightThreePlusDependents
			}

			income := int(math.Round(args.MonthlyIncome / (args.FixedExpenses + 1) * WeightIncome))

			score := income + employment + dependents + debts
			if score < 0 {
				score = 0
			}
			if score > MaxScore {
				score = MaxScore
			}

			return fmt.Sprintf(
				"SCORE_CALCULATED: %d. Based on the provided answers, the client's calculated credit score is %d (scale 0 to %d).",
				score, score, MaxScore,
			), nil
		})
}

// UpdateClientScore persists a new score to the client database.
// The UPDATED result carries both old and new scores; the engine parses
// the new one out of the text.
func (s *Service) UpdateClientScore() tool.Registration {
	return tool.Func(engine.ToolUpdateClientScore,
		"Update the client's credit score in the client database.",
		func(ctx context.Context, args updateScoreArgs) (string, error) {
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
			oldScore := client.Score
			client.Score = strconv.Itoa(args.NewScore)

			if err := s.writeClients(records); err != nil {
				s.logger.Error("failed to persist new score", "error", err)
				return "SYSTEM_ERROR: Could not save the new score. Please try again later.", nil
			}

			return fmt.Sprintf(
				"UPDATED: Score for client %s updated from %s to %d.",
				client.Name, oldScore, args.NewScore,
			), nil
		})
}
