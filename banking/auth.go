package banking

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/agilbank/assistant/engine"
	"github.com/agilbank/assistant/tool"
)

type authenticateArgs struct {
	CPF       string `json:"cpf" desc:"Client CPF, 11 digits (formatting allowed)" required:"true"`
	BirthDate string `json:"birth_date" desc:"Birth date in DD/MM/YYYY format" required:"true"`
}

// AuthenticateClient verifies a CPF and birth date against the client
// database. The SUCCESS result carries the client attributes in the exact
// layout the orchestration engine parses.
func (s *Service) AuthenticateClient() tool.Registration {
	return tool.Func(engine.ToolAuthenticateClient,
		"Authenticate a client by verifying CPF and birth date against the client database.",
		func(ctx context.Context, args authenticateArgs) (string, error) {
			cpfClean := normalizeCPF(args.CPF)
			if !validCPF(cpfClean) {
				return "FAILURE: Invalid CPF. The CPF must contain exactly 11 numeric digits.", nil
			}

			birthClean := strings.TrimSpace(args.BirthDate)

			records, err := s.readClients()
			if err != nil {
				if os.IsNotExist(err) {
					s.logger.Error("client database not found", "path", s.clientsPath())
				} else {
					s.logger.Error("failed to read client database", "error", err)
				}
				return "SYSTEM_ERROR: Could not access the client database. Please try again later.", nil
			}

			for _, r := range records {
				if normalizeCPF(strings.TrimSpace(r.CPF)) == cpfClean && strings.TrimSpace(r.BirthDate) == birthClean {
					return fmt.Sprintf(
						"SUCCESS: Client authenticated. Name: %s, CPF: %s, Credit limit: R$ %s, Score: %s",
						r.Name, r.CPF, r.CreditLimit, r.Score,
					), nil
				}
			}

			return "FAILURE: CPF or birth date do not match any registered client.", nil
		})
}
