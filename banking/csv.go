package banking

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// clientRecord mirrors one row of clients.csv.
// Numeric fields stay strings on read; they are parsed where needed so a
// single bad row cannot break unrelated operations.
type clientRecord struct {
	CPF         string
	BirthDate   string
	Name        string
	CreditLimit string
	Score       string
}

var clientsHeader = []string{"cpf", "birth_date", "name", "credit_limit", "score"}

// normalizeCPF strips the usual formatting from a CPF.
func normalizeCPF(cpf string) string {
	r := strings.NewReplacer(".", "", "-", "", " ", "")
	return r.Replace(cpf)
}

// validCPF reports whether the normalized CPF is exactly 11 digits.
func validCPF(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}
	for _, c := range cpf {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (s *Service) clientsPath() string  { return filepath.Join(s.dataDir, clientsFile) }
func (s *Service) scoresPath() string   { return filepath.Join(s.dataDir, scoresFile) }
func (s *Service) requestsPath() string { return filepath.Join(s.dataDir, requestsFile) }

// readClients loads every row of clients.csv.
func (s *Service) readClients() ([]clientRecord, error) {
	f, err := os.Open(s.clientsPath())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("banking: %s is empty", clientsFile)
	}

	records := make([]clientRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 5 {
			return nil, fmt.Errorf("banking: malformed row in %s", clientsFile)
		}
		records = append(records, clientRecord{
			CPF:         row[0],
			BirthDate:   row[1],
			Name:        row[2],
			CreditLimit: row[3],
			Score:       row[4],
		})
	}
	return records, nil
}

// writeClients rewrites clients.csv with the given rows.
func (s *Service) writeClients(records []clientRecord) error {
	f, err := os.Create(s.clientsPath())
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(clientsHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := writer.Write([]string{r.CPF, r.BirthDate, r.Name, r.CreditLimit, r.Score}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// findClient returns the index of the client with the given normalized CPF,
// or -1 when absent.
func findClient(records []clientRecord, cpfClean string) int {
	for i, r := range records {
		if normalizeCPF(strings.TrimSpace(r.CPF)) == cpfClean {
			return i
		}
	}
	return -1
}

// maxLimitForScore looks up the maximum allowed limit for a score in
// score_limits.csv (min_score,max_score,max_limit). Returns ok=false when
// no band covers the score.
func (s *Service) maxLimitForScore(score int) (float64, bool, error) {
	f, err := os.Open(s.scoresPath())
	if err != nil {
		return 0, false, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return 0, false, err
	}

	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}
		min, err1 := strconv.Atoi(strings.TrimSpace(row[0]))
		max, err2 := strconv.Atoi(strings.TrimSpace(row[1]))
		limit, err3 := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, false, fmt.Errorf("banking: malformed row in %s", scoresFile)
		}
		if min <= score && score <= max {
			return limit, true, nil
		}
	}
	return 0, false, nil
}

// appendLimitRequest logs a limit increase request:
// cpf, timestamp, current limit, requested limit, status.
func (s *Service) appendLimitRequest(cpf string, currentLimit, newLimit float64, status string) error {
	f, err := os.OpenFile(s.requestsPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write([]string{
		cpf,
		s.now().Format("2006-01-02T15:04:05"),
		strconv.FormatFloat(currentLimit, 'f', 2, 64),
		strconv.FormatFloat(newLimit, 'f', 2, 64),
		status,
	})
	if err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
