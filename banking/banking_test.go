package banking

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	ai "github.com/agilbank/assistant"
	"github.com/agilbank/assistant/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientsFixture = "cpf,birth_date,name,credit_limit,score\n" +
	"12345678901,15/03/1990,João Silva,5000.00,650\n" +
	"98765432100,22/07/1985,Maria Santos,8000.00,780\n"

const scoresFixture = "min_score,max_score,max_limit\n" +
	"0,300,1000.00\n" +
	"301,600,5000.00\n" +
	"601,800,10000.00\n" +
	"801,1000,20000.00\n"

// newTestService creates a Service over a temp data directory seeded with
// the standard fixtures.
func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clients.csv"), []byte(clientsFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "score_limits.csv"), []byte(scoresFixture), 0o644))
	return NewService(dir, opts...)
}

// invoke runs a registration's handler with JSON arguments.
func invoke(t *testing.T, reg tool.Registration, args string) string {
	t.Helper()
	out, err := reg.Handler(context.Background(), ai.ToolCall{
		ID:        "call_test",
		Name:      reg.Tool.Name,
		Arguments: args,
	})
	require.NoError(t, err)
	return out
}

func readClientRows(t *testing.T, svc *Service) []map[string]string {
	t.Helper()
	f, err := os.Open(svc.clientsPath())
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	header := rows[0]
	var out []map[string]string
	for _, row := range rows[1:] {
		m := make(map[string]string, len(header))
		for i, col := range header {
			m[col] = row[i]
		}
		out = append(out, m)
	}
	return out
}

func TestAuthenticateClient(t *testing.T) {
	t.Run("matching record succeeds with client data", func(t *testing.T) {
		svc := newTestService(t)
		result := invoke(t, svc.AuthenticateClient(), `{"cpf": "12345678901", "birth_date": "15/03/1990"}`)

		assert.True(t, len(result) > 0)
		assert.Contains(t, result, "SUCCESS")
		assert.Contains(t, result, "Name: João Silva")
		assert.Contains(t, result, "CPF: 12345678901")
		assert.Contains(t, result, "Credit limit: R$ 5000.00")
		assert.Contains(t, result, "Score: 650")
	})

	t.Run("formatted CPF is normalized", func(t *testing.T) {
		svc := newTestService(t)
		result := invoke(t, svc.AuthenticateClient(), `{"cpf": "123.456.789-01", "birth_date": "15/03/1990"}`)
		assert.Contains(t, result, "SUCCESS")
	})

	t.Run("invalid CPF fails without touching the database", func(t *testing.T) {
		svc := NewService(t.TempDir())
		result := invoke(t, svc.AuthenticateClient(), `{"cpf": "123", "birth_date": "15/03/1990"}`)
		assert.Contains(t, result, "FAILURE")
		assert.Contains(t, result, "11 numeric digits")
	})

	t.Run("wrong birth date fails", func(t *testing.T) {
		svc := newTestService(t)
		result := invoke(t, svc.AuthenticateClient(), `{"cpf": "12345678901", "birth_date": "01/01/2000"}`)
		assert.Contains(t, result, "FAILURE")
	})

	t.Run("missing database yields system error", func(t *testing.T) {
		svc := NewService(t.TempDir())
		result := invoke(t, svc.AuthenticateClient(), `{"cpf": "12345678901", "birth_date": "15/03/1990"}`)
		assert.Contains(t, result, "SYSTEM_ERROR")
	})
}

func TestQueryCreditLimit(t *testing.T) {
	t.Run("returns limit and score", func(t *testing.T) {
		svc := newTestService(t)
		result := invoke(t, svc.QueryCreditLimit(), `{"cpf": "98765432100"}`)

		assert.Contains(t, result, "LIMIT")
		assert.Contains(t, result, "Maria Santos")
		assert.Contains(t, result, "R$ 8000.00")
		assert.Contains(t, result, "780")
	})

	t.Run("unknown client", func(t *testing.T) {
		svc := newTestService(t)
		result := invoke(t, svc.QueryCreditLimit(), `{"cpf": "00000000000"}`)
		assert.Contains(t, result, "ERROR: Client not found")
	})

	t.Run("missing database", func(t *testing.T) {
		svc := NewService(t.TempDir())
		result := invoke(t, svc.QueryCreditLimit(), `{"cpf": "12345678901"}`)
		assert.Contains(t, result, "SYSTEM_ERROR")
	})
}

func TestRequestLimitIncrease(t *testing.T) {
	t.Run("lower request needs no increase", func(t *testing.T) {
		svc := newTestService(t)
		result := invoke(t, svc.RequestLimitIncrease(), `{"cpf": "12345678901", "new_limit": 4000.0}`)
		assert.Contains(t, result, "INFO")
	})

	t.Run("approval persists the new limit and logs the request", func(t *testing.T) {
		svc := newTestService(t)
		// score 650 allows up to 10000.00
		result := invoke(t, svc.RequestLimitIncrease(), `{"cpf": "12345678901", "new_limit": 7000.0}`)

		assert.Contains(t, result, "APPROVED")
		assert.Contains(t, result, "R$ 7000.00")

		rows := readClientRows(t, svc)
		assert.Equal(t, "7000.00", rows[0]["credit_limit"])
		// other clients untouched
		assert.Equal(t, "8000.00", rows[1]["credit_limit"])

		log, err := os.ReadFile(svc.requestsPath())
		require.NoError(t, err)
		assert.Contains(t, string(log), "12345678901")
		assert.Contains(t, string(log), "approved")
	})

	t.Run("rejection keeps the old limit and logs the request", func(t *testing.T) {
		svc := newTestService(t)
		result := invoke(t, svc.RequestLimitIncrease(), `{"cpf": "12345678901", "new_limit": 50000.0}`)

		assert.Contains(t, result, "REJECTED")
		assert.Contains(t, result, "credit interview")

		rows := readClientRows(t, svc)
		assert.Equal(t, "5000.00", rows[0]["credit_limit"])

		log, err := os.ReadFile(svc.requestsPath())
		require.NoError(t, err)
		assert.Contains(t, string(log), "rejected")
	})

	t.Run("unknown client", func(t *testing.T) {
		svc := newTestService(t)
		result := invoke(t, svc.RequestLimitIncrease(), `{"cpf": "00000000000", "new_limit": 7000.0}`)
		assert.Contains(t, result, "ERROR: Client not found")
	})

	t.Run("missing score table yields system error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "clients.csv"), []byte(clientsFixture), 0o644))
		svc := NewService(dir)

		result := invoke(t, svc.RequestLimitIncrease(), `{"cpf": "12345678901", "new_limit": 7000.0}`)
		assert.Contains(t, result, "SYSTEM_ERROR")
	})
}

func TestCalculateCreditScore(t *testing.T) {
	svc := NewService(t.TempDir())

	cases := []struct {
		name string
		args string
		want string
	}{
		{
			// (5000/2001)*30 + 300 + 100 + 100 = 75 + 500 = 575
			name: "formal no debts no dependents",
			args: `{"monthly_income": 5000, "employment_type": "formal", "fixed_expenses": 2000, "num_dependents": 0, "has_debts": "no"}`,
			want: "SCORE_CALCULATED: 575.",
		},
		{
			// (3000/1501)*30 + 200 + 80 - 100 = 60 + 180 = 240
			name: "self employed with debts one dependent",
			args: `{"monthly_income": 3000, "employment_type": "self_employed", "fixed_expenses": 1500, "num_dependents": 1, "has_debts": "yes"}`,
			want: "SCORE_CALCULATED: 240.",
		},
		{
			// 0 + 0 + 60 - 100 = -40 clamped to 0
			name: "unemployed clamps to zero",
			args: `{"monthly_income": 0, "employment_type": "unemployed", "fixed_expenses": 500, "num_dependents": 2, "has_debts": "yes"}`,
			want: "SCORE_CALCULATED: 0.",
		},
		{
			// (10000/1)*30 + 300 + 30 + 100 clamped to 1000
			name: "high income clamps to one thousand",
			args: `{"monthly_income": 10000, "employment_type": "formal", "fixed_expenses": 0, "num_dependents": 5, "has_debts": "no"}`,
			want: "SCORE_CALCULATED: 1000.",
		},
		{
			// (5000/2001)*30 + 300 + 60 + 100 = 75 + 460 = 535
			name: "two dependents weight",
			args: `{"monthly_income": 5000, "employment_type": "formal", "fixed_expenses": 2000, "num_dependents": 2, "has_debts": "no"}`,
			want: "SCORE_CALCULATED: 535.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := invoke(t, svc.CalculateCreditScore(), tc.args)
			assert.Contains(t, result, tc.want)
		})
	}

	t.Run("case insensitive inputs", func(t *testing.T) {
		result := invoke(t, svc.CalculateCreditScore(),
			`{"monthly_income": 5000, "employment_type": "FORMAL", "fixed_expenses": 2000, "num_dependents": 0, "has_debts": "NO"}`)
		assert.Contains(t, result, "SCORE_CALCULATED")
	})

	t.Run("invalid employment type", func(t *testing.T) {
		result := invoke(t, svc.CalculateCreditScore(),
			`{"monthly_income": 5000, "employment_type": "intern", "fixed_expenses": 1000, "num_dependents": 0, "has_debts": "no"}`)
		assert.Contains(t, result, "ERROR")
		assert.Contains(t, result, "employment type")
	})

	t.Run("invalid debts answer", func(t *testing.T) {
		result := invoke(t, svc.CalculateCreditScore(),
			`{"monthly_income": 5000, "employment_type": "formal", "fixed_expenses": 1000, "num_dependents": 0, "has_debts": "maybe"}`)
		assert.Contains(t, result, "ERROR")
		assert.Contains(t, result, "debts")
	})

	t.Run("negative income", func(t *testing.T) {
		result := invoke(t, svc.CalculateCreditScore(),
			`{"monthly_income": -1000, "employment_type": "formal", "fixed_expenses": 500, "num_dependents": 0, "has_debts": "no"}`)
		assert.Contains(t, result, "ERROR")
		assert.Contains(t, result, "income")
	})

	t.Run("negative expenses", func(t *testing.T) {
		result := invoke(t, svc.CalculateCreditScore(),
			`{"monthly_income": 5000, "employment_type": "formal", "fixed_expenses": -500, "num_dependents": 0, "has_debts": "no"}`)
		assert.Contains(t, result, "ERROR")
		assert.Contains(t, result, "expenses")
	})

	t.Run("negative dependents", func(t *testing.T) {
		result := invoke(t, svc.CalculateCreditScore(),
			`{"monthly_income": 5000, "employment_type": "formal", "fixed_expenses": 500, "num_dependents": -1, "has_debts": "no"}`)
		assert.Contains(t, result, "ERROR")
		assert.Contains(t, result, "dependents")
	})
}

func TestUpdateClientScore(t *testing.T) {
	t.Run("persists new score", func(t *testing.T) {
		svc := newTestService(t)
		result := invoke(t, svc.UpdateClientScore(), `{"cpf": "12345678901", "new_score": 800}`)

		assert.Contains(t, result, "UPDATED")
		assert.Contains(t, result, "650")
		assert.Contains(t, result, "800")

		rows := readClientRows(t, svc)
		assert.Equal(t, "800", rows[0]["score"])
	})

	t.Run("formatted CPF", func(t *testing.T) {
		svc := newTestService(t)
		result := invoke(t, svc.UpdateClientScore(), `{"cpf": "123.456.789-01", "new_score": 900}`)
		assert.Contains(t, result, "UPDATED")
	})

	t.Run("preserves other clients", func(t *testing.T) {
		svc := newTestService(t)
		invoke(t, svc.UpdateClientScore(), `{"cpf": "12345678901", "new_score": 900}`)

		rows := readClientRows(t, svc)
		require.Len(t, rows, 2)
		assert.Equal(t, "780", rows[1]["score"])
	})

	t.Run("unknown client", func(t *testing.T) {
		svc := newTestService(t)
		result := invoke(t, svc.UpdateClientScore(), `{"cpf": "00000000000", "new_score": 800}`)
		assert.Contains(t, result, "ERROR: Client not found")
	})

	t.Run("missing database", func(t *testing.T) {
		svc := NewService(t.TempDir())
		result := invoke(t, svc.UpdateClientScore(), `{"cpf": "12345678901", "new_score": 800}`)
		assert.Contains(t, result, "SYSTEM_ERROR")
	})
}

func TestGetExchangeRate(t *testing.T) {
	quoteServer := func(t *testing.T, handler http.HandlerFunc) *Service {
		t.Helper()
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		return NewService(t.TempDir(), WithQuoteAPIURL(server.URL), WithHTTPClient(server.Client()))
	}

	t.Run("returns formatted quote", func(t *testing.T) {
		svc := quoteServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/USD-BRL", r.URL.Path)
			fmt.Fprint(w, `{"USDBRL": {"bid": "5.1234", "ask": "5.1300", "high": "5.2000", "low": "5.0500", "pctChange": "0.75"}}`)
		})

		result := invoke(t, svc.GetExchangeRate(), `{"currency_code": "usd"}`)

		assert.Contains(t, result, "QUOTE: US Dollar (USD/BRL)")
		assert.Contains(t, result, "Buy: R$ 5.1234")
		assert.Contains(t, result, "Sell: R$ 5.1300")
		assert.Contains(t, result, "Change: +0.75%")
	})

	t.Run("invalid code rejected before any request", func(t *testing.T) {
		svc := NewService(t.TempDir())
		result := invoke(t, svc.GetExchangeRate(), `{"currency_code": "U1"}`)
		assert.Contains(t, result, "ERROR: Invalid currency code")
	})

	t.Run("unknown currency", func(t *testing.T) {
		svc := quoteServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{}`)
		})
		result := invoke(t, svc.GetExchangeRate(), `{"currency_code": "XYZ"}`)
		assert.Contains(t, result, "ERROR: Currency 'XYZ' not found")
	})

	t.Run("non-200 status yields system error", func(t *testing.T) {
		svc := quoteServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		result := invoke(t, svc.GetExchangeRate(), `{"currency_code": "USD"}`)
		assert.Contains(t, result, "SYSTEM_ERROR")
		assert.Contains(t, result, "502")
	})

	t.Run("malformed JSON yields system error", func(t *testing.T) {
		svc := quoteServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json at all`)
		})
		result := invoke(t, svc.GetExchangeRate(), `{"currency_code": "USD"}`)
		assert.Contains(t, result, "SYSTEM_ERROR")
	})

	t.Run("unparseable quote values yield system error", func(t *testing.T) {
		svc := quoteServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"USDBRL": {"bid": "abc", "ask": "", "high": "", "low": "", "pctChange": ""}}`)
		})
		result := invoke(t, svc.GetExchangeRate(), `{"currency_code": "USD"}`)
		assert.Contains(t, result, "SYSTEM_ERROR")
		assert.Contains(t, result, "unexpected format")
	})

	t.Run("unreachable service yields system error", func(t *testing.T) {
		svc := NewService(t.TempDir(), WithQuoteAPIURL("http://127.0.0.1:1"))
		result := invoke(t, svc.GetExchangeRate(), `{"currency_code": "USD"}`)
		assert.Contains(t, result, "SYSTEM_ERROR")
	})
}

func TestRoutingAndCommonTools(t *testing.T) {
	t.Run("transfer tools return confirmation text", func(t *testing.T) {
		cases := []struct {
			reg  tool.Registration
			want string
		}{
			{TransferToCredit(), "credit service"},
			{TransferToInterview(), "credit interview"},
			{TransferToExchange(), "exchange service"},
			{TransferToTriage(), "triage"},
		}
		for _, tc := range cases {
			result := invoke(t, tc.reg, `{}`)
			assert.Contains(t, result, "TRANSFER")
			assert.Contains(t, result, tc.want)
		}
	})

	t.Run("end conversation confirms closure", func(t *testing.T) {
		result := invoke(t, EndConversation(), `{}`)
		assert.Contains(t, result, "CLOSED")
	})
}
