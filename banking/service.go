// Package banking implements the bank's domain tools: client
// authentication, credit limit operations, the credit score interview,
// currency quotes and agent routing.
//
// Every tool returns a human-readable status string with a fixed prefix
// (SUCCESS, FAILURE, LIMIT, APPROVED, REJECTED, INFO, SCORE_CALCULATED,
// UPDATED, QUOTE, TRANSFER, CLOSED, ERROR, SYSTEM_ERROR). The same string
// is read by the model and decoded by the orchestration engine.
package banking

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultQuoteAPIURL is the AwesomeAPI endpoint for currency quotes.
const DefaultQuoteAPIURL = "https://economia.awesomeapi.com.br/json/last"

// CSV file names under the service data directory.
const (
	clientsFile  = "clients.csv"
	scoresFile   = "score_limits.csv"
	requestsFile = "limit_increase_requests.csv"
)

// Service holds the shared dependencies of the banking tools: the CSV data
// directory, the HTTP client for the quote API and a logger.
type Service struct {
	dataDir    string
	httpClient *http.Client
	quoteURL   string
	logger     *slog.Logger
	now        func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithHTTPClient sets the HTTP client used for quote API calls.
func WithHTTPClient(c *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = c
	}
}

// WithQuoteAPIURL overrides the quote API base URL.
func WithQuoteAPIURL(url string) ServiceOption {
	return func(s *Service) {
		s.quoteURL = url
	}
}

// WithLogger sets the logger for recovered tool failures.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a banking service over the given data directory.
func NewService(dataDir string, opts ...ServiceOption) *Service {
	s := &Service{
		dataDir:    dataDir,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		quoteURL:   DefaultQuoteAPIURL,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
