package banking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/agilbank/assistant/engine"
	"github.com/agilbank/assistant/tool"
)

// currencyNames maps common currency codes to display names.
var currencyNames = map[string]string{
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "British Pound",
	"ARS": "Argentine Peso",
	"CAD": "Canadian Dollar",
	"AUD": "Australian Dollar",
	"JPY": "Japanese Yen",
	"CNY": "Chinese Yuan",
	"BTC": "Bitcoin",
}

type exchangeRateArgs struct {
	CurrencyCode string `json:"currency_code" desc:"Currency code (e.g. USD, EUR, GBP, ARS, BTC)" required:"true"`
}

// quotePayload mirrors one AwesomeAPI quote entry. Values arrive as strings.
type quotePayload struct {
	Bid       string `json:"bid"`
	Ask       string `json:"ask"`
	High      string `json:"high"`
	Low       string `json:"low"`
	PctChange string `json:"pctChange"`
}

// GetExchangeRate fetches the current quote of a foreign currency against
// the Brazilian real (BRL) from AwesomeAPI.
func (s *Service) GetExchangeRate() tool.Registration {
	return tool.Func(engine.ToolGetExchangeRate,
		"Query the current exchange rate of a foreign currency against the Brazilian real (BRL).",
		func(ctx context.Context, args exchangeRateArgs) (string, error) {
			code := strings.ToUpper(strings.TrimSpace(args.CurrencyCode))

			if !isAlpha(code) || len(code) < 2 || len(code) > 5 {
				return "ERROR: Invalid currency code. Use codes like USD, EUR, GBP, ARS, BTC.", nil
			}

			pair := code + "-BRL"
			url := s.quoteURL + "/" + pair

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				s.logger.Error("failed to build quote request", "pair", pair, "error", err)
				return "SYSTEM_ERROR: An error occurred while querying the quote. Please try again later.", nil
			}

			resp, err := s.httpClient.Do(req)
			if err != nil {
				s.logger.Error("quote request failed", "pair", pair, "error", err)
				return "SYSTEM_ERROR: Could not reach the quote service. Please try again shortly.", nil
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				s.logger.Error("quote API returned error status", "pair", pair, "status", resp.StatusCode)
				return fmt.Sprintf(
					"SYSTEM_ERROR: The quote service returned an error (status %d). Please try again later.",
					resp.StatusCode,
				), nil
			}

			var data map[string]quotePayload
			if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
				s.logger.Error("invalid quote API response", "pair", pair, "error", err)
				return "SYSTEM_ERROR: The quote service response was invalid. Please try again later.", nil
			}

			// The JSON key is "USDBRL", "EURBRL", and so on.
			quote, ok := data[code+"BRL"]
			if !ok {
				return fmt.Sprintf(
					"ERROR: Currency '%s' not found. Check that the code is correct. Valid examples: USD, EUR, GBP, ARS, BTC.",
					code,
				), nil
			}

			bid, err1 := strconv.ParseFloat(quote.Bid, 64)
			ask, err2 := strconv.ParseFloat(quote.Ask, 64)
			high, err3 := strconv.ParseFloat(quote.High, 64)
			low, err4 := strconv.ParseFloat(quote.Low, 64)
			variation, err5 := strconv.ParseFloat(quote.PctChange, 64)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
				s.logger.Error("unexpected quote data format", "pair", pair)
				return "SYSTEM_ERROR: The quote data is in an unexpected format. Please try again later.", nil
			}

			name := code
			if n, ok := currencyNames[code]; ok {
				name = n
			}

			return fmt.Sprintf(
				"QUOTE: %s (%s/BRL). Buy: R$ %.4f. Sell: R$ %.4f. Day high: R$ %.4f. Day low: R$ %.4f. Change: %+.2f%%.",
				name, code, bid, ask, high, low, variation,
			), nil
		})
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
