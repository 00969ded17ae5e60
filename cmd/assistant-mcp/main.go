// Command assistant-mcp serves the bank's tools over the Model Context
// Protocol on stdin/stdout, so external MCP clients can call them without
// going through the conversation engine.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/agilbank/assistant/banking"
	"github.com/agilbank/assistant/mcp"
	"github.com/agilbank/assistant/tool"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	dataDir := flag.String("data", "data", "path to the CSV data directory")
	flag.Parse()

	godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	svc := banking.NewService(*dataDir, banking.WithLogger(logger))

	registry := tool.NewRegistry().Add(
		svc.AuthenticateClient(),
		svc.QueryCreditLimit(),
		svc.RequestLimitIncrease(),
		svc.CalculateCreditScore(),
		svc.UpdateClientScore(),
		svc.GetExchangeRate(),
	)

	return mcp.ServeStdio(registry,
		mcp.WithName("agilbank-tools"),
		mcp.WithVersion("1.0.0"),
	)
}
