// Command assistant runs the Banco Ágil virtual assistant as an
// interactive terminal chat.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/agilbank/assistant/agents"
	"github.com/agilbank/assistant/banking"
	"github.com/agilbank/assistant/client"
	"github.com/agilbank/assistant/config"
	"github.com/agilbank/assistant/engine"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clientOpts := []client.ClientOption{client.WithDefaultTemperature(cfg.Temperature)}
	if cfg.MaxTokens > 0 {
		clientOpts = append(clientOpts, client.WithDefaultMaxTokens(cfg.MaxTokens))
	}
	chatClient, err := client.New(ctx, client.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
	}, clientOpts...)
	if err != nil {
		return err
	}

	svcOpts := []banking.ServiceOption{banking.WithLogger(logger)}
	if cfg.QuoteAPIURL != "" {
		svcOpts = append(svcOpts, banking.WithQuoteAPIURL(cfg.QuoteAPIURL))
	}
	svc := banking.NewService(cfg.DataDir, svcOpts...)

	eng, err := engine.New(chatClient, agents.All(svc),
		engine.WithMaxTurns(cfg.MaxTurns),
		engine.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	fmt.Println("Banco Ágil virtual assistant. Type your message; Ctrl+D exits.")
	fmt.Println()

	state := engine.NewState()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		state.AddUserMessage(input)

		state, err = eng.Advance(ctx, state)
		if err != nil {
			return err
		}

		if last := state.LastMessage(); last.Content != "" {
			fmt.Printf("assistant> %s\n\n", last.Content)
		}

		if state.ShouldEnd {
			return nil
		}
	}
}
