package banking

import (
	"context"

	"github.com/agilbank/assistant/engine"
	"github.com/agilbank/assistant/tool"
)

type noArgs struct{}

// The transfer tools carry no arguments and always succeed; the engine
// routes on the tool name, not the text.

// TransferToCredit hands the conversation to the credit service.
func TransferToCredit() tool.Registration {
	return tool.Func(engine.ToolTransferToCredit,
		"Transfer the conversation to the credit service.",
		func(ctx context.Context, args noArgs) (string, error) {
			return "TRANSFER: Client routed to the credit service.", nil
		})
}

// TransferToInterview hands the conversation to the credit interview.
func TransferToInterview() tool.Registration {
	return tool.Func(engine.ToolTransferToInterview,
		"Transfer the conversation to the credit interview.",
		func(ctx context.Context, args noArgs) (string, error) {
			return "TRANSFER: Client routed to the credit interview.", nil
		})
}

// TransferToExchange hands the conversation to the currency exchange service.
func TransferToExchange() tool.Registration {
	return tool.Func(engine.ToolTransferToExchange,
		"Transfer the conversation to the currency exchange service.",
		func(ctx context.Context, args noArgs) (string, error) {
			return "TRANSFER: Client routed to the exchange service.", nil
		})
}

// TransferToTriage hands the conversation back to triage.
func TransferToTriage() tool.Registration {
	return tool.Func(engine.ToolTransferToTriage,
		"Transfer the conversation back to triage.",
		func(ctx context.Context, args noArgs) (string, error) {
			return "TRANSFER: Client routed back to triage.", nil
		})
}
