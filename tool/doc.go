// Package tool manages callable tools: definitions with JSON Schema
// parameters, handlers that execute them, and a registry that binds the two.
//
// Tools are plain functions returning a human-readable status string. The
// same string is shown to the model and decoded by the orchestration engine,
// so handlers follow a fixed prefix convention (SUCCESS, FAILURE, APPROVED,
// REJECTED, UPDATED, SYSTEM_ERROR, ...). Schemas are generated from struct
// tags via Func:
//
//	type quoteArgs struct {
//	    Code string `json:"currency_code" desc:"Currency code (e.g. USD)" required:"true"`
//	}
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("get_exchange_rate", "Look up a currency quote",
//	        func(ctx context.Context, args quoteArgs) (string, error) { ... }),
//	)
package tool
