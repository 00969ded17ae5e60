// Package assistant provides the shared types for the Agil Bank virtual
// assistant: conversation messages, tool definitions, chat options, provider
// identifiers and categorized errors.
//
// The root package is intentionally dependency-light. Higher-level behavior
// lives in subpackages:
//
//   - chat: the Client interface implemented by model backends
//   - client: provider-backed chat.Client with retry
//   - tool: tool registry and typed handler binding
//   - engine: the conversation orchestration state machine
//   - banking: the bank's CSV-backed tools and the currency quote tool
//   - agents: the four agent definitions (triage, credit, interview, exchange)
//   - config: YAML and environment configuration
//   - mcp: Model Context Protocol exposure of the tool registry
package assistant
