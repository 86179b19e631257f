// Package igtrade provides a typed client for the IG trading platform
// REST API (the gateway/deal API), covering the session lifecycle and the
// read/write operations a trading account needs day to day.
//
// The core functionalities include:
//   - Session Management: Logging in with an API key and user credentials,
//     holding the CST and security tokens the platform issues, and
//     transparently re-authenticating when a session expires.
//   - Typed Operations: Accounts, open positions, instrument search,
//     market details and historical prices, each decoded into typed
//     records instead of raw JSON maps.
//   - Position Management: Opening and closing over-the-counter positions,
//     returning the deal reference the platform assigns.
//   - Configuration: Credentials resolved from an explicit value, a YAML
//     configuration file, or IG_* environment variables, in that order.
//
// This package serves as the foundational logic for the `igt` command-line
// tool, which formats the same data as text reports or JSON.
package igtrade
