// Package cli provides the interactive dataflow command-line client.
//
// The App reads the session through auth.MustFromContext, so the
// composition root must install the controller with auth.WithProvider
// before calling Run. The App is also the gateway's Navigator: when the
// backend rejects the stored token the REPL prints "Session expired, please
// log in" and shows the login prompt before the next command.
//
// Commands:
//   - help, whoami
//   - register, login, logout
//   - (l)ist | accounts      list accounts
//   - create                 create an account
//   - account <id> [tab]     open an account workspace (dashboard by default)
//   - stats <id>             forwarding statistics of an account
//   - exit | quit
//
// Run(ctx, args) with args executes a single command and returns.
package cli
