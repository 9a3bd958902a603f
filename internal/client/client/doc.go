// Package client contains the client-side building blocks that talk to the
// outside world: the HTTP gateway to the accounts backend and the bootstrap
// of the local SQLite database.
//
// # Gateway
//
// Every backend call goes through one Gateway. Its transport reads the token
// from the session store before each request and, when present, sends it as
// "Authorization: Bearer <token>". Requests without a stored token go out
// without credentials.
//
// A 401 answer from any endpoint runs the rejection policy: the session store
// is cleared and the Navigator is sent to RouteLogin. The policy acts once per
// token, so a burst of concurrent 401s produces a single redirect. The failed
// request is not retried and no renewal is attempted. Requests made with a
// context from WithoutRejectionPolicy are exempt; startup validation uses it.
//
// # Error Handling
//
// Non-2xx answers become *APIError. errors.Is matches ErrUnauthorized for 401
// and common.ErrorNotFound for 404. Transport failures wrap ErrUnavailable.
//
// # Database
//
// InitDatabase opens the SQLite file and applies the embedded goose
// migrations (RunMigrations).
package client
