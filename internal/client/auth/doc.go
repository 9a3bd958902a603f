// Package auth owns the client session: the token, the identity it
// resolves to, and the transitions between them.
//
// A single Controller is created at the composition root, initialised once
// with Init and handed to the rest of the client as a SessionProvider
// through the context (WithProvider / MustFromContext).
//
// States:
//
//	Uninitialized --Init, token stored--> Validating --/me ok--> Authenticated
//	Uninitialized --Init, no token-----> Anonymous
//	Validating    --/me failed---------> Anonymous (store cleared, no redirect)
//	Anonymous     --Login/Register-----> Authenticated
//	any           --Logout-------------> Anonymous
//	any           --token gone from store (gateway 401)--> Anonymous
//
// Loading is reported only while Uninitialized or Validating.
package auth
