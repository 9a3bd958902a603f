// Package common contains shared constants and sentinel errors used across
// dataflow components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the raw token in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// RequestIDHeaderName correlates a client log line with the backend request.
const RequestIDHeaderName = "X-Request-ID"

// TokenMetadataKey is the single persisted entry holding the raw session token.
const TokenMetadataKey = "token"

// TokenSavedAtMetadataKey records when TokenMetadataKey was last written.
const TokenSavedAtMetadataKey = "token_saved_at"
