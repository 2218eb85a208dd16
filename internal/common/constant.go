// Package common contains shared constants and sentinel errors used across
// linkfeed components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// FeedIDPrefix prefixes every feed fingerprint.
const FeedIDPrefix = "main-feed:"
