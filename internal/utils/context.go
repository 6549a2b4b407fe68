// Package utils provides general-purpose helper utilities used across
// different parts of the application: context keys, HMAC hashing, JWT token
// generation and validation, and UUID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user identifier in
// the request context. The vault core trusts this value: identity is derived
// once, at the authentication boundary, and never re-checked downstream.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, int64(42))
var UserIDCtxKey = contextKey("userID")

// RemoteAddrCtxKey stores the originating client address, used by the unlock
// attempt limiter for layered per-address counting.
var RemoteAddrCtxKey = contextKey("remoteAddr")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetRemoteAddrFromContext retrieves the originating client address from the
// context, if middleware stored one.
func GetRemoteAddrFromContext(ctx context.Context) (string, bool) {
	addr, ok := ctx.Value(RemoteAddrCtxKey).(string)
	return addr, ok
}
