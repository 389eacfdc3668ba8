// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Identity represents the authenticated subject of a validated session.
//
// # Usage
//
// The session middleware resolves the opaque cookie token into an
// Identity and injects it into the request context, so downstream
// handlers never touch raw tokens.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
