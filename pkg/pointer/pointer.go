// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer provides generic helpers for optional values.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}
