// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package guestbook holds the guest message feed: the validation the server
// applies to new messages and the client's optimistic Board.
package guestbook
