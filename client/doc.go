// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package client is an HTTP client for the loopvote API. Any non-2xx
// response comes back as a *StatusError that matches ErrStatus.
package client
