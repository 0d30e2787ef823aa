// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package random generates unpredictable identifiers for the platform.

It wraps crypto/rand so that object-store keys, temp-file names, and
verification codes cannot be guessed or collided by construction.

Usage:

  - Alphanumeric: mixed-case keys for object storage and temp files.
  - Code: uppercase codes that survive being typed from a Kindle screen.
*/
package random

import (
	"crypto/rand"
	"math/big"
)

const (
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	upperCode    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// # Generators

// Alphanumeric returns a random string of length n drawn from [a-zA-Z0-9].
func Alphanumeric(n int) string {
	return fromCharset(n, alphanumeric)
}

// Code returns a random uppercase string of length n drawn from [A-Z0-9].
// Used for delivery-channel verification codes.
func Code(n int) string {
	return fromCharset(n, upperCode)
}

// fromCharset draws n characters uniformly from the given charset.
func fromCharset(n int, charset string) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(charset)))
	for i := range out {
		// entropy failure is an unrecoverable system-level error
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("random: failed to read entropy: " + err.Error())
		}
		out[i] = charset[idx.Int64()]
	}
	return string(out)
}
