// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package redact

import "strings"

// maskedTokenWidth is the width of the fully-masked constant token. A fixed
// width keeps the token from leaking the length of the original value.
const maskedTokenWidth = 8

// Directive describes how one sensitive field is masked.
type Directive struct {
	// MaskChar is the character substituted for masked positions.
	MaskChar rune

	// ShowLast is the number of trailing characters left unmasked.
	// Zero or negative means the value is replaced entirely with a
	// fixed-width token.
	ShowLast int
}

// DefaultDirective masks the whole value with '*'.
var DefaultDirective = Directive{MaskChar: '*', ShowLast: 0}

// Mask masks value according to maskChar and showLast:
//
//   - showLast <= 0: a constant token of maskedTokenWidth mask characters,
//     regardless of input length (negative showLast is treated as zero);
//   - len(value) <= showLast: every character masked;
//   - otherwise: all but the trailing showLast characters masked.
//
// Masking is deterministic and operates on runes, so multi-byte values keep
// their visible tail intact.
func Mask(value string, maskChar rune, showLast int) string {
	if showLast <= 0 {
		return strings.Repeat(string(maskChar), maskedTokenWidth)
	}

	runes := []rune(value)
	if len(runes) <= showLast {
		return strings.Repeat(string(maskChar), len(runes))
	}

	masked := len(runes) - showLast
	return strings.Repeat(string(maskChar), masked) + string(runes[masked:])
}

// MaskToken returns the fixed-width fully-masked token for maskChar. It is
// the replacement used for sensitive values that cannot be partially shown,
// such as nested objects.
func MaskToken(maskChar rune) string {
	return strings.Repeat(string(maskChar), maskedTokenWidth)
}

// apply masks value under d.
func (d Directive) apply(value string) string {
	return Mask(value, d.MaskChar, d.ShowLast)
}
