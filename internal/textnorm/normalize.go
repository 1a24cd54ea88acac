// Package textnorm provides Unicode normalization for string-table keys.
// Two source literals that differ only in combining-character
// representation (e.g. precomposed "é" vs "e" + combining acute) must
// intern to the same string-pool entry; NFC normalization is what makes
// that dedup correct.
package textnorm

import "golang.org/x/text/unicode/norm"

// NFC normalizes s to Unicode Normalization Form C. It is applied to every
// string literal before it is interned into a module's string pool, so
// that pool lookups and dedup are insensitive to source-encoding choices.
func NFC(s string) string {
	return norm.NFC.String(s)
}
