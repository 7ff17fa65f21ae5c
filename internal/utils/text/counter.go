// Package text provides small text utilities shared by the domain layer.
package text

import "unicode/utf8"

// CountRunes returns the length of text in characters. Title, body and
// password limits are character limits, so "こんにちは" counts 5.
// Invalid UTF-8 bytes count one each.
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}
