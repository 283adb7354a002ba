package automaton

import "unicode/utf8"

// Symbols are runes, except that a byte which does not start a valid
// UTF-8 sequence becomes the symbol -1-b. Those never clash with each
// other, with real runes, or with an encoded U+FFFD.

// ByteSymbol returns the symbol standing for the invalid byte b.
func ByteSymbol(b byte) rune {
	return -1 - rune(b)
}

// SymbolByte reports the raw byte behind c, if c stands for one.
func SymbolByte(c rune) (byte, bool) {
	if c >= 0 || c < -256 {
		return 0, false
	}
	return byte(-1 - c), true
}

// decodeSymbol decodes the first symbol of a non-empty s and its width in bytes.
func decodeSymbol(s string) (rune, int) {
	c, size := utf8.DecodeRuneInString(s)
	if c == utf8.RuneError && size == 1 {
		return ByteSymbol(s[0]), 1
	}
	return c, size
}

// Symbols splits s into symbols.
func Symbols(s string) []rune {
	symbols := make([]rune, 0, len(s))
	for len(s) > 0 {
		c, size := decodeSymbol(s)
		symbols = append(symbols, c)
		s = s[size:]
	}
	return symbols
}
