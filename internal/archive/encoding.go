package archive

import "unicode/utf8"

// fixEncoding corrects the double-encoding artifact in Messenger
// exports: UTF-8 text that was decoded once as Latin-1, leaving each
// UTF-8 byte as its own code point. Reinterpreting the code points as
// Latin-1 bytes and decoding those bytes as UTF-8 restores the text.
//
// Strings that cannot be round-tripped (a code point above 0xFF, or a
// byte sequence that is not valid UTF-8) are returned unmodified; a
// malformed name must never fail the read.
func fixEncoding(s string) string {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return s
		}
		buf = append(buf, byte(r))
	}
	if !utf8.Valid(buf) {
		return s
	}
	return string(buf)
}
