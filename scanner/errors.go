package scanner

import "fmt"

// LexingError reports the first source position a scanner could not
// tokenize. Line and Col are 1-based; Msg carries a short snippet of the
// source centered on the failure point.
type LexingError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexingError) Error() string {
	return fmt.Sprintf("%s at line %d, char %d", e.Msg, e.Line, e.Col)
}

// ErrorFromText builds a LexingError from the source and the unmatched
// suffix returned by Scan. The failure offset is recovered from the
// suffix length; line and column are counted over the consumed prefix.
func ErrorFromText(src, unmatched, msg string) *LexingError {
	bad := len(src) - len(unmatched)
	line := 1
	lineStart := 0
	for i := 0; i < bad; i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col := bad - lineStart + 1

	snipStart := bad - 10
	if snipStart < 0 {
		snipStart = 0
	}
	snipEnd := bad + 10
	if snipEnd > len(src) {
		snipEnd = len(src)
	}
	msg = fmt.Sprintf("%s (Error at: '...%s...')", msg, src[snipStart:snipEnd])
	return &LexingError{Line: line, Col: col, Msg: msg}
}
