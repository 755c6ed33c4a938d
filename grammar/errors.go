package grammar

import (
	"fmt"

	"bnf/token"
)

// CompileError reports an unexpected or missing token while reading
// grammar rule bodies. It aborts the compile/append call that raised it;
// the rule set is left untouched.
type CompileError struct {
	Token token.Token
	Msg   string
}

func (e *CompileError) Error() string {
	if e.Token == (token.Token{}) {
		return "grammar error: " + e.Msg
	}
	return fmt.Sprintf("grammar error: %s (at %q)", e.Msg, e.Token.Text)
}
