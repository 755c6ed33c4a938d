package grammar_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bnf/grammar"
)

func hintTexts(hints []grammar.Hint) []string {
	texts := make([]string, len(hints))
	for i, h := range hints {
		texts[i] = h.Text
	}
	return texts
}

func TestCompleteLiteralHints(t *testing.T) {
	rs := mustCompile(t, `<Start> ::= "SELECT" <identifier> | "SELECT" "*" ;`)

	hints, err := rs.Complete("Start", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT"}, hintTexts(hints), "duplicate hints collapse")
}

func TestCompleteAfterPrefix(t *testing.T) {
	rs := mustCompile(t, `<Start> ::= "SELECT" ( "*" | <identifier> ) ;`)

	toks, err := rs.Lex("SELECT")
	require.NoError(t, err)
	hints, err := rs.Complete("Start", toks, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"*", "<identifier>"}, hintTexts(hints))
}

func TestCompleteRegexPlaceholderNamesProduction(t *testing.T) {
	rs := mustCompile(t, `<Start> ::= <number> ;`)

	hints, err := rs.Complete("Start", nil, nil)
	require.NoError(t, err)
	require.Len(t, hints, 1)
	assert.Equal(t, grammar.Hint{Text: "<number>", Placeholder: true}, hints[0])
}

func TestRegisteredCompleterReplacesStaticHints(t *testing.T) {
	rs := mustCompile(t, `<Start> ::= "SELECT" cols="*" | "SELECT" [cols]=<identifier> ;`)
	rs.RegisterCompleter("Start", "cols", func(ctxt *grammar.Context) ([]grammar.Hint, error) {
		return grammar.Literals("name", "age"), nil
	})

	toks, err := rs.Lex("SELECT")
	require.NoError(t, err)
	hints, err := rs.Complete("Start", toks, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, hintTexts(hints),
		"completer output replaces static hints, it is not merged with them")
}

func TestCompleterScopedToProduction(t *testing.T) {
	rs := mustCompile(t, `<Start> ::= <other> ; <other> ::= val=<identifier> ;`)
	rs.RegisterCompleter("other", "val", func(ctxt *grammar.Context) ([]grammar.Hint, error) {
		return grammar.Literals("inner"), nil
	})
	rs.RegisterCompleter("Start", "val", func(ctxt *grammar.Context) ([]grammar.Hint, error) {
		return grammar.Literals("outer"), nil
	})

	hints, err := rs.Complete("Start", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"inner"}, hintTexts(hints),
		"completer lookup is scoped by the production being evaluated")
}

func TestFailingCompleterContributesNothing(t *testing.T) {
	rs := mustCompile(t, `<Start> ::= "SELECT" cols="*" ;`)
	rs.RegisterCompleter("Start", "cols", func(ctxt *grammar.Context) ([]grammar.Hint, error) {
		return nil, errors.New("metadata unavailable")
	})

	toks, err := rs.Lex("SELECT")
	require.NoError(t, err)
	hints, err := rs.Complete("Start", toks, nil)
	require.NoError(t, err, "completer failures never abort a completion request")
	assert.Equal(t, []string{"*"}, hintTexts(hints), "static hints stand in for the failed completer")
}

func TestCompleterSeesContext(t *testing.T) {
	rs := mustCompile(t, `<Start> ::= verb=<identifier> obj=<identifier> ;`)
	rs.RegisterCompleter("Start", "obj", func(ctxt *grammar.Context) ([]grammar.Hint, error) {
		if ctxt.BindingOr("verb", "") == "drop" {
			return grammar.Literals("anvil"), nil
		}
		return grammar.Literals("ball"), nil
	})

	toks, err := rs.Lex("drop")
	require.NoError(t, err)
	hints, err := rs.Complete("Start", toks, map[string]any{grammar.SourceBinding: "drop"})
	require.NoError(t, err)
	assert.Equal(t, []string{"anvil"}, hintTexts(hints))
}

func TestCompleteAfterAnyRepetitionCount(t *testing.T) {
	rs := mustCompile(t, `<Start> ::= "add" <identifier>* ;`)

	for _, input := range []string{"add", "add x", "add x y"} {
		toks, err := rs.Lex(input)
		require.NoError(t, err)
		hints, err := rs.Complete("Start", toks, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"<identifier>"}, hintTexts(hints), "input %q", input)
	}
}

func TestCompleteMidSequenceIsEmpty(t *testing.T) {
	rs := mustCompile(t, `<Start> ::= "a" "b" ;`)

	toks, err := rs.Lex("a b")
	require.NoError(t, err)
	hints, err := rs.Complete("Start", toks, nil)
	require.NoError(t, err)
	assert.Empty(t, hints, "a complete statement has no further completions")
}

type recordingSink struct {
	records []string
}

func (s *recordingSink) Added(h grammar.Hint, by string) {
	s.records = append(s.records, h.Text+" by "+by)
}

func TestDebugBindingRoutesTrace(t *testing.T) {
	rs := mustCompile(t, `<Start> ::= "SELECT" ;`)
	sink := &recordingSink{}
	rs.SetTraceSink(sink)

	_, err := rs.Complete("Start", nil, map[string]any{grammar.DebugBinding: true})
	require.NoError(t, err)
	require.Len(t, sink.records, 1)
	assert.Equal(t, `SELECT by "SELECT"`, sink.records[0])

	// without the debug binding the sink stays silent
	sink.records = nil
	_, err = rs.Complete("Start", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, sink.records)
}
