package grammar

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/tliron/commonlog"
)

// Hint is a single completion suggestion. A literal hint is text the user
// could type verbatim; a placeholder hint names the kind of token expected
// and renders as "<production>".
type Hint struct {
	Text        string
	Placeholder bool
}

// Literal wraps text the user could type as-is.
func Literal(text string) Hint { return Hint{Text: text} }

// Literals is a convenience for completers producing plain candidates.
func Literals(texts ...string) []Hint {
	hints := make([]Hint, len(texts))
	for i, t := range texts {
		hints[i] = Hint{Text: t}
	}
	return hints
}

// Placeholder synthesizes the "<production>" hint emitted for terminals
// that have no finite literal spelling, such as regex matchers.
func Placeholder(name string) Hint { return Hint{Text: "<" + name + ">", Placeholder: true} }

// TraceSink observes every hint a completion walk produces, paired with a
// description of the matcher subtree that produced it.
type TraceSink interface {
	Added(h Hint, by string)
}

// HintSet is an insertion-ordered set of hints. It is the single mutable
// value threaded through a completion walk; a nil *HintSet means the walk
// runs in parse mode and collects nothing.
type HintSet struct {
	set   *linkedhashset.Set
	trace TraceSink
}

func NewHintSet() *HintSet {
	return &HintSet{set: linkedhashset.New()}
}

// NewTracedHintSet reports every first-time insertion to sink.
func NewTracedHintSet(sink TraceSink) *HintSet {
	return &HintSet{set: linkedhashset.New(), trace: sink}
}

func (h *HintSet) Add(hint Hint, by string) {
	if h.trace != nil && !h.set.Contains(hint) {
		h.trace.Added(hint, by)
	}
	h.set.Add(hint)
}

func (h *HintSet) AddAll(hints []Hint, by string) {
	for _, hint := range hints {
		h.Add(hint, by)
	}
}

func (h *HintSet) Contains(hint Hint) bool { return h.set.Contains(hint) }

func (h *HintSet) Len() int { return h.set.Size() }

// Values returns the hints in insertion order.
func (h *HintSet) Values() []Hint {
	vals := h.set.Values()
	hints := make([]Hint, len(vals))
	for i, v := range vals {
		hints[i] = v.(Hint)
	}
	return hints
}

// LogTrace is a TraceSink writing through commonlog at debug level.
type LogTrace struct {
	log commonlog.Logger
}

func NewLogTrace(name string) *LogTrace {
	return &LogTrace{log: commonlog.GetLogger(name)}
}

func (t *LogTrace) Added(h Hint, by string) {
	t.log.Debugf("hint %q added by %s", h.Text, by)
}
