package command

import "strings"

// Matcher resolves canonical text against the phrase dictionary. It is built
// once and read-only afterwards.
type Matcher struct {
	exact   map[string]Action
	ordered []Entry
}

// NewMatcher builds the matcher from the static dictionary.
func NewMatcher() *Matcher {
	m := &Matcher{
		exact:   make(map[string]Action, len(dictionary)),
		ordered: dictionary,
	}
	for _, e := range dictionary {
		if _, dup := m.exact[e.Phrase]; !dup {
			m.exact[e.Phrase] = e.Action
		}
	}
	return m
}

// Match resolves text to an action. Exact phrase lookup runs first; failing
// that, the dictionary is scanned in definition order and the first phrase
// occurring as a substring of the input wins. The second return value reports
// whether anything matched; a miss is not an error, the caller falls through
// to the amount and digit parsers.
func (m *Matcher) Match(text string) (Action, bool) {
	if a, ok := m.exact[text]; ok {
		return a, true
	}
	for _, e := range m.ordered {
		if strings.Contains(text, e.Phrase) {
			return e.Action, true
		}
	}
	return Action{}, false
}
