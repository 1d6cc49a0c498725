package types

// ParseToken is one token of a dependency parse. Head is the index of the
// governing token within the sentence; the root points at itself (or -1,
// both are accepted). Start and End are optional character offsets into the
// sentence text; when absent (both zero) mention alignment falls back to
// text containment.
type ParseToken struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma,omitempty"`
	POS   string `json:"pos"`
	Head  int    `json:"head"`
	Dep   string `json:"dep"`
	Start int    `json:"start,omitempty"`
	End   int    `json:"end,omitempty"`
}

// SentenceParse is a dependency/syntax structure for one sentence, produced
// by the external parser collaborator. Absence of a parse degrades the
// syntactic inferrer to a no-op for that sentence.
type SentenceParse struct {
	Tokens []ParseToken `json:"tokens"`
}

// Children returns the indices of tokens whose head is the token at i,
// excluding self-loops (the conventional root encoding).
func (p *SentenceParse) Children(i int) []int {
	var out []int
	for j, tok := range p.Tokens {
		if tok.Head == i && j != i {
			out = append(out, j)
		}
	}
	return out
}
