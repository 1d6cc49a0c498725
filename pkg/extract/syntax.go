package extract

import (
	"strings"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// Verb classes for relation inference. Matching is substring-based on the
// lemma (falling back to the surface form) so affixed Indonesian verb forms
// still hit their stem class.
var (
	conflictVerbs   = []string{"membunuh", "mengalahkan", "menyerang", "melukai", "melawan", "memerangi", "menewaskan"}
	socialVerbs     = []string{"membantu", "menolong", "mengutus", "mengirim"}
	leadershipVerbs = []string{"memimpin", "memerintah", "menguasai"}
)

// Dependency labels accepted as verb arguments.
var argumentDeps = map[string]bool{
	"nsubj": true,
	"obj":   true,
	"iobj":  true,
}

// Prepositions that link an entity to a location.
var locativePreps = map[string]bool{
	"di":   true,
	"ke":   true,
	"dari": true,
}

// SyntaxConfidence holds the medium-tier confidence values for
// syntax-inferred relations. The mapping from parse structure to relation
// is heuristic, so these sit below the lexical pattern tier.
type SyntaxConfidence struct {
	VerbClass   float64
	Conjunction float64
	Preposition float64
}

// DefaultSyntaxConfidence returns the standard medium-tier values.
func DefaultSyntaxConfidence() SyntaxConfidence {
	return SyntaxConfidence{VerbClass: 0.65, Conjunction: 0.5, Preposition: 0.55}
}

// SyntaxExtractor infers relations from a dependency parse: entity pairs
// connected through a verb within one dependency hop, conjunctions between
// persons, and locative prepositional phrases. It never falls back to a
// generic label; a verb outside every class yields nothing.
type SyntaxExtractor struct {
	confidence SyntaxConfidence
}

// NewSyntaxExtractor creates a syntax extractor with the given confidence
// tiers. Zero values select the defaults.
func NewSyntaxExtractor(conf SyntaxConfidence) *SyntaxExtractor {
	def := DefaultSyntaxConfidence()
	if conf.VerbClass == 0 {
		conf.VerbClass = def.VerbClass
	}
	if conf.Conjunction == 0 {
		conf.Conjunction = def.Conjunction
	}
	if conf.Preposition == 0 {
		conf.Preposition = def.Preposition
	}
	return &SyntaxExtractor{confidence: conf}
}

// Extract infers relation candidates from the sentence parse. A nil parse
// degrades to zero candidates; the caller continues with the other
// extractors.
func (e *SyntaxExtractor) Extract(sentence string, parse *types.SentenceParse, mentions []types.EntityMention) []types.RelationCandidate {
	if parse == nil || len(parse.Tokens) == 0 || len(mentions) < 2 {
		return nil
	}

	tokenMention := mapTokensToMentions(parse, mentions)
	var out []types.RelationCandidate

	for i, tok := range parse.Tokens {
		if strings.EqualFold(tok.POS, "VERB") {
			out = append(out, e.verbArguments(sentence, parse, tokenMention, i)...)
		}
		out = append(out, e.conjunctions(sentence, parse, tokenMention, i)...)
		out = append(out, e.prepositions(sentence, parse, tokenMention, i)...)
	}
	return out
}

// verbArguments pairs the subject and object dependents of a verb token and
// infers the relation from the verb class.
func (e *SyntaxExtractor) verbArguments(sentence string, parse *types.SentenceParse, tokenMention map[int]*types.EntityMention, verb int) []types.RelationCandidate {
	label, category := classifyVerb(parse.Tokens[verb])
	if label == "" {
		return nil
	}

	var subjects, objects []*types.EntityMention
	for _, c := range parse.Children(verb) {
		m, ok := tokenMention[c]
		if !ok || !argumentDeps[parse.Tokens[c].Dep] {
			continue
		}
		if parse.Tokens[c].Dep == "nsubj" {
			subjects = append(subjects, m)
		} else {
			objects = append(objects, m)
		}
	}

	var out []types.RelationCandidate
	for _, s := range subjects {
		for _, o := range objects {
			if types.FoldKey(s.Text) == types.FoldKey(o.Text) {
				continue
			}
			out = append(out, types.RelationCandidate{
				SubjectID:    types.NormalizeText(s.Text),
				RelationType: label,
				Category:     category,
				ObjectID:     types.NormalizeText(o.Text),
				Confidence:   e.confidence.VerbClass,
				Context:      sentence,
				Method:       types.MethodSyntax,
			})
		}
	}
	return out
}

// conjunctions links two PERSON mentions joined by a conj dependency with a
// generic social association.
func (e *SyntaxExtractor) conjunctions(sentence string, parse *types.SentenceParse, tokenMention map[int]*types.EntityMention, head int) []types.RelationCandidate {
	subj, ok := tokenMention[head]
	if !ok || subj.Type != types.EntityPerson {
		return nil
	}

	var out []types.RelationCandidate
	for _, c := range parse.Children(head) {
		if parse.Tokens[c].Dep != "conj" {
			continue
		}
		obj, ok := tokenMention[c]
		if !ok || obj.Type != types.EntityPerson {
			continue
		}
		if types.FoldKey(subj.Text) == types.FoldKey(obj.Text) {
			continue
		}
		out = append(out, types.RelationCandidate{
			SubjectID:    types.NormalizeText(subj.Text),
			RelationType: "terkait_dengan",
			Category:     types.CategorySocial,
			ObjectID:     types.NormalizeText(obj.Text),
			Confidence:   e.confidence.Conjunction,
			Context:      sentence,
			Method:       types.MethodSyntax,
		})
	}
	return out
}

// prepositions links a mention-bearing head to a LOC mention reached
// through a locative preposition (head -> prep -> loc), the bounded
// two-hop case.
func (e *SyntaxExtractor) prepositions(sentence string, parse *types.SentenceParse, tokenMention map[int]*types.EntityMention, head int) []types.RelationCandidate {
	subj, ok := tokenMention[head]
	if !ok {
		return nil
	}

	var out []types.RelationCandidate
	for _, c := range parse.Children(head) {
		tok := parse.Tokens[c]
		if tok.Dep != "prep" && tok.Dep != "case" {
			continue
		}
		if !locativePreps[strings.ToLower(tok.Text)] {
			continue
		}
		for _, g := range parse.Children(c) {
			obj, ok := tokenMention[g]
			if !ok || obj.Type != types.EntityLoc {
				continue
			}
			if types.FoldKey(subj.Text) == types.FoldKey(obj.Text) {
				continue
			}
			out = append(out, types.RelationCandidate{
				SubjectID:    types.NormalizeText(subj.Text),
				RelationType: "berada_di",
				Category:     types.CategoryLocation,
				ObjectID:     types.NormalizeText(obj.Text),
				Confidence:   e.confidence.Preposition,
				Context:      sentence,
				Method:       types.MethodSyntax,
			})
		}
	}
	return out
}

// classifyVerb maps a verb token to its relation label and category via the
// verb-class table. Unclassified verbs yield no relation.
func classifyVerb(tok types.ParseToken) (string, types.Category) {
	verb := strings.ToLower(tok.Lemma)
	if verb == "" {
		verb = strings.ToLower(tok.Text)
	}
	for _, v := range conflictVerbs {
		if strings.Contains(verb, v) {
			return "melawan", types.CategoryConflict
		}
	}
	for _, v := range socialVerbs {
		if strings.Contains(verb, v) {
			return "membantu", types.CategorySocial
		}
	}
	for _, v := range leadershipVerbs {
		if strings.Contains(verb, v) {
			return "memimpin", types.CategoryParticipation
		}
	}
	return "", ""
}

// containsWord reports whether needle occurs as a whole word inside
// haystack. Plain substring containment would glue short function words
// like "di" onto unrelated mentions.
func containsWord(haystack, needle string) bool {
	for _, w := range strings.Fields(haystack) {
		if w == needle {
			return true
		}
	}
	return false
}

// mapTokensToMentions aligns parse tokens to mentions, preferring character
// offsets when the parser supplies them and falling back to case-folded
// containment otherwise.
func mapTokensToMentions(parse *types.SentenceParse, mentions []types.EntityMention) map[int]*types.EntityMention {
	out := make(map[int]*types.EntityMention)
	for i, tok := range parse.Tokens {
		if tok.End > tok.Start {
			for j := range mentions {
				m := &mentions[j]
				if tok.Start >= m.Start && tok.End <= m.End {
					out[i] = m
					break
				}
			}
			if _, ok := out[i]; ok {
				continue
			}
		}
		tokKey := types.FoldKey(tok.Text)
		if tokKey == "" {
			continue
		}
		for j := range mentions {
			m := &mentions[j]
			if containsWord(types.FoldKey(m.Text), tokKey) {
				out[i] = m
				break
			}
		}
	}
	return out
}
