package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianreza/wayangkg/pkg/types"
)

func TestSyntaxExtractorVerbClass(t *testing.T) {
	e := NewSyntaxExtractor(SyntaxConfidence{})
	sentence := "Bima membunuh Dursasana"
	parse := &types.SentenceParse{Tokens: []types.ParseToken{
		{Text: "Bima", POS: "PROPN", Head: 1, Dep: "nsubj", Start: 0, End: 4},
		{Text: "membunuh", Lemma: "membunuh", POS: "VERB", Head: 1, Dep: "root", Start: 5, End: 13},
		{Text: "Dursasana", POS: "PROPN", Head: 1, Dep: "obj", Start: 14, End: 23},
	}}
	mentions := []types.EntityMention{person("Bima", 0), person("Dursasana", 14)}

	cands := e.Extract(sentence, parse, mentions)
	require.Len(t, cands, 1)
	c := cands[0]
	assert.Equal(t, "Bima", c.SubjectID)
	assert.Equal(t, "melawan", c.RelationType)
	assert.Equal(t, types.CategoryConflict, c.Category)
	assert.Equal(t, "Dursasana", c.ObjectID)
	assert.Equal(t, types.MethodSyntax, c.Method)
	assert.InDelta(t, 0.65, c.Confidence, 1e-9)
}

func TestSyntaxExtractorVerbClassTable(t *testing.T) {
	tests := []struct {
		verb     string
		label    string
		category types.Category
	}{
		{"menolong", "membantu", types.CategorySocial},
		{"memimpin", "memimpin", types.CategoryParticipation},
		{"mengalahkan", "melawan", types.CategoryConflict},
	}
	for _, tt := range tests {
		t.Run(tt.verb, func(t *testing.T) {
			e := NewSyntaxExtractor(SyntaxConfidence{})
			parse := &types.SentenceParse{Tokens: []types.ParseToken{
				{Text: "Bima", POS: "PROPN", Head: 1, Dep: "nsubj"},
				{Text: tt.verb, POS: "VERB", Head: 1, Dep: "root"},
				{Text: "Arjuna", POS: "PROPN", Head: 1, Dep: "obj"},
			}}
			mentions := []types.EntityMention{person("Bima", 0), person("Arjuna", 0)}

			cands := e.Extract("kalimat", parse, mentions)
			require.Len(t, cands, 1)
			assert.Equal(t, tt.label, cands[0].RelationType)
			assert.Equal(t, tt.category, cands[0].Category)
		})
	}
}

func TestSyntaxExtractorUnclassifiedVerb(t *testing.T) {
	e := NewSyntaxExtractor(SyntaxConfidence{})
	parse := &types.SentenceParse{Tokens: []types.ParseToken{
		{Text: "Bima", POS: "PROPN", Head: 1, Dep: "nsubj"},
		{Text: "memakan", POS: "VERB", Head: 1, Dep: "root"},
		{Text: "Arjuna", POS: "PROPN", Head: 1, Dep: "obj"},
	}}
	mentions := []types.EntityMention{person("Bima", 0), person("Arjuna", 0)}

	assert.Empty(t, e.Extract("kalimat", parse, mentions),
		"a verb outside every class yields nothing, never a generic label")
}

func TestSyntaxExtractorConjunction(t *testing.T) {
	e := NewSyntaxExtractor(SyntaxConfidence{})
	parse := &types.SentenceParse{Tokens: []types.ParseToken{
		{Text: "Arjuna", POS: "PROPN", Head: 0, Dep: "root"},
		{Text: "dan", POS: "CCONJ", Head: 2, Dep: "cc"},
		{Text: "Srikandi", POS: "PROPN", Head: 0, Dep: "conj"},
	}}
	mentions := []types.EntityMention{person("Arjuna", 0), person("Srikandi", 11)}

	cands := e.Extract("Arjuna dan Srikandi", parse, mentions)
	require.Len(t, cands, 1)
	c := cands[0]
	assert.Equal(t, "terkait_dengan", c.RelationType)
	assert.Equal(t, types.CategorySocial, c.Category)
	assert.Equal(t, "Arjuna", c.SubjectID)
	assert.Equal(t, "Srikandi", c.ObjectID)
	assert.InDelta(t, 0.5, c.Confidence, 1e-9)
}

func TestSyntaxExtractorConjunctionNonPerson(t *testing.T) {
	e := NewSyntaxExtractor(SyntaxConfidence{})
	parse := &types.SentenceParse{Tokens: []types.ParseToken{
		{Text: "Arjuna", POS: "PROPN", Head: 0, Dep: "root"},
		{Text: "Astina", POS: "PROPN", Head: 0, Dep: "conj"},
	}}
	mentions := []types.EntityMention{person("Arjuna", 0), place("Astina", 7)}

	assert.Empty(t, e.Extract("Arjuna Astina", parse, mentions))
}

func TestSyntaxExtractorLocativePreposition(t *testing.T) {
	e := NewSyntaxExtractor(SyntaxConfidence{})
	sentence := "Raden Arjuna di Kerajaan Dwarawati"
	parse := &types.SentenceParse{Tokens: []types.ParseToken{
		{Text: "Arjuna", POS: "PROPN", Head: 0, Dep: "root", Start: 6, End: 12},
		{Text: "di", POS: "ADP", Head: 0, Dep: "prep", Start: 13, End: 15},
		{Text: "Dwarawati", POS: "PROPN", Head: 1, Dep: "pobj", Start: 25, End: 34},
	}}
	mentions := []types.EntityMention{
		person("Raden Arjuna", 0),
		place("Kerajaan Dwarawati", 16),
	}

	cands := e.Extract(sentence, parse, mentions)
	require.Len(t, cands, 1)
	c := cands[0]
	assert.Equal(t, "berada_di", c.RelationType)
	assert.Equal(t, types.CategoryLocation, c.Category)
	assert.Equal(t, "Raden Arjuna", c.SubjectID)
	assert.Equal(t, "Kerajaan Dwarawati", c.ObjectID)
	assert.InDelta(t, 0.55, c.Confidence, 1e-9)
}

func TestSyntaxExtractorNonLocativePreposition(t *testing.T) {
	e := NewSyntaxExtractor(SyntaxConfidence{})
	parse := &types.SentenceParse{Tokens: []types.ParseToken{
		{Text: "Arjuna", POS: "PROPN", Head: 0, Dep: "root"},
		{Text: "untuk", POS: "ADP", Head: 0, Dep: "prep"},
		{Text: "Astina", POS: "PROPN", Head: 1, Dep: "pobj"},
	}}
	mentions := []types.EntityMention{person("Arjuna", 0), place("Astina", 13)}

	assert.Empty(t, e.Extract("Arjuna untuk Astina", parse, mentions))
}

func TestSyntaxExtractorNilParse(t *testing.T) {
	e := NewSyntaxExtractor(SyntaxConfidence{})
	mentions := []types.EntityMention{person("Bima", 0), person("Arjuna", 5)}

	assert.Nil(t, e.Extract("Bima Arjuna", nil, mentions))
	assert.Nil(t, e.Extract("Bima Arjuna", &types.SentenceParse{}, mentions))
}

func TestMapTokensToMentionsOffsetsBeforeText(t *testing.T) {
	parse := &types.SentenceParse{Tokens: []types.ParseToken{
		{Text: "Dwarawati", Start: 25, End: 34},
		{Text: "di"},
	}}
	mentions := []types.EntityMention{
		place("Kerajaan Dwarawati", 16),
		{Text: "Gunung Indrakila", Type: types.EntityLoc, Start: 40, End: 56},
	}

	mapped := mapTokensToMentions(parse, mentions)
	require.Contains(t, mapped, 0)
	assert.Equal(t, "Kerajaan Dwarawati", mapped[0].Text)
	assert.NotContains(t, mapped, 1, "short function words never glue onto mentions")
}
