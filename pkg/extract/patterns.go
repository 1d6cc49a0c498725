package extract

import (
	"regexp"

	"github.com/adrianreza/wayangkg/pkg/types"
)

// Pattern is one labelled lexical rule. Expr must contain two capture
// groups; the first aligns to the subject mention and the second to the
// object mention. Reverse swaps the captured roles before emitting, and
// Bidirectional additionally yields the mirrored candidate. Confidence is
// fixed per pattern: lexical matches are explicit and therefore sit in the
// high tier.
type Pattern struct {
	Label         string         `yaml:"label"`
	Category      types.Category `yaml:"category"`
	Expr          string         `yaml:"expr"`
	Confidence    float64        `yaml:"confidence"`
	Bidirectional bool           `yaml:"bidirectional"`
	Reverse       bool           `yaml:"reverse"`

	re *regexp.Regexp
}

// Regexp returns the compiled case-insensitive expression, compiling and
// caching it on first call. The cache write is unsynchronized: compile
// before sharing the pattern, as NewPatternExtractor and ParsePatterns do.
func (p *Pattern) Regexp() (*regexp.Regexp, error) {
	if p.re == nil {
		re, err := regexp.Compile("(?i)" + p.Expr)
		if err != nil {
			return nil, err
		}
		p.re = re
	}
	return p.re, nil
}

// DefaultPatterns returns the built-in Indonesian relation catalog.
// Order is significant for logging only: every matching pattern in a
// sentence produces a candidate, and fusion merges them later.
func DefaultPatterns() []Pattern {
	return []Pattern{
		// Relasi keluarga
		// "A anak dari B" stores the edge from B to A.
		{Label: "anak_dari", Category: types.CategoryFamily, Confidence: 0.9, Reverse: true,
			Expr: `(.+?)\s+(?:adalah\s+)?(?:putra|putri|anak)\s+(?:dari\s+)?(.+)`},
		{Label: "orang_tua_dari", Category: types.CategoryFamily, Confidence: 0.85,
			Expr: `(.+?)\s+melahirkan\s+(.+)`},
		{Label: "ayah_dari", Category: types.CategoryFamily, Confidence: 0.9,
			Expr: `(.+?)\s+(?:adalah\s+)?(?:ayah|bapak)\s+(?:dari\s+)?(.+)`},
		{Label: "ibu_dari", Category: types.CategoryFamily, Confidence: 0.9,
			Expr: `(.+?)\s+(?:adalah\s+)?(?:ibu|ibunda)\s+(?:dari\s+)?(.+)`},
		{Label: "menikah_dengan", Category: types.CategoryFamily, Confidence: 0.9, Bidirectional: true,
			Expr: `(.+?)\s+(?:dan|dengan|serta)\s+(.+?)\s+(?:menikah|bersuami|beristri|dipersunting)`},
		{Label: "pasangan_dari", Category: types.CategoryFamily, Confidence: 0.85, Bidirectional: true,
			Expr: `(.+?)\s+(?:adalah\s+)?(?:suami|istri|permaisuri)\s+(?:dari\s+)?(.+)`},
		{Label: "saudara_dari", Category: types.CategoryFamily, Confidence: 0.85, Bidirectional: true,
			Expr: `(.+?)\s+(?:dan|dengan|serta)\s+(.+?)\s+(?:adalah\s+)?(?:saudara|kakak|adik|saudari)`},
		{Label: "kakak_dari", Category: types.CategoryFamily, Confidence: 0.85,
			Expr: `(.+?)\s+(?:adalah\s+)?kakak\s+(?:dari\s+)?(.+)`},
		{Label: "adik_dari", Category: types.CategoryFamily, Confidence: 0.85,
			Expr: `(.+?)\s+(?:adalah\s+)?adik\s+(?:dari\s+)?(.+)`},
		{Label: "keturunan_dari", Category: types.CategoryFamily, Confidence: 0.8,
			Expr: `(.+?)\s+(?:adalah\s+)?(?:keturunan|keponakan|cucu)\s+(?:dari\s+)?(.+)`},

		// Relasi konflik
		{Label: "melawan", Category: types.CategoryConflict, Confidence: 0.85, Bidirectional: true,
			Expr: `(.+?)\s+(?:melawan|memerangi|berperang\s+dengan|bertempur\s+dengan|bertarung\s+dengan)\s+(.+)`},
		{Label: "dibunuh_oleh", Category: types.CategoryConflict, Confidence: 0.9,
			Expr: `(.+?)\s+(?:dibunuh|gugur|tewas|mati|meninggal)\s+(?:oleh|karena|di\s+tangan|akibat)\s+(.+)`},
		{Label: "membunuh", Category: types.CategoryConflict, Confidence: 0.9,
			Expr: `(.+?)\s+(?:membunuh|mengalahkan|menewaskan|menghabisi|melukai)\s+(.+)`},
		{Label: "menyerang", Category: types.CategoryConflict, Confidence: 0.85,
			Expr: `(.+?)\s+(?:menyerang|menghancurkan|menjarah)\s+(.+)`},
		{Label: "dikalahkan_oleh", Category: types.CategoryConflict, Confidence: 0.85,
			Expr: `(.+?)\s+(?:kalah|dikalahkan)\s+(?:oleh|dari)\s+(.+)`},
		{Label: "mengalahkan", Category: types.CategoryConflict, Confidence: 0.85,
			Expr: `(.+?)\s+(?:mengalahkan|menang\s+(?:atas|melawan))\s+(.+)`},
		{Label: "bermusuhan_dengan", Category: types.CategoryConflict, Confidence: 0.8, Bidirectional: true,
			Expr: `(.+?)\s+(?:bermusuhan|berkonflik)\s+dengan\s+(.+)`},

		// Relasi lokasi / kekuasaan
		{Label: "memerintah_di", Category: types.CategoryLocation, Confidence: 0.85,
			Expr: `(.+?)\s+(?:memerintah|memimpin|menguasai|berkuasa|raja)\s+(?:di|atas|negara|kerajaan)?\s*(.+)`},
		{Label: "penguasa_dari", Category: types.CategoryLocation, Confidence: 0.85,
			Expr: `(.+?)\s+(?:adalah\s+)?(?:raja|ratu|pemimpin|penguasa)\s+(?:dari|di)\s+(.+)`},
		{Label: "meninggal_di", Category: types.CategoryLocation, Confidence: 0.85,
			Expr: `(.+?)\s+(?:gugur|mati|meninggal|tewas|wafat)\s+(?:di|dalam|pada)\s+(.+)`},
		{Label: "berada_di", Category: types.CategoryLocation, Confidence: 0.8,
			Expr: `(.+?)\s+(?:berada|tinggal|berasal|datang)\s+(?:di|dari)\s+(.+)`},
		{Label: "pergi_ke", Category: types.CategoryLocation, Confidence: 0.8,
			Expr: `(.+?)\s+(?:pergi|menuju|berangkat)\s+(?:ke|menuju)\s+(.+)`},
		{Label: "lahir_di", Category: types.CategoryLocation, Confidence: 0.85,
			Expr: `(.+?)\s+(?:lahir|dilahirkan)\s+(?:di|dalam)\s+(.+)`},

		// Relasi partisipasi
		{Label: "ikut_dalam", Category: types.CategoryParticipation, Confidence: 0.85,
			Expr: `(.+?)\s+(?:ikut|mengikuti|berpartisipasi|terlibat)\s+(?:dalam|di)\s+(.+)`},
		{Label: "anggota_dari", Category: types.CategoryParticipation, Confidence: 0.8,
			Expr: `(.+?)\s+(?:adalah\s+)?(?:anggota|bagian|tokoh)\s+(?:dari\s+)?(.+)`},
		{Label: "memimpin", Category: types.CategoryParticipation, Confidence: 0.85,
			Expr: `(.+?)\s+(?:memimpin|mengepalai|mengomandani)\s+(.+)`},
		{Label: "bergabung_dengan", Category: types.CategoryParticipation, Confidence: 0.8,
			Expr: `(.+?)\s+(?:bergabung|masuk)\s+(?:dengan|ke|dalam)\s+(.+)`},

		// Relasi sosial
		{Label: "bertemu_dengan", Category: types.CategorySocial, Confidence: 0.8, Bidirectional: true,
			Expr: `(.+?)\s+(?:bertemu|berjumpa)\s+(?:dengan|sama)\s+(.+)`},
		{Label: "membantu", Category: types.CategorySocial, Confidence: 0.85,
			Expr: `(.+?)\s+(?:membantu|menolong)\s+(.+)`},
		{Label: "bersahabat_dengan", Category: types.CategorySocial, Confidence: 0.8, Bidirectional: true,
			Expr: `(.+?)\s+(?:bersahabat|berteman)\s+dengan\s+(.+)`},
		{Label: "mengutus", Category: types.CategorySocial, Confidence: 0.8,
			Expr: `(.+?)\s+(?:mengutus|mengirim|menyuruh)\s+(.+)`},
		{Label: "diutus_oleh", Category: types.CategorySocial, Confidence: 0.8,
			Expr: `(.+?)\s+(?:diutus|dikirim)\s+(?:oleh|dari)\s+(.+)`},
	}
}
