package fonts

import (
	"sync"

	"golang.org/x/image/font/sfnt"
)

// Latin sample set (computed once on first access).
var (
	latinSample     []rune
	latinSampleOnce sync.Once
)

// LatinSample returns the runes a font must cover to count as supporting
// Latin script: the basic letters and digits. The returned slice is shared
// and must not be modified.
func LatinSample() []rune {
	latinSampleOnce.Do(func() {
		for r := 'A'; r <= 'Z'; r++ {
			latinSample = append(latinSample, r)
		}
		for r := 'a'; r <= 'z'; r++ {
			latinSample = append(latinSample, r)
		}
		for r := '0'; r <= '9'; r++ {
			latinSample = append(latinSample, r)
		}
	})
	return latinSample
}

// Covers reports whether the font has a glyph for every rune in runes.
// It also returns the runes that are missing.
func (f *Face) Covers(runes []rune) (bool, []rune) {
	var (
		buf     sfnt.Buffer
		missing []rune
	)
	for _, r := range runes {
		idx, err := f.font.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			missing = append(missing, r)
		}
	}
	return len(missing) == 0, missing
}

// CoversLatin reports whether the font covers the Latin sample set.
func (f *Face) CoversLatin() bool {
	ok, _ := f.Covers(LatinSample())
	return ok
}
