package speech

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	"fairwaycast/internal/domain"
	"fairwaycast/internal/logger"
)

// ClipCategory buckets the pre-rendered filler clips by shot outcome.
type ClipCategory string

const (
	ClipGreat   ClipCategory = "great"
	ClipGood    ClipCategory = "good"
	ClipBad     ClipCategory = "bad"
	ClipAverage ClipCategory = "average"
)

// clipsPerCategory is how many pre-rendered clips ship per category.
const clipsPerCategory = 7

// CategoryFor picks the filler category for a shot. Resting state wins
// over terrain: a holed ball celebrates, an out-of-bounds ball commiserates.
func CategoryFor(p domain.ShotProfile) ClipCategory {
	if p.Resting == domain.RestingHoled || p.Terrain == domain.TerrainHoleInOne {
		return ClipGreat
	}
	if p.Resting == domain.RestingOutOfBounds {
		return ClipBad
	}
	switch p.Terrain {
	case domain.TerrainGreen:
		return ClipGood
	case domain.TerrainWater, domain.TerrainTeeBox, domain.TerrainBunker, domain.TerrainDefault:
		return ClipBad
	}
	return ClipAverage
}

// ClipLibrary locates pre-rendered filler clips on disk. Clips follow the
// path scheme <dir>/<voice>/<category>_<n>.wav with n in [1, count], so each
// voice ships its own clip set.
type ClipLibrary struct {
	dir    string
	voice  string
	counts map[ClipCategory]int
	log    *logger.Logger
}

// NewClipLibrary creates a clip library rooted at dir for the given voice.
func NewClipLibrary(dir, voice string, log *logger.Logger) *ClipLibrary {
	return &ClipLibrary{
		dir:   dir,
		voice: voice,
		counts: map[ClipCategory]int{
			ClipGreat:   clipsPerCategory,
			ClipGood:    clipsPerCategory,
			ClipBad:     clipsPerCategory,
			ClipAverage: clipsPerCategory,
		},
		log: log,
	}
}

// Pick returns the path of a uniformly random clip within the category.
func (l *ClipLibrary) Pick(cat ClipCategory) string {
	n := l.counts[cat]
	if n <= 0 {
		n = clipsPerCategory
	}
	path := filepath.Join(l.dir, pathToken(l.voice), fmt.Sprintf("%s_%d.wav", cat, rand.Intn(n)+1))
	l.log.Debug("clip library: picked %s", path)
	return path
}

// ProfileAudioPath is where a player's introduction artifact lives. Keyed
// by voice and player identity; regenerating for the same player simply
// overwrites the artifact.
func ProfileAudioPath(dir, voice, playerID string) string {
	return filepath.Join(dir, fmt.Sprintf("profile_%s_%s.wav", pathToken(voice), pathToken(playerID)))
}

// pathToken makes an identifier safe to embed in a file name.
func pathToken(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
