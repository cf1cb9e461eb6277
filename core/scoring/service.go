// ABOUTME: Similarity scorer computes a bounded affinity score for candidate items
// ABOUTME: Combines title word-frequency overlap with source (channel) affinity

package scoring

import (
	"github.com/SadRunStuff/youtube-watcher/core/domain"
	"github.com/SadRunStuff/youtube-watcher/core/tokenizer"
)

// Config holds the tunable scoring policy. The defaults are required for
// behavioral parity; they may be overridden through configuration.
type Config struct {
	// TitleWeight is the weight of the title score in the total.
	TitleWeight float64

	// SourceWeight is the weight of the source score in the total.
	SourceWeight float64

	// FrequencyCap bounds the influence of very high-frequency words so a
	// single dominant term cannot saturate the score.
	FrequencyCap float64

	// SourceCap normalizes source occurrence counts to [0,1].
	SourceCap float64
}

// DefaultConfig returns the default scoring policy.
func DefaultConfig() Config {
	return Config{
		TitleWeight:  0.7,
		SourceWeight: 0.3,
		FrequencyCap: 5,
		SourceCap:    10,
	}
}

// Score bands for the presentation layer.
const (
	BandHigh   = "high"
	BandMedium = "medium"
	BandLow    = "low"
	BandNone   = ""
)

// Scorer computes similarity scores against a trained frequency model.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the given policy. Zero-valued weights are
// replaced by the defaults.
func NewScorer(cfg Config) *Scorer {
	def := DefaultConfig()
	if cfg.TitleWeight == 0 && cfg.SourceWeight == 0 {
		cfg.TitleWeight = def.TitleWeight
		cfg.SourceWeight = def.SourceWeight
	}
	if cfg.FrequencyCap == 0 {
		cfg.FrequencyCap = def.FrequencyCap
	}
	if cfg.SourceCap == 0 {
		cfg.SourceCap = def.SourceCap
	}
	return &Scorer{cfg: cfg}
}

// Score returns the affinity of a (title, source) pair in [0,1].
// An untrained (nil or empty) model always scores 0.
func (s *Scorer) Score(model *domain.FrequencyModel, title, source string) float64 {
	if model.IsEmpty() {
		return 0
	}

	var titleScore float64
	if title != "" {
		words := tokenizer.Scoring(title)
		if len(words) > 0 {
			matchingWords := 0
			totalFrequency := 0
			for _, word := range words {
				if count, ok := model.WordCounts[word]; ok {
					matchingWords++
					totalFrequency += count
				}
			}

			matchRatio := float64(matchingWords) / float64(len(words))
			avgFrequency := float64(totalFrequency) / float64(max(matchingWords, 1))
			titleScore = matchRatio * min(avgFrequency/s.cfg.FrequencyCap, 1)
		}
	}

	var sourceScore float64
	if source != "" {
		if count, ok := model.SourceCounts[source]; ok {
			sourceScore = min(float64(count)/s.cfg.SourceCap, 1)
		}
	}

	total := titleScore*s.cfg.TitleWeight + sourceScore*s.cfg.SourceWeight
	return min(max(total, 0), 1)
}

// Band maps a score to its display band: "high" for scores >= 0.6,
// "medium" >= 0.3, "low" >= 0.1, empty below that.
func (s *Scorer) Band(score float64) string {
	switch {
	case score >= 0.6:
		return BandHigh
	case score >= 0.3:
		return BandMedium
	case score >= 0.1:
		return BandLow
	default:
		return BandNone
	}
}
