package insight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// Difficulty levels recommended to the tutoring model.
const (
	MinDifficulty = 1
	MaxDifficulty = 4
)

// BuildContextPrompt renders the learning context as a plain-text block for
// injection into the tutor's system prompt. Pure: same context in, same
// text out, never empty. A first-ever learner gets a neutral block so the
// tutor always receives a well-formed context.
func (s *Service) BuildContextPrompt(lc domain.LearningContext) string {
	var b strings.Builder

	if len(lc.Facts) == 0 && lc.LastLesson == nil {
		b.WriteString("New learner: no lesson history yet.\n")
	}

	struggles := filterByCategory(lc.Facts, domain.FactCategoryStruggle, s.cfg.MaxPromptFacts)
	if len(struggles) > 0 {
		b.WriteString("Current struggles:\n")
		writeFactLines(&b, struggles)
	}

	strengths := filterByCategory(lc.Facts, domain.FactCategoryStrength, s.cfg.MaxPromptFacts)
	if len(strengths) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Demonstrated strengths:\n")
		writeFactLines(&b, strengths)
	}

	if b.Len() > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Recent performance: grammar %.0f%%, translation %.0f%%.\n",
		lc.Patterns.GrammarAccuracy, lc.Patterns.TranslationAccuracy)

	if lc.LastLesson != nil {
		fmt.Fprintf(&b, "Last lesson: surah %d, %s mode, %d messages.\n",
			lc.LastLesson.SurahID, lc.LastLesson.LearningMode, lc.LastLesson.MessagesCount)
	}

	fmt.Fprintf(&b, "Recommended difficulty: %d/%d.\n", RecommendDifficulty(lc), MaxDifficulty)

	return b.String()
}

// RecommendDifficulty maps the learner's rolling accuracy, averaged over
// grammar and translation, onto the 1..4 difficulty scale, then steps down
// one level when three or more struggles are active: breadth of difficulty
// trumps raw accuracy.
func RecommendDifficulty(lc domain.LearningContext) int {
	var level int
	switch acc := (lc.Patterns.GrammarAccuracy + lc.Patterns.TranslationAccuracy) / 2; {
	case acc >= 80:
		level = 4
	case acc >= 60:
		level = 3
	case acc >= 40:
		level = 2
	default:
		level = 1
	}

	if countByCategory(lc.Facts, domain.FactCategoryStruggle) >= 3 && level > MinDifficulty {
		level--
	}
	return level
}

func writeFactLines(b *strings.Builder, facts []domain.LearnerFact) {
	for _, f := range facts {
		fmt.Fprintf(b, "- %s (observed %d times)", f.FactText, f.ObservationCount)
		if len(f.ArabicExamples) > 0 {
			fmt.Fprintf(b, ". Examples: %s", strings.Join(f.ArabicExamples, "، "))
		}
		b.WriteString("\n")
	}
}

// filterByCategory selects the strongest-evidence facts of one category:
// observation count descending, feature name as the deterministic tie-break.
func filterByCategory(facts []domain.LearnerFact, category domain.FactCategory, limit int) []domain.LearnerFact {
	var out []domain.LearnerFact
	for _, f := range facts {
		if f.Category == category {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ObservationCount != out[j].ObservationCount {
			return out[i].ObservationCount > out[j].ObservationCount
		}
		return out[i].GrammarFeature < out[j].GrammarFeature
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func countByCategory(facts []domain.LearnerFact, category domain.FactCategory) int {
	n := 0
	for _, f := range facts {
		if f.Category == category {
			n++
		}
	}
	return n
}
