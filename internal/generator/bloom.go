package generator

import (
	"strings"

	"github.com/mentorix/backend/internal/models"
)

// LevelNotDetected is the display value for empty question text. It is never
// stored as a question's level; storage falls back to Understanding.
const LevelNotDetected = "Not detected"

// bloomKeywords maps each cognitive level to its trigger keywords, in the
// fixed enumeration order of models.BloomLevels. Order matters: score ties
// are broken by the first-declared level.
var bloomKeywords = []struct {
	level    models.BloomLevel
	keywords []string
}{
	{models.BloomRemembering, []string{"define", "list", "name", "state", "identify", "recall", "what is", "mention"}},
	{models.BloomUnderstanding, []string{"explain", "summarize", "describe", "differentiate", "classify", "interpret", "outline"}},
	{models.BloomApplying, []string{"apply", "solve", "use", "demonstrate", "calculate", "implement", "show how"}},
	{models.BloomAnalyzing, []string{"analyze", "compare", "contrast", "examine", "categorize", "investigate", "why"}},
	{models.BloomEvaluating, []string{"evaluate", "justify", "critique", "assess", "argue", "recommend", "validate"}},
	{models.BloomCreating, []string{"design", "create", "develop", "construct", "propose", "formulate", "build"}},
}

// DetectBloomLevel scores the question text against the keyword table and
// returns the winning level. A keyword at the start of the text scores 3,
// anywhere else 1; points accumulate across keywords of the same level.
// The boolean is false only for empty or whitespace-only text, in which case
// callers display LevelNotDetected. Text matching no keyword at all detects
// as Understanding.
func DetectBloomLevel(questionText string) (models.BloomLevel, bool) {
	text := strings.ToLower(strings.TrimSpace(questionText))
	if text == "" {
		return models.BloomUnderstanding, false
	}

	best := models.BloomUnderstanding
	bestScore := 0
	for _, entry := range bloomKeywords {
		score := 0
		for _, keyword := range entry.keywords {
			if strings.HasPrefix(text, keyword) {
				score += 3
			} else if strings.Contains(text, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = entry.level
			bestScore = score
		}
	}

	return best, true
}
