package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mentorix/backend/internal/models"
)

// Fixed notices emitted when an optional builder section is empty.
const (
	noTaxonomyNotice = "No specific Bloom's Taxonomy distribution specified for pattern questions. Mix all levels for pattern questions."
	noCustomNotice   = "No custom teacher-framed questions provided."
)

// MarkDistribution groups every question pattern by marks value, summing
// counts, and adds one question per active custom question at its own marks
// value. One line per distinct marks value, ascending. A zero-count pattern
// still claims its marks value ("- 0 questions of M marks each"); only
// negative counts are dropped.
func MarkDistribution(patterns []models.QuestionPattern, customs []models.CustomQuestion) string {
	marksMap := make(map[int]int)

	for _, p := range patterns {
		if p.Count >= 0 {
			marksMap[p.Marks] += p.Count
		}
	}
	for _, q := range customs {
		if !q.Active() {
			continue
		}
		marks := q.Marks
		if marks < 1 {
			marks = 1
		}
		marksMap[marks]++
	}

	marks := make([]int, 0, len(marksMap))
	for m := range marksMap {
		marks = append(marks, m)
	}
	sort.Ints(marks)

	lines := make([]string, 0, len(marks))
	for _, m := range marks {
		lines = append(lines, fmt.Sprintf("- %d questions of %d marks each", marksMap[m], m))
	}
	return strings.Join(lines, "\n")
}

// TaxonomyInstruction renders the Bloom's distribution block. The
// distribution is explicitly scoped to pattern-menu questions; custom
// questions keep their own levels.
func TaxonomyInstruction(buckets []models.TaxonomyBucket) string {
	if len(buckets) == 0 {
		return noTaxonomyNotice
	}

	lines := make([]string, 0, len(buckets)+1)
	lines = append(lines, "FOR PATTERN MENU QUESTIONS ONLY:")
	for _, b := range buckets {
		lines = append(lines, fmt.Sprintf("- %d pattern questions at %s level", b.Count, b.Level))
	}
	return strings.Join(lines, "\n")
}

// CustomQuestionsInstruction renders one line per active custom question:
// its marks, its (detected or coerced) Bloom level, and the text verbatim.
func CustomQuestionsInstruction(customs []models.CustomQuestion) string {
	var lines []string
	for _, q := range customs {
		if !q.Active() {
			continue
		}
		lines = append(lines, fmt.Sprintf("- (%d Marks) [Bloom's Level: %s] %s", q.Marks, q.BloomLevel, strings.TrimSpace(q.Text)))
	}
	if len(lines) == 0 {
		return noCustomNotice
	}
	return strings.Join(lines, "\n")
}

// TaxonomyWarning reports a mismatch between the bucket totals and the
// pattern-menu question count. The mismatch never blocks generation; the
// message is carried on the generation for the caller to surface.
func TaxonomyWarning(req models.GenerationRequest) string {
	if len(req.Taxonomy) == 0 {
		return ""
	}
	patternCount := req.PatternQuestionCount()
	if patternCount == 0 {
		return ""
	}
	allocated := req.TaxonomyAllocated()
	switch {
	case allocated > patternCount:
		return fmt.Sprintf("taxonomy distribution (%d) exceeds pattern menu questions (%d)", allocated, patternCount)
	case allocated < patternCount:
		return fmt.Sprintf("taxonomy distribution (%d) is less than pattern menu questions (%d); remaining %d questions will be mixed", allocated, patternCount, patternCount-allocated)
	}
	return ""
}
