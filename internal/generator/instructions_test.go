package generator

import (
	"strings"
	"testing"

	"github.com/mentorix/backend/internal/models"
)

func TestMarkDistribution(t *testing.T) {
	patterns := []models.QuestionPattern{
		{Count: 4, Marks: 2},
		{Count: 2, Marks: 5},
		{Count: 3, Marks: 2},
		{Count: 0, Marks: 10},
		{Count: -1, Marks: 3},
	}
	customs := []models.CustomQuestion{
		{Text: "Explain indexing.", Marks: 5},
		{Text: "   ", Marks: 3}, // inactive, blank text
	}

	got := MarkDistribution(patterns, customs)
	want := "- 7 questions of 2 marks each\n- 3 questions of 5 marks each\n- 0 questions of 10 marks each"
	if got != want {
		t.Errorf("MarkDistribution = %q, want %q", got, want)
	}
}

func TestMarkDistributionExactLine(t *testing.T) {
	got := MarkDistribution([]models.QuestionPattern{{Count: 4, Marks: 2}}, nil)
	if got != "- 4 questions of 2 marks each" {
		t.Errorf("got %q", got)
	}
}

func TestMarkDistributionCustomMarksFloor(t *testing.T) {
	got := MarkDistribution(nil, []models.CustomQuestion{{Text: "Define X.", Marks: 0}})
	if got != "- 1 questions of 1 marks each" {
		t.Errorf("marks below 1 should be floored, got %q", got)
	}
}

func TestTaxonomyInstruction(t *testing.T) {
	if got := TaxonomyInstruction(nil); got != noTaxonomyNotice {
		t.Errorf("empty buckets: got %q", got)
	}

	got := TaxonomyInstruction([]models.TaxonomyBucket{
		{Level: models.BloomRemembering, Count: 3},
		{Level: models.BloomCreating, Count: 2},
	})
	if !strings.HasPrefix(got, "FOR PATTERN MENU QUESTIONS ONLY:") {
		t.Errorf("missing scope header: %q", got)
	}
	if !strings.Contains(got, "- 3 pattern questions at Remembering level") {
		t.Errorf("missing bucket line: %q", got)
	}
	if !strings.Contains(got, "- 2 pattern questions at Creating level") {
		t.Errorf("missing bucket line: %q", got)
	}
}

func TestCustomQuestionsInstruction(t *testing.T) {
	if got := CustomQuestionsInstruction(nil); got != noCustomNotice {
		t.Errorf("empty customs: got %q", got)
	}

	customs := []models.CustomQuestion{
		{Text: "  Explain normalization.  ", Marks: 5, BloomLevel: models.BloomUnderstanding},
	}
	got := CustomQuestionsInstruction(customs)
	want := "- (5 Marks) [Bloom's Level: Understanding] Explain normalization."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTaxonomyWarning(t *testing.T) {
	base := models.GenerationRequest{
		Topic:    "DBMS",
		Patterns: []models.QuestionPattern{{Count: 5, Marks: 2}},
	}

	tests := []struct {
		name     string
		buckets  []models.TaxonomyBucket
		contains string
	}{
		{"no buckets", nil, ""},
		{"exact", []models.TaxonomyBucket{{Level: models.BloomApplying, Count: 5}}, ""},
		{"over", []models.TaxonomyBucket{{Level: models.BloomApplying, Count: 8}}, "exceeds"},
		{"under", []models.TaxonomyBucket{{Level: models.BloomApplying, Count: 3}}, "remaining 2 questions will be mixed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			req.Taxonomy = tt.buckets
			got := TaxonomyWarning(req)
			if tt.contains == "" {
				if got != "" {
					t.Errorf("want no warning, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("warning %q does not contain %q", got, tt.contains)
			}
		})
	}
}
