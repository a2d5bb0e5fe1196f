package generator

import (
	"strings"
	"testing"

	"github.com/mentorix/backend/internal/models"
)

func TestBuildMasterPromptDefaults(t *testing.T) {
	req := models.GenerationRequest{SyllabusText: "Unit 1: Trees. Unit 2: Graphs."}
	prompt := BuildMasterPrompt(req)

	if !strings.Contains(prompt, "Derive from syllabus") {
		t.Error("missing topic placeholder for empty topic")
	}
	if !strings.Contains(prompt, "Unit 1: Trees.") {
		t.Error("syllabus text not embedded")
	}
	if !strings.Contains(prompt, "None") {
		t.Error("missing instructions placeholder")
	}
}

func TestBuildMasterPromptSyllabusPlaceholder(t *testing.T) {
	req := models.GenerationRequest{Topic: "Operating Systems"}
	prompt := BuildMasterPrompt(req)

	if !strings.Contains(prompt, "Operating Systems") {
		t.Error("topic not embedded")
	}
	if !strings.Contains(prompt, "Not provided") {
		t.Error("missing syllabus placeholder")
	}
}

func TestBuildMasterPromptCounts(t *testing.T) {
	req := models.GenerationRequest{
		Topic: "Networks",
		Patterns: []models.QuestionPattern{
			{Count: 4, Marks: 2},
			{Count: 2, Marks: 5},
		},
		CustomQuestions: []models.CustomQuestion{
			{Text: "Explain sliding window.", Marks: 5},
		},
	}
	prompt := BuildMasterPrompt(req)

	// 6 pattern + 1 custom
	if !strings.Contains(prompt, "7") {
		t.Error("total question count missing from prompt")
	}
	if !strings.Contains(prompt, "- 5 questions of 2 marks each") &&
		!strings.Contains(prompt, "- 4 questions of 2 marks each") {
		t.Error("mark distribution missing from prompt")
	}
	if !strings.Contains(prompt, "Explain sliding window.") {
		t.Error("custom question text missing from prompt")
	}
}

func TestBuildMasterPromptSectionHeadings(t *testing.T) {
	prompt := BuildMasterPrompt(models.GenerationRequest{Topic: "Algebra"})

	for _, heading := range []string{
		"SECTION 1: STRUCTURED NOTES",
		"SECTION 2: LEARNING ROADMAP",
		"SECTION 3: IMPORTANT RESOURCES",
		"SECTION 4: QUESTION BANK",
	} {
		if !strings.Contains(prompt, heading) {
			t.Errorf("prompt missing %q", heading)
		}
	}
	if !strings.Contains(prompt, sectionSeparator) {
		t.Error("prompt missing section separator")
	}
}

func TestBuildMasterPromptNoVerbs(t *testing.T) {
	// Positional-argument mistakes leave literal %! escapes behind.
	prompt := BuildMasterPrompt(models.GenerationRequest{Topic: "Chemistry"})
	if strings.Contains(prompt, "%!") {
		t.Errorf("prompt has unresolved format verbs: %s", prompt)
	}
}
