package generator

import (
	"fmt"
	"strings"

	"github.com/mentorix/backend/internal/models"
)

const sectionSeparator = "═══════════════════════════════════════"

// BuildMasterPrompt assembles the single prompt for one generation. It is a
// pure function of the request: role framing, topic, syllabus, free-form
// instructions, the three compiled instruction blocks, exact question-count
// rules, and the literal output template the response segmenter depends on.
func BuildMasterPrompt(req models.GenerationRequest) string {
	customs := req.ActiveCustomQuestions()
	patternCount := req.PatternQuestionCount()
	customCount := len(customs)
	totalCount := patternCount + customCount

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = "Derive from syllabus"
	}
	syllabus := strings.TrimSpace(req.SyllabusText)
	if syllabus == "" {
		syllabus = "Not provided"
	}
	instructions := strings.TrimSpace(req.Instructions)
	if instructions == "" {
		instructions = "None"
	}

	markDist := MarkDistribution(req.Patterns, customs)
	taxonomy := TaxonomyInstruction(req.Taxonomy)
	customBlock := CustomQuestionsInstruction(customs)

	return fmt.Sprintf(`You are an academic expert.

TOPIC:
%s

SYLLABUS:
%s

INSTRUCTIONS:
%s

QUESTION STRUCTURE:
%s

BLOOM'S TAXONOMY DISTRIBUTION:
%s

CUSTOM TEACHER-FRAMED QUESTIONS (MANDATORY TO INCLUDE):
%s

RULES:
- Strictly syllabus-based
- Exam-oriented language
- Bloom's taxonomy distribution applies ONLY to pattern-menu questions (%d questions)
- Custom questions MUST use their specified Bloom's levels (already defined)
- Total questions must be exactly %d
- Pattern-menu questions count must be exactly %d
- Custom questions count must be exactly %d
- If custom teacher-framed questions are provided, include them verbatim with the same marks and same Bloom's level, and generate answers for them
- Do not label questions as custom; present all questions in one unified list
- Ensure mark distribution and answer key match the final question list exactly
- Provide answers clearly
- Do not add any introduction, disclaimer, or summary before section headers

OUTPUT SECTIONS:
SECTION 1: STRUCTURED NOTES
SECTION 2: LEARNING ROADMAP
SECTION 3: IMPORTANT RESOURCES
SECTION 4: QUESTION BANK WITH ANSWERS

QUESTION BANK FORMAT (IMPORTANT - FOLLOW EXACTLY):

%[11]s
SECTION 1: QUESTIONS ONLY (FOR STUDENTS)
%[11]s

INSTRUCTIONS:
- Attempt all questions
- Write legible answers
- Show all steps/working
- Follow the given mark distribution

MARK DISTRIBUTION:
%[12]s

BLOOM'S TAXONOMY DISTRIBUTION:
%[13]s

QUESTIONS:

Question 1 (X Marks) [Bloom's Level: Understanding]: ...

Question 2 (X Marks) [Bloom's Level: Applying]: ...

%[11]s
SECTION 2: ANSWER KEY (FOR TEACHERS)
%[11]s

ANSWER KEY:

Answer 1 [Bloom's Level: Understanding]:
[Detailed explanation]

Answer 2 [Bloom's Level: Applying]:
[Detailed explanation]`,
		topic, syllabus, instructions, markDist, taxonomy, customBlock,
		patternCount, totalCount, patternCount, customCount,
		sectionSeparator, markDist, taxonomy)
}
