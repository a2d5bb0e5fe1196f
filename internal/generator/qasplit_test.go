package generator

import (
	"strings"
	"testing"
)

const qbankSpan = `SECTION 4: QUESTION BANK WITH ANSWERS

SECTION 1: QUESTIONS ONLY (FOR STUDENTS)

INSTRUCTIONS:
- Attempt all questions

MARK DISTRIBUTION:
- 2 questions of 2 marks each

QUESTIONS:

Question 1 (2 Marks) [Bloom's Level: Remembering]: Define a heap.

Question 2 (2 Marks) [Bloom's Level: Applying]: Use a heap to sort 5 numbers.

SECTION 2: ANSWER KEY (FOR TEACHERS)

ANSWER KEY:

Answer 1 [Bloom's Level: Remembering]:
A heap is a complete binary tree satisfying the heap property.

Answer 2 [Bloom's Level: Applying]:
Insert all numbers, then extract the minimum repeatedly.`

func TestSplitQuestionAnswersWellFormed(t *testing.T) {
	view := SplitQuestionAnswers(qbankSpan)

	if !strings.Contains(view.Questions, "Define a heap.") {
		t.Errorf("questions side missing question text: %q", view.Questions)
	}
	if !strings.Contains(view.Answers, "complete binary tree") {
		t.Errorf("answers side missing answer text: %q", view.Answers)
	}
	if strings.Contains(view.Questions, "complete binary tree") {
		t.Error("answers leaked into questions side")
	}
	if strings.Contains(view.Answers, "Define a heap.") {
		t.Error("questions leaked into answers side")
	}
}

// Without a SECTION 2 heading the split falls back to the ANSWER KEY marker.
func TestSplitQuestionAnswersAnswerKeyFallback(t *testing.T) {
	span := `Question 1 (2 Marks): Define entropy.

ANSWER KEY:

Answer 1:
A measure of disorder.`

	view := SplitQuestionAnswers(span)
	if !strings.Contains(view.Questions, "Define entropy.") {
		t.Errorf("questions: %q", view.Questions)
	}
	if !strings.Contains(view.Answers, "measure of disorder") {
		t.Errorf("answers: %q", view.Answers)
	}
	if strings.Contains(view.Questions, "ANSWER KEY") {
		t.Error("marker should not remain on questions side")
	}
}

// With neither heading, labeled Question/Answer blocks are recovered
// independently.
func TestSplitQuestionAnswersLabeledBlocks(t *testing.T) {
	span := `Question 1 (5 Marks) [Bloom's Level: Creating]: Design a cache.

Answer 1:
Use an LRU eviction policy over a hash map and doubly linked list.`

	view := SplitQuestionAnswers(span)
	if !strings.Contains(view.Questions, "Design a cache.") {
		t.Errorf("questions: %q", view.Questions)
	}
	if !strings.Contains(view.Answers, "LRU eviction") {
		t.Errorf("answers: %q", view.Answers)
	}
}

// Nothing recognizable at all: the whole span stays on the questions side
// and the answers side carries the sentinel.
func TestSplitQuestionAnswersSentinel(t *testing.T) {
	span := "Here are some exercises about sorting, unstructured."
	view := SplitQuestionAnswers(span)

	if view.Questions != span {
		t.Errorf("questions should carry the whole span, got %q", view.Questions)
	}
	if view.Answers != NoAnswerKeySentinel {
		t.Errorf("answers = %q, want sentinel", view.Answers)
	}
}

// A span that is nothing but section labels must still never yield two empty
// sides: the boilerplate strip can consume everything, and the ladder has to
// fall through instead of reporting an empty success.
func TestSplitQuestionAnswersNeverBothEmpty(t *testing.T) {
	spans := []string{
		"SECTION 2: ANSWER KEY:",
		"SECTION 2",
		"",
	}
	for _, span := range spans {
		view := SplitQuestionAnswers(span)
		if view.Questions == "" && view.Answers == "" {
			t.Errorf("SplitQuestionAnswers(%q) returned two empty sides", span)
		}
	}
}

func TestSplitQuestionAnswersDiscardsPreamble(t *testing.T) {
	span := "Intro chatter the model added.\nSECTION 1: QUESTION PAPER\nQuestion 1 (2 Marks): Define X.\nANSWER KEY:\nAnswer 1: X is Y."
	view := SplitQuestionAnswers(span)

	if strings.Contains(view.Questions, "Intro chatter") {
		t.Errorf("preamble should be discarded: %q", view.Questions)
	}
	if !strings.Contains(view.Answers, "X is Y.") {
		t.Errorf("answers: %q", view.Answers)
	}
}
