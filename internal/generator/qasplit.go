package generator

import (
	"regexp"
	"strings"
)

// NoAnswerKeySentinel is the answers text when no answer key could be
// recovered by any strategy. The questions side then carries the whole span.
const NoAnswerKeySentinel = "No answer key found"

// QAView separates the student-facing question paper from the teacher-facing
// answer key, reconciled from the single blended question-bank span.
type QAView struct {
	Questions string
	Answers   string
}

var (
	questionPaperStart = regexp.MustCompile(`(?i)(?:SECTION\s*1\s*:\s*QUESTIONS\s*ONLY|SECTION\s*1\s*:\s*QUESTION\s*PAPER|QUESTIONS\s*ONLY\s*\(FOR\s*STUDENTS\))`)
	answerKeyMarker    = regexp.MustCompile(`(?i)ANSWER\s*KEY\s*:?`)

	questionsBoilerplate = regexp.MustCompile(`(?is)SECTION\s*1.*?(?:QUESTIONS?:|$)`)
	answersBoilerplate   = regexp.MustCompile(`(?is)SECTION\s*2.*?(?:ANSWER\s*KEY:?|$)`)

	answerBlockMarker   = regexp.MustCompile(`(?i)(?:^|\n)\s*Answer\s*\d+\s*(?:\[[^\]\n]*\])?\s*[:.)\-][ \t]*`)
	questionBlockMarker = regexp.MustCompile(`(?i)(?:^|\n)\s*Question\s*\d+\s*\([^)\n]*\)\s*(?:\[[^\]\n]*\])?\s*[:.)\-][ \t]*`)
)

// qaStrategy attempts one extraction approach. Strategies are tried in order
// and the first success wins, which keeps the fallback ladder auditable and
// lets each step be tested on its own.
type qaStrategy func(string) (QAView, bool)

var qaStrategies = []qaStrategy{
	splitAtSectionTwo,
	splitAtAnswerKeyMarker,
	extractLabeledBlocks,
}

// SplitQuestionAnswers derives a QAView from the question-bank span (or the
// whole response when no span was isolated). The same structural-drift
// problem the outer segmenter handles applies recursively one level down, so
// the ladder degrades all the way to a sentinel rather than ever returning
// two empty sides.
func SplitQuestionAnswers(span string) QAView {
	text := strings.ReplaceAll(span, "\r", "")

	// Discard any preamble before the inner question-paper heading.
	if loc := questionPaperStart.FindStringIndex(text); loc != nil {
		text = text[loc[0]:]
	}

	for _, strategy := range qaStrategies {
		if view, ok := strategy(text); ok {
			return view
		}
	}

	return QAView{
		Questions: strings.TrimSpace(text),
		Answers:   NoAnswerKeySentinel,
	}
}

// splitAtSectionTwo cuts at the literal "SECTION 2" token: questions before,
// answers from there on, each side stripped of its own section-label
// boilerplate through the trailing QUESTIONS: / ANSWER KEY: cue.
func splitAtSectionTwo(text string) (QAView, bool) {
	idx := strings.Index(text, "SECTION 2")
	if idx < 0 {
		return QAView{}, false
	}
	questions := strings.TrimSpace(text[:idx])
	answers := strings.TrimSpace(text[idx:])

	questions = strings.TrimSpace(questionsBoilerplate.ReplaceAllString(questions, ""))
	answers = strings.TrimSpace(answersBoilerplate.ReplaceAllString(answers, ""))
	if questions == "" && answers == "" {
		// The strip consumed everything; let a later strategy recover.
		return QAView{}, false
	}
	return QAView{Questions: questions, Answers: answers}, true
}

// splitAtAnswerKeyMarker cuts at a standalone ANSWER KEY heading, then fills
// any side that came up empty from its labeled blocks.
func splitAtAnswerKeyMarker(text string) (QAView, bool) {
	loc := answerKeyMarker.FindStringIndex(text)
	if loc == nil {
		return QAView{}, false
	}
	view := QAView{
		Questions: strings.TrimSpace(text[:loc[0]]),
		Answers:   strings.TrimSpace(text[loc[1]:]),
	}
	if view.Answers == "" {
		view.Answers = joinBlocks(blocksAfter(answerBlockMarker, text))
	}
	if view.Questions == "" {
		view.Questions = joinBlocks(blocksAfter(questionBlockMarker, text))
	}
	if view.Questions == "" && view.Answers == "" {
		return QAView{}, false
	}
	return view, true
}

// extractLabeledBlocks recovers each side independently from repeated
// "Answer N:" and "Question N (...):" blocks, using whichever it finds.
func extractLabeledBlocks(text string) (QAView, bool) {
	view := QAView{
		Questions: joinBlocks(blocksAfter(questionBlockMarker, text)),
		Answers:   joinBlocks(blocksAfter(answerBlockMarker, text)),
	}
	if view.Questions == "" && view.Answers == "" {
		return QAView{}, false
	}
	return view, true
}

// blocksAfter returns the text between consecutive matches of a block
// marker, excluding the marker lines themselves.
func blocksAfter(marker *regexp.Regexp, text string) []string {
	locs := marker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	blocks := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if block := strings.TrimSpace(text[loc[1]:end]); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func joinBlocks(blocks []string) string {
	return strings.Join(blocks, "\n\n")
}
