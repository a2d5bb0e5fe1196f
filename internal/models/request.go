package models

import "strings"

type BloomLevel string

const (
	BloomRemembering   BloomLevel = "Remembering"
	BloomUnderstanding BloomLevel = "Understanding"
	BloomApplying      BloomLevel = "Applying"
	BloomAnalyzing     BloomLevel = "Analyzing"
	BloomEvaluating    BloomLevel = "Evaluating"
	BloomCreating      BloomLevel = "Creating"
)

// BloomLevels lists the six levels in their fixed enumeration order.
// Keyword detection breaks ties by this order, first declared wins.
var BloomLevels = []BloomLevel{
	BloomRemembering,
	BloomUnderstanding,
	BloomApplying,
	BloomAnalyzing,
	BloomEvaluating,
	BloomCreating,
}

var ValidBloomLevels = map[BloomLevel]bool{
	BloomRemembering:   true,
	BloomUnderstanding: true,
	BloomApplying:      true,
	BloomAnalyzing:     true,
	BloomEvaluating:    true,
	BloomCreating:      true,
}

// QuestionPattern represents "Count questions worth Marks marks each" from
// the pattern menu. Multiple patterns with the same Marks value are legal and
// get merged into one summed line of the mark-distribution instruction.
type QuestionPattern struct {
	Count int `json:"count"`
	Marks int `json:"marks"`
}

// TaxonomyBucket assigns Count pattern-menu questions to one cognitive level.
// It never applies to custom questions.
type TaxonomyBucket struct {
	Level BloomLevel `json:"level"`
	Count int        `json:"count"`
}

// CustomQuestion is a teacher-framed question included verbatim in the paper.
// A custom question with empty text is inactive and excluded from every
// downstream computation.
type CustomQuestion struct {
	Text       string     `json:"text"`
	Marks      int        `json:"marks"`
	BloomLevel BloomLevel `json:"bloom_level"`
}

// Active reports whether the question carries any text after trimming.
func (q CustomQuestion) Active() bool {
	return strings.TrimSpace(q.Text) != ""
}

// GenerationRequest is the frozen output of the request builder. It is passed
// by value into the prompt assembler; the pipeline holds no other state.
type GenerationRequest struct {
	Topic           string            `json:"topic"`
	SyllabusText    string            `json:"syllabus_text"`
	Instructions    string            `json:"instructions"`
	Patterns        []QuestionPattern `json:"question_patterns"`
	Taxonomy        []TaxonomyBucket  `json:"bloom_taxonomy"`
	CustomQuestions []CustomQuestion  `json:"custom_questions"`
}

// InputReady reports whether at least one of topic or syllabus text is
// non-empty. Generation must never be invoked otherwise.
func (r GenerationRequest) InputReady() bool {
	return strings.TrimSpace(r.Topic) != "" || strings.TrimSpace(r.SyllabusText) != ""
}

// ActiveCustomQuestions returns the custom questions that carry text, with
// the text trimmed, marks floored at 1, and any bloom level outside the fixed
// six coerced to Understanding. The coercion deliberately does not re-run
// keyword detection: a teacher-provided classification may only fall back,
// never silently change.
func (r GenerationRequest) ActiveCustomQuestions() []CustomQuestion {
	var active []CustomQuestion
	for _, q := range r.CustomQuestions {
		if !q.Active() {
			continue
		}
		marks := q.Marks
		if marks < 1 {
			marks = 1
		}
		level := q.BloomLevel
		if !ValidBloomLevels[level] {
			level = BloomUnderstanding
		}
		active = append(active, CustomQuestion{
			Text:       strings.TrimSpace(q.Text),
			Marks:      marks,
			BloomLevel: level,
		})
	}
	return active
}

// PatternQuestionCount is the number of pattern-menu questions requested.
func (r GenerationRequest) PatternQuestionCount() int {
	total := 0
	for _, p := range r.Patterns {
		if p.Count > 0 {
			total += p.Count
		}
	}
	return total
}

// TotalQuestionCount is pattern-menu count plus active custom count.
func (r GenerationRequest) TotalQuestionCount() int {
	return r.PatternQuestionCount() + len(r.ActiveCustomQuestions())
}

// TaxonomyAllocated sums the bucket counts.
func (r GenerationRequest) TaxonomyAllocated() int {
	total := 0
	for _, t := range r.Taxonomy {
		if t.Count > 0 {
			total += t.Count
		}
	}
	return total
}
