package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mentorix/backend/internal/models"
)

// minResponseChars is the degraded-content gate: anything shorter cannot be
// a usable learning pack and fails the generation with diagnostics.
const minResponseChars = 100

// DegradedContentError is a terminal failure of one generation: the service
// answered, but with content that cannot produce documents. It carries the
// raw length and a preview for diagnosis.
type DegradedContentError struct {
	Reason  string
	Length  int
	Preview string
}

func (e *DegradedContentError) Error() string {
	return fmt.Sprintf("degraded response (%s): %d chars: %q", e.Reason, e.Length, e.Preview)
}

// GeneratedPack is the outcome of one pipeline run up to the document
// formatter: the segmented sections and the reconciled question/answer view.
type GeneratedPack struct {
	Prompt        string
	Raw           string
	Sections      SectionMap
	QA            QAView
	Warnings      []string
	ResponseChars int
}

// Generator drives the core pipeline: compile instructions, assemble the
// prompt, call the completion service, segment, split.
type Generator struct {
	llm   CompletionClient
	model string
}

// NewGenerator builds a generator from the environment, mirroring the mock
// switch used in development.
func NewGenerator() *Generator {
	if os.Getenv("MOCK_GENERATOR") == "true" {
		log.Println("Generator using mock completions")
		return &Generator{llm: NewMockClient(), model: "mock"}
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	opts := []GeminiOption{}
	if v := os.Getenv("COMPLETION_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts = append(opts, WithRetries(n))
		}
	}
	if v := os.Getenv("COMPLETION_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts = append(opts, WithAttemptTimeout(time.Duration(n)*time.Second))
		}
	}
	// QUOTA_POLICY=fail turns exhausted rate limits into hard errors instead
	// of the sentinel.
	opts = append(opts, WithQuotaSentinel(os.Getenv("QUOTA_POLICY") != "fail"))

	log.Println("Generator using Gemini API:", model)
	return &Generator{
		llm:   NewGeminiClient(os.Getenv("GEMINI_API_KEY"), model, opts...),
		model: model,
	}
}

// NewGeneratorWithClient injects a completion client (used by tests and by
// callers that configure the client themselves).
func NewGeneratorWithClient(llm CompletionClient, model string) *Generator {
	return &Generator{llm: llm, model: model}
}

func (g *Generator) ModelName() string {
	return g.model
}

// GeneratePack runs one complete generation: one completion call, then the
// segmentation and question/answer reconciliation ladders. Segmentation can
// never fail; completion and degraded-content checks can.
func (g *Generator) GeneratePack(ctx context.Context, req models.GenerationRequest) (*GeneratedPack, error) {
	if !req.InputReady() {
		return nil, fmt.Errorf("either a topic or syllabus text is required")
	}

	prompt := BuildMasterPrompt(req)

	raw, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	if IsQuotaExhausted(raw) {
		return nil, &DegradedContentError{Reason: "quota exhausted", Length: len(raw), Preview: truncate(raw, 200)}
	}
	if len(strings.TrimSpace(raw)) < minResponseChars {
		return nil, &DegradedContentError{Reason: "response too short", Length: len(raw), Preview: raw}
	}

	sections := SplitSections(raw)

	qbank := sections.QBank
	if qbank == "" {
		qbank = strings.ReplaceAll(raw, "\r", "")
	}
	qa := SplitQuestionAnswers(qbank)

	var warnings []string
	if w := TaxonomyWarning(req); w != "" {
		warnings = append(warnings, w)
	}

	return &GeneratedPack{
		Prompt:        prompt,
		Raw:           raw,
		Sections:      sections,
		QA:            qa,
		Warnings:      warnings,
		ResponseChars: len(raw),
	}, nil
}

// BuildQADocument reassembles the printable question-bank body: a question
// paper banner with instructions and the compiled distribution blocks, the
// questions, then the answer key.
func BuildQADocument(req models.GenerationRequest, qa QAView) string {
	customs := req.ActiveCustomQuestions()

	var b strings.Builder
	b.WriteString(sectionSeparator + "\n")
	b.WriteString("QUESTION PAPER\n")
	b.WriteString(sectionSeparator + "\n\n")
	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("- Attempt all questions\n")
	b.WriteString("- Write legible answers\n")
	b.WriteString("- Show all steps/working\n")
	b.WriteString("- Follow the given mark distribution\n")

	if markDist := MarkDistribution(req.Patterns, customs); markDist != "" {
		b.WriteString("\nMARK DISTRIBUTION:\n" + markDist + "\n")
	}
	if len(req.Taxonomy) > 0 {
		b.WriteString("\nBLOOM'S TAXONOMY DISTRIBUTION:\n" + TaxonomyInstruction(req.Taxonomy) + "\n")
	}

	b.WriteString("\n" + qa.Questions + "\n\n")
	b.WriteString(sectionSeparator + "\n")
	b.WriteString("ANSWER KEY\n")
	b.WriteString(sectionSeparator + "\n\n")
	b.WriteString(qa.Answers)

	return strings.TrimSpace(b.String())
}
