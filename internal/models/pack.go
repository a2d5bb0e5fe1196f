package models

import "time"

type GenerationStatus string

const (
	GenerationPending   GenerationStatus = "pending"
	GenerationRunning   GenerationStatus = "running"
	GenerationCompleted GenerationStatus = "completed"
	GenerationFailed    GenerationStatus = "failed"
)

// Document names, fixed across every generation. The QA document is omitted
// when the total question count is zero.
const (
	DocNotes     = "01_Notes"
	DocRoadmap   = "02_Roadmap"
	DocResources = "03_Resources"
	DocQA        = "04_QA"
)

// DocumentTitles maps document names to the title printed in the PDF banner.
var DocumentTitles = map[string]string{
	DocNotes:     "Structured Notes",
	DocRoadmap:   "Learning Roadmap",
	DocResources: "Important Resources",
	DocQA:        "Question Bank",
}

// Generation is one complete, atomic run of the pipeline, tagged with a
// fresh identifier. It never mutates once completed.
type Generation struct {
	ID            string           `json:"id"`
	UserID        int64            `json:"user_id"`
	Status        GenerationStatus `json:"status"`
	Topic         string           `json:"topic"`
	PatternCount  int              `json:"pattern_count"`
	CustomCount   int              `json:"custom_count"`
	TotalCount    int              `json:"total_count"`
	ResponseChars int              `json:"response_chars"`
	Warnings      []string         `json:"warnings,omitempty"`
	ErrorMessage  *string          `json:"error_message,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
}

// PackDocument is one rendered document of a generation.
type PackDocument struct {
	GenerationID string `json:"generation_id"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	Text         string `json:"text,omitempty"`
	PDF          []byte `json:"-"`
	Pages        int    `json:"pages"`
}

type GeneratePackResponse struct {
	Generation Generation     `json:"generation"`
	Documents  []PackDocument `json:"documents"`
}

type BloomDetectRequest struct {
	Text string `json:"text"`
}

type BloomDetectResponse struct {
	// Level is "Not detected" for empty input, otherwise one of the six
	// fixed levels. Detected is false only in the empty-input case.
	Level    string `json:"level"`
	Detected bool   `json:"detected"`
}

type ExtractResponse struct {
	Text  string `json:"text"`
	Chars int    `json:"chars"`
}
