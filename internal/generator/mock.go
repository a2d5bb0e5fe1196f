package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockClient returns a canned four-section response for local development,
// shaped like a well-behaved completion so the whole pipeline downstream of
// the API can be exercised offline.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	return buildMockResponse(), nil
}

func buildMockResponse() string {
	var b strings.Builder

	b.WriteString("SECTION 1: STRUCTURED NOTES\n\n")
	b.WriteString("## Core Concepts\n")
	b.WriteString("- [Mock] A relational model organizes data into tables of rows and columns.\n")
	b.WriteString("- [Mock] Keys uniquely identify rows and express relationships between tables.\n\n")
	b.WriteString("### Key Definitions\n")
	b.WriteString("**Normalization:** [Mock] the process of structuring tables to reduce redundancy.\n\n")

	b.WriteString("SECTION 2: LEARNING ROADMAP\n\n")
	b.WriteString("1. [Mock] Prerequisites: set theory basics, one week.\n")
	b.WriteString("2. [Mock] Core stage: modeling and normalization, two weeks.\n")
	b.WriteString("3. [Mock] Practice stage: query exercises, two weeks.\n\n")

	b.WriteString("SECTION 3: IMPORTANT RESOURCES\n\n")
	b.WriteString("- [Mock] Database System Concepts (textbook)\n")
	b.WriteString("- [Mock] An introductory online course on data modeling\n\n")

	b.WriteString("SECTION 4: QUESTION BANK WITH ANSWERS\n\n")
	b.WriteString(sectionSeparator + "\n")
	b.WriteString("SECTION 1: QUESTIONS ONLY (FOR STUDENTS)\n")
	b.WriteString(sectionSeparator + "\n\n")
	b.WriteString("INSTRUCTIONS:\n- Attempt all questions\n- Write legible answers\n\n")
	b.WriteString("QUESTIONS:\n\n")
	for i := 1; i <= 4; i++ {
		fmt.Fprintf(&b, "Question %d (2 Marks) [Bloom's Level: Understanding]: [Mock] Explain concept %d with an example.\n\n", i, i)
	}
	b.WriteString(sectionSeparator + "\n")
	b.WriteString("SECTION 2: ANSWER KEY (FOR TEACHERS)\n")
	b.WriteString(sectionSeparator + "\n\n")
	b.WriteString("ANSWER KEY:\n\n")
	for i := 1; i <= 4; i++ {
		fmt.Fprintf(&b, "Answer %d [Bloom's Level: Understanding]:\n[Mock] Concept %d is explained step by step with a worked example.\n\n", i, i)
	}

	return b.String()
}
