package document

import (
	"regexp"
	"strings"
)

type OpKind string

const (
	OpSpacer    OpKind = "spacer"
	OpHeading1  OpKind = "heading1"
	OpHeading2  OpKind = "heading2"
	OpLabel     OpKind = "label"
	OpRule      OpKind = "rule"
	OpQALabel   OpKind = "qa_label"
	OpBold      OpKind = "bold"
	OpBullet    OpKind = "bullet"
	OpNumbered  OpKind = "numbered"
	OpParagraph OpKind = "paragraph"
)

type RGB struct {
	R, G, B int
}

var (
	colorHeading    = RGB{0, 51, 102}
	colorSubheading = RGB{51, 51, 51}
	colorBody       = RGB{0, 0, 0}
)

// Op is one layout instruction: what to draw and how. Sizes and spacings are
// in the renderer's units (mm for spacing, points for fonts).
type Op struct {
	Kind        OpKind
	Text        string
	Bold        bool
	Size        float64
	Color       RGB
	Indent      float64
	LineHeight  float64
	SpaceBefore float64
	SpaceAfter  float64
}

// RenderedDocument is the immutable formatting result for one text span:
// an ordered op sequence plus the page count filled in at render time.
type RenderedDocument struct {
	Title string
	Ops   []Op
	Pages int
}

var (
	labelLine    = regexp.MustCompile(`^(?i)(INSTRUCTIONS|QUESTIONS|ANSWER KEY|MARK DISTRIBUTION|BLOOM'S TAXONOMY DISTRIBUTION|QUESTION PAPER|SECTION\s+\d+)\s*:?$`)
	ruleLine     = regexp.MustCompile(`^(?:={3,}|-{3,})$`)
	qaLabelLine  = regexp.MustCompile(`^(?i)(?:Question|Answer)\s*\d+\b`)
	numberedLine = regexp.MustCompile(`^\d+[.)]`)
)

// longParagraphChars is the length past which a paragraph gets extra
// trailing space, to separate dense blocks visually.
const longParagraphChars = 50

// Format classifies every line of a sanitized text span against the line
// grammar and produces the layout ops for one document.
func Format(title, content string) *RenderedDocument {
	safe := Sanitize(content)

	var ops []Op
	for _, rawLine := range strings.Split(safe, "\n") {
		ops = append(ops, classifyLine(rawLine))
	}

	return &RenderedDocument{Title: title, Ops: ops}
}

// classifyLine tests a line against the grammar in fixed priority order;
// the first match wins.
func classifyLine(rawLine string) Op {
	line := strings.TrimSpace(rawLine)

	switch {
	case line == "":
		return Op{Kind: OpSpacer, LineHeight: 4}

	case strings.HasPrefix(line, "## "):
		return Op{
			Kind: OpHeading1, Text: strings.TrimSpace(line[3:]),
			Bold: true, Size: 14, Color: colorHeading,
			LineHeight: 8, SpaceBefore: 3, SpaceAfter: 2,
		}

	case strings.HasPrefix(line, "### "):
		return Op{
			Kind: OpHeading2, Text: strings.TrimSpace(line[4:]),
			Bold: true, Size: 12, Color: colorSubheading,
			LineHeight: 7, SpaceBefore: 2, SpaceAfter: 1,
		}

	case labelLine.MatchString(line):
		return Op{
			Kind: OpLabel, Text: strings.ToUpper(line),
			Bold: true, Size: 12, Color: colorHeading,
			LineHeight: 7, SpaceBefore: 2, SpaceAfter: 1,
		}

	case ruleLine.MatchString(line):
		return Op{Kind: OpRule, SpaceBefore: 2, SpaceAfter: 2}

	case qaLabelLine.MatchString(line):
		return Op{
			Kind: OpQALabel, Text: line,
			Bold: true, Size: 11, Color: colorBody, LineHeight: 6,
		}

	case strings.Contains(line, "**"):
		return Op{
			Kind: OpBold, Text: strings.ReplaceAll(line, "**", ""),
			Bold: true, Size: 11, Color: colorBody, LineHeight: 6,
		}

	case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
		return Op{
			Kind: OpBullet, Text: "- " + strings.TrimSpace(line[2:]),
			Size: 11, Color: colorBody, Indent: 5, LineHeight: 6,
		}

	case numberedLine.MatchString(line):
		return Op{
			Kind: OpNumbered, Text: line,
			Size: 11, Color: colorBody, Indent: 5, LineHeight: 6,
		}

	default:
		op := Op{
			Kind: OpParagraph, Text: line,
			Size: 11, Color: colorBody, LineHeight: 6,
		}
		if len(line) > longParagraphChars {
			op.SpaceAfter = 2
		}
		return op
	}
}
