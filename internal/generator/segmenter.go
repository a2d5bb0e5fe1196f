package generator

import (
	"regexp"
	"sort"
	"strings"
)

// SectionKey names one of the four logical documents of a generation.
type SectionKey string

const (
	SectionNotes     SectionKey = "notes"
	SectionRoadmap   SectionKey = "roadmap"
	SectionResources SectionKey = "resources"
	SectionQBank     SectionKey = "qbank"
)

// SectionMap holds the text span of each section. Keys are always present;
// a span may legitimately be empty when its marker was never found.
type SectionMap struct {
	Notes     string
	Roadmap   string
	Resources string
	QBank     string
}

func (m *SectionMap) span(key SectionKey) *string {
	switch key {
	case SectionNotes:
		return &m.Notes
	case SectionRoadmap:
		return &m.Roadmap
	case SectionResources:
		return &m.Resources
	default:
		return &m.QBank
	}
}

// Get returns the span for a key.
func (m SectionMap) Get(key SectionKey) string {
	return *m.span(key)
}

// Marker patterns are tolerant: each accepts the verbose "SECTION k: NAME"
// heading and the terse "k. NAME" numbering, case-insensitively, at a line
// start. The qbank pattern additionally accepts the inner question-paper
// heading, since models sometimes skip the outer SECTION 4 label and open
// directly with the question bank's own sub-structure.
var sectionPatterns = []struct {
	key SectionKey
	re  *regexp.Regexp
}{
	{SectionNotes, regexp.MustCompile(`(?i)(?:^|\n)\s*(?:SECTION\s*1\s*:\s*STRUCTURED\s*NOTES|1\.\s*STRUCTURED\s*NOTES)`)},
	{SectionRoadmap, regexp.MustCompile(`(?i)(?:^|\n)\s*(?:SECTION\s*2\s*:\s*LEARNING\s*ROADMAP|2\.\s*LEARNING\s*ROADMAP)`)},
	{SectionResources, regexp.MustCompile(`(?i)(?:^|\n)\s*(?:SECTION\s*3\s*:\s*IMPORTANT\s*RESOURCES|3\.\s*IMPORTANT\s*RESOURCES)`)},
	{SectionQBank, regexp.MustCompile(`(?i)(?:^|\n)\s*(?:SECTION\s*4\s*:\s*QUESTION\s*BANK\s*WITH\s*ANSWERS|4\.\s*QUESTION\s*BANK\s*WITH\s*ANSWERS|4\.\s*QUESTION\s*BANK|SECTION\s*4\s*:\s*QUESTION\s*BANK|SECTION\s*1\s*:\s*QUESTIONS\s*ONLY\s*\(FOR\s*STUDENTS\)|SECTION\s*1\s*:\s*QUESTION\s*PAPER)`)},
}

var qbankInnerPattern = regexp.MustCompile(`(?i)(?:^|\n)\s*(?:SECTION\s*1\s*:\s*QUESTIONS\s*ONLY\s*\(FOR\s*STUDENTS\)|SECTION\s*1\s*:\s*QUESTION\s*PAPER)`)

// sectionMarker is one located section heading: which section it opens and
// where. Spans are derived purely from the sorted offsets of these.
type sectionMarker struct {
	key   SectionKey
	start int
}

// findSectionMarkers runs one matching pass over the normalized response and
// returns the first match per section key, sorted by position.
func findSectionMarkers(text string) []sectionMarker {
	var markers []sectionMarker
	for _, p := range sectionPatterns {
		if loc := p.re.FindStringIndex(text); loc != nil {
			markers = append(markers, sectionMarker{key: p.key, start: loc[0]})
		}
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].start < markers[j].start })
	return markers
}

// SplitSections partitions a raw completion into the four named sections.
// The fallback ladder guarantees content is never dropped:
//  1. no markers at all: the whole response becomes the notes span
//  2. markers found: each span runs from its marker to the next marker (or
//     end of text); unmatched keys stay empty
//  3. notes empty despite other markers (response starts at SECTION 2 or
//     later): notes is overwritten with the full response
//  4. qbank still empty: a secondary search anchored at the inner
//     question-paper heading takes everything from there to the end
func SplitSections(raw string) SectionMap {
	var sections SectionMap
	normalized := strings.ReplaceAll(raw, "\r", "")

	markers := findSectionMarkers(normalized)
	if len(markers) == 0 {
		sections.Notes = normalized
		return sections
	}

	for i, m := range markers {
		end := len(normalized)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		*sections.span(m.key) = strings.TrimSpace(normalized[m.start:end])
	}

	if sections.Notes == "" {
		sections.Notes = normalized
	}

	if sections.QBank == "" {
		if loc := qbankInnerPattern.FindStringIndex(normalized); loc != nil {
			sections.QBank = strings.TrimSpace(normalized[loc[0]:])
		}
	}

	return sections
}
