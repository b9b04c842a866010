package segment

import (
	"regexp"
	"strings"

	"pdf-hint-be/internal/entity"
)

// Parse segments raw assignment text into questions.
//
// Boundary rule: a line opens a new segment when it starts with a numbering
// marker (1. / 1) / a. / A) / i. / Question 3 / Problem 2 / Exercise 5).
// Roman-numeral items directly following an open segment are folded into it
// as sub-items. A segment is kept as a question only when its content looks
// interrogative; numbered transaction narration (common in accounting
// assignments) is treated as scenario context instead.
func Parse(rawText string) []entity.Question {
	var questions []entity.Question

	var current *segmentState
	var segments []segmentState

	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		marker, ok := matchMarker(line)
		if !ok {
			if current != nil {
				current.lines = append(current.lines, line)
			}
			continue
		}

		// Roman sub-items like "iii) bonus shares" belong to the open segment
		if current != nil && isRomanMarker(marker) {
			current.lines = append(current.lines, line)
			continue
		}

		if current != nil {
			segments = append(segments, *current)
		}
		current = &segmentState{id: marker, lines: []string{line}}
	}
	if current != nil {
		segments = append(segments, *current)
	}

	scenarioSeen := false
	for _, seg := range segments {
		text := strings.Join(seg.lines, "\n")
		if isActualQuestion(text) {
			questions = append(questions, entity.Question{
				Id:          seg.id,
				Text:        text,
				HasScenario: scenarioSeen,
				HasTable:    hasAnyKeyword(text, tableKeywords),
				HasImage:    hasAnyKeyword(text, imageKeywords),
			})
			continue
		}
		if isScenarioNarration(text) {
			scenarioSeen = true
		}
	}

	return questions
}

type segmentState struct {
	id    string
	lines []string
}

var markerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d+[.)])\s+`),
	regexp.MustCompile(`^([ivxIVX]+[.)])\s+`),
	regexp.MustCompile(`^([a-zA-Z][.)])\s+`),
	regexp.MustCompile(`(?i)^((?:Question|Problem|Exercise)\s+\d+)`),
}

var (
	romanMarkerRe = regexp.MustCompile(`^[ivxIVX]+[.)]$`)
	markerStripRe = regexp.MustCompile(`(?i)^(?:(?:question|problem|exercise)\s+\d+[:.)]?|[0-9a-z]+[.)])\s*`)
)

var interrogativeWords = wordSet(
	"what", "why", "how", "when", "where", "who", "which",
)

var imperativeWords = wordSet(
	"explain", "describe", "define", "compare", "discuss",
	"analyze", "evaluate", "calculate", "prepare", "compute",
	"determine", "identify", "list", "state", "illustrate",
	"justify", "prove", "show", "demonstrate", "outline",
)

var transactionWords = wordSet(
	"invested", "purchased", "paid", "received", "sold",
	"bought", "acquired", "issued", "collected", "borrowed",
	"provided", "completed", "recorded", "transferred",
)

var tableKeywords = []string{
	"table", "trial balance", "balance sheet", "given below",
	"following data", "using the data",
}

var imageKeywords = []string{
	"figure", "diagram", "chart", "graph", "image", "illustration",
}

func matchMarker(line string) (string, bool) {
	for _, re := range markerPatterns {
		if m := re.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

func isRomanMarker(marker string) bool {
	return romanMarkerRe.MatchString(marker)
}

// isActualQuestion decides whether a numbered segment asks something of the
// student, as opposed to narrating givens ("Paid $500 for supplies").
func isActualQuestion(text string) bool {
	content := markerStripRe.ReplaceAllString(text, "")
	first := firstWord(content)

	if strings.Contains(text, "?") {
		return true
	}
	if interrogativeWords[first] || imperativeWords[first] {
		return true
	}
	if transactionWords[first] {
		return false
	}

	// Leading dollar amounts almost always mean transaction data
	head := text
	if len(head) > 50 {
		head = head[:50]
	}
	if strings.Contains(head, "$") {
		return false
	}

	// Short items without transaction markers are usually terse prompts
	if len(text) < 100 {
		lower := strings.ToLower(text)
		for word := range transactionWords {
			if strings.Contains(lower, word) {
				return false
			}
		}
		return !strings.Contains(text, "$")
	}

	return false
}

func isScenarioNarration(text string) bool {
	if strings.Contains(text, "$") {
		return true
	}
	lower := strings.ToLower(text)
	for word := range transactionWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func hasAnyKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Trim(fields[0], ",.;:"))
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
