package projectcontent

import (
	"fmt"
	"regexp"
	"strings"
)

var currentStateIndicators = []string{
	"currently", "now", "existing", "already", "have", "has", "is using",
	"current setup", "current system", "present", "at present", "right now",
}

var newPlansIndicators = []string{
	"should", "recommend", "suggest", "plan", "propose", "consider",
	"next step", "would be", "could", "might want", "option",
	"alternative", "better", "improve", "upgrade", "replace",
}

var sentenceSplitPattern = regexp.MustCompile(`[.!?]\s+`)

// ExtractBuckets splits a conversational agent response into the six
// structured content buckets: sentences describing what already exists go
// to CurrentState, sentences recommending action go to NewPlans, everything
// else lands in General. Components/Code/Calculations are rendered
// directly from the agent's structured return, independent of the response
// text split.
func ExtractBuckets(responseText string, structured StructuredResult) Buckets {
	var b Buckets

	if len(structured.Components) > 0 {
		var sb strings.Builder
		sb.WriteString("## Component Specifications\n\n")
		for _, c := range structured.Components {
			fmt.Fprintf(&sb, "### %s\n", orDefault(c.Name, "Component"))
			fmt.Fprintf(&sb, "- **Type**: %s\n", orDefault(c.Type, "N/A"))
			fmt.Fprintf(&sb, "- **Value/Specification**: %s\n", orDefault(c.Value, "N/A"))
			fmt.Fprintf(&sb, "- **Purpose**: %s\n", orDefault(c.Purpose, "N/A"))
			if len(c.Alternatives) > 0 {
				fmt.Fprintf(&sb, "- **Alternatives**: %s\n", strings.Join(c.Alternatives, ", "))
			}
			sb.WriteString("\n")
		}
		b.Components = sb.String()
	}

	if len(structured.CodeSnippets) > 0 {
		var sb strings.Builder
		sb.WriteString("## Code Implementation\n\n")
		for _, c := range structured.CodeSnippets {
			fmt.Fprintf(&sb, "### %s\n", orDefault(c.Purpose, "Code Snippet"))
			fmt.Fprintf(&sb, "- **Platform**: %s\n", orDefault(c.Platform, "N/A"))
			fmt.Fprintf(&sb, "- **Language**: %s\n\n", orDefault(c.Language, "N/A"))
			fmt.Fprintf(&sb, "```%s\n%s\n```\n\n", orDefault(c.Language, "cpp"), c.Code)
		}
		b.Code = sb.String()
	}

	if len(structured.Calculations) > 0 {
		var sb strings.Builder
		sb.WriteString("## Calculations\n\n")
		for _, c := range structured.Calculations {
			fmt.Fprintf(&sb, "### %s\n", orDefault(titleCase(c.Type), "Calculation"))
			fmt.Fprintf(&sb, "- **Formula**: %s\n", orDefault(c.Formula, "N/A"))
			fmt.Fprintf(&sb, "- **Result**: %s\n", orDefault(c.Result, "N/A"))
			fmt.Fprintf(&sb, "- **Explanation**: %s\n\n", orDefault(c.Explanation, "N/A"))
		}
		b.Calculations = sb.String()
	}

	var currentSentences, planSentences, generalSentences []string
	for _, sentence := range sentenceSplitPattern.Split(responseText, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		lower := strings.ToLower(sentence)
		switch {
		case containsAny(lower, currentStateIndicators...):
			currentSentences = append(currentSentences, sentence)
		case containsAny(lower, newPlansIndicators...):
			planSentences = append(planSentences, sentence)
		default:
			generalSentences = append(generalSentences, sentence)
		}
	}

	if len(currentSentences) > 0 {
		b.CurrentState = "## Current State\n\n" + strings.Join(currentSentences, " ")
	}

	if len(planSentences) > 0 {
		b.NewPlans = "## Recommendations and Plans\n\n" + strings.Join(planSentences, " ")
	}
	if len(structured.Recommendations) > 0 {
		var sb strings.Builder
		if b.NewPlans != "" {
			sb.WriteString(b.NewPlans + "\n\n### Additional Recommendations\n\n")
		} else {
			sb.WriteString("## Recommendations\n\n")
		}
		for i, r := range structured.Recommendations {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, r)
		}
		b.NewPlans = sb.String()
	}

	if len(generalSentences) > 0 {
		b.General = strings.Join(generalSentences, " ")
	}

	return b
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func titleCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var conversationalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(I|you|we|your|my|our)\s+(think|believe|feel|know|see|understand)\b`),
	regexp.MustCompile(`(?i)\b(Let me|Let's|I'll|I'm|I've|You'll|You're|We'll|We're)\b`),
	regexp.MustCompile(`(?i)\b(please|thank you|thanks|great|excellent|perfect|awesome)\b`),
	regexp.MustCompile(`(?i)\?\s*(Yes|No|Sure|Okay|OK)\s*[.!]`),
	regexp.MustCompile(`(?i)Would you like|Do you want|Can I help`),
	regexp.MustCompile(`(?i)\*I've (saved|updated|created|added).*?\*`),
	regexp.MustCompile(`(?i)\*\*File Organization Suggestion\*\*:.*`),
}

var questionPatterns = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)Would you like to (.+)\?`), "$1 is recommended."},
	{regexp.MustCompile(`(?i)Do you want to (.+)\?`), "$1 is recommended."},
	{regexp.MustCompile(`(?i)Should we (.+)\?`), "$1 is recommended."},
	{regexp.MustCompile(`(?i)Could we (.+)\?`), "$1 is possible."},
}

var multiNewlinePattern = regexp.MustCompile(`\n{3,}`)
var multiSpacePattern = regexp.MustCompile(` {2,}`)

// FormatAsReference converts a conversational agent response into reference
// documentation: conversational markers are stripped, questions of the form
// "Would you like to X?" become "X is recommended.", and whitespace is
// normalized. Content shorter than 50 characters is returned unchanged.
func FormatAsReference(content string) string {
	if len(strings.TrimSpace(content)) < 50 {
		return content
	}

	formatted := content
	for _, qp := range questionPatterns {
		formatted = qp.pattern.ReplaceAllString(formatted, qp.replacement)
	}
	for _, p := range conversationalPatterns {
		formatted = p.ReplaceAllString(formatted, "")
	}

	formatted = multiNewlinePattern.ReplaceAllString(formatted, "\n\n")
	formatted = multiSpacePattern.ReplaceAllString(formatted, " ")
	formatted = strings.TrimSpace(formatted)
	if formatted != "" && !strings.HasSuffix(formatted, ".") && !strings.HasSuffix(formatted, "!") && !strings.HasSuffix(formatted, "?") {
		formatted += "."
	}
	return formatted
}

// contentTypeConfig describes one classifiable content type's detection
// keywords, target section, frontmatter key, and file-type keywords used to
// score candidate files.
type contentTypeConfig struct {
	Keywords         []string
	Section          string
	FrontmatterKey   string
	FileTypeKeywords []string
}

var contentTypeConfigs = map[string]contentTypeConfig{
	"component": {
		Keywords:         []string{"component", "resistor", "capacitor", "microcontroller", "sensor", "ic", "chip", "transistor", "mosfet", "diode", "led"},
		Section:          "Component Specifications",
		FrontmatterKey:   "components",
		FileTypeKeywords: []string{"component", "specification", "spec", "part", "hardware"},
	},
	"protocol": {
		Keywords:         []string{"protocol", "communication", "i2c", "spi", "uart", "serial", "can", "ethernet", "network", "data format"},
		Section:          "Protocol Documentation",
		FrontmatterKey:   "protocols",
		FileTypeKeywords: []string{"protocol", "communication", "interface", "data"},
	},
	"schematic": {
		Keywords:         []string{"schematic", "circuit diagram", "wiring", "connection", "pinout", "layout", "pcb"},
		Section:          "Schematic Documentation",
		FrontmatterKey:   "schematics",
		FileTypeKeywords: []string{"schematic", "circuit", "diagram", "wiring", "layout"},
	},
	"specification": {
		Keywords:         []string{"specification", "spec", "requirement", "standard", "voltage", "current", "power", "rating"},
		Section:          "Technical Specifications",
		FrontmatterKey:   "specifications",
		FileTypeKeywords: []string{"specification", "spec", "requirement", "standard", "technical"},
	},
	"architecture": {
		Keywords: []string{
			"system architecture", "high-level system", "block diagram", "system design", "overview",
			"system requirement", "system requirements", "overarching", "system process", "system processes",
			"integration", "system integration", "source of truth", "project goal", "project goals",
			"project scope", "system constraint", "system constraints", "high-level", "system-level",
		},
		Section:          "System Architecture",
		FrontmatterKey:   "",
		FileTypeKeywords: []string{"architecture", "system", "design", "overview", "requirement", "process"},
	},
	"code": {
		Keywords:         []string{"code", "programming", "firmware", "arduino", "esp32", "embedded", "function", "void", "int", "python", "cpp"},
		Section:          "Code",
		FrontmatterKey:   "code",
		FileTypeKeywords: []string{"code", "programming", "firmware", "software", "implementation"},
	},
}

// classifyContentType scores text against every content type's keyword set
// and returns the type with the most raw keyword hits, or "" if nothing
// matched. Ties keep whichever type was scanned first in a stable order.
func classifyContentType(text string) string {
	lower := strings.ToLower(text)
	order := []string{"component", "protocol", "schematic", "specification", "architecture", "code"}

	best, bestScore := "", 0
	for _, name := range order {
		cfg := contentTypeConfigs[name]
		score := 0
		for _, kw := range cfg.Keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = name
		}
	}
	return best
}
