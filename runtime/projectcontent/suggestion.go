package projectcontent

import (
	"fmt"
	"strings"
)

var topicIndicatorWords = []string{
	"specification", "architecture", "protocol", "schematic", "component",
	"requirement", "design", "interface", "implementation", "configuration",
}

// SuggestNewFile decides whether routed content is substantial and distinct
// enough to warrant proposing a brand new project file rather than folding
// it into an existing one. It stays conservative: any existing candidate
// that already scored above 0.2 for this content type is treated as a good
// enough home, and no suggestion is made.
func SuggestNewFile(contentType, content string, candidates []DocumentCandidate, bestExistingScore float64) *NewFileSuggestion {
	if bestExistingScore > 0.2 {
		return nil
	}
	if len(strings.TrimSpace(content)) <= 1500 {
		return nil
	}

	lower := strings.ToLower(content)
	hasTopicIndicator := containsAny(lower, topicIndicatorWords...)
	if !hasTopicIndicator {
		return nil
	}

	names := capitalizedNamesSet(content)
	if len(names) < 2 {
		return nil
	}

	cfg, ok := contentTypeConfigs[contentType]
	if !ok || cfg.FrontmatterKey == "" {
		return nil
	}

	title := deriveTitleFromNames(names, contentType)
	filename := slugify(title) + ".org"

	return &NewFileSuggestion{
		SuggestedFilename:    filename,
		SuggestedTitle:       title,
		SuggestedDescription: clampString(fmt.Sprintf("Dedicated %s documentation split out from the conversation: %s", contentType, strings.TrimSpace(content)), 200),
		ContentType:          contentType,
		FileType:             contentType,
		FrontmatterKey:       cfg.FrontmatterKey,
		Section:              cfg.Section,
		SuggestionMessage: fmt.Sprintf(
			"This looks substantial enough to deserve its own file. Want me to create `%s` for it?",
			filename,
		),
	}
}

func deriveTitleFromNames(names map[string]bool, contentType string) string {
	var first string
	for n := range names {
		if first == "" || n < first {
			first = n
		}
	}
	if first == "" {
		return titleCase(contentType)
	}
	return first + " " + titleCase(contentType)
}

func slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	prevDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
