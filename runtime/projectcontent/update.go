package projectcontent

import (
	"regexp"
	"strings"
)

var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)content will be added`),
	regexp.MustCompile(`(?is)<!--\s*content will be added`),
	regexp.MustCompile(`(?is)todo:\s*add`),
	regexp.MustCompile(`(?is)placeholder`),
	regexp.MustCompile(`(?is)to be added`),
	regexp.MustCompile(`(?is)will be added here`),
	regexp.MustCompile(`(?is)coming soon`),
	regexp.MustCompile(`(?im)tbd\s*$`),
	regexp.MustCompile(`(?im)^<!--\s*$`),
	regexp.MustCompile(`(?im)^#+\s*$`),
}

var headerLinePattern = regexp.MustCompile(`(?m)^#+\s+.*$`)
var htmlCommentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
var collapseWhitespacePattern = regexp.MustCompile(`\s+`)

// isPlaceholderContent reports whether a section's content is a stand-in
// that should always be replaced rather than preserved.
func isPlaceholderContent(content string) bool {
	if len(strings.TrimSpace(content)) < 50 {
		return true
	}
	lower := strings.ToLower(content)
	for _, p := range placeholderPatterns {
		if p.MatchString(lower) {
			return true
		}
	}

	cleaned := headerLinePattern.ReplaceAllString(content, "")
	cleaned = htmlCommentPattern.ReplaceAllString(cleaned, "")
	cleaned = collapseWhitespacePattern.ReplaceAllString(cleaned, " ")
	return len(strings.TrimSpace(cleaned)) < 30
}

var allHeadersPattern = regexp.MustCompile(`(?m)^(#{1,3})\s+(.+)$`)

var replaceSignalWords = []string{
	"update", "replace", "revise", "modify", "improve", "expand", "enhance", "changed", "switching", "instead of",
}

var capitalizedNamePattern = regexp.MustCompile(`\b([A-Z][a-zA-Z0-9]+(?:\s+\d+\.?\d*)?)\b`)

// sectionMatch is one located section header and its content span.
type sectionMatch struct {
	Header  string
	Content string
	Start   int
	End     int
	Fuzzy   bool
}

// findSection locates a section by exact header match (#, ##, or ###
// followed by the section name) and, failing that, by fuzzy match against
// every header whose word set overlaps the target name by more than 50%.
func findSection(content, sectionName string) []sectionMatch {
	exactHeaders := []string{
		"## " + sectionName,
		"### " + sectionName,
		"# " + sectionName,
	}
	var matches []sectionMatch
	for _, header := range exactHeaders {
		loc := regexp.MustCompile(`(?mi)^` + regexp.QuoteMeta(header) + `[ \t]*\r?$`).FindStringIndex(content)
		if loc == nil {
			continue
		}
		idx := loc[0]
		start, end := sectionSpan(content, idx, len(header))
		matches = append(matches, sectionMatch{Header: header, Content: content[idx:end], Start: start, End: end})
	}
	if len(matches) > 0 {
		return matches
	}

	sectionWords := wordSet(strings.ToLower(sectionName))
	for _, m := range allHeadersPattern.FindAllStringSubmatchIndex(content, -1) {
		level := content[m[2]:m[3]]
		headerText := content[m[4]:m[5]]
		headerWords := wordSet(strings.ToLower(headerText))
		denom := len(sectionWords)
		if len(headerWords) > denom {
			denom = len(headerWords)
		}
		if denom == 0 {
			continue
		}
		overlap := float64(intersectionCount(sectionWords, headerWords)) / float64(denom)
		if overlap <= 0.5 {
			continue
		}
		fullHeader := level + " " + headerText
		start, end := sectionSpan(content, m[0], len(fullHeader))
		matches = append(matches, sectionMatch{Header: fullHeader, Content: content[start:end], Start: start, End: end, Fuzzy: true})
	}
	return matches
}

// sectionSpan finds where a section starting at headerStart (length
// headerLen) ends: the start of the next header of any level, or the end
// of the document.
func sectionSpan(content string, headerStart, headerLen int) (int, int) {
	rest := content[headerStart+headerLen:]
	end := len(content)
	for _, m := range nextHeaderPattern.FindAllStringIndex(rest, -1) {
		end = headerStart + headerLen + m[0]
		break
	}
	return headerStart, end
}

var nextHeaderPattern = regexp.MustCompile(`(?m)^#{1,3}\s+`)

func intersectionCount(a, b map[string]bool) int {
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}

// ShouldUpdateExistingSection decides between updating a matched section in
// place and appending a new one, per the matched-section evaluation order:
// placeholder content always updates; otherwise exact name match, >15%
// keyword overlap, a short existing section, much longer new content,
// explicit replace language, a fuzzy header match, or a majority change in
// capitalized component names each trigger an update.
func ShouldUpdateExistingSection(existingContent, sectionName, newContent string) bool {
	matches := findSection(existingContent, sectionName)
	for _, m := range matches {
		if isPlaceholderContent(m.Content) {
			return true
		}

		existingWords := wordSet(strings.ToLower(m.Content))
		newWords := wordSet(strings.ToLower(newContent))
		denom := len(newWords)
		if denom == 0 {
			denom = 1
		}
		overlap := float64(intersectionCount(existingWords, newWords)) / float64(denom)

		switch {
		case !m.Fuzzy && strings.EqualFold(strings.TrimLeft(m.Header, "# "), sectionName):
			return true
		case overlap > 0.15:
			return true
		case len(strings.TrimSpace(m.Content)) < 200:
			return true
		case len(newContent) > int(float64(len(m.Content))*1.2):
			return true
		case containsAny(strings.ToLower(newContent), replaceSignalWords...):
			return true
		case m.Fuzzy:
			return true
		}

		existingNames := capitalizedNamesSet(m.Content)
		newNames := capitalizedNamesSet(newContent)
		if len(existingNames) > 0 && len(newNames) > 0 && !sameSet(existingNames, newNames) {
			union := unionCount(existingNames, newNames)
			if union > 0 {
				overlapFrac := float64(intersectionCount(existingNames, newNames)) / float64(union)
				if overlapFrac < 0.5 {
					return true
				}
			}
		}
	}
	return false
}

func capitalizedNamesSet(s string) map[string]bool {
	out := map[string]bool{}
	for _, m := range capitalizedNamePattern.FindAllString(s, -1) {
		out[m] = true
	}
	return out
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func unionCount(a, b map[string]bool) int {
	n := len(a)
	for k := range b {
		if !a[k] {
			n++
		}
	}
	return n
}
