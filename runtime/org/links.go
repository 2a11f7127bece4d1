package org

import (
	"regexp"
	"strings"
)

var linkPattern = regexp.MustCompile(`\[\[file:([^\]]+?)(?:\]\[([^\]]+?)\])?\]\]`)

// detectLinks finds every org-mode file link in content, splitting a
// "path::*Heading" form into FilePath and Heading.
func detectLinks(content string) []LinkRef {
	if content == "" {
		return nil
	}
	matches := linkPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}
	links := make([]LinkRef, 0, len(matches))
	for _, m := range matches {
		filePath := content[m[2]:m[3]]
		description := filePath
		if m[4] >= 0 {
			description = content[m[4]:m[5]]
		}
		heading := ""
		if idx := strings.Index(filePath, "::"); idx >= 0 {
			heading = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(filePath[idx+2:]), "*"))
			filePath = filePath[:idx]
		}
		links = append(links, LinkRef{
			FilePath:    strings.TrimSpace(filePath),
			Description: strings.TrimSpace(description),
			Heading:     heading,
			Position:    m[0],
			EndPosition: m[1],
		})
	}
	return links
}

var headingLineRegexp = regexp.MustCompile(`^(\*+)\s+(.+)$`)

type heading struct {
	Text  string
	Level int
	Start int
	End   int
}

// findHeadingAtCursor returns the org heading whose subtree contains
// cursorOffset, with the subtree's end boundary (the next heading of equal
// or shallower level, or end of content).
func findHeadingAtCursor(content string, cursorOffset int) *heading {
	if cursorOffset < 0 || cursorOffset >= len(content) {
		return nil
	}
	lines := strings.Split(content, "\n")
	pos := 0
	var current *heading
	for i, line := range lines {
		lineStart := pos
		lineEnd := pos + len(line)
		if m := headingLineRegexp.FindStringSubmatch(line); m != nil {
			current = &heading{Text: strings.TrimSpace(m[2]), Level: len(m[1]), Start: lineStart}
		}
		if lineStart <= cursorOffset && cursorOffset <= lineEnd {
			if current == nil {
				return nil
			}
			end := len(content)
			runningEnd := lineEnd + 1
			for j := i + 1; j < len(lines); j++ {
				runningEnd += len(lines[j]) + 1
				if m := headingLineRegexp.FindStringSubmatch(lines[j]); m != nil {
					if len(m[1]) <= current.Level {
						end = runningEnd - len(lines[j]) - 1
						break
					}
				}
			}
			current.End = end
			return current
		}
		pos = lineEnd + 1
	}
	return nil
}

var projectPhrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:for|in|regarding|about|with|on)\s+(?:my|the|this|that)\s+([^,.?!]+?)(?:\s+project|\s+build|\s+renovation|\s+plan)`),
	regexp.MustCompile(`(?i)(?:my|the|this|that)\s+([^,.?!]+?)\s+(?:project|build|renovation|plan)`),
	regexp.MustCompile(`(?i)project[:\s]+([^,.?!]+?)(?:\s|$)`),
}

// extractProjectNamePhrases pulls candidate project-name phrases out of the
// user's query (e.g. "for my plumbing project" → "plumbing").
func extractProjectNamePhrases(query string) []string {
	var out []string
	for _, pat := range projectPhrasePatterns {
		for _, m := range pat.FindAllStringSubmatch(query, -1) {
			name := strings.TrimSpace(m[1])
			if len(name) > 2 {
				out = append(out, name)
			}
		}
	}
	return out
}

// filterLinksByContext applies the context-aware filtering priority: links
// in the cursor's heading subtree, else links in headings matching a
// project-name phrase from the query, else every link.
func filterLinksByContext(links []LinkRef, content string, cursorOffset int, query string) []LinkRef {
	if len(links) == 0 {
		return nil
	}

	if h := findHeadingAtCursor(content, cursorOffset); h != nil {
		var filtered []LinkRef
		for _, l := range links {
			if h.Start <= l.Position && l.Position <= h.End {
				l.ContextReason = "cursor_in_heading_" + trim(h.Text, 30)
				filtered = append(filtered, l)
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
	}

	if names := extractProjectNamePhrases(query); len(names) > 0 {
		var filtered []LinkRef
		lines := strings.Split(content, "\n")
		pos := 0
		var subtrees []heading
		for i, line := range lines {
			lineStart := pos
			if m := headingLineRegexp.FindStringSubmatch(line); m != nil {
				text := strings.ToLower(strings.TrimSpace(m[2]))
				for _, name := range names {
					nl := strings.ToLower(name)
					if strings.Contains(text, nl) || strings.Contains(nl, text) {
						end := len(content)
						runningEnd := lineStart + len(line) + 1
						for j := i + 1; j < len(lines); j++ {
							if nm := headingLineRegexp.FindStringSubmatch(lines[j]); nm != nil {
								if len(nm[1]) <= len(m[1]) {
									end = runningEnd - 1
									break
								}
							}
							runningEnd += len(lines[j]) + 1
						}
						subtrees = append(subtrees, heading{Text: m[2], Level: len(m[1]), Start: lineStart, End: end})
						break
					}
				}
			}
			pos += len(line) + 1
		}
		for _, sub := range subtrees {
			for _, l := range links {
				if sub.Start <= l.Position && l.Position <= sub.End {
					l.ContextReason = "query_matches_heading_" + trim(sub.Text, 30)
					filtered = append(filtered, l)
				}
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
	}

	out := make([]LinkRef, len(links))
	for i, l := range links {
		l.ContextReason = "no_context_available"
		out[i] = l
	}
	return out
}
