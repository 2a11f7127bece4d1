package org

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/sharedmemory"
)

// deriveInitialIntent strips a leading capture phrase off the user message
// and seeds a pending capture with the remainder as the title.
func deriveInitialIntent(message string) *sharedmemory.PendingProjectCapture {
	title := strings.TrimSpace(message)
	lower := strings.ToLower(title)
	for _, lead := range []string{"start project", "create project", "new project", "project:", "project "} {
		if strings.HasPrefix(lower, lead) {
			title = strings.TrimSpace(strings.TrimLeft(title[len(lead):], " -:–—"))
			break
		}
	}
	return &sharedmemory.PendingProjectCapture{Title: title, Tags: []string{"project"}}
}

// smartEnrich asks the LLM for a short description and up to 5 starter
// tasks when the pending capture is missing either.
func smartEnrich(ctx context.Context, deps Deps, pending *sharedmemory.PendingProjectCapture, message string) {
	if pending.Description != "" && len(pending.InitialTasks) > 0 {
		return
	}
	req := model.Request{
		System: "Extract a concise project description (1-2 sentences) and up to 5 concrete " +
			"starter tasks from the user message. Leave fields empty if insufficient detail exists.",
		Messages:    []model.Message{{Role: model.RoleUser, Content: "USER MESSAGE: " + message}},
		ModelClass:  model.ModelClassSmall,
		JSONSchema:  []byte(enrichSchema),
		Temperature: 0.2,
	}
	var out struct {
		Description  string   `json:"description"`
		InitialTasks []string `json:"initial_tasks"`
	}
	if err := deps.Gateway.GenerateJSON(ctx, deps.ProviderName, req, &out); err != nil {
		return
	}
	if out.Description != "" && pending.Description == "" {
		pending.Description = strings.TrimSpace(out.Description)
	}
	if len(out.InitialTasks) > 0 && len(pending.InitialTasks) == 0 {
		tasks := make([]string, 0, 5)
		for _, t := range out.InitialTasks {
			if t = strings.TrimSpace(t); t != "" {
				tasks = append(tasks, t)
			}
			if len(tasks) >= 5 {
				break
			}
		}
		pending.InitialTasks = tasks
	}
}

// computeMissingFields reports which required fields a pending capture still
// lacks before a preview can be produced.
func computeMissingFields(pending *sharedmemory.PendingProjectCapture) []string {
	var missing []string
	if pending.Description == "" {
		missing = append(missing, "description")
	}
	if len(pending.InitialTasks) == 0 {
		missing = append(missing, "initial_tasks")
	}
	return missing
}

func clarificationQuestion() string {
	return "Please reply with a short description (1-2 sentences), up to 5 starter tasks " +
		"(bulleted or comma-separated), and an optional target date as <YYYY-MM-DD Dow>."
}

var labeledLineRegexp = regexp.MustCompile(`(?i)^(description|desc|tasks):\s*(.*)$`)
var targetDateRegexp = regexp.MustCompile(`<\d{4}-\d{2}-\d{2}[^>]*>`)

// mergeUserDetailsIntoPending folds a follow-up message's Description:/
// Tasks: labels, bulleted lines, comma-separated fallback, and an org
// timestamp into the pending capture.
func mergeUserDetailsIntoPending(pending *sharedmemory.PendingProjectCapture, message string) {
	desc, tasks := parseLabeledFields(message)
	if desc != "" && pending.Description == "" {
		pending.Description = desc
	}
	if len(tasks) > 0 {
		pending.InitialTasks = dedupLimit(append(append([]string(nil), pending.InitialTasks...), tasks...), 5)
	}

	var plainTasks, descLines []string
	for _, raw := range strings.Split(message, "\n") {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "description:") || strings.HasPrefix(lower, "desc:") || strings.HasPrefix(lower, "tasks:") {
			continue
		}
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			plainTasks = append(plainTasks, strings.TrimSpace(line[2:]))
		} else if line != "" {
			descLines = append(descLines, line)
		}
	}

	if len(tasks) == 0 && len(plainTasks) == 0 && strings.Contains(message, ",") {
		parts := splitNonEmpty(message, ",")
		if len(parts) >= 2 {
			plainTasks = parts
			if len(plainTasks) > 5 {
				plainTasks = plainTasks[:5]
			}
			descLines = nil
		}
	}

	if len(descLines) > 0 && pending.Description == "" {
		pending.Description = strings.TrimSpace(strings.Join(descLines, " "))
	}
	if len(plainTasks) > 0 {
		pending.InitialTasks = dedupLimit(append(append([]string(nil), pending.InitialTasks...), plainTasks...), 5)
	}

	if m := targetDateRegexp.FindString(message); m != "" && pending.TargetDate == "" {
		pending.TargetDate = m
	}
}

// parseLabeledFields extracts Description:/Tasks: labeled sections from a
// message, tasks being semicolon- or line-delimited.
func parseLabeledFields(message string) (string, []string) {
	var description []string
	var tasks []string
	section := ""
	for _, raw := range strings.Split(message, "\n") {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "description:") || strings.HasPrefix(lower, "desc:") {
			section = "description"
			if rest := afterColon(line); rest != "" {
				description = append(description, rest)
			}
			continue
		}
		if strings.HasPrefix(lower, "tasks:") {
			section = "tasks"
			if rest := afterColon(line); rest != "" {
				if strings.Contains(rest, ";") {
					tasks = append(tasks, splitNonEmpty(rest, ";")...)
				} else {
					tasks = append(tasks, rest)
				}
			}
			continue
		}
		if line == "" {
			continue
		}
		switch section {
		case "description":
			description = append(description, line)
		case "tasks":
			if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
				tasks = append(tasks, strings.TrimSpace(line[2:]))
			} else {
				tasks = append(tasks, line)
			}
		}
	}
	return strings.TrimSpace(strings.Join(description, " ")), dedupLimit(tasks, 5)
}

func afterColon(line string) string {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dedupLimit(items []string, limit int) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// buildProjectBlockPreview renders the bit-precise org capture block: a
// top-level heading with a tag suffix, a PROPERTIES drawer, an optional
// SCHEDULED line, an optional description paragraph, and one "** TODO"
// line per starter task.
func buildProjectBlockPreview(pending *sharedmemory.PendingProjectCapture, now time.Time) string {
	title := strings.TrimSpace(pending.Title)
	if title == "" {
		title = "Untitled Project"
	}
	tags := pending.Tags
	if len(tags) == 0 {
		tags = []string{"project"}
	}
	tagSet := map[string]bool{}
	for _, t := range tags {
		if t = strings.Trim(t, ": "); t != "" {
			tagSet[t] = true
		}
	}
	sorted := make([]string, 0, len(tagSet))
	for t := range tagSet {
		sorted = append(sorted, t)
	}
	sort.Strings(sorted)
	tagSuffix := ":" + strings.Join(sorted, ":") + ":"

	var b strings.Builder
	b.WriteString("* " + title + " " + tagSuffix + "\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(":ID:       " + now.Format("20060102150405") + "\n")
	b.WriteString(":CREATED:  [" + now.Format("2006-01-02 Mon 15:04") + "]\n")
	b.WriteString(":END:\n")

	if td := strings.TrimSpace(pending.TargetDate); td != "" {
		b.WriteString("SCHEDULED: " + td + "\n")
	}
	if desc := strings.TrimSpace(pending.Description); desc != "" {
		b.WriteString(desc + "\n")
	}
	for _, t := range pending.InitialTasks {
		if t = strings.TrimSpace(t); t != "" {
			b.WriteString("** TODO " + t + "\n")
		}
	}
	return b.String()
}

func buildPreviewMessage(preview string) string {
	return "Here's the project preview. Shall I add it to inbox.org?\n\n" +
		"```org\n" + strings.TrimRight(preview, "\n") + "\n```\n" +
		"Reply 'yes' to proceed, or edit details (description, tasks, date)."
}

var confirmationWords = []string{"yes", "y", "ok", "okay", "proceed", "do it", "confirm"}
var cancellationWords = []string{"no", "cancel", "stop", "abort"}

func isConfirmation(message string) bool {
	return matchesReplyWords(message, confirmationWords)
}

func isCancellation(message string) bool {
	return matchesReplyWords(message, cancellationWords)
}

// matchesReplyWords reports whether message contains one of words as a whole
// word (or, for "do it", as a whole phrase), ignoring case and punctuation.
func matchesReplyWords(message string, words []string) bool {
	tokens := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	joined := " " + strings.Join(tokens, " ") + " "
	for _, w := range words {
		if strings.Contains(joined, " "+w+" ") {
			return true
		}
	}
	return false
}
