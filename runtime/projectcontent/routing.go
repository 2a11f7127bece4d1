package projectcontent

import (
	"strings"
)

// RouteContent classifies text and scores every candidate document against
// the matching content type's file reference, returning the content type
// and the best-scoring candidate (nil if nothing matched). Architecture
// content always routes to nil, the caller's signal to fall back to the
// main project plan document.
func RouteContent(text string, candidates []DocumentCandidate) (string, *RouteTarget) {
	contentType := classifyContentType(text)
	if contentType == "" {
		return "", nil
	}
	cfg := contentTypeConfigs[contentType]
	if cfg.FrontmatterKey == "" {
		// Architecture: always goes to the project plan.
		return contentType, nil
	}

	responseWords := wordSet(strings.ToLower(text))

	var best *RouteTarget
	var bestScore float64
	for _, c := range candidates {
		score, ok := scoreCandidate(c, cfg, responseWords)
		if !ok {
			continue
		}
		if best == nil || score > bestScore {
			bestScore = score
			target := &RouteTarget{
				DocumentID: c.DocumentID,
				Filename:   c.Filename,
				Section:    cfg.Section,
				MatchScore: score,
			}
			best = target
		}
	}
	return contentType, best
}

// scoreCandidate scores one document against a content type's file
// reference: a base score (boosted for referenced_context files), plus
// keyword overlap of the candidate's title/description against the
// content-type's file-type keywords, plus word overlap against the
// response text itself.
func scoreCandidate(c DocumentCandidate, cfg contentTypeConfig, responseWords map[string]bool) (float64, bool) {
	score := 1.0
	if c.FromReferenced {
		score += 2.0
	}

	titleLower := strings.ToLower(c.Title)
	descLower := strings.ToLower(c.Description)

	for _, kw := range cfg.FileTypeKeywords {
		if strings.Contains(titleLower, kw) {
			score += 0.5
		}
		if strings.Contains(descLower, kw) {
			score += 0.3
		}
	}

	titleWords := wordSet(titleLower)
	descWords := wordSet(descLower)

	score += overlapRatio(responseWords, titleWords) * 0.5
	score += overlapRatio(responseWords, descWords) * 0.3

	return score, true
}

func wordSet(s string) map[string]bool {
	out := map[string]bool{}
	for _, w := range strings.Fields(s) {
		out[w] = true
	}
	return out
}

func overlapRatio(a, b map[string]bool) float64 {
	if len(a) == 0 {
		return 0
	}
	overlap := 0
	for w := range a {
		if b[w] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(a))
}
