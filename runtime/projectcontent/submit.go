package projectcontent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adamsih300u/orchestrator/runtime/sharedmemory"
	"github.com/adamsih300u/orchestrator/runtime/toolclient"
)

// isOpenInEditor reports whether the target document appears to be the
// user's active editor document. The wire schema carries no document_id on
// active_editor, so this matches on filename/canonical path instead of the
// id-based check an editor-integrated caller could make.
func isOpenInEditor(filename string, editor *sharedmemory.ActiveEditor) bool {
	if editor == nil || filename == "" {
		return false
	}
	return editor.Filename == filename || strings.HasSuffix(editor.CanonicalPath, filename)
}

// SubmitSectionUpdate applies ShouldUpdateExistingSection's decision for
// one document: replace the matched section in place (or fall through to
// append if no section was found), via an operations-based proposal when
// the document is open in the editor, else a direct operation apply with a
// full-content-replace fallback.
func SubmitSectionUpdate(ctx context.Context, deps Deps, editor *sharedmemory.ActiveEditor, documentID, filename, sectionName, newContent string) (EditOutcome, error) {
	existing, err := deps.Tools.GetDocumentContent(ctx, toolclient.GetDocumentContentRequest{DocumentID: documentID, UserID: deps.UserID})
	if err != nil || existing == nil {
		return EditOutcome{}, fmt.Errorf("read existing content for update: %w", err)
	}

	matches := findSection(existing.Content, sectionName)
	if len(matches) == 0 {
		return appendSection(ctx, deps, editor, documentID, filename, sectionName, newContent)
	}
	m := matches[0]

	var updatedSection string
	if isPlaceholderContent(m.Content) {
		updatedSection = m.Header + "\n\n" + newContent + "\n"
	} else {
		updatedSection = fmt.Sprintf("%s\n\n*Updated on %s*\n\n%s\n", m.Header, time.Now().Format("2006-01-02 15:04:05"), newContent)
	}

	op := toolclient.EditOperation{Op: "replace_range", Content: updatedSection, Anchor: m.Header}

	if isOpenInEditor(filename, editor) {
		resp, err := deps.Tools.ProposeDocumentEdit(ctx, toolclient.ProposeDocumentEditRequest{
			DocumentID:      documentID,
			EditType:        "operations",
			Operations:      []toolclient.EditOperation{op},
			AgentName:       deps.AgentName,
			Summary:         "Update " + sectionName + " section with revised information",
			RequiresPreview: true,
		})
		if err != nil || resp == nil || !resp.Success {
			return EditOutcome{}, fmt.Errorf("propose section update: %w", err)
		}
		return EditOutcome{Filename: filename, Section: sectionName, Action: "proposed"}, nil
	}

	applyResp, err := deps.Tools.ApplyOperationsDirectly(ctx, toolclient.ApplyOperationsDirectlyRequest{
		DocumentID: documentID,
		Operations: []toolclient.EditOperation{op},
		UserID:     deps.UserID,
		AgentName:  deps.AgentName,
	})
	if err == nil && applyResp != nil && applyResp.Success {
		return EditOutcome{Filename: filename, Section: sectionName, Action: "updated"}, nil
	}

	// Granular operation apply failed or is unauthorized; fall back to a
	// full-content replace of the located section span.
	newDocContent := existing.Content[:m.Start] + updatedSection + existing.Content[m.End:]
	updateResp, err := deps.Tools.UpdateDocumentContent(ctx, toolclient.UpdateDocumentContentRequest{
		DocumentID: documentID, Content: newDocContent, UserID: deps.UserID, Append: false,
	})
	if err != nil || updateResp == nil || !updateResp.Success {
		return EditOutcome{}, fmt.Errorf("fallback full-content section update failed: %w", err)
	}
	return EditOutcome{Filename: filename, Section: sectionName, Action: "updated"}, nil
}

// appendSection adds a new, timestamped section to the end of a document.
// When applied directly (file closed), it honors the frontmatter
// preservation invariant: read-append-reparse-diff-restore.
func appendSection(ctx context.Context, deps Deps, editor *sharedmemory.ActiveEditor, documentID, filename, sectionName, content string) (EditOutcome, error) {
	addition := fmt.Sprintf("\n\n## %s\n\n*Added on %s*\n\n%s\n", sectionName, time.Now().Format("2006-01-02 15:04:05"), content)

	if isOpenInEditor(filename, editor) {
		resp, err := deps.Tools.ProposeDocumentEdit(ctx, toolclient.ProposeDocumentEditRequest{
			DocumentID:      documentID,
			EditType:        "content",
			ContentEdit:     addition,
			AgentName:       deps.AgentName,
			Summary:         "Add new " + sectionName + " section to document",
			RequiresPreview: false,
		})
		if err != nil || resp == nil || !resp.Success {
			return EditOutcome{}, fmt.Errorf("propose section append: %w", err)
		}
		return EditOutcome{Filename: filename, Section: sectionName, Action: "proposed"}, nil
	}

	return appendPreservingFrontmatter(ctx, deps, documentID, filename, sectionName, addition)
}

// appendPreservingFrontmatter implements the frontmatter preservation
// invariant: read pre-append content and parse frontmatter, append, then
// re-parse and diff field sets, restoring any field update_document_content
// dropped along the way.
func appendPreservingFrontmatter(ctx context.Context, deps Deps, documentID, filename, sectionName, addition string) (EditOutcome, error) {
	before, err := deps.Tools.GetDocumentContent(ctx, toolclient.GetDocumentContentRequest{DocumentID: documentID, UserID: deps.UserID})
	var beforeFields map[string]any
	if err == nil && before != nil {
		beforeFields, _ = ParseFrontmatter(before.Content)
	}

	updateResp, err := deps.Tools.UpdateDocumentContent(ctx, toolclient.UpdateDocumentContentRequest{
		DocumentID: documentID, Content: addition, UserID: deps.UserID, Append: true,
	})
	if err != nil || updateResp == nil || !updateResp.Success {
		return EditOutcome{}, fmt.Errorf("append section: %w", err)
	}

	if len(beforeFields) == 0 {
		return EditOutcome{Filename: filename, Section: sectionName, Action: "appended"}, nil
	}

	after, err := deps.Tools.GetDocumentContent(ctx, toolclient.GetDocumentContentRequest{DocumentID: documentID, UserID: deps.UserID})
	if err != nil || after == nil {
		return EditOutcome{Filename: filename, Section: sectionName, Action: "appended"}, nil
	}
	afterFields, afterBody := ParseFrontmatter(after.Content)
	lost := lostFields(beforeFields, afterFields)
	if len(lost) == 0 {
		return EditOutcome{Filename: filename, Section: sectionName, Action: "appended"}, nil
	}

	for _, key := range lost {
		afterFields[key] = beforeFields[key]
	}
	restored, err := RestoreFrontmatter(afterFields, afterBody)
	if err != nil {
		return EditOutcome{Filename: filename, Section: sectionName, Action: "appended"}, nil
	}
	if _, err := deps.Tools.UpdateDocumentContent(ctx, toolclient.UpdateDocumentContentRequest{
		DocumentID: documentID, Content: restored, UserID: deps.UserID, Append: false,
	}); err != nil {
		return EditOutcome{}, fmt.Errorf("restore frontmatter after lossy append: %w", err)
	}
	return EditOutcome{Filename: filename, Section: sectionName, Action: "appended"}, nil
}
