package transform

import (
	"time"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/details"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/record"
)

var (
	formCreatedAliases = []string{"createdAt", "created"}
	pageDateAliases    = []string{"createdAt", "created", "updatedAt", "modified"}
)

// Form normalizes one form item.
func Form(it record.Item) details.FormRecord {
	return details.FormRecord{
		ID:          it.String("id", "formId"),
		Title:       it.String("title", "name"),
		Type:        it.String("type", "formType"),
		Status:      it.String("status"),
		CreatedAt:   it.String(formCreatedAliases...),
		UpdatedAt:   it.String("updatedAt", "modified"),
		Author:      it.String("author", "createdBy"),
		WorkspaceID: it.WorkspaceID(),
		Raw:         it,
	}
}

// Forms normalizes a form group.
func Forms(items []record.Item, now time.Time) details.Bucket[details.FormRecord, details.FormSummary] {
	recs := make([]details.FormRecord, 0, len(items))
	for _, it := range items {
		recs = append(recs, Form(it))
	}
	return details.Bucket[details.FormRecord, details.FormSummary]{
		Count: len(items),
		Items: recs,
		Summary: details.FormSummary{
			TotalForms:  len(items),
			FormTypes:   distinct(items, "type", "formType"),
			RecentForms: countRecent(items, now, formCreatedAliases...),
		},
	}
}

// Page normalizes one page item.
func Page(it record.Item) details.PageRecord {
	return details.PageRecord{
		ID:          it.String("id", "pageId"),
		Title:       it.String("title", "name"),
		Type:        it.String("type", "pageType"),
		Status:      it.String("status"),
		CreatedAt:   it.String("createdAt", "created"),
		UpdatedAt:   it.String("updatedAt", "modified"),
		Author:      it.String("author", "createdBy"),
		WorkspaceID: it.WorkspaceID(),
		Raw:         it,
	}
}

// Pages normalizes a page group. Recency falls back to modification time.
func Pages(items []record.Item, now time.Time) details.Bucket[details.PageRecord, details.PageSummary] {
	recs := make([]details.PageRecord, 0, len(items))
	for _, it := range items {
		recs = append(recs, Page(it))
	}
	return details.Bucket[details.PageRecord, details.PageSummary]{
		Count: len(items),
		Items: recs,
		Summary: details.PageSummary{
			TotalPages:  len(items),
			PageTypes:   distinct(items, "type", "pageType"),
			RecentPages: countRecent(items, now, pageDateAliases...),
		},
	}
}
