package transform

import (
	"github.com/kailas-cloud/cyync-lookup/internal/domain/details"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/record"
)

// Task statuses counted as active.
const (
	TaskActive     = "active"
	TaskInProgress = "in_progress"
)

// Task normalizes one task item.
func Task(it record.Item) details.TaskRecord {
	return details.TaskRecord{
		ID:          it.String("id", "taskId"),
		Title:       it.String("title", "name"),
		Type:        it.String("type", "taskType"),
		Status:      it.String("status"),
		Priority:    it.String("priority"),
		Assignee:    it.String("assignee", "assignedTo"),
		CreatedAt:   it.String("createdAt", "created"),
		UpdatedAt:   it.String("updatedAt", "modified"),
		WorkspaceID: it.WorkspaceID(),
		Raw:         it,
	}
}

// Tasks normalizes a task group.
func Tasks(items []record.Item) details.Bucket[details.TaskRecord, details.TaskSummary] {
	recs := make([]details.TaskRecord, 0, len(items))
	active := 0
	for _, it := range items {
		recs = append(recs, Task(it))
		// Nested status objects never count as active.
		if s, ok := it["status"].(string); ok && (s == TaskActive || s == TaskInProgress) {
			active++
		}
	}
	return details.Bucket[details.TaskRecord, details.TaskSummary]{
		Count: len(items),
		Items: recs,
		Summary: details.TaskSummary{
			TotalTasks:  len(items),
			ActiveTasks: active,
			TaskTypes:   distinct(items, "type", "taskType"),
		},
	}
}
