package details

import "github.com/kailas-cloud/cyync-lookup/internal/domain/record"

// AssetRecord is a normalized asset (device).
type AssetRecord struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name,omitempty"`
	IPAddress   string      `json:"ipAddress,omitempty"`
	MACAddress  string      `json:"macAddress,omitempty"`
	RiskScore   any         `json:"riskScore,omitempty"`
	LastSeen    string      `json:"lastSeen,omitempty"`
	Status      string      `json:"status"`
	WorkspaceID string      `json:"workspaceId,omitempty"`
	Raw         record.Item `json:"_raw"`
}

// AssetSummary holds asset statistics.
type AssetSummary struct {
	TotalAssets   int     `json:"totalAssets"`
	AvgRiskScore  float64 `json:"avgRiskScore"`
	HighRiskCount int     `json:"highRiskCount"`
}

// FormRecord is a normalized form.
type FormRecord struct {
	ID          string      `json:"id,omitempty"`
	Title       string      `json:"title,omitempty"`
	Type        string      `json:"type,omitempty"`
	Status      string      `json:"status,omitempty"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	UpdatedAt   string      `json:"updatedAt,omitempty"`
	Author      string      `json:"author,omitempty"`
	WorkspaceID string      `json:"workspaceId,omitempty"`
	Raw         record.Item `json:"_raw"`
}

// FormSummary holds form statistics.
type FormSummary struct {
	TotalForms  int      `json:"totalForms"`
	FormTypes   []string `json:"formTypes"`
	RecentForms int      `json:"recentForms"`
}

// PageRecord is a normalized page.
type PageRecord struct {
	ID          string      `json:"id,omitempty"`
	Title       string      `json:"title,omitempty"`
	Type        string      `json:"type,omitempty"`
	Status      string      `json:"status,omitempty"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	UpdatedAt   string      `json:"updatedAt,omitempty"`
	Author      string      `json:"author,omitempty"`
	WorkspaceID string      `json:"workspaceId,omitempty"`
	Raw         record.Item `json:"_raw"`
}

// PageSummary holds page statistics.
type PageSummary struct {
	TotalPages  int      `json:"totalPages"`
	PageTypes   []string `json:"pageTypes"`
	RecentPages int      `json:"recentPages"`
}

// TaskRecord is a normalized task.
type TaskRecord struct {
	ID          string      `json:"id,omitempty"`
	Title       string      `json:"title,omitempty"`
	Type        string      `json:"type,omitempty"`
	Status      string      `json:"status,omitempty"`
	Priority    string      `json:"priority,omitempty"`
	Assignee    string      `json:"assignee,omitempty"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	UpdatedAt   string      `json:"updatedAt,omitempty"`
	WorkspaceID string      `json:"workspaceId,omitempty"`
	Raw         record.Item `json:"_raw"`
}

// TaskSummary holds task statistics.
type TaskSummary struct {
	TotalTasks  int      `json:"totalTasks"`
	ActiveTasks int      `json:"activeTasks"`
	TaskTypes   []string `json:"taskTypes"`
}

// GenericRecord is the fallback normalization for unregistered types.
type GenericRecord struct {
	ID   string      `json:"id,omitempty"`
	Name string      `json:"name,omitempty"`
	Raw  record.Item `json:"_raw"`
}

// GenericSummary holds fallback statistics.
type GenericSummary struct {
	Total int `json:"total"`
}
