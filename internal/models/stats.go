package models

// Stats aggregates the published catalog.
type Stats struct {
	TotalProjects int64 `json:"totalProjects"`
	TotalUsers    int64 `json:"totalUsers"`
	TotalViews    int64 `json:"totalViews"`
}
