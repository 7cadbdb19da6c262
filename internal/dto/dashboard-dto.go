package dto

// DocumentStatsDTO counts one document type across the roster by expiry
// status.
type DocumentStatsDTO struct {
	Valid    int `json:"valid"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
	None     int `json:"none"`
}

type GroupCountDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type DashboardDTO struct {
	TotalEmployees int                         `json:"total_employees"`
	Documents      map[string]DocumentStatsDTO `json:"documents"`
	TopCompanies   []GroupCountDTO             `json:"top_companies"`
	TopDepartments []GroupCountDTO             `json:"top_departments"`
	TopJobs        []GroupCountDTO             `json:"top_jobs"`
	Nationalities  []GroupCountDTO             `json:"nationalities"`
}
