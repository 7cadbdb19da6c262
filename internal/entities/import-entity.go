package entities

import "github.com/google/uuid"

// ImportRowStatus is the lifecycle of one spreadsheet row during bulk import.
type ImportRowStatus string

const (
	ImportPending ImportRowStatus = "pending"
	ImportSuccess ImportRowStatus = "success"
	ImportError   ImportRowStatus = "error"
	ImportWarning ImportRowStatus = "warning"
)

// ImportRow is transient: produced by the parse phase, mutated by the commit
// phase, never persisted. Record always carries the best-effort resolved
// values even when the row is flagged error, so the preview can show partial
// progress.
type ImportRow struct {
	Number   int             `json:"row"`
	Raw      map[string]string `json:"raw,omitempty"`
	Record   Employee        `json:"record"`
	Status   ImportRowStatus `json:"status"`
	Messages []string        `json:"messages,omitempty"`

	// Unresolved inputs kept for display and quick-add prefill.
	CompanyInput    string `json:"company_input,omitempty"`
	DepartmentInput string `json:"department_input,omitempty"`
	JobInput        string `json:"job_input,omitempty"`

	// EmployeeID is set on successful commit.
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
}

// Failed reports whether the row accumulated any parse-phase error.
func (r *ImportRow) Failed() bool { return r.Status == ImportError }

// AddError appends a message and flags the row; errors accumulate, they do
// not short-circuit the remaining checks.
func (r *ImportRow) AddError(msg string) {
	r.Messages = append(r.Messages, msg)
	r.Status = ImportError
}
