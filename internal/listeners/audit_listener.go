package listeners

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"hr-system/internal/entities"
	"hr-system/internal/events"
	"hr-system/internal/repositories"
	"hr-system/pkg/eventbus"
)

// AuditListener turns employee mutation events into append-only activity
// log rows. Employee number and names are denormalized into the row so the
// trail stays readable after the employee is deleted.
type AuditListener struct {
	auditRepo repositories.AuditRepositoryInterface
	logger    *zap.Logger
}

func NewAuditListener(auditRepo repositories.AuditRepositoryInterface, logger *zap.Logger) *AuditListener {
	return &AuditListener{auditRepo: auditRepo, logger: logger}
}

func (l *AuditListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.EmployeeCreatedName, l.handleEvent)
	bus.Subscribe(events.EmployeeUpdatedName, l.handleEvent)
	bus.Subscribe(events.EmployeeDeletedName, l.handleEvent)
}

func (l *AuditListener) handleEvent(ctx context.Context, event eventbus.Event) error {
	var entry entities.ActivityLog

	switch e := event.(type) {
	case events.EmployeeCreatedEvent:
		entry = baseEntry(e.Employee, entities.AuditActionCreate, e.Actor)
		entry.NewValues = marshalValues(snapshot(e.Employee))
	case events.EmployeeUpdatedEvent:
		oldValues, newValues := diff(e.Before, e.After)
		if len(newValues) == 0 {
			return nil
		}
		entry = baseEntry(e.After, entities.AuditActionUpdate, e.Actor)
		entry.OldValues = marshalValues(oldValues)
		entry.NewValues = marshalValues(newValues)
	case events.EmployeeDeletedEvent:
		entry = baseEntry(e.Employee, entities.AuditActionDelete, e.Actor)
		entry.OldValues = marshalValues(snapshot(e.Employee))
	default:
		return fmt.Errorf("unexpected event %q", event.Name())
	}

	if err := l.auditRepo.AppendActivityLog(ctx, entry); err != nil {
		l.logger.Error("failed to append activity log",
			zap.String("action", entry.Action),
			zap.String("employee_id", entry.EmployeeID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func baseEntry(e entities.Employee, action string, actor events.Actor) entities.ActivityLog {
	entry := entities.ActivityLog{
		EmployeeID: e.ID,
		Action:     action,
		EmployeeNo: null.StringFrom(e.EmployeeNo),
		NameEN:     null.StringFrom(e.NameEN),
		NameAR:     null.StringFrom(e.NameAR),
		UserID:     actor.UserID,
	}
	if actor.Email != "" {
		entry.UserEmail = null.StringFrom(actor.Email)
	}
	return entry
}

// snapshot flattens the audited fields of an employee into a JSON-ready map.
func snapshot(e entities.Employee) map[string]interface{} {
	values := map[string]interface{}{
		"employee_no": e.EmployeeNo,
		"name_en":     e.NameEN,
		"name_ar":     e.NameAR,
	}
	putString := func(key string, v *string) {
		if v != nil {
			values[key] = *v
		}
	}
	putDate := func(key string, v *time.Time) {
		if v != nil {
			values[key] = v.Format("2006-01-02")
		}
	}
	putString("nationality", e.Nationality)
	if e.CompanyID != nil {
		values["company_id"] = e.CompanyID.String()
	}
	if e.DepartmentID != nil {
		values["department_id"] = e.DepartmentID.String()
	}
	if e.JobID != nil {
		values["job_id"] = e.JobID.String()
	}
	putString("passport_no", e.PassportNo)
	putDate("passport_expiry", e.PassportExpiry)
	putString("card_no", e.CardNo)
	putDate("card_expiry", e.CardExpiry)
	putString("emirates_id", e.EmiratesID)
	putDate("emirates_id_expiry", e.EmiratesIDExpiry)
	putString("residence_no", e.ResidenceNo)
	putDate("residence_expiry", e.ResidenceExpiry)
	putString("email", e.Email)
	putString("phone", e.Phone)
	return values
}

// diff returns only the fields that changed between the two snapshots, as
// old-value and new-value maps keyed by column name.
func diff(before, after entities.Employee) (map[string]interface{}, map[string]interface{}) {
	oldSnap, newSnap := snapshot(before), snapshot(after)
	oldValues := map[string]interface{}{}
	newValues := map[string]interface{}{}

	for key, newVal := range newSnap {
		oldVal, existed := oldSnap[key]
		if !existed || oldVal != newVal {
			if existed {
				oldValues[key] = oldVal
			} else {
				oldValues[key] = nil
			}
			newValues[key] = newVal
		}
	}
	for key, oldVal := range oldSnap {
		if _, still := newSnap[key]; !still {
			oldValues[key] = oldVal
			newValues[key] = nil
		}
	}
	return oldValues, newValues
}

func marshalValues(values map[string]interface{}) null.JSON {
	if len(values) == 0 {
		return null.JSON{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return null.JSON{}
	}
	return null.JSONFrom(raw)
}
