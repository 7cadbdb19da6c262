package listeners

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hr-system/internal/entities"
	"hr-system/internal/events"
	"hr-system/pkg/types"
)

type fakeAuditRepo struct {
	entries []entities.ActivityLog
}

func (f *fakeAuditRepo) GetActivityLog(ctx context.Context, filter types.Filter) ([]entities.ActivityLog, uint64, error) {
	return f.entries, uint64(len(f.entries)), nil
}

func (f *fakeAuditRepo) AppendActivityLog(ctx context.Context, entry entities.ActivityLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func auditEmployee() entities.Employee {
	strp := func(v string) *string { return &v }
	passportExpiry := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return entities.Employee{
		ID:             uuid.New(),
		EmployeeNo:     "EMP001",
		NameEN:         "Ahmed Hassan",
		NameAR:         "أحمد حسن",
		Nationality:    strp("Egyptian"),
		PassportNo:     strp("A1234567"),
		PassportExpiry: &passportExpiry,
		Email:          strp("ahmed@example.com"),
	}
}

func decodeValues(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var values map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &values))
	return values
}

func TestCreateEventSnapshotsNewValues(t *testing.T) {
	repo := &fakeAuditRepo{}
	listener := NewAuditListener(repo, zap.NewNop())
	employee := auditEmployee()
	userID := uuid.New()

	err := listener.handleEvent(context.Background(), events.EmployeeCreatedEvent{
		Employee: employee,
		Actor:    events.Actor{UserID: &userID, Email: "hr@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, repo.entries, 1)

	entry := repo.entries[0]
	assert.Equal(t, entities.AuditActionCreate, entry.Action)
	assert.Equal(t, employee.ID, entry.EmployeeID)
	assert.Equal(t, "EMP001", entry.EmployeeNo.String)
	assert.Equal(t, "hr@example.com", entry.UserEmail.String)
	assert.False(t, entry.OldValues.Valid)
	require.True(t, entry.NewValues.Valid)

	values := decodeValues(t, entry.NewValues.JSON)
	assert.Equal(t, "Ahmed Hassan", values["name_en"])
	assert.Equal(t, "2026-10-01", values["passport_expiry"], "dates are logged as plain days")
	_, hasCompany := values["company_id"]
	assert.False(t, hasCompany, "unset fields stay out of the snapshot")
}

func TestUpdateEventLogsOnlyChangedFields(t *testing.T) {
	repo := &fakeAuditRepo{}
	listener := NewAuditListener(repo, zap.NewNop())

	before := auditEmployee()
	after := before
	newExpiry := time.Date(2027, 4, 15, 0, 0, 0, 0, time.UTC)
	after.PassportExpiry = &newExpiry
	phone := "+971501234567"
	after.Phone = &phone

	err := listener.handleEvent(context.Background(), events.EmployeeUpdatedEvent{
		Before: before,
		After:  after,
		Actor:  events.Actor{Email: "hr@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, repo.entries, 1)

	entry := repo.entries[0]
	assert.Equal(t, entities.AuditActionUpdate, entry.Action)

	oldValues := decodeValues(t, entry.OldValues.JSON)
	newValues := decodeValues(t, entry.NewValues.JSON)
	assert.Len(t, newValues, 2)
	assert.Equal(t, "2026-10-01", oldValues["passport_expiry"])
	assert.Equal(t, "2027-04-15", newValues["passport_expiry"])
	assert.Nil(t, oldValues["phone"], "field added in the update has no old value")
	assert.Equal(t, phone, newValues["phone"])
	_, touched := newValues["name_en"]
	assert.False(t, touched, "unchanged fields are not logged")
}

func TestUpdateEventWithNoChangesWritesNothing(t *testing.T) {
	repo := &fakeAuditRepo{}
	listener := NewAuditListener(repo, zap.NewNop())
	employee := auditEmployee()

	err := listener.handleEvent(context.Background(), events.EmployeeUpdatedEvent{
		Before: employee,
		After:  employee,
		Actor:  events.Actor{Email: "hr@example.com"},
	})
	require.NoError(t, err)
	assert.Empty(t, repo.entries)
}

func TestUpdateEventLogsClearedField(t *testing.T) {
	repo := &fakeAuditRepo{}
	listener := NewAuditListener(repo, zap.NewNop())

	before := auditEmployee()
	after := before
	after.Email = nil

	err := listener.handleEvent(context.Background(), events.EmployeeUpdatedEvent{
		Before: before,
		After:  after,
		Actor:  events.Actor{},
	})
	require.NoError(t, err)
	require.Len(t, repo.entries, 1)

	oldValues := decodeValues(t, repo.entries[0].OldValues.JSON)
	newValues := decodeValues(t, repo.entries[0].NewValues.JSON)
	assert.Equal(t, "ahmed@example.com", oldValues["email"])
	_, present := newValues["email"]
	assert.True(t, present)
	assert.Nil(t, newValues["email"])
}

func TestDeleteEventKeepsIdentityOnEntry(t *testing.T) {
	repo := &fakeAuditRepo{}
	listener := NewAuditListener(repo, zap.NewNop())
	employee := auditEmployee()

	err := listener.handleEvent(context.Background(), events.EmployeeDeletedEvent{
		Employee: employee,
		Actor:    events.Actor{Email: "hr@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, repo.entries, 1)

	entry := repo.entries[0]
	assert.Equal(t, entities.AuditActionDelete, entry.Action)
	assert.Equal(t, "EMP001", entry.EmployeeNo.String)
	assert.Equal(t, "أحمد حسن", entry.NameAR.String)
	require.True(t, entry.OldValues.Valid)
	assert.False(t, entry.NewValues.Valid)
}
