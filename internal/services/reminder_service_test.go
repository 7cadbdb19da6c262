package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hr-system/internal/entities"
	"hr-system/pkg/config"
	"hr-system/pkg/types"
)

type fakeReminderRepo struct {
	rows   []entities.Reminder
	failOn error // returned by CreateReminder when set
}

func (f *fakeReminderRepo) GetReminders(ctx context.Context, filter types.Filter) ([]entities.Reminder, uint64, error) {
	return f.rows, uint64(len(f.rows)), nil
}

func (f *fakeReminderRepo) CreateReminder(ctx context.Context, reminder entities.Reminder) (uuid.UUID, error) {
	if f.failOn != nil {
		return uuid.Nil, f.failOn
	}
	reminder.ID = uuid.New()
	f.rows = append(f.rows, reminder)
	return reminder.ID, nil
}

func (f *fakeReminderRepo) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	return f.setStatus(id, entities.ReminderSent)
}

func (f *fakeReminderRepo) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return f.setStatus(id, entities.ReminderFailed)
}

func (f *fakeReminderRepo) setStatus(id uuid.UUID, status entities.ReminderStatus) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeReminderRepo) WasReminded(ctx context.Context, employeeID uuid.UUID, docType entities.DocumentType, targetDate time.Time) (bool, error) {
	for _, r := range f.rows {
		if r.EmployeeID == employeeID && r.Type == docType &&
			r.TargetDate.Equal(targetDate) && r.Status == entities.ReminderSent {
			return true, nil
		}
	}
	return false, nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func newTestReminderService(employees *fakeEmployeeRepo, reminders *fakeReminderRepo, mail *fakeMailer) *ReminderService {
	svc := NewReminderService(employees, reminders, mail,
		config.ReminderConfig{WindowDays: 30}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func reminderRoster(now time.Time) []entities.Employee {
	strp := func(v string) *string { return &v }
	inWindow := now.AddDate(0, 0, 7)
	outside := now.AddDate(0, 0, 45)
	past := now.AddDate(0, 0, -3)
	return []entities.Employee{
		{ID: uuid.New(), EmployeeNo: "EMP001", NameEN: "Ahmed Hassan",
			Email: strp("ahmed@example.com"), PassportExpiry: &inWindow, CardExpiry: &outside},
		{ID: uuid.New(), EmployeeNo: "EMP002", NameEN: "Budi Santoso",
			PassportExpiry: &inWindow}, // no email on file
		{ID: uuid.New(), EmployeeNo: "EMP003", NameEN: "Carlos Reyes",
			Email: strp("carlos@example.com"), PassportExpiry: &past},
	}
}

func TestRunSendsOnlyInsideWindow(t *testing.T) {
	employees := newFakeEmployeeRepo()
	reminders := &fakeReminderRepo{}
	mail := &fakeMailer{}
	svc := newTestReminderService(employees, reminders, mail)
	employees.roster = reminderRoster(svc.now())

	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Checked, "out-of-window and past dates are not checked")
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Skipped, "employee without email")
	assert.Equal(t, 0, report.Failed)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "ahmed@example.com", mail.sent[0].to)
	assert.Contains(t, mail.sent[0].subject, "Passport expires on")
	assert.Contains(t, mail.sent[0].body, "EMP001")
	assert.Contains(t, mail.sent[0].body, "7 day(s)")
}

func TestRunIsIdempotent(t *testing.T) {
	employees := newFakeEmployeeRepo()
	reminders := &fakeReminderRepo{}
	mail := &fakeMailer{}
	svc := newTestReminderService(employees, reminders, mail)
	employees.roster = reminderRoster(svc.now())

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	second, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, second.Sent, "rerun must not resend")
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, mail.sent, 1)
}

func TestRunRecordsMailFailure(t *testing.T) {
	employees := newFakeEmployeeRepo()
	reminders := &fakeReminderRepo{}
	mail := &fakeMailer{err: errors.New("smtp down")}
	svc := newTestReminderService(employees, reminders, mail)
	employees.roster = reminderRoster(svc.now())

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Sent)
	assert.Equal(t, 1, report.Failed)

	// the attempt is logged as failed, so the next run retries it
	require.Len(t, reminders.rows, 1)
	assert.Equal(t, entities.ReminderFailed, reminders.rows[0].Status)

	mail.err = nil
	retry, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, retry.Sent)
}

func TestRunSweepsEveryDocumentType(t *testing.T) {
	employees := newFakeEmployeeRepo()
	reminders := &fakeReminderRepo{}
	mail := &fakeMailer{}
	svc := newTestReminderService(employees, reminders, mail)

	strp := func(v string) *string { return &v }
	soon := svc.now().AddDate(0, 0, 10)
	employees.roster = []entities.Employee{
		{ID: uuid.New(), EmployeeNo: "EMP010", NameEN: "Dana Khalil",
			Email:          strp("dana@example.com"),
			PassportExpiry: &soon, CardExpiry: &soon, EmiratesIDExpiry: &soon, ResidenceExpiry: &soon},
	}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, report.Sent)

	subjects := make([]string, 0, len(mail.sent))
	for _, m := range mail.sent {
		subjects = append(subjects, m.subject)
	}
	for _, label := range []string{"Passport", "Labour card", "Emirates ID", "Residence visa"} {
		found := false
		for _, s := range subjects {
			if len(s) >= len(label) && s[:len(label)] == label {
				found = true
			}
		}
		assert.True(t, found, "missing reminder for %s", label)
	}
}
