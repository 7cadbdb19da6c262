package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/expiry"
	"hr-system/internal/repositories"
	"hr-system/pkg/config"
	"hr-system/pkg/mailer"
	"hr-system/pkg/types"
)

var documentLabels = map[entities.DocumentType]string{
	entities.DocPassport:   "Passport",
	entities.DocCard:       "Labour card",
	entities.DocEmiratesID: "Emirates ID",
	entities.DocResidence:  "Residence visa",
}

// ReminderService sweeps the roster for documents inside the expiry window
// and emails the employee once per document and expiry date. Every dispatch
// attempt is logged to the reminders table, which is also what keeps the
// sweep idempotent across reruns.
type ReminderService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	reminderRepo repositories.ReminderRepositoryInterface
	mail         mailer.Mailer
	cfg          config.ReminderConfig
	logger       *zap.Logger
	now          func() time.Time
}

func NewReminderService(
	employeeRepo repositories.EmployeeRepositoryInterface,
	reminderRepo repositories.ReminderRepositoryInterface,
	mail mailer.Mailer,
	cfg config.ReminderConfig,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		employeeRepo: employeeRepo,
		reminderRepo: reminderRepo,
		mail:         mail,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ReminderService) GetReminders(ctx context.Context, filter types.Filter) ([]dto.ReminderDTO, uint64, error) {
	reminders, total, err := s.reminderRepo.GetReminders(ctx, filter)
	if err != nil {
		s.logger.Error("failed to load reminders", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.ReminderDTO, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, dto.ToReminderDTO(r))
	}
	return out, total, nil
}

// Run executes one sweep. Safe to call repeatedly: already-sent
// employee/document/date combinations are skipped.
func (s *ReminderService) Run(ctx context.Context) (*dto.ReminderRunDTO, error) {
	roster, err := s.employeeRepo.GetEmployees(ctx)
	if err != nil {
		return nil, err
	}

	ref := s.now()
	report := &dto.ReminderRunDTO{}

	for i := range roster {
		employee := &roster[i]
		for _, doc := range entities.DocumentTypes {
			expiryDate := employee.ExpiryOf(doc)
			if expiryDate == nil {
				continue
			}
			days := expiry.DaysUntil(*expiryDate, ref)
			if days < 0 || days > s.cfg.WindowDays {
				continue
			}
			report.Checked++

			if employee.Email == nil || *employee.Email == "" {
				report.Skipped++
				continue
			}

			target := *expiryDate
			already, err := s.reminderRepo.WasReminded(ctx, employee.ID, doc, target)
			if err != nil {
				s.logger.Error("reminder dedup check failed",
					zap.String("employee_id", employee.ID.String()), zap.Error(err))
				report.Failed++
				continue
			}
			if already {
				report.Skipped++
				continue
			}

			id, err := s.reminderRepo.CreateReminder(ctx, entities.Reminder{
				EmployeeID: employee.ID,
				Type:       doc,
				TargetDate: target,
				Status:     entities.ReminderPending,
			})
			if err != nil {
				s.logger.Error("failed to record reminder",
					zap.String("employee_id", employee.ID.String()), zap.Error(err))
				report.Failed++
				continue
			}

			subject, body := s.compose(employee, doc, target, days)
			if err := s.mail.Send(ctx, *employee.Email, subject, body); err != nil {
				s.logger.Warn("reminder email failed",
					zap.String("employee_no", employee.EmployeeNo),
					zap.String("document", string(doc)),
					zap.Error(err))
				if err := s.reminderRepo.MarkFailed(ctx, id); err != nil {
					s.logger.Error("failed to mark reminder failed", zap.Error(err))
				}
				report.Failed++
				continue
			}

			if err := s.reminderRepo.MarkSent(ctx, id, s.now()); err != nil {
				s.logger.Error("failed to mark reminder sent", zap.Error(err))
			}
			report.Sent++
		}
	}

	s.logger.Info("reminder sweep finished",
		zap.Int("checked", report.Checked),
		zap.Int("sent", report.Sent),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

// StartScheduler runs a sweep once a day until the context is cancelled.
func (s *ReminderService) StartScheduler(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Run(ctx); err != nil {
					s.logger.Error("scheduled reminder sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

func (s *ReminderService) compose(e *entities.Employee, doc entities.DocumentType, target time.Time, days int) (string, string) {
	label := documentLabels[doc]
	subject := fmt.Sprintf("%s expires on %s", label, target.Format("2006-01-02"))
	body := fmt.Sprintf(
		"Dear %s,\r\n\r\nYour %s (employee no. %s) expires in %d day(s), on %s.\r\nPlease arrange its renewal.\r\n\r\nHR Department\r\n",
		e.NameEN, label, e.EmployeeNo, days, target.Format("2006-01-02"))
	return subject, body
}
