package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/contabilisync/backend/models"
	"github.com/contabilisync/backend/utils"
)

// Reminders emails taxpayers about their confirmed appointments for the
// coming day.
type Reminders struct {
	db     *gorm.DB
	mailer *utils.Mailer
	cron   *cron.Cron
}

func NewReminders(db *gorm.DB, mailer *utils.Mailer) *Reminders {
	return &Reminders{db: db, mailer: mailer, cron: cron.New()}
}

// Start schedules the daily reminder run at 08:00 server time.
func (r *Reminders) Start() error {
	if _, err := r.cron.AddFunc("0 8 * * *", r.sendAppointmentReminders); err != nil {
		return fmt.Errorf("failed to add reminder job: %w", err)
	}
	r.cron.Start()
	log.Println("Reminder scheduler started")
	return nil
}

func (r *Reminders) Stop() {
	r.cron.Stop()
}

// nextDay returns the calendar day after now, read in now's location, encoded
// as the midnight-UTC value appointment dates are stored as. The cron schedule
// fires in server-local time, so the window must be the local next day.
func nextDay(now time.Time) time.Time {
	y, m, d := now.AddDate(0, 0, 1).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sendAppointmentReminders finds tomorrow's confirmed appointments and mails
// each taxpayer. A failure for one appointment does not stop the rest.
func (r *Reminders) sendAppointmentReminders() {
	tomorrow := nextDay(time.Now())

	var appointments []models.Appointment
	err := r.db.Preload("Taxpayer").Preload("Accountant").
		Where("status = ? AND date = ?", models.StatusConfirmed, tomorrow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.Taxpayer == nil {
			continue
		}
		if err := r.sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Taxpayer.Email)
	}
}

func (r *Reminders) sendReminderEmail(appointment *models.Appointment) error {
	accountantName := "your accountant"
	if appointment.Accountant != nil {
		accountantName = appointment.Accountant.Name
	}

	subject := "Reminder: Upcoming Accounting Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your accounting appointment tomorrow.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Accountant:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>ContabiliSync</p>
	`, appointment.Taxpayer.Name, accountantName,
		appointment.Date.Format("2006-01-02"), appointment.Time)

	return r.mailer.Send(appointment.Taxpayer.Email, subject, body)
}
