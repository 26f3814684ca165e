package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"sync"
	"time"

	"beworking/internal/db"
	"beworking/internal/entities"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const sendTimeout = 30 * time.Second

// SenderService composes tenant notifications and hands them to a Notifier in the
// background. Send failures are logged and never reach the caller.
type SenderService struct {
	notifier Notifier
	log      *zap.Logger
	loc      *time.Location
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewSenderService(notifier Notifier, log *zap.Logger, loc *time.Location) *SenderService {
	return &SenderService{notifier: notifier, log: log, loc: loc, now: time.Now}
}

// SendBookingConfirmation emails and texts user about booking.
func (s *SenderService) SendBookingConfirmation(user db.User, booking db.Booking, status string) {
	data := entities.BookingEmailData{
		UserName:    user.Name,
		Product:     booking.Product,
		Date:        booking.Date,
		StartHour:   booking.StartHour,
		EndHour:     booking.EndHour,
		Attendees:   booking.Attendees,
		Status:      status,
		CurrentYear: s.now().In(s.loc).Year(),
	}

	email := Email{
		ToAddress: user.Email,
		ToName:    user.Name,
		Subject:   fmt.Sprintf("Your BeWorking booking is %s - %s %s", status, data.Date, data.StartHour),
		PlainText: fmt.Sprintf(
			"Hello %s,\n\nYour booking at BeWorking is %s.\n\n"+
				"Space: %s\nDate: %s\nFrom: %s\nTo: %s\nAttendees: %d\n\n"+
				"Thank you for choosing BeWorking.",
			data.UserName, status, data.Product, data.Date, data.StartHour, data.EndHour, data.Attendees),
	}
	email.HTML = s.render("booking_email.html", data)

	s.dispatch(email, user.Phone, fmt.Sprintf("BeWorking: your %s booking on %s at %s is %s.",
		data.Product, data.Date, data.StartHour, status))
}

// SendMailboxNotice tells user that new post was delivered to their mailbox.
func (s *SenderService) SendMailboxNotice(user db.User, item db.MailboxItem) {
	data := entities.MailboxEmailData{
		UserName:    user.Name,
		Subject:     item.Subject,
		Message:     item.Message,
		PDFURL:      item.PDFURL,
		CurrentYear: s.now().In(s.loc).Year(),
	}

	email := Email{
		ToAddress: user.Email,
		ToName:    user.Name,
		Subject:   "New mail at BeWorking: " + item.Subject,
		PlainText: fmt.Sprintf("Hello %s,\n\nWe received a new item for you.\n\n%s\n%s\n", user.Name, item.Subject, item.Message),
	}
	if item.PDFURL != "" {
		email.PlainText += "\nScanned document: " + item.PDFURL + "\n"
	}
	email.HTML = s.render("mailbox_email.html", data)

	s.dispatch(email, user.Phone, "BeWorking: new mail arrived for you. "+item.Subject)
}

// Wait blocks until every pending send has finished.
func (s *SenderService) Wait() {
	s.wg.Wait()
}

func (s *SenderService) render(name string, data interface{}) string {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("failed to render email template", zap.String("template", name), zap.Error(err))
		return ""
	}
	return buf.String()
}

func (s *SenderService) dispatch(email Email, phone, sms string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := s.notifier.SendEmail(ctx, email); err != nil {
			s.log.Warn("email notification failed", zap.String("to", email.ToAddress), zap.Error(err))
		}
		if phone == "" {
			return
		}
		if err := s.notifier.SendSMS(ctx, phone, sms); err != nil {
			s.log.Warn("sms notification failed", zap.String("to", phone), zap.Error(err))
		}
	}()
}
