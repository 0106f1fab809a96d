// Package services реализует отправку писем учетных записей:
// ссылка сброса пароля и подтверждение его смены.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/lib/smtp"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// SenderService отправляет письма через SMTP транспорт.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendResetLink отправляет письмо со ссылкой сброса пароля.
// Вызывается синхронно: ошибка отправки возвращается вызывающей стороне.
func (s *SenderService) SendResetLink(email, host, token string) error {
	subject := "Password Reset"
	bodyText := fmt.Sprintf("You are receiving this because you (or someone else) have requested the reset of the password for your account.\n\n"+
		"Please click on the following link, or paste this into your browser to complete the process:\n\n"+
		"http://%s/reset/%s\n\n"+
		"If you did not request this, please ignore this email and your password will remain unchanged.\n", host, token)

	return s.sendEmail([]string{email}, subject, bodyText)
}

// SendPasswordChangedConfirmation обрабатывает сообщение из очереди
// подтверждений и отправляет письмо о смене пароля.
func (s *SenderService) SendPasswordChangedConfirmation(body []byte) error {
	var message models.PasswordChangedInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Your password has been changed"
	bodyText := fmt.Sprintf("Hello, %s!\n\nThis is a confirmation that the password for your account %s has just been changed.\n",
		message.Username, message.Email)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", err.Error())
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", err.Error())
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
