package utils

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
)

var ErrMailNotConfigured = errors.New("smtp is not configured")

type EmailData struct {
	Name      string
	Message   string
	StoreName string
	LoginURL  string
}

func RenderEmail(data EmailData, templatePath string) (string, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

func SendEmail(emailTo string, emailSubject string, data EmailData, templatePath string) error {
	if os.Getenv("SMTP_ADDRESS") == "" || os.Getenv("FROM_EMAIL") == "" {
		return ErrMailNotConfigured
	}

	body, err := RenderEmail(data, templatePath)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		os.Getenv("FROM_EMAIL"),
		emailTo,
		emailSubject,
		body,
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	err = smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
