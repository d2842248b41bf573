package email

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/gomail.v2"
)

// SMTPConfig is read from SMTP_* environment variables
type SMTPConfig struct {
	Host     string `envconfig:"HOST" required:"true"`
	Port     int    `envconfig:"PORT" default:"587"`
	User     string `envconfig:"USER" required:"true"`
	Password string `envconfig:"PASS" required:"true"`
	From     string `envconfig:"FROM" default:"noreply@clinicflow.com"`
}

func LoadSMTPConfig() (SMTPConfig, error) {
	var cfg SMTPConfig
	if err := envconfig.Process("SMTP", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load SMTP config: %w", err)
	}
	return cfg, nil
}

type smtpService struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (s *smtpService) SendAdminCredentials(ctx context.Context, to, username, password string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your Admin Account for ClinicFlow")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your admin account has been created successfully.\n"+
			"Username: %s\n"+
			"Password: %s\n\n"+
			"Please log in and change your password immediately.",
		username, username, password,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send credential email: %w", err)
	}
	return nil
}
