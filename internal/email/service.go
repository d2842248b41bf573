package email

import "context"

// Service delivers outbound mail
type Service interface {
	SendAdminCredentials(ctx context.Context, to, username, password string) error
}
