package signup

import (
	"context"

	"github.com/magabrotheeeer/account-service/internal/models"
)

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*models.Profile, error)
}
