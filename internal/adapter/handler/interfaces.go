package handler

import (
	"context"

	"github.com/marcos-nsantos/user-management-backend/internal/domain/entity"
	"github.com/marcos-nsantos/user-management-backend/internal/usecase/user"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type UserService interface {
	Create(ctx context.Context, input user.CreateInput) (int64, bool, error)
	GetByID(ctx context.Context, id int64) (*entity.PublicUser, error)
	List(ctx context.Context) ([]entity.PublicUser, error)
	Update(ctx context.Context, id int64, input user.UpdateInput) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SearchByName(ctx context.Context, fragment string) ([]entity.PublicUser, error)
	Authenticate(ctx context.Context, email, password string) (*entity.Identity, error)
}
