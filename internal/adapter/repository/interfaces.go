package repository

import (
	"context"
	"strings"

	"github.com/marcos-nsantos/user-management-backend/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// UserRepository persists users. Implementations report expected outcomes
// with domain.ErrUserNotFound and domain.ErrUserAlreadyExists; any other
// error is a storage fault.
type UserRepository interface {
	// Create inserts user and sets its ID. The email uniqueness check and
	// the insert happen in one statement.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	// Update changes the non-nil fields only.
	Update(ctx context.Context, id int64, name, email *string) error
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, fragment string) ([]entity.User, error)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern matching fragment anywhere, with
// wildcard characters in fragment taken literally. Use with ESCAPE '\'.
func ContainsPattern(fragment string) string {
	return "%" + likeEscaper.Replace(fragment) + "%"
}
