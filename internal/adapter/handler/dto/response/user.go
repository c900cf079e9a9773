package response

import (
	"time"

	"github.com/marcos-nsantos/user-management-backend/internal/domain/entity"
)

type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatedUserResponse struct {
	ID int64 `json:"id"`
}

type LoginResponse struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

func UserFromEntity(u entity.PublicUser) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func UsersFromEntities(users []entity.PublicUser) []UserResponse {
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserFromEntity(u))
	}
	return resp
}

func LoginFromIdentity(identity entity.Identity) LoginResponse {
	return LoginResponse{
		UserID: identity.ID,
		Name:   identity.Name,
	}
}
