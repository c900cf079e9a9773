package request

import (
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/validation"
)

// Pointer fields distinguish a field that was sent from one that was not.

type CreateUserRequest struct {
	Name     *string `json:"name" binding:"omitnil,user_name"`
	Email    *string `json:"email" binding:"omitnil,user_email"`
	Password *string `json:"password" binding:"omitnil,user_password"`
}

// MissingFields lists required fields absent from the body, in a stable order.
func (r CreateUserRequest) MissingFields() []string {
	var missing []string
	if r.Name == nil {
		missing = append(missing, validation.FieldName)
	}
	if r.Email == nil {
		missing = append(missing, validation.FieldEmail)
	}
	if r.Password == nil {
		missing = append(missing, validation.FieldPassword)
	}
	return missing
}

type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitnil,user_name"`
	Email *string `json:"email" binding:"omitnil,user_email"`
}

func (r UpdateUserRequest) Empty() bool {
	return r.Name == nil && r.Email == nil
}

type LoginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
