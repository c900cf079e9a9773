package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/user-management-backend/internal/pkg/validation"
)

func ptr(s string) *string {
	return &s
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"test@example.com", true},
		{"user.name+tag@domain.co.uk", true},
		{"a@b.co", true},
		{"invalid-email", false},
		{"@domain.com", false},
		{"user@", false},
		{"user@domain.c", false},
		{"user@domain.c0m", false},
		{"user@domain.com\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidateEmail(tt.email))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, validation.ValidatePassword("password123"))
	assert.True(t, validation.ValidatePassword("123456"))
	assert.False(t, validation.ValidatePassword("12345"))
	assert.False(t, validation.ValidatePassword(""))
}

func TestValidateName(t *testing.T) {
	assert.True(t, validation.ValidateName("John Doe"))
	assert.True(t, validation.ValidateName("A"))
	assert.True(t, validation.ValidateName("  A  "))
	assert.True(t, validation.ValidateName(strings.Repeat("é", 100)))
	assert.False(t, validation.ValidateName(""))
	assert.False(t, validation.ValidateName("   "))
	assert.False(t, validation.ValidateName(strings.Repeat("A", 101)))
}

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{"123", 123, true},
		{"1", 1, true},
		{"5", 5, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.5", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, ok := validation.ValidateUserID(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestValidateUserData(t *testing.T) {
	t.Run("valid data has no errors", func(t *testing.T) {
		errs := validation.ValidateUserData(validation.UserData{
			Name:     ptr("John Doe"),
			Email:    ptr("john@example.com"),
			Password: ptr("password123"),
		})

		assert.True(t, errs.Empty())
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		errs := validation.ValidateUserData(validation.UserData{
			Name:     ptr(""),
			Email:    ptr("invalid-email"),
			Password: ptr("123"),
		})

		assert.Equal(t, []string{validation.MsgInvalidName}, errs[validation.FieldName])
		assert.Equal(t, []string{validation.MsgInvalidEmail}, errs[validation.FieldEmail])
		assert.Equal(t, []string{validation.MsgInvalidPassword}, errs[validation.FieldPassword])
	})

	t.Run("absent fields are not validated", func(t *testing.T) {
		errs := validation.ValidateUserData(validation.UserData{
			Email: ptr("new@example.com"),
		})

		assert.True(t, errs.Empty())
	})

	t.Run("whitespace name is invalid", func(t *testing.T) {
		errs := validation.ValidateUserData(validation.UserData{Name: ptr("   ")})

		assert.Equal(t, []string{validation.MsgInvalidName}, errs[validation.FieldName])
	})

	t.Run("empty input is valid", func(t *testing.T) {
		assert.True(t, validation.ValidateUserData(validation.UserData{}).Empty())
	})
}

func TestRegister(t *testing.T) {
	type payload struct {
		Name  *string `json:"name" binding:"omitnil,user_name"`
		Email *string `json:"email" binding:"omitnil,user_email"`
	}

	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, validation.Register(v))

	t.Run("valid payload passes", func(t *testing.T) {
		assert.NoError(t, v.Struct(payload{Name: ptr("Jane"), Email: ptr("jane@example.com")}))
	})

	t.Run("nil fields are skipped", func(t *testing.T) {
		assert.NoError(t, v.Struct(payload{}))
	})

	t.Run("failures map to field messages", func(t *testing.T) {
		err := v.Struct(payload{Name: ptr("   "), Email: ptr("")})
		require.Error(t, err)

		errs, ok := validation.FromError(err)
		require.True(t, ok)
		assert.Equal(t, []string{validation.MsgInvalidName}, errs[validation.FieldName])
		assert.Equal(t, []string{validation.MsgInvalidEmail}, errs[validation.FieldEmail])
	})
}

func TestFromError_NotValidation(t *testing.T) {
	_, ok := validation.FromError(errors.New("boom"))
	assert.False(t, ok)
}
