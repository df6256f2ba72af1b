package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordValidator_ValidateLogin(t *testing.T) {
	validator := NewPasswordValidator()

	tests := []struct {
		name    string
		login   string
		wantErr bool
	}{
		{name: "valid email", login: "user@example.com"},
		{name: "valid with plus", login: "user+ops@example.co.uk"},
		{name: "empty", login: "", wantErr: true},
		{name: "no at", login: "user.example.com", wantErr: true},
		{name: "no domain dot", login: "user@localhost", wantErr: true},
		{name: "display name", login: "User <user@example.com>", wantErr: true},
		{name: "too long", login: strings.Repeat("a", 250) + "@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateLogin(tt.login)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordValidator_ValidatePassword(t *testing.T) {
	validator := NewPasswordValidator()

	tests := []struct {
		name        string
		password    string
		expectedErr string
	}{
		{name: "valid", password: "cargo2024"},
		{name: "too short", password: "c1", expectedErr: "password must be at least 6 characters"},
		{name: "too long", password: strings.Repeat("a1", 40), expectedErr: "password must be at most 72 bytes"},
		{name: "no digit", password: "cargocargo", expectedErr: "password must contain at least one digit"},
		{name: "no lowercase", password: "123456789", expectedErr: "password must contain at least one lowercase letter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePassword(tt.password)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.expectedErr)
		})
	}
}

func TestPasswordValidator_StrictPolicy(t *testing.T) {
	validator := &PasswordValidator{
		requireSpecialChar: true,
		requireDigit:       true,
		requireUpper:       true,
		requireLower:       true,
	}

	assert.Error(t, validator.ValidatePassword("cargo2024"))
	assert.NoError(t, validator.ValidatePassword("Cargo2024!"))
}

func TestPasswordValidator_ValidateRegister(t *testing.T) {
	validator := NewPasswordValidator()

	err := validator.ValidateRegister("nope", "cargo2024")
	assert.ErrorContains(t, err, "login validation failed")

	err = validator.ValidateRegister("a@example.com", "short")
	assert.ErrorContains(t, err, "password validation failed")

	assert.NoError(t, validator.ValidateRegister("a@example.com", "cargo2024"))
}
