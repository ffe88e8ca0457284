package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wrenlet/inkwell/internal/common"
)

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		want  string
	}{
		{name: "Valid", email: "ada@example.com"},
		{name: "Empty", email: "", want: "must be provided"},
		{name: "Missing Domain", email: "ada@", want: "must be a valid email address"},
		{name: "Missing At", email: "ada.example.com", want: "must be a valid email address"},
		{name: "Valid With Plus", email: "ada+blog@example.co.uk"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateEmail(v, tc.email)

			if tc.want == "" {
				assert.True(t, v.Valid())
			} else {
				assert.Equal(t, tc.want, v.Errors["email"])
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		want     string
	}{
		{name: "Valid", password: "Secret!1"},
		{name: "Empty", password: "", want: "must be provided"},
		{name: "Too Short", password: "abc", want: "must be between 6 and 72 characters long"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)

			if tc.want == "" {
				assert.True(t, v.Valid())
			} else {
				assert.Equal(t, tc.want, v.Errors["password"])
			}
		})
	}
}
