package userservice

import (
	"regexp"

	"github.com/wrenlet/inkwell/internal/common"
)

var (
	EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(email == "" || v.CheckMatches(email, EmailRX), "email", "must be a valid email address")
}

func validateName(v *common.Validator, name, field string) {
	v.Check(name != "", field, "must be provided")
	v.Check(v.CheckStringLength(name, 0, 100), field, "must not be more than 100 characters long")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(password == "" || v.CheckStringLength(password, 6, 72), "password", "must be between 6 and 72 characters long")
}
