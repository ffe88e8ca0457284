package blogservice

import (
	"strings"

	"github.com/wrenlet/inkwell/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(strings.TrimSpace(title) != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 0, 200), "title", "must not be more than 200 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(strings.TrimSpace(content) != "", "content", "must be provided")
}

func validateID(v *common.Validator, id, name string) {
	v.Check(id != "", name, "must be provided")
}
