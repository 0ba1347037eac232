package crud

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields under their form key
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messages is keyed by "<form key>.<tag>".
var messages = map[string]string{
	"nome.required":     "O nome deve ter pelo menos 2 caracteres.",
	"nome.min":          "O nome deve ter pelo menos 2 caracteres.",
	"nome.max":          "O nome não pode exceder 50 caracteres.",
	"descricao.max":     "A descrição não pode exceder 200 caracteres.",
	"password.required": "A senha é obrigatória.",
	"username.required": "O usuário é obrigatório.",
}

// check runs struct validation and maps failures to localized messages.
func check(v any) FieldErrors {
	errs := FieldErrors{}
	err := validate.Struct(v)
	if err == nil {
		return errs
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range ve {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "Valor inválido."
		}
		errs[fe.Field()] = msg
	}
	return errs
}

// Credentials is the login form.
type Credentials struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (c Credentials) Validate() FieldErrors { return check(c) }
