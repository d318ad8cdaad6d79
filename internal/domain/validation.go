package domain

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate usa os nomes JSON nos erros, para que o campo reportado seja o mesmo do documento
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate confere as regras declaradas nas tags da entrada
func (in *QuoteInput) Validate() error {
	return validate.Struct(in)
}

// Validate confere as regras declaradas nas tags da configuração.
// Regras entre campos (faixas, kombos) ficam no motor de cálculo.
func (c *PricingConfiguration) Validate() error {
	return validate.Struct(c)
}
