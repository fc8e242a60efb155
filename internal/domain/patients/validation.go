package patients

import (
	"regexp"
	"strings"

	"remedio-solidario/internal/platform/formcheck"
	"remedio-solidario/internal/platform/mask"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	cpfRe      = regexp.MustCompile(`^[0-9]{3}\.?[0-9]{3}\.?[0-9]{3}-?[0-9]{2}$`)
	cepRe      = regexp.MustCompile(`^[0-9]{5}-?[0-9]{3}$`)
	phoneRe    = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
	noDigitsRe = regexp.MustCompile(`^[^\d]+$`)
)

// Normalize recorta espacios y aplica las máscaras de CPF y telefone.
func Normalize(p Patient) Patient {
	p.CPF = mask.CPF(p.CPF)
	p.Telefone = mask.Phone(p.Telefone)
	p.Nome = strings.TrimSpace(p.Nome)
	p.Rua = strings.TrimSpace(p.Rua)
	p.Numero = strings.TrimSpace(p.Numero)
	p.Bairro = strings.TrimSpace(p.Bairro)
	p.Complemento = strings.TrimSpace(p.Complemento)
	p.Cidade = strings.TrimSpace(p.Cidade)
	p.UF = strings.ToUpper(strings.TrimSpace(p.UF))
	p.CEP = strings.TrimSpace(p.CEP)
	return p
}

// Validate corre las reglas del formulario de paciente. Complemento es libre; CEP es opcional.
func Validate(p Patient) error {
	return formcheck.Collect(validation.ValidateStruct(&p,
		validation.Field(&p.CPF,
			validation.Required.Error("CPF é obrigatório"),
			validation.Match(cpfRe).Error("CPF inválido"),
		),
		validation.Field(&p.Nome,
			validation.Required.Error("Nome é obrigatório"),
			validation.Match(noDigitsRe).Error("Nome não pode conter números"),
		),
		validation.Field(&p.Rua, validation.Required.Error("A rua é obrigatória")),
		validation.Field(&p.Numero, validation.Required.Error("O número é obrigatório")),
		validation.Field(&p.Bairro, validation.Required.Error("O bairro é obrigatório")),
		validation.Field(&p.CEP, validation.Match(cepRe).Error("CEP inválido")),
		validation.Field(&p.Cidade, validation.Required.Error("A cidade é obrigatória")),
		validation.Field(&p.UF, validation.Required.Error("O estado é obrigatório")),
		validation.Field(&p.Telefone,
			validation.Required.Error("O telefone é obrigatório"),
			validation.Match(phoneRe).Error("Telefone inválido"),
		),
	))
}
