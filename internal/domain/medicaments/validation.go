package medicaments

import (
	"strings"

	"remedio-solidario/internal/platform/formcheck"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const dateLayout = "2006-01-02"

var tarjaValues = func() []any {
	out := make([]any, 0, len(allTarjas))
	for _, t := range allTarjas {
		out = append(out, string(t))
	}
	return out
}()

// Input es el formulario crudo: Quantidade nil => campo no informado.
type Input struct {
	Formula    string `json:"formula"`
	Quantidade *int   `json:"quantidade"`
	Tarja      string `json:"tarja"`
	Vencimento string `json:"vencimento"`
}

func (in Input) normalized() Input {
	in.Formula = strings.TrimSpace(in.Formula)
	in.Tarja = strings.ToUpper(strings.TrimSpace(in.Tarja))
	in.Vencimento = strings.TrimSpace(in.Vencimento)
	return in
}

// validate espera el Input ya normalizado. Quantidade 0 es válida (NotNil, no Required).
func (in Input) validate() error {
	return formcheck.Collect(validation.ValidateStruct(&in,
		validation.Field(&in.Formula, validation.Required.Error("Nome do medicamento é obrigatório")),
		validation.Field(&in.Quantidade,
			validation.NotNil.Error("A quantidade é obrigatória"),
			validation.Min(0).Error("A quantidade deve ser um número positivo"),
		),
		validation.Field(&in.Tarja,
			validation.Required.Error("A tarja é obrigatória"),
			validation.In(tarjaValues...).Error("Tarja inválida"),
		),
		validation.Field(&in.Vencimento,
			validation.Required.Error("Data de vencimento é obrigatória"),
			validation.Date(dateLayout).Error("Data de vencimento inválida"),
		),
	))
}

// toMedicament valida y convierte el formulario.
func (in Input) toMedicament() (Medicament, error) {
	n := in.normalized()
	if err := n.validate(); err != nil {
		return Medicament{}, err
	}
	return Medicament{
		Formula:    n.Formula,
		Quantidade: *n.Quantidade,
		Tarja:      Tarja(n.Tarja),
		Vencimento: n.Vencimento,
	}, nil
}
