package medicaments

// Tarja es la classificação regulatória del medicamento.
// @Enum SEM_TARJA, AMARELA, VERMELHA, PRETA
type Tarja string

const (
	TarjaNone   Tarja = "SEM_TARJA"
	TarjaYellow Tarja = "AMARELA"
	TarjaRed    Tarja = "VERMELHA"
	TarjaBlack  Tarja = "PRETA"
)

var allTarjas = []Tarja{TarjaNone, TarjaYellow, TarjaRed, TarjaBlack}

// Tarjas devuelve las cuatro tarjas en orden de exibição.
func Tarjas() []Tarja {
	out := make([]Tarja, len(allTarjas))
	copy(out, allTarjas)
	return out
}

func (t Tarja) Valid() bool {
	for _, v := range allTarjas {
		if v == t {
			return true
		}
	}
	return false
}

// Label es el texto que se muestra en listas.
func (t Tarja) Label() string {
	switch t {
	case TarjaNone:
		return "Sem tarja"
	case TarjaYellow:
		return "Amarela"
	case TarjaRed:
		return "Vermelha"
	case TarjaBlack:
		return "Preta"
	default:
		return ""
	}
}

// Medicament es el registro de medicamento del backend.
// Vencimento va como YYYY-MM-DD.
type Medicament struct {
	ID         int64  `json:"id"`
	Formula    string `json:"formula"`
	Quantidade int    `json:"quantidade"`
	Tarja      Tarja  `json:"tarja"`
	Vencimento string `json:"vencimento"`
}
