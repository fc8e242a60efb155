package dispensations

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goodsign/monday"
)

const (
	dateLayout = "2006-01-02"

	// UnitLabel es la unidad que se imprime en cada línea del recibo.
	UnitLabel = "UN - Comprimido(s)/Capsula(s)"
)

// Receipt es el comprobante de una dispensação enviada.
type Receipt struct {
	ID            string         `json:"id"`
	Data          string         `json:"data"`
	DataFormatada string         `json:"data_formatada"`
	DataExtenso   string         `json:"data_extenso"`
	Paciente      ReceiptPatient `json:"paciente"`
	Endereco      string         `json:"endereco"`
	Itens         []ReceiptItem  `json:"itens"`
}

type ReceiptPatient struct {
	Nome string `json:"nome"`
	CPF  string `json:"cpf"`
}

type ReceiptItem struct {
	Formula    string `json:"formula"`
	Quantidade int    `json:"quantidade"`
	Unidade    string `json:"unidade"`
}

func (r Receipt) clone() Receipt {
	out := r
	out.Itens = make([]ReceiptItem, len(r.Itens))
	copy(out.Itens, r.Itens)
	return out
}

// BuildReceipt arma el recibo a partir del payload enviado.
func BuildReceipt(id string, p Prescription) (Receipt, error) {
	day, err := time.Parse(dateLayout, p.Data)
	if err != nil {
		return Receipt{}, fmt.Errorf("receipt date %q: %w", p.Data, err)
	}

	items := make([]ReceiptItem, 0, len(p.Medicamentos))
	for _, m := range p.Medicamentos {
		items = append(items, ReceiptItem{
			Formula:    m.Formula,
			Quantidade: m.Quantidade,
			Unidade:    UnitLabel,
		})
	}

	return Receipt{
		ID:            id,
		Data:          p.Data,
		DataFormatada: ShortDate(day),
		DataExtenso:   LongDate(day),
		Paciente:      ReceiptPatient{Nome: p.Paciente.Nome, CPF: p.Paciente.CPF},
		Endereco:      p.Paciente.AddressLine(),
		Itens:         items,
	}, nil
}

// ShortDate devuelve dd/mm/yyyy.
func ShortDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// LongDate devuelve la fecha larga en pt-BR con la primera letra en mayúscula,
// p.ej. "Sábado, 17 de outubro de 2026".
func LongDate(t time.Time) string {
	s := monday.Format(t, "Monday, 02 de January de 2006", monday.LocalePtBR)
	return capitalize(strings.ToLower(s))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// formatItems se usa en el log de envíos.
func formatItems(items []LineItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%d:%d", it.ID, it.Quantidade))
	}
	return strings.Join(parts, ",")
}
