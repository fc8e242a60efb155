package dispensations

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"remedio-solidario/internal/domain/patients"
	"remedio-solidario/internal/middleware"
	"remedio-solidario/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

const (
	msgDuplicate        = "Este medicamento já foi adicionado."
	msgQuantityRequired = "Selecione a quantidade do medicamento"
	msgMedicamentNeeded = "Selecione pelo menos um medicamento"
	msgPatientNeeded    = "Selecione um paciente"
	msgPatientNotFound  = "Paciente não encontrado"
	msgReceiptOpen      = "Feche o recibo antes de continuar"
	msgNoReceipt        = "Nenhum recibo para exibir"
	msgResend           = "Envie novamente"
	msgSubmitted        = "Dispensação registrada com sucesso!"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dispensation", func(dr chi.Router) {
		dr.Get("/", getDraftHandler(svc))
		dr.Get("/options", optionsHandler(svc))
		dr.Put("/patient", selectPatientHandler(svc))
		dr.Post("/items", addItemHandler(svc))
		dr.Delete("/items/{medicamentID}", removeItemHandler(svc))
		dr.Post("/submit", submitHandler(svc))
		dr.Get("/receipt", getReceiptHandler(svc))
		dr.Get("/receipt/print", printReceiptHandler(svc))
		dr.Delete("/receipt", closeReceiptHandler(svc))
	})
}

type selectPatientRequest struct {
	PacienteID int64 `json:"paciente_id"`
}

type addItemRequest struct {
	MedicamentoID int64 `json:"medicamento_id"`
	Quantidade    int   `json:"quantidade"`
}

type draftResponse struct {
	State       State             `json:"state"`
	Data        string            `json:"data"`
	DataExtenso string            `json:"data_extenso"`
	Paciente    *patients.Patient `json:"paciente"`
	Pendente    *LineItem         `json:"pendente"`
	Itens       []LineItem        `json:"itens"`
	CanSubmit   bool              `json:"can_submit"`
	Recibo      *Receipt          `json:"recibo,omitempty"`
	Message     string            `json:"message,omitempty"`
}

type submitResponse struct {
	Message string  `json:"message"`
	Recibo  Receipt `json:"recibo"`
}

func toDraftResponse(svc *Service, d Draft) draftResponse {
	today := svc.Today()
	return draftResponse{
		State:       d.State(),
		Data:        today.Format(dateLayout),
		DataExtenso: LongDate(today),
		Paciente:    d.Patient,
		Pendente:    d.Pending,
		Itens:       d.Items,
		CanSubmit:   d.CanSubmit() == nil,
		Recibo:      d.Receipt,
	}
}

// getDraftHandler godoc
// @Summary Dispensação em andamento
// @Tags dispensation
// @Produce json
// @Success 200 {object} draftResponse
// @Failure 401 {object} respond.Body
// @Router /dispensation [get]
func getDraftHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		d, err := svc.Current(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDraftResponse(svc, d))
	}
}

// optionsHandler godoc
// @Summary Pacientes e medicamentos para os selects
// @Tags dispensation
// @Produce json
// @Success 200 {object} Options
// @Failure 502 {object} respond.Body
// @Router /dispensation/options [get]
func optionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := svc.LoadOptions(r.Context())
		if err != nil {
			respond.Message(w, http.StatusBadGateway, respond.GenericFailure)
			return
		}
		respond.JSON(w, http.StatusOK, opts)
	}
}

// selectPatientHandler godoc
// @Summary Selecionar paciente
// @Tags dispensation
// @Accept json
// @Produce json
// @Param payload body selectPatientRequest true "Paciente"
// @Success 200 {object} draftResponse
// @Failure 404 {object} respond.Body
// @Failure 409 {object} respond.Body
// @Router /dispensation/patient [put]
func selectPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		var req selectPatientRequest
		if !respond.Decode(w, r, &req) {
			return
		}

		d, err := svc.SelectPatient(r.Context(), claims.UserID, req.PacienteID)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDraftResponse(svc, d))
	}
}

// addItemHandler godoc
// @Summary Adicionar medicamento
// @Description Um medicamento só pode aparecer uma vez; o duplicado responde 409 e a lista não muda.
// @Tags dispensation
// @Accept json
// @Produce json
// @Param payload body addItemRequest true "Medicamento e quantidade"
// @Success 200 {object} draftResponse
// @Failure 409 {object} draftResponse "Este medicamento já foi adicionado."
// @Failure 422 {object} respond.Body
// @Router /dispensation/items [post]
func addItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		var req addItemRequest
		if !respond.Decode(w, r, &req) {
			return
		}

		d, err := svc.AddItem(r.Context(), claims.UserID, req.MedicamentoID, req.Quantidade)
		if errors.Is(err, ErrDuplicateItem) {
			resp := toDraftResponse(svc, d)
			resp.Message = msgDuplicate
			respond.JSON(w, http.StatusConflict, resp)
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDraftResponse(svc, d))
	}
}

// removeItemHandler godoc
// @Summary Remover medicamento da lista
// @Tags dispensation
// @Produce json
// @Param medicamentID path int true "ID do medicamento"
// @Success 200 {object} draftResponse
// @Router /dispensation/items/{medicamentID} [delete]
func removeItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		id, err := strconv.ParseInt(chi.URLParam(r, "medicamentID"), 10, 64)
		if err != nil {
			respond.Message(w, http.StatusBadRequest, "invalid medicamentID")
			return
		}

		d, err := svc.RemoveItem(r.Context(), claims.UserID, id)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDraftResponse(svc, d))
	}
}

// submitHandler godoc
// @Summary Enviar dispensação
// @Tags dispensation
// @Produce json
// @Success 201 {object} submitResponse
// @Failure 409 {object} respond.Body "Envie novamente"
// @Failure 422 {object} respond.Body
// @Failure 502 {object} respond.Body
// @Router /dispensation/submit [post]
func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		receipt, err := svc.Submit(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, submitResponse{Message: msgSubmitted, Recibo: receipt})
	}
}

// getReceiptHandler godoc
// @Summary Recibo aberto
// @Tags dispensation
// @Produce json
// @Success 200 {object} Receipt
// @Failure 404 {object} respond.Body
// @Router /dispensation/receipt [get]
func getReceiptHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		receipt, err := svc.Receipt(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, receipt)
	}
}

// printReceiptHandler godoc
// @Summary Recibo para impressão
// @Tags dispensation
// @Produce html
// @Success 200 {string} string "HTML"
// @Failure 404 {object} respond.Body
// @Router /dispensation/receipt/print [get]
func printReceiptHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		receipt, err := svc.Receipt(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = receiptTemplate.Execute(w, receipt)
	}
}

// closeReceiptHandler godoc
// @Summary Fechar recibo
// @Tags dispensation
// @Produce json
// @Success 200 {object} draftResponse
// @Failure 404 {object} respond.Body
// @Router /dispensation/receipt [delete]
func closeReceiptHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		d, err := svc.CloseReceipt(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDraftResponse(svc, d))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrQuantityRequired):
		respond.Invalid(w, map[string]string{"quantidade": msgQuantityRequired})
	case errors.Is(err, ErrMedicamentRequired), errors.Is(err, ErrEmptyList):
		respond.Invalid(w, map[string]string{"medicamento": msgMedicamentNeeded})
	case errors.Is(err, ErrPatientRequired):
		respond.Invalid(w, map[string]string{"paciente": msgPatientNeeded})
	case errors.Is(err, ErrPatientNotFound):
		respond.Message(w, http.StatusNotFound, msgPatientNotFound)
	case errors.Is(err, ErrDuplicateItem):
		respond.Message(w, http.StatusConflict, msgDuplicate)
	case errors.Is(err, ErrReceiptOpen):
		respond.Message(w, http.StatusConflict, msgReceiptOpen)
	case errors.Is(err, ErrConflict):
		respond.Message(w, http.StatusConflict, msgResend)
	case errors.Is(err, ErrNoReceipt):
		respond.Message(w, http.StatusNotFound, msgNoReceipt)
	default:
		respond.Message(w, http.StatusBadGateway, respond.GenericFailure)
	}
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Recibo {{.DataFormatada}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: .4rem; text-align: left; }
@media print { button { display: none; } }
</style>
</head>
<body onload="window.print()">
<h1>Remédio Solidário</h1>
<p>{{.DataExtenso}}</p>
<p><strong>Paciente:</strong> {{.Paciente.Nome}} <strong>CPF:</strong> {{.Paciente.CPF}}</p>
<p><strong>Endereço:</strong> {{.Endereco}}</p>
<table>
<thead><tr><th>Medicamento</th><th>Quantidade</th><th>Unidade</th></tr></thead>
<tbody>
{{range .Itens}}<tr><td>{{.Formula}}</td><td>{{.Quantidade}}</td><td>{{.Unidade}}</td></tr>
{{end}}</tbody>
</table>
<p>Data: {{.DataFormatada}}</p>
<p>Assinatura: ____________________________________</p>
</body>
</html>
`))
