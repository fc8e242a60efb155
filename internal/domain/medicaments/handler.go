package medicaments

import (
	"errors"
	"net/http"
	"strconv"

	"remedio-solidario/internal/platform/formcheck"
	"remedio-solidario/internal/platform/pagination"
	"remedio-solidario/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

const (
	msgCreated      = "Medicamento cadastrado com sucesso!"
	msgDuplicate    = "Medicamento já cadastrado"
	msgUpdated      = "Dados atualizados com sucesso!"
	msgUpdateFailed = "Erro ao atualizar medicamento!"
	msgDeleteFailed = "Erro ao excluir medicamento!"
	msgNotFound     = "Medicamento não encontrado"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medicaments", func(mr chi.Router) {
		mr.Get("/", listMedicamentsHandler(svc))
		mr.Post("/", createMedicamentHandler(svc))
		mr.Get("/tarjas", listTarjasHandler())
		mr.Put("/{medicamentID}", updateMedicamentHandler(svc))
		mr.Delete("/{medicamentID}", deleteMedicamentHandler(svc))
	})
}

// medicamentRow agrega el label de la tarja para la lista.
type medicamentRow struct {
	Medicament
	TarjaLabel string `json:"tarja_label"`
}

type medicamentMessageResponse struct {
	Message    string     `json:"message"`
	Medicament Medicament `json:"medicament"`
}

type tarjaResponse struct {
	Value Tarja  `json:"value"`
	Label string `json:"label"`
}

// listMedicamentsHandler godoc
// @Summary Listar medicamentos
// @Description Lista completa del backend, filtrable por tarja, paginada de a 5.
// @Tags medicaments
// @Produce json
// @Param page query int false "Página (1-based)"
// @Param tarja query string false "SEM_TARJA | AMARELA | VERMELHA | PRETA"
// @Success 200 {object} pagination.Page[medicamentRow]
// @Failure 400 {object} respond.Body
// @Failure 502 {object} respond.Body
// @Router /medicaments [get]
func listMedicamentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tarja, err := ParseTarja(r.URL.Query().Get("tarja"))
		if err != nil {
			respond.Message(w, http.StatusBadRequest, "Tarja inválida")
			return
		}

		items, err := svc.List(r.Context(), tarja)
		if err != nil {
			respond.Message(w, http.StatusBadGateway, respond.GenericFailure)
			return
		}

		rows := make([]medicamentRow, 0, len(items))
		for _, m := range items {
			rows = append(rows, medicamentRow{Medicament: m, TarjaLabel: m.Tarja.Label()})
		}
		respond.JSON(w, http.StatusOK, pagination.Paginate(rows, pagination.PageFromRequest(r), pagination.DefaultPageSize))
	}
}

// listTarjasHandler godoc
// @Summary Tarjas disponíveis
// @Tags medicaments
// @Produce json
// @Success 200 {array} tarjaResponse
// @Router /medicaments/tarjas [get]
func listTarjasHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out := make([]tarjaResponse, 0, len(allTarjas))
		for _, t := range Tarjas() {
			out = append(out, tarjaResponse{Value: t, Label: t.Label()})
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// createMedicamentHandler godoc
// @Summary Cadastrar medicamento
// @Tags medicaments
// @Accept json
// @Produce json
// @Param payload body Input true "Dados do medicamento"
// @Success 201 {object} medicamentMessageResponse
// @Failure 409 {object} respond.Body "Medicamento já cadastrado"
// @Failure 422 {object} respond.Body
// @Failure 502 {object} respond.Body
// @Router /medicaments [post]
func createMedicamentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Input
		if !respond.Decode(w, r, &req) {
			return
		}

		m, err := svc.Create(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, formcheck.ErrInvalid):
				respond.Invalid(w, formcheck.FieldErrors(err))
			case errors.Is(err, ErrConflict):
				respond.Message(w, http.StatusConflict, msgDuplicate)
			default:
				respond.Message(w, http.StatusBadGateway, respond.GenericFailure)
			}
			return
		}

		respond.JSON(w, http.StatusCreated, medicamentMessageResponse{Message: msgCreated, Medicament: m})
	}
}

// updateMedicamentHandler godoc
// @Summary Editar medicamento
// @Tags medicaments
// @Accept json
// @Produce json
// @Param medicamentID path int true "ID do medicamento"
// @Param payload body Input true "Cópia editada"
// @Success 200 {object} medicamentMessageResponse
// @Failure 422 {object} respond.Body
// @Failure 502 {object} respond.Body
// @Router /medicaments/{medicamentID} [put]
func updateMedicamentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		var req Input
		if !respond.Decode(w, r, &req) {
			return
		}

		m, err := svc.Update(r.Context(), id, req)
		if err != nil {
			switch {
			case errors.Is(err, formcheck.ErrInvalid):
				respond.Invalid(w, formcheck.FieldErrors(err))
			case errors.Is(err, ErrNotFound):
				respond.Message(w, http.StatusNotFound, msgNotFound)
			default:
				respond.Message(w, http.StatusBadGateway, msgUpdateFailed)
			}
			return
		}

		respond.JSON(w, http.StatusOK, medicamentMessageResponse{Message: msgUpdated, Medicament: m})
	}
}

// deleteMedicamentHandler godoc
// @Summary Excluir medicamento
// @Tags medicaments
// @Param medicamentID path int true "ID do medicamento"
// @Success 204
// @Failure 502 {object} respond.Body
// @Router /medicaments/{medicamentID} [delete]
func deleteMedicamentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				respond.Message(w, http.StatusNotFound, msgNotFound)
				return
			}
			respond.Message(w, http.StatusBadGateway, msgDeleteFailed)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "medicamentID"), 10, 64)
	if err != nil || id <= 0 {
		respond.Message(w, http.StatusBadRequest, "invalid medicament id")
		return 0, false
	}
	return id, true
}
