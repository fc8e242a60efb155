package patients

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
	msgCreated       = "Paciente cadastrado com sucesso!"
	msgDuplicate     = "Paciente já cadastrado"
	msgUpdated       = "Dados atualizados com sucesso!"
	msgUpdateFailed  = "Erro ao atualizar paciente!"
	msgDeleteFailed  = "Erro ao excluir paciente!"
	msgNotFound      = "Paciente não encontrado"
	msgIncompleteCEP = "CEP deve conter 8 dígitos"
	msgCEPFailed     = "Erro ao buscar CEP"
)

// RegisterRoutes monta /patients. Se espera que el router lo monte detrás de sesión.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Get("/", listPatientsHandler(svc))
		pr.Post("/", createPatientHandler(svc))
		pr.Put("/{patientID}", updatePatientHandler(svc))
		pr.Delete("/{patientID}", deletePatientHandler(svc))
	})
}

// RegisterPublicRoutes monta la consulta de CEP (no requiere sesión).
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Get("/cep/{cep}", lookupCEPHandler(svc))
}

type patientMessageResponse struct {
	Message string  `json:"message"`
	Patient Patient `json:"patient"`
}

// addressResponse trae los campos a autocompletar y el próximo campo a enfocar.
type addressResponse struct {
	Address
	Focus string `json:"focus"`
}

// listPatientsHandler godoc
// @Summary Listar pacientes
// @Description Carga la lista completa del backend y devuelve la página pedida (5 por página).
// @Tags patients
// @Produce json
// @Param page query int false "Página (1-based)"
// @Success 200 {object} pagination.Page[Patient]
// @Failure 401 {object} respond.Body
// @Failure 502 {object} respond.Body
// @Router /patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			respond.Message(w, http.StatusBadGateway, respond.GenericFailure)
			return
		}
		respond.JSON(w, http.StatusOK, pagination.Paginate(items, pagination.PageFromRequest(r), pagination.DefaultPageSize))
	}
}

// createPatientHandler godoc
// @Summary Cadastrar paciente
// @Description Aplica máscaras de CPF/telefone, valida y envía al backend.
// @Tags patients
// @Accept json
// @Produce json
// @Param payload body Patient true "Dados do paciente"
// @Success 201 {object} patientMessageResponse
// @Failure 409 {object} respond.Body "Paciente já cadastrado"
// @Failure 422 {object} respond.Body
// @Failure 502 {object} respond.Body
// @Router /patients [post]
func createPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Patient
		if !respond.Decode(w, r, &req) {
			return
		}

		p, err := svc.Create(r.Context(), req)
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

		respond.JSON(w, http.StatusCreated, patientMessageResponse{Message: msgCreated, Patient: p})
	}
}

// updatePatientHandler godoc
// @Summary Editar paciente
// @Tags patients
// @Accept json
// @Produce json
// @Param patientID path int true "ID do paciente"
// @Param payload body Patient true "Cópia editada"
// @Success 200 {object} patientMessageResponse
// @Failure 422 {object} respond.Body
// @Failure 502 {object} respond.Body "Erro ao atualizar paciente!"
// @Router /patients/{patientID} [put]
func updatePatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		var req Patient
		if !respond.Decode(w, r, &req) {
			return
		}

		p, err := svc.Update(r.Context(), id, req)
		if err != nil {
			switch {
			case errors.Is(err, formcheck.ErrInvalid):
				respond.Invalid(w, formcheck.FieldErrors(err))
			case errors.Is(err, ErrNotFound):
				respond.Message(w, http.StatusNotFound, msgNotFound)
			case errors.Is(err, ErrConflict):
				respond.Message(w, http.StatusConflict, msgDuplicate)
			default:
				respond.Message(w, http.StatusBadGateway, msgUpdateFailed)
			}
			return
		}

		respond.JSON(w, http.StatusOK, patientMessageResponse{Message: msgUpdated, Patient: p})
	}
}

// deletePatientHandler godoc
// @Summary Excluir paciente
// @Tags patients
// @Param patientID path int true "ID do paciente"
// @Success 204
// @Failure 502 {object} respond.Body
// @Router /patients/{patientID} [delete]
func deletePatientHandler(svc *Service) http.HandlerFunc {
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

// lookupCEPHandler godoc
// @Summary Consultar CEP
// @Description Con exactamente 8 dígitos consulta ViaCEP y devuelve rua/bairro/cidade/uf para autocompletar; focus indica el próximo campo.
// @Tags patients
// @Produce json
// @Param cep path string true "CEP (com ou sem hífen)"
// @Success 200 {object} addressResponse
// @Failure 422 {object} respond.Body
// @Failure 502 {object} respond.Body
// @Router /cep/{cep} [get]
func lookupCEPHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr, err := svc.LookupAddress(r.Context(), chi.URLParam(r, "cep"))
		if err != nil {
			switch {
			case errors.Is(err, ErrIncompleteCEP):
				respond.Message(w, http.StatusUnprocessableEntity, msgIncompleteCEP)
			case errors.Is(err, ErrNotFound):
				respond.Message(w, http.StatusNotFound, msgCEPFailed)
			default:
				respond.Message(w, http.StatusBadGateway, msgCEPFailed)
			}
			return
		}
		respond.JSON(w, http.StatusOK, addressResponse{Address: addr, Focus: "numero"})
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "patientID"), 10, 64)
	if err != nil || id <= 0 {
		respond.Message(w, http.StatusBadRequest, "invalid patient id")
		return 0, false
	}
	return id, true
}
