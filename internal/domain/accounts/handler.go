package accounts

import (
	"errors"
	"net/http"
	"time"

	"remedio-solidario/internal/middleware"
	"remedio-solidario/internal/platform/formcheck"
	"remedio-solidario/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

const (
	msgWelcome        = "Seja bem-vindo(a)!"
	msgUserNotFound   = "Usuário não encontrado!"
	msgRegistered     = "Usuário cadastrado com sucesso!"
	msgRegisterFailed = "Erro ao cadastrar o usuário. Tente novamente."

	// HomeRoute es la vista a la que se redirige tras el login.
	HomeRoute = "/home/paciente"
	// RedirectDelay es la espera antes de redirigir tras el login.
	RedirectDelay = 1500 * time.Millisecond
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/login", loginHandler(svc))
	r.Post("/register", registerHandler(svc))
	r.Post("/logout", logoutHandler())
}

// RegisterSessionRoutes monta las rutas que requieren sesión.
func RegisterSessionRoutes(r chi.Router) {
	r.Get("/me", meHandler())
}

type loginResponse struct {
	Message         string    `json:"message"`
	User            User      `json:"user"`
	Token           string    `json:"token"`
	ExpiresAt       time.Time `json:"expires_at"`
	Redirect        string    `json:"redirect"`
	RedirectAfterMS int64     `json:"redirect_after_ms"`
}

type registerResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

type meResponse struct {
	ID    string `json:"id"`
	Name  string `json:"nomeUsuario"`
	Email string `json:"email"`
}

// loginHandler godoc
// @Summary Login
// @Description Consulta GET /cadastro?email&senha en el backend. Solo un 200 con un usuario es éxito; el usuario queda firmado en la cookie de sesión.
// @Description Un 200 con body vacío o lista vacía responde 401 (no hay usuario para firmar). Un 200 con un body que no es un usuario responde 502.
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body Credentials true "Credenciais"
// @Success 200 {object} loginResponse
// @Failure 401 {object} respond.Body "Usuário não encontrado!"
// @Failure 422 {object} respond.Body
// @Failure 502 {object} respond.Body
// @Router /login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Credentials
		if !respond.Decode(w, r, &req) {
			return
		}

		sess, err := svc.Login(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, formcheck.ErrInvalid):
				respond.Invalid(w, formcheck.FieldErrors(err))
			case errors.Is(err, ErrUserNotFound):
				respond.Message(w, http.StatusUnauthorized, msgUserNotFound)
			default:
				respond.Message(w, http.StatusBadGateway, respond.GenericFailure)
			}
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    sess.Token,
			Path:     "/",
			Expires:  sess.ExpiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		respond.JSON(w, http.StatusOK, loginResponse{
			Message:         msgWelcome,
			User:            sess.User,
			Token:           sess.Token,
			ExpiresAt:       sess.ExpiresAt,
			Redirect:        HomeRoute,
			RedirectAfterMS: RedirectDelay.Milliseconds(),
		})
	}
}

// registerHandler godoc
// @Summary Criar conta
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body Registration true "Dados da conta"
// @Success 201 {object} registerResponse
// @Failure 409 {object} respond.Body "Nome de usuário já existe!"
// @Failure 422 {object} respond.Body
// @Failure 502 {object} respond.Body
// @Router /register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Registration
		if !respond.Decode(w, r, &req) {
			return
		}

		if err := svc.Register(r.Context(), req); err != nil {
			switch {
			case errors.Is(err, formcheck.ErrInvalid):
				respond.Invalid(w, formcheck.FieldErrors(err))
			case errors.Is(err, ErrUsernameTaken):
				respond.Message(w, http.StatusConflict, UsernameTakenMessage)
			default:
				respond.Message(w, http.StatusBadGateway, msgRegisterFailed)
			}
			return
		}

		respond.JSON(w, http.StatusCreated, registerResponse{Message: msgRegistered, Redirect: "/"})
	}
}

// logoutHandler godoc
// @Summary Logout
// @Tags accounts
// @Success 204
// @Router /logout [post]
func logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// meHandler godoc
// @Summary Usuário logado
// @Tags accounts
// @Produce json
// @Success 200 {object} meResponse
// @Failure 401 {object} respond.Body
// @Router /me [get]
func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		respond.JSON(w, http.StatusOK, meResponse{ID: claims.UserID, Name: claims.Name, Email: claims.Email})
	}
}
