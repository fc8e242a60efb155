package accounts

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"remedio-solidario/internal/platform/formcheck"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrUpstream      = errors.New("backend failure")
)

// UsernameTakenMessage es el body literal con que el backend rechaza un nomeUsuario repetido.
const UsernameTakenMessage = "Nome de usuário já existe!"

var noDigitsRe = regexp.MustCompile(`^[^\d]+$`)

type Service struct {
	repo     Repository
	sessions SessionIssuer
}

func NewService(repo Repository, sessions SessionIssuer) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
	}
}

func (s *Service) Login(ctx context.Context, c Credentials) (Session, error) {
	c.Email = strings.TrimSpace(c.Email)
	if err := c.validate(); err != nil {
		return Session{}, err
	}

	u, err := s.repo.FindByCredentials(ctx, c)
	if err != nil {
		return Session{}, err
	}

	token, exp, err := s.sessions.Issue(u)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *Service) Register(ctx context.Context, r Registration) error {
	r.NomeUsuario = strings.TrimSpace(r.NomeUsuario)
	r.Email = strings.TrimSpace(r.Email)

	if err := r.validate(); err != nil {
		return err
	}
	return s.repo.RegisterUser(ctx, r)
}

var senhaRules = []validation.Rule{
	validation.Required.Error("A senha é obrigatória"),
	validation.RuneLength(6, 0).Error("A senha deve conter 6 digitos"),
}

func (c Credentials) validate() error {
	return formcheck.Collect(validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required.Error("O login é obrigatório")),
		validation.Field(&c.Senha, senhaRules...),
	))
}

func (r Registration) validate() error {
	return formcheck.Collect(validation.ValidateStruct(&r,
		validation.Field(&r.NomeUsuario,
			validation.Required.Error("O nome é obrigatório"),
			validation.Match(noDigitsRe).Error("Nome não pode conter números"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("O e-mail é obrigatório"),
			is.EmailFormat.Error("Digite um e-mail válido"),
		),
		validation.Field(&r.Senha, senhaRules...),
	))
}
