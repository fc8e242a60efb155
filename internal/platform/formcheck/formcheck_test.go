package formcheck

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

func (f loginForm) validate() error {
	return Collect(validation.ValidateStruct(&f,
		validation.Field(&f.Email,
			validation.Required.Error("O login é obrigatório"),
			is.EmailFormat.Error("Digite um e-mail válido"),
		),
		validation.Field(&f.Senha,
			validation.Required.Error("A senha é obrigatória"),
			validation.RuneLength(6, 0).Error("A senha deve conter 6 digitos"),
		),
	))
}

func TestCollect_OK(t *testing.T) {
	assert.NoError(t, loginForm{Email: "a@b.com", Senha: "123456"}.validate())
	assert.NoError(t, Collect(nil))
}

func TestCollect_FirstFailingRulePerField(t *testing.T) {
	err := loginForm{Senha: "123"}.validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	fe := FieldErrors(fmt.Errorf("login: %w", err))
	assert.Equal(t, map[string]string{
		"email": "O login é obrigatório",
		"senha": "A senha deve conter 6 digitos",
	}, fe)

	fe = FieldErrors(loginForm{Email: "ana@example", Senha: "ção123"}.validate())
	assert.Equal(t, map[string]string{"email": "Digite um e-mail válido"}, fe)
}

func TestCollect_KeysByJSONTag(t *testing.T) {
	form := struct {
		Codigo string `json:"codigo_postal"`
	}{Codigo: "12a"}

	err := Collect(validation.ValidateStruct(&form,
		validation.Field(&form.Codigo, validation.Match(regexp.MustCompile(`^\d+$`)).Error("bad")),
	))
	assert.Equal(t, map[string]string{"codigo_postal": "bad"}, FieldErrors(err))
}

func TestCollect_NonValidationErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	assert.Equal(t, boom, Collect(boom))
	assert.Nil(t, FieldErrors(boom))
	assert.False(t, errors.Is(Collect(boom), ErrInvalid))
}
