package patients

import "strings"

// Patient es el registro de paciente tal como lo intercambia el backend.
type Patient struct {
	ID          int64  `json:"id"`
	CPF         string `json:"cpf"`
	Nome        string `json:"nome"`
	Rua         string `json:"rua"`
	Numero      string `json:"numero"`
	Bairro      string `json:"bairro"`
	Complemento string `json:"complemento"`
	Cidade      string `json:"cidade"`
	UF          string `json:"uf"`
	CEP         string `json:"cep"`
	Telefone    string `json:"telefone"`
}

// AddressLine arma el endereço en una sola línea: "rua, numero - bairro, cidade - uf, cep".
func (p Patient) AddressLine() string {
	return strings.TrimSpace(p.Rua) + ", " + strings.TrimSpace(p.Numero) +
		" - " + strings.TrimSpace(p.Bairro) + ", " + strings.TrimSpace(p.Cidade) +
		" - " + strings.TrimSpace(p.UF) + ", " + strings.TrimSpace(p.CEP)
}

// Address es lo que devuelve la consulta de CEP para autocompletar el formulario.
type Address struct {
	CEP    string `json:"cep"`
	Rua    string `json:"rua"`
	Bairro string `json:"bairro"`
	Cidade string `json:"cidade"`
	UF     string `json:"uf"`
}
