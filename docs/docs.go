// Package docs registra el documento OpenAPI servido en /swagger.
// Regenerar con: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Login",
                "description": "Consulta GET /cadastro?email&senha en el backend. Solo un 200 con un usuario es éxito; el usuario queda firmado en la cookie de sesión.\nUn 200 con body vacío o lista vacía responde 401 (no hay usuario para firmar). Un 200 con un body que no es un usuario responde 502.",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/accounts.Credentials"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Usuário não encontrado! (también 200 sin usuario)", "schema": {"$ref": "#/definitions/respond.Body"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/respond.Body"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/respond.Body"}}
                }
            }
        },
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Criar conta",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/accounts.Registration"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Nome de usuário já existe!", "schema": {"$ref": "#/definitions/respond.Body"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/respond.Body"}}
                }
            }
        },
        "/logout": {
            "post": {"tags": ["accounts"], "summary": "Logout", "responses": {"204": {"description": "No Content"}}}
        },
        "/me": {
            "get": {"produces": ["application/json"], "tags": ["accounts"], "summary": "Usuário logado", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/cep/{cep}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Buscar endereço por CEP",
                "parameters": [{"type": "string", "name": "cep", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/patients.Address"}}, "404": {"description": "Not Found"}, "422": {"description": "CEP incompleto"}}
            }
        },
        "/patients": {
            "get": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Listar pacientes",
                "parameters": [{"type": "integer", "name": "page", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Cadastrar paciente",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/patients.Patient"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Paciente já cadastrado"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/patients/{patientID}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Atualizar paciente",
                "parameters": [{"type": "integer", "name": "patientID", "in": "path", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/patients.Patient"}}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}, "502": {"description": "Erro ao atualizar paciente!"}}
            },
            "delete": {
                "tags": ["patients"],
                "summary": "Excluir paciente",
                "parameters": [{"type": "integer", "name": "patientID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/medicaments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["medicaments"],
                "summary": "Listar medicamentos",
                "parameters": [{"type": "integer", "name": "page", "in": "query"}, {"type": "string", "name": "tarja", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Tarja inválida"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["medicaments"],
                "summary": "Cadastrar medicamento",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/medicaments.Input"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Medicamento já cadastrado"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/medicaments/tarjas": {
            "get": {"produces": ["application/json"], "tags": ["medicaments"], "summary": "Tarjas disponíveis", "responses": {"200": {"description": "OK"}}}
        },
        "/medicaments/{medicamentID}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["medicaments"],
                "summary": "Atualizar medicamento",
                "parameters": [{"type": "integer", "name": "medicamentID", "in": "path", "required": true}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/medicaments.Input"}}],
                "responses": {"200": {"description": "OK"}, "502": {"description": "Erro ao atualizar medicamento!"}}
            },
            "delete": {
                "tags": ["medicaments"],
                "summary": "Excluir medicamento",
                "parameters": [{"type": "integer", "name": "medicamentID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/dispensation": {
            "get": {"produces": ["application/json"], "tags": ["dispensation"], "summary": "Dispensação em andamento", "responses": {"200": {"description": "OK"}}}
        },
        "/dispensation/options": {
            "get": {"produces": ["application/json"], "tags": ["dispensation"], "summary": "Pacientes e medicamentos para os selects", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}
        },
        "/dispensation/patient": {
            "put": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["dispensation"], "summary": "Selecionar paciente", "responses": {"200": {"description": "OK"}, "404": {"description": "Paciente não encontrado"}, "409": {"description": "Conflict"}}}
        },
        "/dispensation/items": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["dispensation"], "summary": "Adicionar medicamento", "responses": {"200": {"description": "OK"}, "409": {"description": "Este medicamento já foi adicionado."}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/dispensation/items/{medicamentID}": {
            "delete": {"produces": ["application/json"], "tags": ["dispensation"], "summary": "Remover medicamento da lista", "parameters": [{"type": "integer", "name": "medicamentID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/dispensation/submit": {
            "post": {"produces": ["application/json"], "tags": ["dispensation"], "summary": "Enviar dispensação", "responses": {"201": {"description": "Created"}, "409": {"description": "Envie novamente"}, "422": {"description": "Unprocessable Entity"}, "502": {"description": "Falha no sistema! Tente novamente"}}}
        },
        "/dispensation/receipt": {
            "get": {"produces": ["application/json"], "tags": ["dispensation"], "summary": "Recibo aberto", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"produces": ["application/json"], "tags": ["dispensation"], "summary": "Fechar recibo", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/dispensation/receipt/print": {
            "get": {"produces": ["text/html"], "tags": ["dispensation"], "summary": "Recibo para impressão", "responses": {"200": {"description": "HTML"}, "404": {"description": "Not Found"}}}
        }
    },
    "definitions": {
        "respond.Body": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "accounts.Credentials": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "senha": {"type": "string"}}
        },
        "accounts.Registration": {
            "type": "object",
            "properties": {"nomeUsuario": {"type": "string"}, "email": {"type": "string"}, "senha": {"type": "string"}}
        },
        "patients.Address": {
            "type": "object",
            "properties": {"cep": {"type": "string"}, "rua": {"type": "string"}, "bairro": {"type": "string"}, "cidade": {"type": "string"}, "uf": {"type": "string"}}
        },
        "patients.Patient": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "cpf": {"type": "string"},
                "nome": {"type": "string"},
                "rua": {"type": "string"},
                "numero": {"type": "string"},
                "bairro": {"type": "string"},
                "complemento": {"type": "string"},
                "cidade": {"type": "string"},
                "uf": {"type": "string"},
                "cep": {"type": "string"},
                "telefone": {"type": "string"}
            }
        },
        "medicaments.Input": {
            "type": "object",
            "properties": {
                "formula": {"type": "string"},
                "quantidade": {"type": "integer"},
                "tarja": {"type": "string", "enum": ["SEM_TARJA", "AMARELA", "VERMELHA", "PRETA"]},
                "vencimento": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Remédio Solidário API",
	Description:      "Pacientes, medicamentos e dispensações com recibo.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
