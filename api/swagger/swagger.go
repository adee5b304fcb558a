package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CT Supera Web Gateway",
        "description": "Gateway for the CT Supera volleyball academy web client.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "in": "header",
            "name": "Authorization"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Login, logout and session introspection"},
        {"name": "Planos", "description": "Plan catalog"},
        {"name": "PreCadastros", "description": "Lead capture and pre-registrations"},
        {"name": "Matriculas", "description": "Enrollment form flow"},
        {"name": "Usuarios", "description": "Account administration"},
        {"name": "Turmas", "description": "Class groups and rosters"},
        {"name": "CTs", "description": "Training centers"},
        {"name": "Presencas", "description": "Attendance check-in"},
        {"name": "Financeiro", "description": "Dues, expenses, salaries and PIX"},
        {"name": "Contratos", "description": "Enrollment contract documents"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate with CPF and password",
                "responses": {
                    "200": {"description": "Session token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "End the current session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Session ended"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Describe the current session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Session details", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planos": {
            "get": {
                "tags": ["Planos"],
                "summary": "List the plan catalog",
                "responses": {
                    "200": {"description": "Plans ordered by weekly frequency", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/precadastros": {
            "get": {
                "tags": ["PreCadastros"],
                "summary": "List pre-registrations",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Pre-registrations", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["PreCadastros"],
                "summary": "Capture a new lead",
                "responses": {
                    "201": {"description": "Lead created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/precadastros/{id}/matricula": {
            "post": {
                "tags": ["Matriculas"],
                "summary": "Open an enrollment form for a pre-registration",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "201": {"description": "Form seeded with defaults", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already enrolled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/matriculas/{formId}": {
            "get": {
                "tags": ["Matriculas"],
                "summary": "Read an open enrollment form",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "formId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Form with computed totals", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "patch": {
                "tags": ["Matriculas"],
                "summary": "Apply partial edits to the form",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "formId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated form", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Matriculas"],
                "summary": "Discard the form",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "formId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Form discarded"}
                }
            }
        },
        "/matriculas/{formId}/plano": {
            "put": {
                "tags": ["Matriculas"],
                "summary": "Select a plan, truncating the day selection to its quota",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "formId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated form", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/matriculas/{formId}/dias": {
            "put": {
                "tags": ["Matriculas"],
                "summary": "Toggle a weekday, enforcing the plan quota",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "formId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated form", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Quota exceeded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/matriculas/{formId}/confirmar": {
            "post": {
                "tags": ["Matriculas"],
                "summary": "Submit the enrollment to the upstream API",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "formId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Enrollment confirmed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Submission already in flight", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/usuarios": {
            "get": {
                "tags": ["Usuarios"],
                "summary": "List accounts",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Accounts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Usuarios"],
                "summary": "Create an account",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Account created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/turmas": {
            "get": {
                "tags": ["Turmas"],
                "summary": "List class groups",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Class groups", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Turmas"],
                "summary": "Create a class group",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Class group created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/turmas/{id}/checkin": {
            "get": {
                "tags": ["Presencas"],
                "summary": "Load today's roll call for a class group",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Roll call state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Presencas"],
                "summary": "Record today's roll call",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "201": {"description": "Attendance recorded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already recorded today", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/financeiro/mensalidades": {
            "get": {
                "tags": ["Financeiro"],
                "summary": "List dues",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "aluno", "in": "query", "type": "integer"},
                    {"name": "ct", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "mes_referencia", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Dues", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Financeiro"],
                "summary": "Create a due",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Due created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/financeiro/mensalidades/{id}/pix": {
            "post": {
                "tags": ["Financeiro"],
                "summary": "Generate a PIX charge for a due",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "201": {"description": "PIX charge", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/financeiro/pix/{id}/aguardar": {
            "get": {
                "tags": ["Financeiro"],
                "summary": "Wait for a PIX charge to settle or expire",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Final PIX outcome", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/contratos": {
            "post": {
                "tags": ["Contratos"],
                "summary": "Queue an enrollment contract for rendering",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "202": {"description": "Contract queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/contratos/download": {
            "get": {
                "tags": ["Contratos"],
                "summary": "Download a rendered contract with a signed token",
                "parameters": [
                    {"name": "token", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF document"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
