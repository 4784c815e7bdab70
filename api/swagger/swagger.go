package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Exemption Wizard Gateway",
        "description": "Gateway for the course exemption request wizard",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Mock student session"},
        {"name": "Catalog", "description": "Sections and teaching units"},
        {"name": "Dossiers", "description": "Exemption dossier wizard"},
        {"name": "Documents", "description": "Proof document uploads"},
        {"name": "Notifications", "description": "Transient per-student notifications"},
        {"name": "Exports", "description": "Dossier recaps"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in as a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current session student",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sections": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List target sections",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sections/{id}/units": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List the teaching units of a section",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/units/{code}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Fetch a teaching unit with its learning outcomes",
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dossiers": {
            "get": {
                "tags": ["Dossiers"],
                "summary": "List my dossiers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Dossiers"],
                "summary": "Create a new exemption dossier",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDossierRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dossiers/{id}": {
            "get": {
                "tags": ["Dossiers"],
                "summary": "Fetch a dossier with its derived wizard state",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown dossier"}
                }
            },
            "delete": {
                "tags": ["Dossiers"],
                "summary": "Delete a dossier before submission",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "409": {"description": "Already submitted"}
                }
            }
        },
        "/dossiers/{id}/courses": {
            "post": {
                "tags": ["Dossiers"],
                "summary": "Add an external course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseInput"}}
                ],
                "responses": {
                    "200": {"description": "Refetched dossier view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dossiers/{id}/documents": {
            "post": {
                "tags": ["Dossiers"],
                "summary": "Attach an uploaded document",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DocumentInput"}}
                ],
                "responses": {
                    "200": {"description": "Refetched dossier view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dossiers/{id}/documents/{docId}": {
            "delete": {
                "tags": ["Dossiers"],
                "summary": "Remove a document",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "docId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Refetched dossier view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dossiers/{id}/analysis": {
            "post": {
                "tags": ["Dossiers"],
                "summary": "Request the matching analysis",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Refetched dossier view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Analysis already in progress"},
                    "412": {"description": "Readiness conditions not met"}
                }
            }
        },
        "/dossiers/{id}/items": {
            "post": {
                "tags": ["Dossiers"],
                "summary": "Add an exemption line",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ItemInput"}}
                ],
                "responses": {
                    "200": {"description": "Refetched dossier view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dossiers/{id}/items/{itemId}": {
            "delete": {
                "tags": ["Dossiers"],
                "summary": "Remove an exemption line",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "itemId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Refetched dossier view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dossiers/{id}/advance": {
            "post": {
                "tags": ["Dossiers"],
                "summary": "Validate the review to summary transition",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Advance allowed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Missing items or orphan courses"}
                }
            }
        },
        "/dossiers/{id}/submit": {
            "post": {
                "tags": ["Dossiers"],
                "summary": "Submit the dossier for review",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitRequest"}}
                ],
                "responses": {
                    "200": {"description": "Refetched dossier view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "428": {"description": "Confirmation flag missing"}
                }
            }
        },
        "/dossiers/{id}/history": {
            "get": {
                "tags": ["Dossiers"],
                "summary": "List the gateway audit trail for a dossier",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/uploads": {
            "post": {
                "tags": ["Documents"],
                "summary": "Upload a proof document",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Stored", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/documents/{token}": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download a stored document through its signed link",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List my notifications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/{id}": {
            "delete": {
                "tags": ["Notifications"],
                "summary": "Dismiss a notification",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Dismissed"}
                }
            }
        },
        "/exports/dossiers": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download my dossier list as CSV",
                "responses": {
                    "200": {"description": "CSV stream"}
                }
            }
        },
        "/exports/dossiers/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a PDF recap of a dossier",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF stream"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateDossierRequest": {
            "type": "object",
            "properties": {
                "sectionId": {"type": "string"},
                "academicYear": {"type": "string"},
                "motivation": {"type": "string"}
            }
        },
        "CourseInput": {
            "type": "object",
            "properties": {
                "institution": {"type": "string"},
                "code": {"type": "string"},
                "title": {"type": "string"},
                "ects": {"type": "number"},
                "grade": {"type": "string"},
                "yearObtained": {"type": "integer"}
            }
        },
        "DocumentInput": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["BULLETIN", "PROGRAMME", "MOTIVATION", "OTHER"]},
                "name": {"type": "string"},
                "url": {"type": "string"},
                "courseId": {"type": "string"}
            }
        },
        "ItemInput": {
            "type": "object",
            "properties": {
                "courseIds": {"type": "array", "items": {"type": "string"}},
                "unitCode": {"type": "string"}
            }
        },
        "SubmitRequest": {
            "type": "object",
            "properties": {
                "confirm": {"type": "boolean"}
            }
        },
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
