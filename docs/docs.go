// Package docs registers the OpenAPI document served at /swagger/*.
// Regenerate with `swag init -g cmd/svue-api/main.go`.
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
        "/akey": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["meta"],
                "summary": "Current edupointkeyversion",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/grades": {
            "get": {
                "security": [{"BasicAuth": []}, {"BearerToken": []}],
                "description": "Classes, categories and assignments for the current or requested reporting period.",
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Get the gradebook",
                "parameters": [
                    {"type": "integer", "description": "Reporting period index", "name": "report_period", "in": "query"},
                    {"type": "string", "description": "District ID or host (Basic auth only)", "name": "X-District", "in": "header"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/domain.Gradebook"},
                        "headers": {"Set-Token": {"type": "string", "description": "Refreshed bearer token"}}
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/documents": {
            "get": {
                "security": [{"BasicAuth": []}, {"BearerToken": []}],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "List student documents",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Document"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/document": {
            "get": {
                "security": [{"BasicAuth": []}, {"BearerToken": []}],
                "description": "PDFs are served inline, anything else as an attachment.",
                "produces": ["application/pdf", "application/octet-stream"],
                "tags": ["documents"],
                "summary": "Download a document",
                "parameters": [
                    {"type": "string", "description": "Document GU", "name": "gu", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/student": {
            "get": {
                "security": [{"BasicAuth": []}, {"BearerToken": []}],
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Get student information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.StudentInfo"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/photo": {
            "get": {
                "security": [{"BasicAuth": []}, {"BearerToken": []}],
                "produces": ["image/png"],
                "tags": ["student"],
                "summary": "Get the student photo",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/school": {
            "get": {
                "security": [{"BasicAuth": []}, {"BearerToken": []}],
                "produces": ["application/json"],
                "tags": ["school"],
                "summary": "Get school information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SchoolInfo"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/districts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["districts"],
                "summary": "List known districts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.districtListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/districts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["districts"],
                "summary": "Get a district",
                "parameters": [
                    {"type": "string", "description": "District ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.districtResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/admin/districts": {
            "post": {
                "security": [{"AdminJWT": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Register a district",
                "parameters": [
                    {"description": "District", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerDistrictRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.districtResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/admin/districts/{id}": {
            "delete": {
                "security": [{"AdminJWT": []}],
                "tags": ["admin"],
                "summary": "Remove a district",
                "parameters": [
                    {"type": "string", "description": "District ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.districtResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "host": {"type": "string"},
                "state": {"type": "string"}
            }
        },
        "handler.districtListResponse": {
            "type": "object",
            "properties": {
                "districts": {"type": "array", "items": {"$ref": "#/definitions/handler.districtResponse"}}
            }
        },
        "handler.registerDistrictRequest": {
            "type": "object",
            "required": ["host", "id"],
            "properties": {
                "id": {"type": "string", "maxLength": 64},
                "name": {"type": "string", "maxLength": 128},
                "host": {"type": "string"},
                "state": {"type": "string"}
            }
        },
        "domain.Gradebook": {
            "type": "object",
            "properties": {
                "classes": {"type": "array", "items": {"$ref": "#/definitions/domain.Class"}},
                "report_period": {"type": "integer"},
                "reporting_periods": {"type": "array", "items": {"$ref": "#/definitions/domain.ReportingPeriod"}}
            }
        },
        "domain.ReportingPeriod": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"}
            }
        },
        "domain.Class": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "teacher": {"type": "string"},
                "category": {"type": "string"},
                "grade": {"type": "number"},
                "letter_grade": {"type": "string"},
                "categories": {"type": "object", "additionalProperties": {"$ref": "#/definitions/domain.Category"}},
                "assignments": {"type": "array", "items": {"$ref": "#/definitions/domain.Assignment"}}
            }
        },
        "domain.Category": {
            "type": "object",
            "properties": {
                "weight": {"type": "number"},
                "points_earned": {"type": "number"},
                "points_possible": {"type": "number"}
            }
        },
        "domain.Assignment": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "kind": {"type": "string"},
                "points_earned": {"type": "number", "x-nullable": true},
                "points_possible": {"type": "number"},
                "date": {"type": "string"},
                "due_date": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "domain.Document": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "file_name": {"type": "string"},
                "date": {"type": "string"},
                "gu": {"type": "string"}
            }
        },
        "domain.StudentInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "id": {"type": "string"},
                "gender": {"type": "string"},
                "grade": {"type": "string"},
                "address": {"type": "string"},
                "birth_date": {"type": "string"},
                "email": {"type": "string"},
                "phone_number": {"type": "string"},
                "emergency_contacts": {"type": "array", "items": {"$ref": "#/definitions/domain.Contact"}},
                "physician": {"$ref": "#/definitions/domain.Doctor"},
                "dentist": {"$ref": "#/definitions/domain.Doctor"},
                "school": {"type": "string"}
            }
        },
        "domain.Contact": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "relation": {"type": "string"},
                "phone_numbers": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.Doctor": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "workplace": {"type": "string"},
                "phone_number": {"type": "string"}
            }
        },
        "domain.SchoolInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "principal": {"type": "string"},
                "principal_email": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "zip_code": {"type": "string"},
                "phone_number": {"type": "string"},
                "website": {"type": "string"},
                "staff": {"type": "array", "items": {"$ref": "#/definitions/domain.StaffInfo"}}
            }
        },
        "domain.StaffInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "job_title": {"type": "string"},
                "email": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"},
        "BearerToken": {"type": "apiKey", "name": "Authorization", "in": "header"},
        "AdminJWT": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "StudentVue API",
	Description:      "JSON gateway in front of district StudentVue web services.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
