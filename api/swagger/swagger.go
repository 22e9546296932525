package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Barangay Document Requests API",
        "description": "Civil document request lifecycle, unified staff queue and notifications",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Authentication", "description": "Login and session info"},
        {"name": "DocumentRequests", "description": "Document request lifecycle and queue"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
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
                "tags": ["Authentication"],
                "summary": "Current user info",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/document-requests": {
            "get": {
                "tags": ["DocumentRequests"],
                "summary": "Unified document request queue, newest first",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Aggregation failed"}
                }
            }
        },
        "/document-requests/export": {
            "get": {
                "tags": ["DocumentRequests"],
                "summary": "Export the queue as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered file"},
                    "400": {"description": "Unsupported format"}
                }
            }
        },
        "/document-requests/barangay-clearance": {
            "post": {
                "tags": ["DocumentRequests"],
                "summary": "File a barangay clearance request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClearanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/document-requests/barangay-indigency": {
            "post": {
                "tags": ["DocumentRequests"],
                "summary": "File a certificate of indigency request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateIndigencyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/document-requests/business-clearance": {
            "post": {
                "tags": ["DocumentRequests"],
                "summary": "File a business clearance request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBusinessClearanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/document-requests/cedula": {
            "post": {
                "tags": ["DocumentRequests"],
                "summary": "File a community tax certificate request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCedulaRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/document-requests/{type}/{id}/status": {
            "patch": {
                "tags": ["DocumentRequests"],
                "summary": "Update the status of a document request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid status"},
                    "404": {"description": "Request not found"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateClearanceRequest": {
            "type": "object",
            "required": ["name", "contactNumber", "address", "purpose"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "contactNumber": {"type": "string"},
                "address": {"type": "string"},
                "purpose": {"type": "string"}
            }
        },
        "CreateIndigencyRequest": {
            "type": "object",
            "required": ["name", "contactNumber", "address", "purpose"],
            "properties": {
                "name": {"type": "string"},
                "contactNumber": {"type": "string"},
                "address": {"type": "string"},
                "purpose": {"type": "string"}
            }
        },
        "CreateBusinessClearanceRequest": {
            "type": "object",
            "required": ["ownerName", "businessName", "businessType", "businessNature", "ownerAddress", "contactNumber"],
            "properties": {
                "ownerName": {"type": "string"},
                "businessName": {"type": "string"},
                "businessType": {"type": "string"},
                "businessNature": {"type": "string"},
                "ownerAddress": {"type": "string"},
                "contactNumber": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "CreateCedulaRequest": {
            "type": "object",
            "required": ["name", "address", "dateOfBirth", "placeOfBirth", "civilStatus", "occupation"],
            "properties": {
                "name": {"type": "string"},
                "address": {"type": "string"},
                "dateOfBirth": {"type": "string", "format": "date-time"},
                "placeOfBirth": {"type": "string"},
                "civilStatus": {"type": "string"},
                "occupation": {"type": "string"},
                "tax": {"type": "number"}
            }
        },
        "UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["pending", "approved", "completed", "rejected"]}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
