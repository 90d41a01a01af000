// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new account", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Account registered and token issued"}, "400": {"description": "Invalid input"}, "409": {"description": "Email already registered"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "Authenticated and token issued"}, "401": {"description": "Invalid credentials"}, "423": {"description": "Account locked"}}}},
        "/session": {"get": {"tags": ["auth"], "summary": "Get session", "produces": ["application/json"], "responses": {"200": {"description": "Resolved session"}}}},
        "/client-config": {"get": {"tags": ["config"], "summary": "Get client configuration", "produces": ["application/json"], "responses": {"200": {"description": "Project configuration"}}}},
        "/profile": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Get profile", "produces": ["application/json"], "responses": {"200": {"description": "User profile"}, "401": {"description": "Unauthorized"}, "404": {"description": "Profile not found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Update profile", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "Updated profile"}, "400": {"description": "Invalid input"}}}
        },
        "/goals": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "List savings goals", "produces": ["application/json"], "responses": {"200": {"description": "Goals"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Create savings goal", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Goal created"}, "400": {"description": "Invalid input"}}}
        },
        "/goals/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Get savings goal", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Goal"}, "404": {"description": "Goal not found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Update savings goal", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Goal updated"}, "404": {"description": "Goal not found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Delete savings goal", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "boolean", "name": "confirm", "in": "query", "required": true}], "responses": {"200": {"description": "Remaining goals"}, "404": {"description": "Goal not found"}, "428": {"description": "Confirmation required"}}}
        },
        "/expenses": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "List expenses", "parameters": [{"type": "integer", "name": "page", "in": "query"}, {"type": "integer", "name": "page_size", "in": "query"}], "responses": {"200": {"description": "Paginated expenses"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "Create expense", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Expense recorded"}, "400": {"description": "Invalid input"}}}
        },
        "/analysis": {"get": {"security": [{"BearerAuth": []}], "tags": ["analysis"], "summary": "Get spending analysis", "produces": ["application/json"], "responses": {"200": {"description": "Profile and analysis"}}}},
        "/advice": {"post": {"security": [{"BearerAuth": []}], "tags": ["analysis"], "summary": "Get personalised advice", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "Advice text"}, "502": {"description": "Advice unavailable"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "finboard API",
	Description:      "Personal finance dashboard: savings goals, expenses, salary and budget profile, and AI spending analysis.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
