// Package docs registra la descripción OpenAPI que sirve /swagger/*.
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
        "/health": {"get": {"summary": "Liveness", "responses": {"200": {"description": "ok"}}}},
        "/auth/login": {"post": {"summary": "Start OAuth sign-in; returns the redirect URL", "responses": {"200": {"description": "url"}, "501": {"description": "unsupported by backend"}}}},
        "/auth/email": {"post": {"summary": "Send an e-mail sign-in link", "responses": {"202": {"description": "sent"}}}},
        "/auth/callback": {"get": {"summary": "Complete e-mail link sign-in", "parameters": [{"name": "token", "in": "query", "required": true, "type": "string"}], "responses": {"200": {"description": "session token"}}}},
        "/auth/session": {"post": {"summary": "Hand an OAuth access token to the backend and reload", "responses": {"200": {"description": "state"}}}},
        "/auth/demo": {"post": {"summary": "Switch to the in-memory demo session", "responses": {"200": {"description": "state"}}}},
        "/auth/logout": {"post": {"summary": "Sign out and clear state", "responses": {"204": {"description": "signed out"}}}},
        "/session/load": {"post": {"summary": "Reload all data for the current identity", "responses": {"200": {"description": "state"}, "502": {"description": "backend error"}}}},
        "/state": {"get": {"summary": "Current state snapshot", "responses": {"200": {"description": "state"}}}},
        "/breeds": {"get": {"summary": "Breed catalog", "responses": {"200": {"description": "breeds"}}}},
        "/vaccines/schedule": {"get": {"summary": "Core vaccine schedule", "responses": {"200": {"description": "doses"}}}},
        "/dashboard": {"get": {"summary": "Active pet dashboard", "responses": {"200": {"description": "dashboard"}, "404": {"description": "no active pet"}}}},
        "/report": {"get": {"summary": "Monthly report for the active pet", "responses": {"200": {"description": "report"}}}},
        "/uploads/{kind}": {"post": {"summary": "Encode an uploaded image (cat, tip, attachment)", "responses": {"201": {"description": "url"}}}},
        "/cats": {"post": {"summary": "Add a pet", "responses": {"201": {"description": "pet"}}}},
        "/cats/{id}": {"patch": {"summary": "Update a pet", "responses": {"200": {"description": "pet"}}}, "delete": {"summary": "Delete a pet and its records", "responses": {"204": {"description": "deleted"}}}},
        "/cats/{id}/select": {"post": {"summary": "Make a pet the active one", "responses": {"200": {"description": "pet"}}}},
        "/logs": {"post": {"summary": "Add a health log", "responses": {"201": {"description": "entry"}}}},
        "/logs/{id}": {"patch": {"summary": "Update a health log", "responses": {"204": {"description": "updated"}}}, "delete": {"summary": "Delete a health log", "responses": {"204": {"description": "deleted"}}}},
        "/todos": {"post": {"summary": "Add a todo", "responses": {"201": {"description": "todo"}}}},
        "/todos/{id}/toggle": {"post": {"summary": "Toggle a todo", "responses": {"204": {"description": "toggled"}}}},
        "/todos/{id}": {"delete": {"summary": "Delete a todo", "responses": {"204": {"description": "deleted"}}}},
        "/home-checks": {"post": {"summary": "Add a home check", "responses": {"201": {"description": "check"}}}},
        "/home-checks/{id}": {"patch": {"summary": "Update a home check", "responses": {"204": {"description": "updated"}}}, "delete": {"summary": "Delete a home check", "responses": {"204": {"description": "deleted"}}}},
        "/appointments": {"post": {"summary": "Add an appointment", "responses": {"201": {"description": "appointment"}}}},
        "/appointments/{id}": {"patch": {"summary": "Update an appointment", "responses": {"204": {"description": "updated"}}}, "delete": {"summary": "Delete an appointment", "responses": {"204": {"description": "deleted"}}}},
        "/medications": {"post": {"summary": "Add a medication", "responses": {"201": {"description": "medication"}}}},
        "/medications/{id}": {"patch": {"summary": "Update a medication", "responses": {"204": {"description": "updated"}}}, "delete": {"summary": "Delete a medication", "responses": {"204": {"description": "deleted"}}}},
        "/tips": {"post": {"summary": "Add a health tip (admin)", "responses": {"201": {"description": "tip"}, "403": {"description": "forbidden"}}}},
        "/tips/{id}": {"patch": {"summary": "Update a health tip (admin)", "responses": {"204": {"description": "updated"}}}, "delete": {"summary": "Delete a health tip (admin)", "responses": {"204": {"description": "deleted"}}}},
        "/admin/profiles": {"get": {"summary": "List accounts (admin)", "responses": {"200": {"description": "profiles"}}}},
        "/admin/profiles/{id}/admin": {"put": {"summary": "Grant or revoke admin (admin)", "responses": {"204": {"description": "updated"}}}},
        "/admin/stats": {"get": {"summary": "Row counts (admin)", "responses": {"200": {"description": "stats"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "cat-lifecycle API",
	Description:      "Local JSON surface over the cat health-lifecycle store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
