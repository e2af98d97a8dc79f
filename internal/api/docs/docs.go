// Package docs registers the OpenAPI document served under /swagger.
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
        "/auth/sign-up": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign up",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentialsRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/sessionResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/sign-out": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {
                    "204": {"description": "No Content"},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/session": {
            "get": {
                "tags": ["auth"],
                "summary": "Current session",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/sessionResponse"}}}
            }
        },
        "/tasks": {
            "get": {
                "tags": ["tasks"],
                "summary": "List tasks",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/taskListResponse"}}}
            },
            "post": {
                "tags": ["tasks"],
                "summary": "Create a task",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createTaskRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/taskResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/tasks/reload": {
            "post": {
                "tags": ["tasks"],
                "summary": "Reload tasks from the backend",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/taskListResponse"}}}
            }
        },
        "/tasks/filter": {
            "put": {
                "tags": ["tasks"],
                "summary": "Change the visible subset",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/filterRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/taskListResponse"}}}
            }
        },
        "/tasks/{id}": {
            "patch": {
                "tags": ["tasks"],
                "summary": "Edit a task",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/updateTaskRequest"}}
                ],
                "responses": {"204": {"description": "No Content"}}
            },
            "delete": {
                "tags": ["tasks"],
                "summary": "Delete a task",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/tasks/{id}/toggle": {
            "post": {
                "tags": ["tasks"],
                "summary": "Toggle completion",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/events": {
            "get": {
                "tags": ["events"],
                "summary": "Subscribe to state changes",
                "produces": ["text/event-stream"],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "credentialsRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "identity": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "email": {"type": "string"}}
        },
        "sessionResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "loading": {"type": "boolean"},
                "user": {"$ref": "#/definitions/identity"},
                "expires_at": {"type": "string"}
            }
        },
        "createTaskRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "priority": {"type": "string", "enum": ["Low", "Medium", "High"]}
            }
        },
        "updateTaskRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "completed": {"type": "boolean"},
                "priority": {"type": "string", "enum": ["Low", "Medium", "High"]}
            }
        },
        "filterRequest": {
            "type": "object",
            "required": ["filter"],
            "properties": {"filter": {"type": "string", "enum": ["All", "Active", "Completed"]}}
        },
        "taskResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "completed": {"type": "boolean"},
                "priority": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "taskListResponse": {
            "type": "object",
            "properties": {
                "tasks": {"type": "array", "items": {"$ref": "#/definitions/taskResponse"}},
                "filter": {"type": "string"},
                "loading": {"type": "boolean"},
                "error": {"type": "string"},
                "empty_hint": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds the exported Swagger metadata.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Taskboard API",
	Description:      "Local API backing the taskboard UI: session, task collection and live state stream.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
