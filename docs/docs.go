// Package docs holds the Swagger description served at /swagger/.
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
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Server is running"}
                }
            }
        },
        "/cocoon": {
            "get": {
                "tags": ["cocoon"],
                "summary": "List cocoon rates",
                "description": "All cocoon rates, newest date first, then by location",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.CocoonRate"}}}
                }
            }
        },
        "/cocoon/locations": {
            "get": {
                "tags": ["cocoon"],
                "summary": "Per-location cocoon summary",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.LocationSummary"}}}
                }
            }
        },
        "/cocoon/monthly": {
            "get": {
                "tags": ["cocoon"],
                "summary": "Monthly average cocoon prices",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "enum": ["highest", "average", "minimum"], "default": "average", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.MonthlyPrice"}}}
                }
            }
        },
        "/cocoon/{id}": {
            "get": {
                "tags": ["cocoon"],
                "summary": "Get cocoon rate by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.CocoonRate"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/silk": {
            "get": {
                "tags": ["silk"],
                "summary": "List silk prices",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.SilkPrice"}}}
                }
            }
        },
        "/silk/locations": {
            "get": {
                "tags": ["silk"],
                "summary": "Latest silk price per location",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.SilkPrice"}}}
                }
            }
        },
        "/silk/{id}": {
            "get": {
                "tags": ["silk"],
                "summary": "Get silk price by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.SilkPrice"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/calculator": {
            "post": {
                "tags": ["calculator"],
                "summary": "Profit or loss of reeling a cocoon purchase",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.CalculatorRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.CalculatorResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ValidationErrorResponse"}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Check the admin credential",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/admin/cocoon": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Record a cocoon rate",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.CreateCocoonRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ValidationErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/admin/cocoon/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Update a cocoon rate",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.UpdateCocoonRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Delete a cocoon rate",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/admin/silk": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Record a silk price",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.CreateSilkRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ValidationErrorResponse"}}
                }
            }
        },
        "/admin/silk/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Update a silk price",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.UpdateSilkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Delete a silk price",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entities.CocoonRate": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "location": {"type": "string"},
                "date": {"type": "string", "example": "2024-01-15"},
                "max_price": {"type": "number"},
                "avg_price": {"type": "number"},
                "min_price": {"type": "number"},
                "quantity": {"type": "number"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "entities.SilkPrice": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "location": {"type": "string"},
                "price": {"type": "number"},
                "date": {"type": "string", "example": "2024-01-15"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "entities.LocationSummary": {
            "type": "object",
            "properties": {
                "location": {"type": "string"},
                "highest_price": {"type": "number"},
                "average_price": {"type": "number"},
                "minimum_price": {"type": "number"},
                "total_quantity": {"type": "number"},
                "lot_count": {"type": "integer"}
            }
        },
        "entities.MonthlyPrice": {
            "type": "object",
            "properties": {
                "month": {"type": "string", "example": "2024-01"},
                "location": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "entities.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "ports.CreateCocoonRequest": {
            "type": "object",
            "required": ["location", "date", "max_price", "avg_price", "min_price", "quantity"],
            "properties": {
                "location": {"type": "string"},
                "date": {"type": "string", "example": "2024-01-15"},
                "max_price": {"type": "number", "minimum": 0},
                "avg_price": {"type": "number", "minimum": 0},
                "min_price": {"type": "number", "minimum": 0},
                "quantity": {"type": "number", "minimum": 0}
            }
        },
        "ports.UpdateCocoonRequest": {
            "type": "object",
            "properties": {
                "location": {"type": "string"},
                "date": {"type": "string"},
                "max_price": {"type": "number", "minimum": 0},
                "avg_price": {"type": "number", "minimum": 0},
                "min_price": {"type": "number", "minimum": 0},
                "quantity": {"type": "number", "minimum": 0}
            }
        },
        "ports.CreateSilkRequest": {
            "type": "object",
            "required": ["location", "price", "date"],
            "properties": {
                "location": {"type": "string"},
                "price": {"type": "number", "minimum": 0},
                "date": {"type": "string", "example": "2024-01-15"}
            }
        },
        "ports.UpdateSilkRequest": {
            "type": "object",
            "properties": {
                "location": {"type": "string"},
                "price": {"type": "number", "minimum": 0},
                "date": {"type": "string"}
            }
        },
        "ports.CalculatorRequest": {
            "type": "object",
            "required": ["unit_price", "total_weight", "batch_capacity", "yield_per_batch", "sell_rate"],
            "properties": {
                "unit_price": {"type": "number", "minimum": 0},
                "total_weight": {"type": "number", "minimum": 0},
                "batch_capacity": {"type": "number", "exclusiveMinimum": true, "minimum": 0},
                "yield_per_batch": {"type": "number", "minimum": 0},
                "sell_rate": {"type": "number", "minimum": 0}
            }
        },
        "ports.CalculatorResponse": {
            "type": "object",
            "properties": {
                "material_cost": {"type": "number"},
                "commission": {"type": "number"},
                "transport": {"type": "number"},
                "total_cost": {"type": "number"},
                "batch_count": {"type": "number"},
                "output_kg": {"type": "number"},
                "revenue": {"type": "number"},
                "profit_loss": {"type": "number"},
                "percentage": {"type": "number"},
                "status": {"type": "string", "enum": ["profit", "loss", "break-even"]}
            }
        },
        "http.MessageResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "id": {"type": "integer"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "http.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"$ref": "#/definitions/entities.FieldError"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and the admin password"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Silk Market API",
	Description:      "Cocoon rates, silk prices and the reeling profit calculator",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
