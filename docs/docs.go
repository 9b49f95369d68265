// Package docs registra el documento OpenAPI de shelter-registry para http-swagger.
// Generado a partir de las anotaciones de internal/domain/shelters/handler.go (swag init).
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
        "/shelters": {
            "get": {
                "description": "Devuelve todos los refugios en orden, cada uno con su ` + "`" + `index` + "`" + ` (el que usa move) y sus animales.",
                "produces": ["application/json"],
                "tags": ["shelters"],
                "summary": "Inventario de refugios",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/shelters.shelterResponse"}}}
                }
            }
        },
        "/revenue": {
            "get": {
                "description": "Revenue y adopciones por refugio, con totales.",
                "produces": ["application/json"],
                "tags": ["shelters"],
                "summary": "Reporte de revenue",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/shelters.revenueResponse"}}
                }
            }
        },
        "/animals": {
            "get": {
                "description": "Lista plana de animales con el refugio donde residen.",
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Listar animales",
                "parameters": [
                    {"type": "boolean", "description": "Solo animales no adoptados", "name": "adoptable", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/shelters.locatedAnimalResponse"}}},
                    "400": {"description": "invalid adoptable", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/move": {
            "post": {
                "description": "Mueve el animal al refugio indicado por índice. No afecta revenue ni contadores.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Trasladar animal",
                "parameters": [
                    {"type": "string", "description": "Operador del refugio (auditoría)", "name": "X-Staff-ID", "in": "header"},
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"description": "Refugio destino", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/shelters.moveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/shelters.movementResponse"}},
                    "400": {"description": "invalid json / invalid shelter selection / invalid shelter index", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}},
                    "409": {"description": "animal is already in this shelter", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/adopt": {
            "post": {
                "description": "Marca el animal como adoptado, calcula el fee y lo acredita al refugio donde reside.",
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Adoptar animal",
                "parameters": [
                    {"type": "string", "description": "Operador del refugio (auditoría)", "name": "X-Staff-ID", "in": "header"},
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/shelters.adoptionResponse"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}},
                    "409": {"description": "animal already adopted", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/health": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Actualizar health",
                "parameters": [
                    {"type": "string", "description": "Operador del refugio (auditoría)", "name": "X-Staff-ID", "in": "header"},
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"description": "Nuevo valor (texto libre, no vacío)", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/shelters.updateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/shelters.updateResponse"}},
                    "400": {"description": "invalid json / invalid input", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/status": {
            "patch": {
                "description": "Sobreescribe el status tal cual. Setear \"Adopted\" por acá no cobra fee ni cuenta la adopción; para eso usar /adopt.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Actualizar status",
                "parameters": [
                    {"type": "string", "description": "Operador del refugio (auditoría)", "name": "X-Staff-ID", "in": "header"},
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"description": "Nuevo valor (texto libre, no vacío)", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/shelters.updateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/shelters.updateResponse"}},
                    "400": {"description": "invalid json / invalid input", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "shelters.animalResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "type": {"type": "string"}, "name": {"type": "string"},
                "age": {"type": "integer"}, "breed": {"type": "string"}, "health": {"type": "string"}, "status": {"type": "string"}
            }
        },
        "shelters.shelterResponse": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"}, "name": {"type": "string"}, "location": {"type": "string"}, "address": {"type": "string"},
                "revenue": {"type": "number"}, "adopted_count": {"type": "integer"},
                "animals": {"type": "array", "items": {"$ref": "#/definitions/shelters.animalResponse"}}
            }
        },
        "shelters.locatedAnimalResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "type": {"type": "string"}, "name": {"type": "string"},
                "age": {"type": "integer"}, "breed": {"type": "string"}, "health": {"type": "string"}, "status": {"type": "string"},
                "shelter_index": {"type": "integer"}, "shelter_name": {"type": "string"}
            }
        },
        "shelters.shelterRevenueResponse": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "adopted_count": {"type": "integer"}, "revenue": {"type": "number"}}
        },
        "shelters.revenueResponse": {
            "type": "object",
            "properties": {
                "shelters": {"type": "array", "items": {"$ref": "#/definitions/shelters.shelterRevenueResponse"}},
                "total_revenue": {"type": "number"}, "total_adopted": {"type": "integer"}
            }
        },
        "shelters.moveRequest": {
            "type": "object",
            "properties": {"target_shelter": {"description": "Índice 0-based, el mismo index que devuelve GET /shelters.", "type": "integer"}}
        },
        "shelters.movementResponse": {
            "type": "object",
            "properties": {
                "record_id": {"type": "string"}, "moved_at": {"type": "string"}, "animal_id": {"type": "string"},
                "animal_name": {"type": "string"}, "from_shelter": {"type": "string"}, "to_shelter": {"type": "string"}
            }
        },
        "shelters.adoptionResponse": {
            "type": "object",
            "properties": {
                "receipt_id": {"type": "string"}, "adopted_at": {"type": "string"}, "animal_id": {"type": "string"},
                "animal_name": {"type": "string"}, "shelter": {"type": "string"}, "fee": {"type": "integer"}
            }
        },
        "shelters.updateRequest": {
            "type": "object",
            "properties": {"value": {"type": "string"}}
        },
        "shelters.updateResponse": {
            "type": "object",
            "properties": {
                "animal_id": {"type": "string"}, "animal_name": {"type": "string"}, "field": {"type": "string"},
                "previous": {"type": "string"}, "value": {"type": "string"}, "message": {"type": "string"}
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
	Title:            "Shelter Registry API",
	Description:      "Inventario, traslados, adopciones y revenue de refugios de animales.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
