// Package docs registers the OpenAPI document for the tourismd HTTP API with
// swag. It is served under /swagger/ when built with -tags=swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "tourismd maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Reports service health and model status. Never triggers a model load.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.HealthResponse"}}
                }
            }
        },
        "/api/model-info": {
            "get": {
                "description": "Returns the state of the model currently in use.",
                "produces": ["application/json"],
                "tags": ["model-info"],
                "summary": "Get model information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelInfoResponse"}}
                }
            }
        },
        "/api/v1/predict": {
            "post": {
                "description": "Classifies a text prompt as tourism or not_tourism using zero-shot classification.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Classify a prompt",
                "parameters": [
                    {"description": "Prompt to classify", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.PredictRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/v1/predict/batch": {
            "post": {
                "description": "Classifies several prompts. Any failing item fails the whole batch.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Classify prompts in batch",
                "parameters": [
                    {"description": "Prompts to classify", "name": "request", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/types.PredictRequest"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/types.PredictionResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string", "example": "Fine-tuned model loading not implemented yet"},
                "error_type": {"type": "string", "example": "model_not_implemented"}
            }
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "model_loaded": {"type": "boolean", "example": true},
                "model_info": {"$ref": "#/definitions/types.ModelInfo"}
            }
        },
        "types.ModelInfo": {
            "type": "object",
            "properties": {
                "model_type": {"type": "string", "example": "zero_shot"},
                "model_name": {"type": "string", "example": "facebook/bart-large-mnli"},
                "model_loaded": {"type": "boolean", "example": true},
                "device": {"type": "string", "example": "cpu"},
                "state": {"type": "string", "example": "ready"},
                "primary_model": {"type": "string", "example": "facebook/bart-large-mnli"},
                "fallback_model": {"type": "string", "example": "typeform/distilbert-base-uncased-mnli"},
                "fallback_active": {"type": "boolean"},
                "fine_tuned_model_path": {"type": "string"},
                "last_error": {"type": "string"},
                "loads_total": {"type": "integer", "example": 1},
                "fallbacks_total": {"type": "integer", "example": 0},
                "loaded_at_unix": {"type": "integer", "example": 1700000000},
                "inflight": {"type": "integer", "example": 0},
                "uptime_seconds": {"type": "integer", "example": 3600}
            }
        },
        "types.ModelInfoResponse": {
            "type": "object",
            "properties": {
                "model_info": {"$ref": "#/definitions/types.ModelInfo"}
            }
        },
        "types.PredictRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string", "example": "Can I find my soulmate if I go to Siem Reap?"},
                "candidate_labels": {"type": "array", "items": {"type": "string"}, "example": ["tourism", "not_tourism"]},
                "model_type": {"type": "string", "example": "zero_shot"}
            }
        },
        "types.PredictionResponse": {
            "type": "object",
            "properties": {
                "sequence": {"type": "string", "example": "Can I find my soulmate if I go to Siem Reap?"},
                "labels": {"type": "array", "items": {"type": "string"}},
                "scores": {"type": "array", "items": {"type": "number"}},
                "prediction": {"type": "string", "example": "tourism"},
                "confidence": {"type": "number", "example": 0.93},
                "is_tourism": {"type": "boolean", "example": true},
                "model_type": {"type": "string", "example": "zero_shot"},
                "model_name": {"type": "string", "example": "facebook/bart-large-mnli"},
                "model_info": {"$ref": "#/definitions/types.ModelInfo"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "CAMTOUR-CLASSIFIER-API",
	Description:      "API for zero-shot classification of tourism content",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
