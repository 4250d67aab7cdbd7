// Package docs holds the Swagger 2.0 document served at /swagger/*any.
// Keep it in step with the godoc annotations on the handlers.
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
        "/admin": {
            "get": {
                "produces": ["text/html"],
                "tags": ["Admin"],
                "summary": "관리자 패널 (HTML)",
                "parameters": [
                    {"type": "string", "description": "JWT 토큰 (Header 사용 불가 시)", "name": "token", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "HTML", "schema": {"type": "string"}}
                }
            }
        },
        "/admin/api/{collection}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "저장된 제출을 저장 순서대로 반환합니다. 새로고침은 같은 요청을 다시 보내면 됩니다.",
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "제출 목록 조회",
                "parameters": [
                    {"type": "string", "description": "demo-requests 또는 call-requests", "name": "collection", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.RecordsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "되돌릴 수 없는 작업이므로 ` + "`" + `confirm=true` + "`" + `가 필요합니다. 삭제 전 JSON 스냅샷을 보관합니다.",
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "전체 삭제",
                "parameters": [
                    {"type": "string", "description": "demo-requests 또는 call-requests", "name": "collection", "in": "path", "required": true},
                    {"type": "boolean", "description": "삭제 확인", "name": "confirm", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ClearResponse"}},
                    "400": {"description": "확인 누락", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/admin/api/{collection}/export.csv": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "제출이 없으면 다운로드 없이 안내 메시지를 반환합니다.",
                "produces": ["text/csv"],
                "tags": ["Admin"],
                "summary": "CSV 내보내기",
                "parameters": [
                    {"type": "string", "description": "demo-requests 또는 call-requests", "name": "collection", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "demo-requests-YYYY-MM-DD.csv", "schema": {"type": "file"}},
                    "404": {"description": "내보낼 제출 없음", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/admin/api/{collection}/export.json": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "JSON 내보내기",
                "parameters": [
                    {"type": "string", "description": "demo-requests 또는 call-requests", "name": "collection", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "demo-requests-YYYY-MM-DD.json", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "description": "관리자 계정으로 로그인하고 JWT 토큰을 발급받습니다.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "관리자 로그인",
                "parameters": [
                    {"description": "로그인 요청 정보", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginSuccessResponse"}},
                    "400": {"description": "잘못된 요청", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "인증 실패", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/call-requests": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Forms"],
                "summary": "콜백 요청 제출",
                "parameters": [
                    {"description": "콜백 요청 정보", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/form.CallInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.SubmissionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ValidationErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/demo-requests": {
            "post": {
                "description": "데모 요청을 저장하고, 설정된 경우 외부 릴레이로 전달합니다. 릴레이 실패는 응답에 영향을 주지 않습니다.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Forms"],
                "summary": "데모 요청 제출",
                "parameters": [
                    {"description": "데모 요청 정보", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/form.DemoInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.SubmissionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ValidationErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/forms": {
            "get": {
                "description": "데모 요청, 콜백 요청 폼의 문구와 선택지를 반환합니다.",
                "produces": ["application/json"],
                "tags": ["Forms"],
                "summary": "폼 종류 목록",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/variants.Variant"}}}
                }
            }
        },
        "/api/forms/{variant}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Forms"],
                "summary": "폼 정보 조회",
                "parameters": [
                    {"type": "string", "description": "폼 종류 (demo 또는 call)", "name": "variant", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/variants.Variant"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/ws/forms": {
            "get": {
                "description": "폼 상태 머신(idle → submitting → success → idle)을 실시간으로 구동합니다.\n<br>\n**참고: 이것은 표준 HTTP API가 아닙니다.**",
                "tags": ["WebSocket (Forms)"],
                "summary": "폼 세션 WebSocket 연결",
                "parameters": [
                    {"type": "string", "description": "폼 종류 (demo 또는 call)", "name": "variant", "in": "query", "required": true}
                ],
                "responses": {
                    "101": {"description": "101 Switching Protocols", "schema": {"type": "string"}},
                    "400": {"description": "잘못된 variant", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "form.CallInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "practice": {"type": "string"},
                "preferredTime": {"type": "string"},
                "urgency": {"type": "string"}
            }
        },
        "form.DemoInput": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "practice": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "handler.ClearResponse": {
            "type": "object",
            "properties": {
                "archive": {"type": "string", "example": "data/archive/demo-requests-20261017T093015.250Z.json"},
                "cleared": {"type": "boolean"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "에러 원인 및 설명"}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "password123"},
                "username": {"type": "string", "example": "admin"}
            }
        },
        "handler.LoginSuccessResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string", "example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."}
            }
        },
        "handler.RecordsResponse": {
            "type": "object",
            "properties": {
                "collection": {"type": "string", "example": "demo-requests"},
                "records": {},
                "total": {"type": "integer", "example": 3}
            }
        },
        "handler.SubmissionResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "We'll contact you shortly to confirm your demo appointment."},
                "record": {},
                "resetAfterMs": {"type": "integer", "example": 2000},
                "title": {"type": "string", "example": "Demo Scheduled!"}
            }
        },
        "handler.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "email is required"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "variants.Option": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "variants.Variant": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "exportPrefix": {"type": "string"},
                "key": {"type": "string"},
                "name": {"type": "string"},
                "notice": {"type": "string"},
                "options": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/variants.Option"}}},
                "submitLabel": {"type": "string"},
                "submittingLabel": {"type": "string"},
                "successMessage": {"type": "string"},
                "successTitle": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "\"Bearer \" 뒤에 JWT 토큰을 붙여 입력하세요.",
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MedAI Landing API",
	Description:      "MedAI 랜딩 사이트의 데모/콜백 요청 접수 및 관리자 API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
