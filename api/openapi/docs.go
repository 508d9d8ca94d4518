// Package openapi 注册 Swagger 文档，由 swag init 根据 handler 注解生成
package openapi

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
        "/auth/register": {
            "post": {
                "tags": ["认证"],
                "summary": "用户注册",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["认证"],
                "summary": "用户登录",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["认证"],
                "summary": "退出登录",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["认证"],
                "summary": "获取当前用户",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["用户"],
                "summary": "获取个人资料",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["用户"],
                "summary": "更新个人资料",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UserUpdateRequest"}}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/users/me/avatar": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["用户"],
                "summary": "上传头像",
                "parameters": [{"type": "file", "name": "avatar", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/recipes": {
            "get": {
                "tags": ["菜谱"],
                "summary": "搜索菜谱",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/recipes/categories": {
            "get": {
                "tags": ["菜谱"],
                "summary": "菜谱分类列表",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/recipes/popular": {
            "get": {
                "tags": ["搜索"],
                "summary": "热门菜谱",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query", "enum": ["hot", "rating", "relevance"]},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/recipes/{meal_id}": {
            "get": {
                "tags": ["菜谱"],
                "summary": "菜谱详情",
                "parameters": [{"type": "string", "name": "meal_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/recipes/{meal_id}/comments": {
            "get": {
                "tags": ["评论"],
                "summary": "菜谱评论列表",
                "parameters": [{"type": "string", "name": "meal_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["评论"],
                "summary": "发表评论",
                "parameters": [
                    {"type": "string", "name": "meal_id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CommentCreateRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/recipes/{meal_id}/rating": {
            "get": {
                "tags": ["评论"],
                "summary": "菜谱平均评分",
                "parameters": [{"type": "string", "name": "meal_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/favorites/{meal_id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["收藏"],
                "summary": "收藏菜谱",
                "parameters": [{"type": "string", "name": "meal_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["收藏"],
                "summary": "设置收藏状态",
                "parameters": [
                    {"type": "string", "name": "meal_id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.FavoriteToggleRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["收藏"],
                "summary": "取消收藏",
                "parameters": [{"type": "string", "name": "meal_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/favorites/{meal_id}/status": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["收藏"],
                "summary": "查询收藏状态",
                "parameters": [{"type": "string", "name": "meal_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/favorites/batch/status": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["收藏"],
                "summary": "批量查询收藏状态",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BatchFavoriteStatusRequest"}}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/favorites/my/recipes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["收藏"],
                "summary": "我收藏的菜谱",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "dto.RegisterRequest": {
            "type": "object",
            "required": ["email", "full_name", "password", "verify_password"],
            "properties": {
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "phone_number": {"type": "string"},
                "password": {"type": "string"},
                "verify_password": {"type": "string"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.UserUpdateRequest": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "phone_number": {"type": "string"}
            }
        },
        "dto.CommentCreateRequest": {
            "type": "object",
            "required": ["text", "rating"],
            "properties": {
                "text": {"type": "string", "maxLength": 1000},
                "rating": {"type": "integer", "minimum": 0, "maximum": 5}
            }
        },
        "dto.FavoriteToggleRequest": {
            "type": "object",
            "required": ["favorite"],
            "properties": {
                "favorite": {"type": "boolean"}
            }
        },
        "dto.BatchFavoriteStatusRequest": {
            "type": "object",
            "required": ["meal_ids"],
            "properties": {
                "meal_ids": {"type": "array", "items": {"type": "string"}, "maxItems": 100, "minItems": 1}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "输入格式: Bearer {token}",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Recipe Finder API",
	Description:      "菜谱搜索、收藏与评分服务",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
