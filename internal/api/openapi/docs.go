// Package openapi registers the API description served at /swagger.
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
        "/categories/": {
            "get": {"tags": ["categories"], "summary": "List categories", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["categories"], "summary": "Create category", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CategoryCreateRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/categories/{slug}/": {
            "get": {"tags": ["categories"], "summary": "Category detail", "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/categories/{slug}/streams/": {
            "get": {"tags": ["categories"], "summary": "Streams of a category", "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/streams/": {
            "get": {"tags": ["streams"], "summary": "List streams", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "quality", "in": "query"},
                    {"type": "boolean", "name": "is_featured", "in": "query"},
                    {"type": "boolean", "name": "is_live", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "ordering", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"tags": ["streams"], "summary": "Create stream", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StreamCreateRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/streams/{id}/": {
            "get": {"tags": ["streams"], "summary": "Stream detail", "description": "Every successful fetch increments view_count by one",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/streams/{id}/increment_view/": {
            "post": {"tags": ["streams"], "summary": "Increment view count", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/streams/featured/": {"get": {"tags": ["streams"], "summary": "Featured streams", "responses": {"200": {"description": "OK"}}}},
        "/streams/by_category/": {"get": {"tags": ["streams"], "summary": "Streams grouped by category", "responses": {"200": {"description": "OK"}}}},
        "/streams/live/": {"get": {"tags": ["streams"], "summary": "Live streams", "responses": {"200": {"description": "OK"}}}},
        "/streams/trending/": {"get": {"tags": ["streams"], "summary": "Most viewed streams", "responses": {"200": {"description": "OK"}}}},
        "/streams/search/": {
            "get": {"tags": ["streams"], "summary": "Search streams", "parameters": [{"type": "string", "name": "q", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "q missing"}}}
        },
        "/streams/bulk/{action}/": {
            "post": {"tags": ["streams"], "summary": "Bulk feature, unfeature, activate or deactivate",
                "parameters": [{"type": "string", "name": "action", "in": "path", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BulkRequest"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown action"}}}
        },
        "/watch-history/": {
            "get": {"tags": ["watch-history"], "summary": "List watch history",
                "parameters": [{"type": "string", "name": "device_id", "in": "query"}, {"type": "integer", "name": "stream", "in": "query"}, {"type": "boolean", "name": "completed", "in": "query"}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/watch-history/track/": {
            "post": {"tags": ["watch-history"], "summary": "Track watch event", "consumes": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.WatchTrackRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/watch-history/by_device/": {
            "get": {"tags": ["watch-history"], "summary": "Watch history by device", "parameters": [{"type": "string", "name": "device_id", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "device_id missing"}}}
        },
        "/search/sync/": {
            "post": {"tags": ["search"], "summary": "Reindex active streams", "responses": {"200": {"description": "OK"}, "503": {"description": "Index disabled"}}}
        }
    },
    "definitions": {
        "dto.CategoryCreateRequest": {"type": "object", "required": ["name"], "properties": {
            "name": {"type": "string"}, "slug": {"type": "string"}, "description": {"type": "string"},
            "icon": {"type": "string"}, "order": {"type": "integer"}, "is_active": {"type": "boolean"}}},
        "dto.StreamCreateRequest": {"type": "object", "required": ["title", "thumbnail", "url", "category"], "properties": {
            "title": {"type": "string"}, "description": {"type": "string"}, "thumbnail": {"type": "string"},
            "banner": {"type": "string"}, "url": {"type": "string"}, "category": {"type": "integer"},
            "duration": {"type": "string"}, "release_year": {"type": "integer"}, "rating": {"type": "number"},
            "director": {"type": "string"}, "cast": {"type": "string"}, "language": {"type": "string"},
            "quality": {"type": "string", "enum": ["SD", "HD", "FHD", "4K"]},
            "is_featured": {"type": "boolean"}, "is_live": {"type": "boolean"}}},
        "dto.BulkRequest": {"type": "object", "required": ["ids"], "properties": {"ids": {"type": "array", "items": {"type": "integer"}}}},
        "dto.WatchTrackRequest": {"type": "object", "required": ["stream", "device_id"], "properties": {
            "stream": {"type": "integer"}, "device_id": {"type": "string"},
            "watch_duration": {"type": "integer"}, "completed": {"type": "boolean"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Sune TV API",
	Description:      "Video catalog and playback tracking service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
