// Package docs holds the generated OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current user profile",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/profile": {
            "put": {
                "tags": ["auth"],
                "summary": "Update profile",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/password": {
            "put": {
                "tags": ["auth"],
                "summary": "Change password",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/account": {
            "delete": {
                "tags": ["auth"],
                "summary": "Deactivate account",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/blogs": {
            "get": {
                "tags": ["blogs"],
                "summary": "List blog posts",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["blogs"],
                "summary": "Create a blog post",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/blogs/stats": {
            "get": {
                "tags": ["blogs"],
                "summary": "Blog statistics",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/blogs/{slug}": {
            "get": {
                "tags": ["blogs"],
                "summary": "Get a blog post by slug",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/blogs/{id}": {
            "put": {
                "tags": ["blogs"],
                "summary": "Update a blog post",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            },
            "delete": {
                "tags": ["blogs"],
                "summary": "Delete a blog post",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/blogs/{id}/like": {
            "post": {
                "tags": ["blogs"],
                "summary": "Like a blog post",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["blogs"],
                "summary": "Unlike a blog post",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/blogs/{id}/comments": {
            "post": {
                "tags": ["blogs"],
                "summary": "Comment on a blog post",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/blogs/{id}/comments/{commentId}": {
            "delete": {
                "tags": ["blogs"],
                "summary": "Delete a comment",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "commentId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/jobs": {
            "get": {
                "tags": ["jobs"],
                "summary": "List job postings",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["jobs"],
                "summary": "Create a job posting",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/jobs/stats": {
            "get": {
                "tags": ["jobs"],
                "summary": "Job statistics",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/jobs/{slug}": {
            "get": {
                "tags": ["jobs"],
                "summary": "Get a job posting by slug",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/jobs/{slug}/apply": {
            "post": {
                "tags": ["jobs"],
                "summary": "Apply to a job posting",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/jobs/{id}": {
            "put": {
                "tags": ["jobs"],
                "summary": "Update a job posting",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["jobs"],
                "summary": "Delete a job posting",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/assets": {
            "get": {
                "tags": ["assets"],
                "summary": "List asset mappings",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/assets/{key}": {
            "get": {
                "tags": ["assets"],
                "summary": "Get an asset mapping",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "tags": ["assets"],
                "summary": "Create or replace an asset mapping",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            },
            "delete": {
                "tags": ["assets"],
                "summary": "Delete an asset mapping",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/upload": {
            "post": {
                "tags": ["uploads"],
                "summary": "Upload a single file",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/upload/multiple": {
            "post": {
                "tags": ["uploads"],
                "summary": "Upload multiple files",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [{"type": "file", "name": "files", "in": "formData", "required": true}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/upload/{filename}": {
            "delete": {
                "tags": ["uploads"],
                "summary": "Delete an uploaded file",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "filename", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "devboard API",
	Description:      "REST backend for the devboard content-management and job-board application.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
