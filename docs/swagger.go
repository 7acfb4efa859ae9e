package docs

import "github.com/swaggo/swag"

// @title           Taskman API
// @version         1.0
// @description     Multi-tenant task-board API: boards, stages, tasks, tags and per-board access levels

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description User management operations

// @tag.name Boards
// @tag.description Board management operations

// @tag.name Board Accesses
// @tag.description Access grant operations

// @tag.name Stages
// @tag.description Stage management operations

// @tag.name Tasks
// @tag.description Task management operations

// @tag.name Tags
// @tag.description Tag management operations

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Taskman API",
	Description:      "Multi-tenant task-board API: boards, stages, tasks, tags and per-board access levels",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
