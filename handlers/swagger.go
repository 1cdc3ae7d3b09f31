package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>siptrack — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "siptrack", "version": "v0.1.0" },
  "paths": {
    "/users": {
      "post": {
        "summary": "Register a new profile",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["username","password"],"properties":{"username":{"type":"string"},"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "201": { "description": "profile created" }, "400": { "description": "invalid input or username already registered" } }
      }
    },
    "/sips": {
      "post": {
        "summary": "Create a SIP plan for the authenticated user",
        "security": [ { "bearerAuth": [] } ],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["scheme_name","monthly_amount","start_date"],"properties":{"scheme_name":{"type":"string"},"monthly_amount":{"type":"number"},"start_date":{"type":"string","format":"date"}}}}}},
        "responses": { "201": { "description": "plan created" }, "400": { "description": "invalid input" }, "401": { "description": "missing or invalid token" } }
      }
    },
    "/sips/summary": {
      "get": {
        "summary": "Per-scheme investment summary for the authenticated user",
        "security": [ { "bearerAuth": [] } ],
        "responses": { "200": { "description": "array of {scheme_name, total_invested, months_invested}" }, "401": { "description": "missing or invalid token" } }
      }
    }
  },
  "components": { "securitySchemes": { "bearerAuth": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } } }
}`
