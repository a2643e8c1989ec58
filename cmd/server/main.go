package main

import (
	"salesflow/internal/app"
)

// @title Salesflow API
// @version 1.0
// @description Lead pipeline engine: pipelines, leads, transitions, reports.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
