package main

import (
	"os"

	"docuchat/backend/internal/app"
)

// @title           DocuChat API
// @version         1.0
// @description     Question answering over uploaded documents with optional web search.
// @host            localhost:8000
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
