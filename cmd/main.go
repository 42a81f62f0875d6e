package main

import (
	"github.com/corray333/backend-labs/coffee/internal/app"
	"github.com/corray333/backend-labs/coffee/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
