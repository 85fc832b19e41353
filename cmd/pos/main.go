package main

import (
	"github.com/fastfood-uz/pos/internal/app"
	"github.com/fastfood-uz/pos/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
