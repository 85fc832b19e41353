package main

import (
	consumerapp "github.com/fastfood-uz/pos/internal/app/consumer"
	"github.com/fastfood-uz/pos/internal/config"
)

func main() {
	config.MustInit()
	consumerapp.MustNewApp().Run()
}
