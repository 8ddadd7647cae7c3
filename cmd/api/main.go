package main

import (
	"hindsight/api"
	"hindsight/internal/app"
	"hindsight/internal/repository"
	"log"
	"os"
	"strconv"
)

func main() {
	priceFile := os.Getenv("HINDSIGHT_PRICE_FILE")
	if priceFile == "" {
		priceFile = "daily_prices.json"
	}
	port := 3010
	if p := os.Getenv("HINDSIGHT_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			log.Fatalf("bad HINDSIGHT_PORT %q: %v", p, err)
		}
		port = parsed
	}

	priceRepository := repository.NewPriceRepository(priceFile)
	handler := api.ApiHandler{
		OptimizeHandler: app.OptimizeHandler{PriceRepository: priceRepository},
		PriceRepository: priceRepository,
	}

	if err := handler.StartApi(port); err != nil {
		log.Fatal(err)
	}
}
