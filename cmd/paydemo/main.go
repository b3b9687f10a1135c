package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/erikvoss/paytrader/internal/logging"
	"github.com/erikvoss/paytrader/internal/server"
)

func main() {
	_ = godotenv.Load()

	log, err := logging.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := os.Getenv("PAYDEMO_ADDR")
	if addr == "" {
		addr = ":8402"
	}

	var quotes server.QuoteSource = server.FallbackQuoteSource{
		Primary:   server.YahooQuoteSource{},
		Secondary: server.SyntheticQuoteSource{},
	}
	if os.Getenv("PAYDEMO_OFFLINE") == "true" {
		quotes = server.SyntheticQuoteSource{}
	}

	srv := server.New(quotes, log.Named("paydemo"))

	log.Info("demo provider listening", logging.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Error("server stopped", logging.Error(err))
		os.Exit(1)
	}
}
