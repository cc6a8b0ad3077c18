package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/budgetanalyzer/service-common-sub000/internal/config"
	handlerhttp "github.com/budgetanalyzer/service-common-sub000/internal/handler/http"
	"github.com/budgetanalyzer/service-common-sub000/internal/logger"
	"github.com/budgetanalyzer/service-common-sub000/internal/redact"
	"github.com/budgetanalyzer/service-common-sub000/internal/utils"
)

// payment is the demo payload; card number and CVV never reach the logs
// unmasked.
type payment struct {
	Account    string  `json:"account"`
	CardNumber string  `json:"card_number" sensitive:"mask=*,last=4"`
	CVV        string  `json:"cvv" sensitive:"mask=#"`
	Amount     float64 `json:"amount"`
}

func newRouter(cfg config.Settings, log *logger.Logger) *chi.Mux {
	pipeline := handlerhttp.NewPipeline(cfg, log)
	sanitizer := redact.NewEngine(nil)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(pipeline.Middleware)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	router.Post("/api/payments", func(w http.ResponseWriter, r *http.Request) {
		var p payment
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			_, _ = utils.WriteJSON(w, map[string]string{"error": "malformed payment"}, http.StatusBadRequest)
			return
		}

		logger.FromRequest(r).Info().
			Any("payment", sanitizer.Sanitize(p)).
			Msg("payment accepted")

		_, _ = utils.WriteJSON(w, map[string]string{"status": "accepted"}, http.StatusAccepted)
	})

	return router
}
