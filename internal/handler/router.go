package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/finance-dashboard/internal/middleware"
)

// NewRouter wires the dashboard and JSON routes
func NewRouter(h *Handler, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// HTML dashboard
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{account}", h.Dashboard).Methods(http.MethodGet)

	// JSON API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/accounts", h.ListAccounts).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{account}", h.GetDashboard).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{account}/sources/{source}", h.GetSource).Methods(http.MethodGet)
	api.HandleFunc("/inventory", h.GetInventory).Methods(http.MethodGet)

	return r
}
