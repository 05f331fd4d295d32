package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/segyhp/landsale-engine/pkg/response"
)

// NewRouter registers every endpoint on a gorilla/mux router
func NewRouter(sales *SaleHandler, parcels *ParcelHandler, health *HealthHandler, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.CORSMiddleware)
	router.Use(response.LoggingMiddleware(logger))

	// preflight requests only need the CORS headers
	router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	router.HandleFunc("/health", health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/parcels", parcels.CreateParcel).Methods(http.MethodPost)
	api.HandleFunc("/parcels", parcels.ListParcels).Methods(http.MethodGet)
	api.HandleFunc("/parcels/{parcelId}", parcels.GetParcel).Methods(http.MethodGet)

	// preview is registered before {saleId} so it is never read as an id
	api.HandleFunc("/sales/preview", sales.PreviewSale).Methods(http.MethodPost)
	api.HandleFunc("/sales", sales.CreateSale).Methods(http.MethodPost)
	api.HandleFunc("/sales", sales.ListSales).Methods(http.MethodGet)
	api.HandleFunc("/sales/{saleId}", sales.GetSale).Methods(http.MethodGet)
	api.HandleFunc("/sales/{saleId}/schedule", sales.GetSchedule).Methods(http.MethodGet)
	api.HandleFunc("/sales/{saleId}/payoff", sales.GetPayoff).Methods(http.MethodGet)

	api.HandleFunc("/payments/{paymentId}/pay", sales.RecordPayment).Methods(http.MethodPost)
	api.HandleFunc("/payments/{paymentId}/confirm", sales.ConfirmCardPayment).Methods(http.MethodPost)

	return router
}
