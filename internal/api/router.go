package api

import (
	"net/http"
	"time"

	"github.com/AlexZinkM/multichain-wallet/custody"
	"github.com/AlexZinkM/multichain-wallet/internal/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SetupRouter sets up router with handlers
func SetupRouter(svc *custody.Service, logger *zap.Logger) http.Handler {
	walletHandler := handler.NewWalletHandler(svc, logger)
	sessionHandler := handler.NewSessionHandler(svc, logger)
	networkHandler := handler.NewNetworkHandler(svc, logger)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/wallets", func(r chi.Router) {
		r.Get("/", walletHandler.List)
		r.Post("/", walletHandler.Create)
		r.Post("/import", walletHandler.Import)

		r.Route("/{id}", func(r chi.Router) {
			r.Post("/unlock", walletHandler.Unlock)
			r.Post("/challenge", walletHandler.VerifyChallenge)
			r.Post("/recovery-check", walletHandler.VerifyPartial)
			r.Post("/balance", walletHandler.GetBalance)
			r.Post("/pay", walletHandler.Pay)
		})
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", walletHandler.TransactionHistory)
		r.Post("/refresh", walletHandler.RefreshPending)
		r.Get("/{network}/{hash}/status", walletHandler.TransactionStatus)
		r.Post("/{network}/{hash}/watch", walletHandler.Watch)
		r.Delete("/{network}/{hash}/watch", walletHandler.Unwatch)
	})

	r.Route("/networks", func(r chi.Router) {
		r.Get("/", networkHandler.List)
		r.Get("/{id}/fee", networkHandler.Fee)
	})

	r.Route("/session", func(r chi.Router) {
		r.Get("/", sessionHandler.Get)
		r.Post("/sign-in", sessionHandler.SignIn)
		r.Post("/wallet", sessionHandler.BindWallet)
		r.Delete("/wallet", sessionHandler.Disconnect)
		r.Put("/auth-type", sessionHandler.SetAuthType)
		r.Post("/sign-out", sessionHandler.SignOut)
	})

	return r
}

// LoggerMiddleware logs HTTP requests. Bodies are never logged; they carry passwords.
func LoggerMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
