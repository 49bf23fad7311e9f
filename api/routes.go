package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	accounthandlers "github.com/carson-networks/finance-tracker/internal/handlers/v1/account"
	budgethandlers "github.com/carson-networks/finance-tracker/internal/handlers/v1/budget"
	recommendationhandlers "github.com/carson-networks/finance-tracker/internal/handlers/v1/recommendation"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/status"
	transactionhandlers "github.com/carson-networks/finance-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

const (
	apiTitle   = "finance-tracker"
	apiVersion = "1.0.0"
)

// Pinger reports database reachability for /status.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	DB      Pinger
}

// Handler builds the full HTTP surface: the huma operations under /v1 and the
// plain /status handler.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.DB)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig(apiTitle, apiVersion))
	api.UseMiddleware(logging.Middleware(r.Logger))
	r.register(api)

	return mux
}

func (r *Rest) register(api huma.API) {
	svc := r.Service

	accounthandlers.NewCreateAccountHandler(svc.Account).Register(api)
	accounthandlers.NewGetAccountHandler(svc.Account).Register(api)
	accounthandlers.NewUpdateIncomeHandler(svc.Account).Register(api)

	transactionhandlers.NewCreateTransactionHandler(svc.Transaction).Register(api)
	transactionhandlers.NewListTransactionsHandler(svc.Transaction).Register(api)
	transactionhandlers.NewGetTransactionHandler(svc.Transaction).Register(api)
	transactionhandlers.NewUpdateTransactionHandler(svc.Transaction).Register(api)
	transactionhandlers.NewDeleteTransactionHandler(svc.Transaction).Register(api)

	budgethandlers.NewHandler(svc.Budget).Register(api)
	recommendationhandlers.NewHandler(svc.Recommendation).Register(api)
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
