package handler

import (
	"github.com/MKhiriev/go-req-sync/internal/config"
	"github.com/MKhiriev/go-req-sync/internal/handler/http"
	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/service"
	"github.com/MKhiriev/go-req-sync/models"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, buildInfo, cfg.RequestTimeout, logger),
	}, nil
}
