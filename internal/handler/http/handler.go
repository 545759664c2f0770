package http

import (
	"time"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/service"
	"github.com/MKhiriev/go-req-sync/models"
)

type Handler struct {
	services  *service.Services
	buildInfo models.AppBuildInfo

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, buildInfo models.AppBuildInfo, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		buildInfo:      buildInfo,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}
