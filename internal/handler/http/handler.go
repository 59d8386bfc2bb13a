package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// writeError sends the JSON error envelope with the given status. The
// envelope carries only the message and optional code; internal error
// details stay in the logs.
func writeError(w http.ResponseWriter, message string, statusCode int, code string) {
	utils.WriteJSON(w, models.APIError{Message: message, Code: code}, statusCode)
}
