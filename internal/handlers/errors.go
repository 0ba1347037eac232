package handlers

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/felipe-souza17/stock-front/internal/clients"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorPage is the body of the error screen.
type ErrorPage struct {
	Heading string
	Message string
}

// statusFor maps a remote API failure to the status of the screen we answer
// with.
func statusFor(err error) (int, string) {
	if errors.Is(err, clients.ErrNotFound) {
		return http.StatusNotFound, "O registro solicitado não existe."
	}

	// http.Client.Timeout and the per-call deadline both surface here
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return http.StatusGatewayTimeout, "A requisição expirou."
	}

	var apiErr *clients.APIError
	if !errors.As(err, &apiErr) {
		return http.StatusServiceUnavailable, "Serviço temporariamente indisponível."
	}

	switch {
	case apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status, apiErr.Message
	case apiErr.Status == http.StatusGatewayTimeout:
		return http.StatusGatewayTimeout, "A requisição expirou."
	default:
		return http.StatusBadGateway, "Ocorreu um erro inesperado."
	}
}

// renderAPIError answers a failed load with the not-found or error screen.
func (v *Renderer) renderAPIError(c *gin.Context, logger logrus.FieldLogger, err error) {
	status, message := statusFor(err)
	logger.Warnf("Handler Error: mapped API error (%v) to HTTP status %d", err, status)

	page := ErrorPage{Heading: "Erro", Message: message}
	if status == http.StatusNotFound {
		page.Heading = "Não encontrado"
	}
	v.HTML(c, status, "error.html", page.Heading, page)
}

func (v *Renderer) NotFound(c *gin.Context) {
	v.HTML(c, http.StatusNotFound, "error.html", "Não encontrado", ErrorPage{
		Heading: "Não encontrado",
		Message: "A página solicitada não existe.",
	})
}
