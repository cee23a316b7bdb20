package handler

import (
	"net/http"

	apiErrors "github.com/dtroode/gophauth/internal/api/errors"
	"github.com/dtroode/gophauth/internal/api/http/response"
	"github.com/dtroode/gophauth/internal/logger"
)

// APIVersion is reported by the index document.
const APIVersion = "1.0.0"

// Index serves service metadata and fallbacks.
type Index struct {
	logger *logger.Logger
}

func NewIndex(logger *logger.Logger) *Index {
	return &Index{logger: logger}
}

type indexResponse struct {
	Message       string            `json:"message"`
	Version       string            `json:"version"`
	Endpoints     map[string]string `json:"endpoints"`
	Documentation string            `json:"documentation"`
}

// Root describes the API.
func (h *Index) Root(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, indexResponse{
		Message: "authentication API",
		Version: APIVersion,
		Endpoints: map[string]string{
			"register": "POST /register",
			"login":    "POST /login",
			"logout":   "GET|POST /logout",
			"profile":  "GET /perfil",
			"health":   "GET /healthz",
		},
		Documentation: "send JSON bodies with username and password to /register and /login; the session cookie authorizes /perfil and /logout",
	})
}

// Health reports liveness.
func (h *Index) Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound renders the JSON 404 envelope.
func (h *Index) NotFound(w http.ResponseWriter, _ *http.Request) {
	response.Error(w, h.logger, apiErrors.NewErrRouteNotFound())
}
