package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/excitement-engine/internal/platform/logging"
	"github.com/riskibarqy/excitement-engine/internal/usecase"
)

const maxRequestBodyBytes = 64 << 10

type Handler struct {
	excitementService *usecase.ExcitementService
	teamResolution    *usecase.TeamResolutionService
	externalIDs       *usecase.ExternalIDService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	excitementService *usecase.ExcitementService,
	teamResolution *usecase.TeamResolutionService,
	externalIDs *usecase.ExternalIDService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		excitementService: excitementService,
		teamResolution:    teamResolution,
		externalIDs:       externalIDs,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// decodeJSONBody decodes a bounded request body. An empty body leaves target untouched
// when allowEmpty is set.
func decodeJSONBody(r *http.Request, target any, allowEmpty bool) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}

	if err := strictJSON.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
