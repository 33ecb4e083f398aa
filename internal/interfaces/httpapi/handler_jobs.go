package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/excitement-engine/internal/usecase"
)

type preMatchJobRequest struct {
	Force bool `json:"force"`
}

func (h *Handler) RunPreMatchJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RunPreMatchJob")
	defer span.End()

	if h.excitementService == nil {
		writeError(ctx, w, fmt.Errorf("%w: excitement service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req preMatchJobRequest
	if err := decodeJSONBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.excitementService.RunPreMatch(ctx, usecase.PreMatchRunOptions{Force: req.Force})
	if err != nil {
		h.logger.WarnContext(ctx, "run pre-match job failed", "run_id", result.RunID, "force", req.Force, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *Handler) RunLiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RunLiveJob")
	defer span.End()

	if h.excitementService == nil {
		writeError(ctx, w, fmt.Errorf("%w: excitement service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.excitementService.RunLive(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run live job failed", "run_id", result.RunID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}
