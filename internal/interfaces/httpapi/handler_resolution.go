package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/resolution"
	"github.com/riskibarqy/excitement-engine/internal/usecase"
)

type resolveTeamRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	ShortName string `json:"short_name" validate:"omitempty,max=40"`
}

type teamDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ShortName      string    `json:"short_name,omitempty"`
	NormalizedName string    `json:"normalized_name"`
	CreatedAt      time.Time `json:"created_at"`
	Created        bool      `json:"created"`
}

type externalIDDTO struct {
	ProviderID string    `json:"provider_id"`
	FixtureID  string    `json:"fixture_id"`
	ExternalID string    `json:"external_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Handler) ResolveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ResolveTeam")
	defer span.End()

	if h.teamResolution == nil {
		writeError(ctx, w, fmt.Errorf("%w: team resolution is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req resolveTeamRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.ShortName = strings.TrimSpace(req.ShortName)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, created, err := h.teamResolution.ResolveOrCreate(ctx, resolution.Candidate{
		Name:      req.Name,
		ShortName: req.ShortName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "resolve team failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(w, status, teamDTO{
		ID:             item.ID,
		Name:           item.Name,
		ShortName:      item.ShortName,
		NormalizedName: item.NormalizedName,
		CreatedAt:      item.CreatedAt,
		Created:        created,
	})
}

func (h *Handler) GetExternalID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetExternalID")
	defer span.End()

	if h.externalIDs == nil {
		writeError(ctx, w, fmt.Errorf("%w: external id service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	providerID := strings.TrimSpace(r.PathValue("providerID"))

	mapping, exists, err := h.externalIDs.Get(ctx, providerID, fixtureID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, fmt.Errorf("%w: no %s mapping for fixture %s", usecase.ErrNotFound, providerID, fixtureID))
		return
	}

	writeSuccess(w, http.StatusOK, externalIDDTO{
		ProviderID: mapping.ProviderID,
		FixtureID:  mapping.MatchID,
		ExternalID: mapping.ExternalID,
		CreatedAt:  mapping.CreatedAt,
	})
}
