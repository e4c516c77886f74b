package api

import (
	"fmt"
	"net/http"

	"github.com/KirkDiggler/closest/internal/chart"
	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/models"
	roundService "github.com/KirkDiggler/closest/internal/services/round"
	statsService "github.com/KirkDiggler/closest/internal/services/stats"
)

type roundStatusRequest struct {
	Status models.RoundStatus `json:"status"`
}

type roundsResponse struct {
	Rounds []*models.Round `json:"rounds"`
}

type winnersResponse struct {
	WinningValue int              `json:"winningValue"`
	Winners      []*models.Answer `json:"winners"`
}

type distributionResponse struct {
	*models.Distribution
	WinningValue *int `json:"winningValue"`
}

func (h *Handler) listRounds(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := page(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	input := &roundService.ListRoundsInput{Limit: limit, Offset: offset}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.RoundStatus(raw)
		input.Status = &status
	}

	out, err := h.rounds.ListRounds(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &roundsResponse{Rounds: out.Rounds})
}

func (h *Handler) createRound(w http.ResponseWriter, r *http.Request) {
	var req roundStatusRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	out, err := h.rounds.CreateRound(r.Context(), &roundService.CreateRoundInput{Status: req.Status})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/rounds/%d", out.Round.ID))
	writeJSON(w, http.StatusCreated, out.Round)
}

func (h *Handler) getRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.rounds.GetRound(r.Context(), &roundService.GetRoundInput{RoundID: roundID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Round)
}

func (h *Handler) setRoundStatus(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req roundStatusRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.rounds.SetStatus(r.Context(), &roundService.SetStatusInput{
		RoundID: roundID,
		Status:  req.Status,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Round)
}

func (h *Handler) deleteRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.rounds.DeleteRound(r.Context(), &roundService.DeleteRoundInput{RoundID: roundID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if !out.Deleted {
		h.writeError(w, r, errs.Newf(errs.KindNotFound, "round %d not found", roundID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getRoundView(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.stats.GetRoundView(r.Context(), &statsService.GetRoundViewInput{RoundID: roundID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out.View)
}

func (h *Handler) getRoundStats(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.stats.ComputeWinningStats(r.Context(), &statsService.ComputeWinningStatsInput{RoundID: roundID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Stats)
}

func (h *Handler) getRoundWinners(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.stats.ListWinners(r.Context(), &statsService.ListWinnersInput{RoundID: roundID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &winnersResponse{WinningValue: out.WinningValue, Winners: out.Winners})
}

func (h *Handler) getRoundDistribution(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.stats.ComputeDistribution(r.Context(), &statsService.ComputeDistributionInput{RoundID: roundID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	winning := out.WinningValue
	writeJSON(w, http.StatusOK, &distributionResponse{Distribution: out.Distribution, WinningValue: &winning})
}

func (h *Handler) getRoundDistributionChart(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.stats.ComputeDistribution(r.Context(), &statsService.ComputeDistributionInput{RoundID: roundID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	winning := out.WinningValue
	h.writePNG(w, r, out.Distribution, chart.Options{
		Title:     fmt.Sprintf("Round #%d", roundID),
		Highlight: &winning,
	})
}

func (h *Handler) writePNG(w http.ResponseWriter, r *http.Request, dist *models.Distribution, opts chart.Options) {
	png, err := chart.RenderDistribution(dist, opts)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render chart", "error", err)
		writeJSON(w, http.StatusInternalServerError, &errorBody{Error: "internal", Message: "failed to render chart"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
