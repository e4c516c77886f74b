package api

import (
	"net/http"

	"github.com/KirkDiggler/closest/internal/chart"
	statsService "github.com/KirkDiggler/closest/internal/services/stats"
)

func (h *Handler) getGeneralView(w http.ResponseWriter, r *http.Request) {
	out, err := h.stats.GetGeneralView(r.Context(), &statsService.GetGeneralViewInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out.View)
}

func (h *Handler) getGeneralStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.stats.ComputeGeneralWinningStats(r.Context(), &statsService.ComputeGeneralWinningStatsInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Stats)
}

func (h *Handler) getGeneralDistribution(w http.ResponseWriter, r *http.Request) {
	out, err := h.stats.ComputeGeneralDistribution(r.Context(), &statsService.ComputeGeneralDistributionInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &distributionResponse{Distribution: out.Distribution, WinningValue: out.WinningValue})
}

func (h *Handler) getGeneralDistributionChart(w http.ResponseWriter, r *http.Request) {
	out, err := h.stats.ComputeGeneralDistribution(r.Context(), &statsService.ComputeGeneralDistributionInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writePNG(w, r, out.Distribution, chart.Options{
		Title:     "All rounds",
		Highlight: out.WinningValue,
	})
}
