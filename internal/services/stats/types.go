package stats

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/closest/internal/metrics"
	"github.com/KirkDiggler/closest/internal/models"
	answerRepo "github.com/KirkDiggler/closest/internal/repositories/answer"
	roundRepo "github.com/KirkDiggler/closest/internal/repositories/round"
)

// Config holds configuration for the stats service
type Config struct {
	RoundRepo  roundRepo.Repository
	AnswerRepo answerRepo.Repository

	// Metrics is optional
	Metrics metrics.Recorder

	// Tracer is optional, defaults to the global provider
	Tracer trace.Tracer

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

type ComputeWinningStatsInput struct {
	RoundID int64
}

type ComputeWinningStatsOutput struct {
	Stats *models.WinningStats
}

type ComputeGeneralWinningStatsInput struct{}

type ComputeGeneralWinningStatsOutput struct {
	Stats *models.GeneralStats
}

type ComputeDistributionInput struct {
	RoundID int64
}

type ComputeDistributionOutput struct {
	Distribution *models.Distribution

	// WinningValue is the round's winning value, for highlighting
	WinningValue int
}

type ComputeGeneralDistributionInput struct{}

type ComputeGeneralDistributionOutput struct {
	Distribution *models.Distribution

	// WinningValue is nil when there are no answers
	WinningValue *int
}

type ListWinnersInput struct {
	RoundID int64
}

type ListWinnersOutput struct {
	WinningValue int
	// Winners are ascending by answer ID
	Winners []*models.Answer
}

type GetRoundViewInput struct {
	RoundID int64
}

type GetRoundViewOutput struct {
	View *models.RoundView
}

type GetGeneralViewInput struct{}

type GetGeneralViewOutput struct {
	View *models.GeneralView
}
