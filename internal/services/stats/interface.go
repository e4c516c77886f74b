package stats

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/closest/internal/services/stats Service

import "context"

// Service derives results from the stored answers. Nothing is cached, every
// call reads the current answer set.
type Service interface {
	// ComputeWinningStats scores one round
	ComputeWinningStats(ctx context.Context, input *ComputeWinningStatsInput) (*ComputeWinningStatsOutput, error)

	// ListWinners returns the answers closest to the winning value of one round
	ListWinners(ctx context.Context, input *ListWinnersInput) (*ListWinnersOutput, error)

	// ComputeGeneralWinningStats scores every answer across all rounds
	ComputeGeneralWinningStats(ctx context.Context, input *ComputeGeneralWinningStatsInput) (*ComputeGeneralWinningStatsOutput, error)

	// ComputeDistribution returns the dense histogram of one round
	ComputeDistribution(ctx context.Context, input *ComputeDistributionInput) (*ComputeDistributionOutput, error)

	// ComputeGeneralDistribution returns the dense histogram of every answer
	ComputeGeneralDistribution(ctx context.Context, input *ComputeGeneralDistributionInput) (*ComputeGeneralDistributionOutput, error)

	// GetRoundView returns what may be shown about a round given its status
	GetRoundView(ctx context.Context, input *GetRoundViewInput) (*GetRoundViewOutput, error)

	// GetGeneralView returns the all rounds results
	GetGeneralView(ctx context.Context, input *GetGeneralViewInput) (*GetGeneralViewOutput, error)
}
