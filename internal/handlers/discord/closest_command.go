package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/closest/internal/chart"
	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/models"
	answerService "github.com/KirkDiggler/closest/internal/services/answer"
	"github.com/KirkDiggler/closest/internal/services/messaging"
	roundService "github.com/KirkDiggler/closest/internal/services/round"
	statsService "github.com/KirkDiggler/closest/internal/services/stats"
)

const (
	subcommandOpen    = "open"
	subcommandClose   = "close"
	subcommandReopen  = "reopen"
	subcommandGuess   = "guess"
	subcommandResults = "results"
	subcommandGeneral = "general"

	optionRound = "round"
	optionValue = "value"

	// interactionTimeout bounds the work done before Discord's 3 second
	// acknowledgement deadline
	interactionTimeout = 2500 * time.Millisecond
)

// ClosestCommandConfig holds the services the /closest command drives
type ClosestCommandConfig struct {
	RoundService     roundService.Service
	AnswerService    answerService.Service
	StatsService     statsService.Service
	MessagingService messaging.Service

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

// ClosestCommand handles the /closest command
type ClosestCommand struct {
	BaseCommand
	rounds    roundService.Service
	answers   answerService.Service
	stats     statsService.Service
	messaging messaging.Service
	logger    *slog.Logger
}

// NewClosestCommand creates a new closest command handler
func NewClosestCommand(cfg *ClosestCommandConfig) (*ClosestCommand, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RoundService == nil {
		return nil, errors.New("round service cannot be nil")
	}

	if cfg.AnswerService == nil {
		return nil, errors.New("answer service cannot be nil")
	}

	if cfg.StatsService == nil {
		return nil, errors.New("stats service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	minValue := float64(models.MinAnswerValue)
	roundOption := func() *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        optionRound,
			Description: "Round number",
			Required:    true,
			MinValue:    &minValue,
		}
	}

	return &ClosestCommand{
		BaseCommand: BaseCommand{
			Name:        "closest",
			Description: "Guess the number closest to everyone's average",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandOpen,
					Description: "Open a new round",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandClose,
					Description: "Close a round and reveal the results",
					Options:     []*discordgo.ApplicationCommandOption{roundOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandReopen,
					Description: "Reopen a closed round",
					Options:     []*discordgo.ApplicationCommandOption{roundOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandGuess,
					Description: "Submit your guess for a round",
					Options: []*discordgo.ApplicationCommandOption{
						roundOption(),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optionValue,
							Description: "A whole number from 0 to 100",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandResults,
					Description: "Show a round's results",
					Options:     []*discordgo.ApplicationCommandOption{roundOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandGeneral,
					Description: "Show the results across every round",
				},
			},
		},
		rounds:    cfg.RoundService,
		answers:   cfg.AnswerService,
		stats:     cfg.StatsService,
		messaging: cfg.MessagingService,
		logger:    logger.With("command", "closest"),
	}, nil
}

// Handle processes a Discord interaction for the closest command
func (c *ClosestCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	data, err := c.respond(ctx, i)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// respond builds the reply for an interaction. Failures of the services are
// rendered for the user; only a failure to render at all is returned.
func (c *ClosestCommand) respond(ctx context.Context, i *discordgo.InteractionCreate) (*discordgo.InteractionResponseData, error) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil, nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil, nil
	}

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	var reply *discordgo.InteractionResponseData
	var err error
	switch sub.Name {
	case subcommandOpen:
		reply, err = c.handleOpen(ctx)
	case subcommandClose:
		reply, err = c.handleSetStatus(ctx, roundID(opts), models.RoundStatusClosed)
	case subcommandReopen:
		reply, err = c.handleSetStatus(ctx, roundID(opts), models.RoundStatusOpen)
	case subcommandGuess:
		reply, err = c.handleGuess(ctx, roundID(opts), userName(i), stringOption(opts, optionValue))
	case subcommandResults:
		reply, err = c.handleResults(ctx, roundID(opts))
	case subcommandGeneral:
		reply, err = c.handleGeneral(ctx)
	default:
		err = errs.Newf(errs.KindInvalidInput, "unknown subcommand %q", sub.Name)
	}

	if err != nil {
		return c.errorReply(ctx, sub.Name, err)
	}
	return reply, nil
}

func (c *ClosestCommand) handleOpen(ctx context.Context) (*discordgo.InteractionResponseData, error) {
	out, err := c.rounds.CreateRound(ctx, &roundService.CreateRoundInput{})
	if err != nil {
		return nil, err
	}

	msg, err := c.messaging.GetRoundStatusMessage(ctx, &messaging.GetRoundStatusMessageInput{
		RoundID: out.Round.ID,
		Status:  out.Round.Status,
	})
	if err != nil {
		return nil, err
	}

	return renderRoundStatus(out.Round, msg.Title, msg.Message, 0), nil
}

// handleSetStatus closes or reopens a round. Closing also reveals the results.
func (c *ClosestCommand) handleSetStatus(ctx context.Context, id int64, status models.RoundStatus) (*discordgo.InteractionResponseData, error) {
	out, err := c.rounds.SetStatus(ctx, &roundService.SetStatusInput{RoundID: id, Status: status})
	if err != nil {
		return nil, err
	}

	view, err := c.stats.GetRoundView(ctx, &statsService.GetRoundViewInput{RoundID: id})
	if err != nil {
		return nil, err
	}

	if view.View.IsClosed() {
		return c.results(ctx, view.View)
	}

	count := 0
	if view.View.AnswersCount != nil {
		count = *view.View.AnswersCount
	}

	msg, err := c.messaging.GetRoundStatusMessage(ctx, &messaging.GetRoundStatusMessageInput{
		RoundID:      id,
		Status:       out.Round.Status,
		AnswersCount: count,
	})
	if err != nil {
		return nil, err
	}

	return renderRoundStatus(out.Round, msg.Title, msg.Message, count), nil
}

func (c *ClosestCommand) handleGuess(ctx context.Context, id int64, player, raw string) (*discordgo.InteractionResponseData, error) {
	out, err := c.answers.SubmitAnswer(ctx, &answerService.SubmitAnswerInput{
		RoundID:  id,
		UserName: player,
		RawValue: raw,
	})
	if err != nil {
		return nil, err
	}

	msg, err := c.messaging.GetGuessMessage(ctx, &messaging.GetGuessMessageInput{
		PlayerName: out.Answer.UserName,
		Value:      out.Answer.Value,
	})
	if err != nil {
		return nil, err
	}

	return renderGuessAccepted(out.Answer, msg.Message), nil
}

func (c *ClosestCommand) handleResults(ctx context.Context, id int64) (*discordgo.InteractionResponseData, error) {
	out, err := c.stats.GetRoundView(ctx, &statsService.GetRoundViewInput{RoundID: id})
	if err != nil {
		return nil, err
	}

	if !out.View.IsClosed() {
		return renderOpenRoundView(out.View), nil
	}

	return c.results(ctx, out.View)
}

// results renders a closed round view with its headline and chart
func (c *ClosestCommand) results(ctx context.Context, view *models.RoundView) (*discordgo.InteractionResponseData, error) {
	total := 0
	if view.TotalAnswers != nil {
		total = *view.TotalAnswers
	}

	input := &messaging.GetResultsMessageInput{
		RoundID:      view.RoundID,
		TotalAnswers: total,
	}
	if view.WinningValue != nil {
		input.WinningValue = *view.WinningValue
	}
	for _, w := range view.Winners {
		input.WinnerNames = append(input.WinnerNames, w.UserName)
	}

	msg, err := c.messaging.GetResultsMessage(ctx, input)
	if err != nil {
		return nil, err
	}

	// The chart is drawn from the view so it always agrees with the embed
	var png []byte
	if total > 0 {
		roundID := view.RoundID
		dist := models.DistributionFromEntries(&roundID, view.Distribution)
		png = c.renderChart(dist, fmt.Sprintf("Round #%d", view.RoundID), view.WinningValue)
	}

	return renderResults(view, msg.Title, msg.Message, png), nil
}

func (c *ClosestCommand) handleGeneral(ctx context.Context) (*discordgo.InteractionResponseData, error) {
	out, err := c.stats.GetGeneralView(ctx, &statsService.GetGeneralViewInput{})
	if err != nil {
		return nil, err
	}

	var png []byte
	if out.View.TotalAnswers > 0 {
		dist := models.DistributionFromEntries(nil, out.View.Distribution)
		png = c.renderChart(dist, "All rounds", out.View.WinningValue)
	}

	return renderGeneral(out.View, png), nil
}

// renderChart draws the distribution, leaving it out of the reply when
// drawing fails
func (c *ClosestCommand) renderChart(dist *models.Distribution, title string, highlight *int) []byte {
	png, err := chart.RenderDistribution(dist, chart.Options{Title: title, Highlight: highlight})
	if err != nil {
		c.logger.Warn("failed to render distribution chart", "title", title, "error", err)
		return nil
	}
	return png
}

func (c *ClosestCommand) errorReply(ctx context.Context, subcommand string, err error) (*discordgo.InteractionResponseData, error) {
	kind := errs.KindOf(err)
	if kind == errs.KindInternal {
		c.logger.ErrorContext(ctx, "subcommand failed", "subcommand", subcommand, "error", err)
	} else {
		c.logger.DebugContext(ctx, "subcommand rejected", "subcommand", subcommand, "kind", kind, "error", err)
	}

	msg, msgErr := c.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		Kind:   kind,
		Detail: errs.MessageOf(err),
	})
	if msgErr != nil {
		return nil, fmt.Errorf("failed to build error message: %w", msgErr)
	}

	return renderError(msg.Title, msg.Message), nil
}

func roundID(opts map[string]*discordgo.ApplicationCommandInteractionDataOption) int64 {
	if opt, ok := opts[optionRound]; ok {
		return opt.IntValue()
	}
	return 0
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}
