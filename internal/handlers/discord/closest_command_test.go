package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/models"
	answerService "github.com/KirkDiggler/closest/internal/services/answer"
	answerMocks "github.com/KirkDiggler/closest/internal/services/answer/mocks"
	"github.com/KirkDiggler/closest/internal/services/messaging"
	messagingMocks "github.com/KirkDiggler/closest/internal/services/messaging/mocks"
	roundService "github.com/KirkDiggler/closest/internal/services/round"
	roundMocks "github.com/KirkDiggler/closest/internal/services/round/mocks"
	statsService "github.com/KirkDiggler/closest/internal/services/stats"
	statsMocks "github.com/KirkDiggler/closest/internal/services/stats/mocks"
)

type ClosestCommandTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockRounds    *roundMocks.MockService
	mockAnswers   *answerMocks.MockService
	mockStats     *statsMocks.MockService
	mockMessaging *messagingMocks.MockService
	command       *ClosestCommand
	ctx           context.Context

	testTime time.Time
}

func (s *ClosestCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRounds = roundMocks.NewMockService(s.mockCtrl)
	s.mockAnswers = answerMocks.NewMockService(s.mockCtrl)
	s.mockStats = statsMocks.NewMockService(s.mockCtrl)
	s.mockMessaging = messagingMocks.NewMockService(s.mockCtrl)
	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	cmd, err := NewClosestCommand(&ClosestCommandConfig{
		RoundService:     s.mockRounds,
		AnswerService:    s.mockAnswers,
		StatsService:     s.mockStats,
		MessagingService: s.mockMessaging,
	})
	s.Require().NoError(err)
	s.command = cmd
}

func (s *ClosestCommandTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func roundOpt(id int64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  optionRound,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(id),
	}
}

func valueOpt(raw string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  optionValue,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: raw,
	}
}

func interaction(sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "closest",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{
						Name:    sub,
						Type:    discordgo.ApplicationCommandOptionSubCommand,
						Options: opts,
					},
				},
			},
			Member: &discordgo.Member{
				Nick: "Alice",
				User: &discordgo.User{ID: "u1", Username: "alice_99"},
			},
		},
	}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func (s *ClosestCommandTestSuite) TestNewClosestCommandValidation() {
	_, err := NewClosestCommand(nil)
	s.Error(err)

	_, err = NewClosestCommand(&ClosestCommandConfig{
		RoundService:  s.mockRounds,
		AnswerService: s.mockAnswers,
		StatsService:  s.mockStats,
	})
	s.Error(err)
}

func (s *ClosestCommandTestSuite) TestCommandDefinition() {
	def := s.command.GetCommand()

	s.Equal("closest", def.Name)
	names := make([]string, len(def.Options))
	for i, opt := range def.Options {
		names[i] = opt.Name
	}
	s.Equal([]string{"open", "close", "reopen", "guess", "results", "general"}, names)
}

func (s *ClosestCommandTestSuite) TestIgnoresOtherInteractions() {
	i := interaction(subcommandOpen)
	i.Type = discordgo.InteractionMessageComponent

	data, err := s.command.respond(s.ctx, i)

	s.NoError(err)
	s.Nil(data)
}

func (s *ClosestCommandTestSuite) TestOpen() {
	round := &models.Round{ID: 5, CreatedAt: s.testTime, Status: models.RoundStatusOpen}
	s.mockRounds.EXPECT().
		CreateRound(gomock.Any(), &roundService.CreateRoundInput{}).
		Return(&roundService.CreateRoundOutput{Round: round}, nil)
	s.mockMessaging.EXPECT().
		GetRoundStatusMessage(gomock.Any(), &messaging.GetRoundStatusMessageInput{RoundID: 5, Status: models.RoundStatusOpen}).
		Return(&messaging.GetRoundStatusMessageOutput{Title: "Round #5 is open", Message: "Get guessing!"}, nil)

	data, err := s.command.respond(s.ctx, interaction(subcommandOpen))

	s.Require().NoError(err)
	s.Require().Len(data.Embeds, 1)
	s.Equal("Round #5 is open", data.Embeds[0].Title)
	s.Equal("Get guessing!", data.Embeds[0].Description)
	s.Equal(colorOpen, data.Embeds[0].Color)
	s.Zero(data.Flags)
}

func (s *ClosestCommandTestSuite) TestGuess() {
	answer := &models.Answer{ID: 11, RoundID: 5, UserName: "Alice", Value: 42, SubmittedAt: s.testTime}
	s.mockAnswers.EXPECT().
		SubmitAnswer(gomock.Any(), &answerService.SubmitAnswerInput{RoundID: 5, UserName: "Alice", RawValue: "42"}).
		Return(&answerService.SubmitAnswerOutput{Answer: answer}, nil)
	s.mockMessaging.EXPECT().
		GetGuessMessage(gomock.Any(), &messaging.GetGuessMessageInput{PlayerName: "Alice", Value: 42}).
		Return(&messaging.GetGuessMessageOutput{Message: "Bold move, Alice.", Tone: messaging.ToneFunny}, nil)

	data, err := s.command.respond(s.ctx, interaction(subcommandGuess, roundOpt(5), valueOpt("42")))

	s.Require().NoError(err)
	s.Equal(discordgo.MessageFlagsEphemeral, data.Flags)
	s.Equal("Guess locked in for round #5", data.Embeds[0].Title)
	s.Equal("Bold move, Alice.", data.Embeds[0].Description)
}

func (s *ClosestCommandTestSuite) TestGuessFallsBackToUsername() {
	i := interaction(subcommandGuess, roundOpt(5), valueOpt("7"))
	i.Member.Nick = ""

	s.mockAnswers.EXPECT().
		SubmitAnswer(gomock.Any(), &answerService.SubmitAnswerInput{RoundID: 5, UserName: "alice_99", RawValue: "7"}).
		Return(&answerService.SubmitAnswerOutput{Answer: &models.Answer{ID: 1, RoundID: 5, UserName: "alice_99", Value: 7}}, nil)
	s.mockMessaging.EXPECT().GetGuessMessage(gomock.Any(), gomock.Any()).
		Return(&messaging.GetGuessMessageOutput{Message: "ok"}, nil)

	_, err := s.command.respond(s.ctx, i)
	s.NoError(err)
}

func (s *ClosestCommandTestSuite) TestGuessOnClosedRound() {
	s.mockAnswers.EXPECT().
		SubmitAnswer(gomock.Any(), gomock.Any()).
		Return(nil, errs.New(errs.KindRoundClosed, "round 5 is closed"))
	s.mockMessaging.EXPECT().
		GetErrorMessage(gomock.Any(), &messaging.GetErrorMessageInput{Kind: errs.KindRoundClosed, Detail: "round 5 is closed"}).
		Return(&messaging.GetErrorMessageOutput{Title: "Round Closed", Message: "Too late! (round 5 is closed)"}, nil)

	data, err := s.command.respond(s.ctx, interaction(subcommandGuess, roundOpt(5), valueOpt("10")))

	s.Require().NoError(err)
	s.Equal(discordgo.MessageFlagsEphemeral, data.Flags)
	s.Equal("Round Closed", data.Embeds[0].Title)
	s.Equal(colorError, data.Embeds[0].Color)
}

func (s *ClosestCommandTestSuite) TestErrorMessageFailure() {
	s.mockRounds.EXPECT().CreateRound(gomock.Any(), gomock.Any()).
		Return(nil, errs.Internal(errors.New("redis down"), "failed to create round"))
	s.mockMessaging.EXPECT().GetErrorMessage(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("boom"))

	_, err := s.command.respond(s.ctx, interaction(subcommandOpen))

	s.Error(err)
}

func (s *ClosestCommandTestSuite) TestCloseRevealsResults() {
	closed := &models.Round{ID: 5, CreatedAt: s.testTime, Status: models.RoundStatusClosed}
	alice := &models.Answer{ID: 1, RoundID: 5, UserName: "Alice", Value: 50}
	s.mockRounds.EXPECT().
		SetStatus(gomock.Any(), &roundService.SetStatusInput{RoundID: 5, Status: models.RoundStatusClosed}).
		Return(&roundService.SetStatusOutput{Round: closed, Changed: true}, nil)
	s.mockStats.EXPECT().
		GetRoundView(gomock.Any(), &statsService.GetRoundViewInput{RoundID: 5}).
		Return(&statsService.GetRoundViewOutput{View: &models.RoundView{
			RoundID:      5,
			Status:       models.RoundStatusClosed,
			Mean:         floatPtr(50),
			WinningValue: intPtr(50),
			TotalAnswers: intPtr(3),
			Winners:      []*models.Answer{alice},
			Distribution: []models.DistributionEntry{{Value: 40, Count: 1}, {Value: 50, Count: 1}, {Value: 60, Count: 1}},
		}}, nil)
	s.mockMessaging.EXPECT().
		GetResultsMessage(gomock.Any(), &messaging.GetResultsMessageInput{
			RoundID:      5,
			WinningValue: 50,
			TotalAnswers: 3,
			WinnerNames:  []string{"Alice"},
		}).
		Return(&messaging.GetResultsMessageOutput{Title: "Round #5 results", Message: "Alice wins, closest to 50!"}, nil)

	data, err := s.command.respond(s.ctx, interaction(subcommandClose, roundOpt(5)))

	s.Require().NoError(err)
	embed := data.Embeds[0]
	s.Equal("Round #5 results", embed.Title)
	s.Equal(colorClosed, embed.Color)
	s.Require().Len(data.Files, 1)
	s.Equal(chartFileName, data.Files[0].Name)
	s.Require().NotNil(embed.Image)
	s.Equal("attachment://"+chartFileName, embed.Image.URL)

	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	s.Equal("3", fields["Guesses"])
	s.Equal("50.00", fields["Mean"])
	s.Equal("50", fields["Winning value"])
	s.Equal("**Alice** guessed 50", fields["Winner"])
	s.Contains(fields["Distribution"], " 50*")
}

func (s *ClosestCommandTestSuite) TestCloseWithoutAnswers() {
	closed := &models.Round{ID: 6, CreatedAt: s.testTime, Status: models.RoundStatusClosed}
	s.mockRounds.EXPECT().SetStatus(gomock.Any(), gomock.Any()).
		Return(&roundService.SetStatusOutput{Round: closed, Changed: true}, nil)
	s.mockStats.EXPECT().GetRoundView(gomock.Any(), gomock.Any()).
		Return(&statsService.GetRoundViewOutput{View: &models.RoundView{
			RoundID:      6,
			Status:       models.RoundStatusClosed,
			TotalAnswers: intPtr(0),
			Winners:      []*models.Answer{},
			Distribution: []models.DistributionEntry{},
		}}, nil)
	s.mockMessaging.EXPECT().
		GetResultsMessage(gomock.Any(), &messaging.GetResultsMessageInput{RoundID: 6}).
		Return(&messaging.GetResultsMessageOutput{Title: "Round #6 results", Message: "Nobody guessed."}, nil)

	data, err := s.command.respond(s.ctx, interaction(subcommandClose, roundOpt(6)))

	s.Require().NoError(err)
	s.Empty(data.Files)
	s.Nil(data.Embeds[0].Image)
	s.Len(data.Embeds[0].Fields, 1)
}

func (s *ClosestCommandTestSuite) TestReopen() {
	open := &models.Round{ID: 5, CreatedAt: s.testTime, Status: models.RoundStatusOpen}
	s.mockRounds.EXPECT().
		SetStatus(gomock.Any(), &roundService.SetStatusInput{RoundID: 5, Status: models.RoundStatusOpen}).
		Return(&roundService.SetStatusOutput{Round: open, Changed: true}, nil)
	s.mockStats.EXPECT().GetRoundView(gomock.Any(), gomock.Any()).
		Return(&statsService.GetRoundViewOutput{View: &models.RoundView{
			RoundID:      5,
			Status:       models.RoundStatusOpen,
			AnswersCount: intPtr(4),
		}}, nil)
	s.mockMessaging.EXPECT().
		GetRoundStatusMessage(gomock.Any(), &messaging.GetRoundStatusMessageInput{RoundID: 5, Status: models.RoundStatusOpen, AnswersCount: 4}).
		Return(&messaging.GetRoundStatusMessageOutput{Title: "Round #5 is open", Message: "Back in business."}, nil)

	data, err := s.command.respond(s.ctx, interaction(subcommandReopen, roundOpt(5)))

	s.Require().NoError(err)
	s.Equal("4", data.Embeds[0].Fields[1].Value)
}

func (s *ClosestCommandTestSuite) TestResultsOfOpenRound() {
	s.mockStats.EXPECT().GetRoundView(gomock.Any(), &statsService.GetRoundViewInput{RoundID: 5}).
		Return(&statsService.GetRoundViewOutput{View: &models.RoundView{
			RoundID:      5,
			Status:       models.RoundStatusOpen,
			AnswersCount: intPtr(2),
		}}, nil)

	data, err := s.command.respond(s.ctx, interaction(subcommandResults, roundOpt(5)))

	s.Require().NoError(err)
	s.Equal("Round #5 is still open", data.Embeds[0].Title)
	s.Equal("2", data.Embeds[0].Fields[0].Value)
	s.Empty(data.Files)
}

func (s *ClosestCommandTestSuite) TestResultsOfMissingRound() {
	s.mockStats.EXPECT().GetRoundView(gomock.Any(), gomock.Any()).
		Return(nil, errs.New(errs.KindNotFound, "round 9 not found"))
	s.mockMessaging.EXPECT().
		GetErrorMessage(gomock.Any(), &messaging.GetErrorMessageInput{Kind: errs.KindNotFound, Detail: "round 9 not found"}).
		Return(&messaging.GetErrorMessageOutput{Title: "Not Found", Message: "Nope (round 9 not found)"}, nil)

	data, err := s.command.respond(s.ctx, interaction(subcommandResults, roundOpt(9)))

	s.Require().NoError(err)
	s.Equal("Not Found", data.Embeds[0].Title)
}

func (s *ClosestCommandTestSuite) TestGeneralWithoutAnswers() {
	s.mockStats.EXPECT().GetGeneralView(gomock.Any(), gomock.Any()).
		Return(&statsService.GetGeneralViewOutput{View: &models.GeneralView{
			Distribution: []models.DistributionEntry{},
		}}, nil)

	data, err := s.command.respond(s.ctx, interaction(subcommandGeneral))

	s.Require().NoError(err)
	s.Equal("No guesses yet in any round.", data.Embeds[0].Description)
	s.Empty(data.Files)
}

func (s *ClosestCommandTestSuite) TestGeneralWithAnswers() {
	s.mockStats.EXPECT().GetGeneralView(gomock.Any(), gomock.Any()).
		Return(&statsService.GetGeneralViewOutput{View: &models.GeneralView{
			Mean:         floatPtr(25),
			WinningValue: intPtr(25),
			TotalAnswers: 2,
			Distribution: []models.DistributionEntry{{Value: 0, Count: 1}, {Value: 50, Count: 1}},
		}}, nil)

	data, err := s.command.respond(s.ctx, interaction(subcommandGeneral))

	s.Require().NoError(err)
	s.Equal("Across every round the crowd lands on **25**.", data.Embeds[0].Description)
	s.Len(data.Files, 1)
}

func TestClosestCommandSuite(t *testing.T) {
	suite.Run(t, new(ClosestCommandTestSuite))
}
