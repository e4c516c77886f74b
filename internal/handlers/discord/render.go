package discord

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/closest/internal/models"
)

const (
	colorOpen   = 0x57f287
	colorClosed = 0x5865f2
	colorError  = 0xed4245

	chartFileName = "distribution.png"

	// maxBarWidth is the longest text bar drawn for a distribution bucket
	maxBarWidth = 20

	// maxDistributionLines keeps the text histogram inside an embed field
	maxDistributionLines = 15
)

// renderRoundStatus renders the announcement for a round being opened,
// closed or reopened
func renderRoundStatus(round *models.Round, title, message string, answers int) *discordgo.InteractionResponseData {
	color := colorOpen
	if !round.Status.IsOpen() {
		color = colorClosed
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       title,
				Description: message,
				Color:       color,
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Status", Value: string(round.Status), Inline: true},
					{Name: "Guesses", Value: fmt.Sprintf("%d", answers), Inline: true},
				},
				Footer: &discordgo.MessageEmbedFooter{
					Text: fmt.Sprintf("Guess with /closest guess round:%d value:<0-100>", round.ID),
				},
			},
		},
	}
}

// renderGuessAccepted renders the private acknowledgement of a guess
func renderGuessAccepted(answer *models.Answer, message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       fmt.Sprintf("Guess locked in for round #%d", answer.RoundID),
				Description: message,
				Color:       colorOpen,
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Your guess", Value: fmt.Sprintf("%d", answer.Value), Inline: true},
					{Name: "Answer ID", Value: fmt.Sprintf("%d", answer.ID), Inline: true},
				},
			},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

// renderOpenRoundView renders what may be shown about a round still taking guesses
func renderOpenRoundView(view *models.RoundView) *discordgo.InteractionResponseData {
	count := 0
	if view.AnswersCount != nil {
		count = *view.AnswersCount
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       fmt.Sprintf("Round #%d is still open", view.RoundID),
				Description: "Results are shown once the round closes.",
				Color:       colorOpen,
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Guesses so far", Value: fmt.Sprintf("%d", count), Inline: true},
				},
			},
		},
	}
}

// renderResults renders a closed round's results. The chart is attached
// when png is not empty.
func renderResults(view *models.RoundView, title, message string, png []byte) *discordgo.InteractionResponseData {
	total := 0
	if view.TotalAnswers != nil {
		total = *view.TotalAnswers
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Guesses", Value: fmt.Sprintf("%d", total), Inline: true},
	}

	if view.Mean != nil && view.WinningValue != nil {
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "Mean", Value: fmt.Sprintf("%.2f", *view.Mean), Inline: true},
			&discordgo.MessageEmbedField{Name: "Winning value", Value: fmt.Sprintf("%d", *view.WinningValue), Inline: true},
		)
	}

	if len(view.Winners) > 0 {
		lines := make([]string, len(view.Winners))
		for i, w := range view.Winners {
			lines[i] = fmt.Sprintf("**%s** guessed %d", w.UserName, w.Value)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  winnersLabel(len(view.Winners)),
			Value: strings.Join(lines, "\n"),
		})
	}

	if len(view.Distribution) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Distribution",
			Value: renderBars(view.Distribution, view.WinningValue),
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       colorClosed,
		Fields:      fields,
	}

	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	attachChart(data, embed, png)
	return data
}

// renderGeneral renders the results across every round
func renderGeneral(view *models.GeneralView, png []byte) *discordgo.InteractionResponseData {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Guesses", Value: fmt.Sprintf("%d", view.TotalAnswers), Inline: true},
	}

	description := "No guesses yet in any round."
	if view.Mean != nil && view.WinningValue != nil {
		description = fmt.Sprintf("Across every round the crowd lands on **%d**.", *view.WinningValue)
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "Mean", Value: fmt.Sprintf("%.2f", *view.Mean), Inline: true},
			&discordgo.MessageEmbedField{Name: "Winning value", Value: fmt.Sprintf("%d", *view.WinningValue), Inline: true},
		)
	}

	if len(view.Distribution) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Distribution",
			Value: renderBars(view.Distribution, view.WinningValue),
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       "All rounds",
		Description: description,
		Color:       colorClosed,
		Fields:      fields,
	}

	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	attachChart(data, embed, png)
	return data
}

// renderError renders a failure privately to the user who caused it
func renderError(title, message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       title,
				Description: message,
				Color:       colorError,
			},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

func attachChart(data *discordgo.InteractionResponseData, embed *discordgo.MessageEmbed, png []byte) {
	if len(png) == 0 {
		return
	}
	data.Files = []*discordgo.File{
		{
			Name:        chartFileName,
			ContentType: "image/png",
			Reader:      bytes.NewReader(png),
		},
	}
	embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + chartFileName}
}

// renderBars draws the non-empty buckets as text bars scaled to the largest
// count. The busiest buckets are kept when there are too many to show.
func renderBars(entries []models.DistributionEntry, highlight *int) string {
	shown := entries
	if len(shown) > maxDistributionLines {
		shown = busiest(entries, maxDistributionLines)
	}

	largest := 0
	for _, e := range shown {
		if e.Count > largest {
			largest = e.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("```\n")
	for _, e := range shown {
		width := e.Count * maxBarWidth / largest
		if width == 0 {
			width = 1
		}
		marker := " "
		if highlight != nil && *highlight == e.Value {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%3d%s %s %d\n", e.Value, marker, strings.Repeat("█", width), e.Count)
	}
	if len(shown) < len(entries) {
		fmt.Fprintf(&sb, "... %d more values\n", len(entries)-len(shown))
	}
	sb.WriteString("```")
	return sb.String()
}

// busiest keeps the n entries with the highest counts, still ascending by
// value. Equal counts favour the lower value.
func busiest(entries []models.DistributionEntry, n int) []models.DistributionEntry {
	ranked := make([]models.DistributionEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Count > ranked[b].Count
	})

	out := ranked[:n]
	sort.Slice(out, func(a, b int) bool {
		return out[a].Value < out[b].Value
	})
	return out
}

func winnersLabel(n int) string {
	if n == 1 {
		return "Winner"
	}
	return fmt.Sprintf("Winners (%d-way tie)", n)
}
