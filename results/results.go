// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/danielhkuo/uchaguzi-block/models"
)

var hundred = decimal.NewFromInt(100)

// Stat card figures. Like the vote counts they are sample data and never
// change.
var (
	TurnoutPercent  = decimal.New(784, -1) // 78.4
	RejectedPercent = decimal.New(2, -2)   // 0.02
)

const DiasporaVotes int64 = 142000

// TotalVotes sums the per-candidate counts
func TotalVotes(candidates []models.Candidate) int64 {
	return lo.SumBy(candidates, func(c models.Candidate) int64 {
		return c.Votes
	})
}

// Share returns votes as a percentage of total, rounded to two places.
// A zero total yields zero.
func Share(votes, total int64) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(votes).
		Mul(hundred).
		Div(decimal.NewFromInt(total)).
		Round(2)
}

// Chart returns the {name, votes, fill} points used by the bar chart and
// sent as the integrity snapshot.
func Chart(candidates []models.Candidate) []models.ChartPoint {
	return lo.Map(candidates, func(c models.Candidate, _ int) models.ChartPoint {
		return models.ChartPoint{Name: c.Name, Votes: c.Votes, Fill: c.Color}
	})
}

// Aggregate derives the dashboard summary. It is a pure function of its
// input; ballot order is preserved.
func Aggregate(candidates []models.Candidate) models.ResultsSummary {
	total := TotalVotes(candidates)

	rows := lo.Map(candidates, func(c models.Candidate, _ int) models.CandidateResult {
		return models.CandidateResult{
			CandidateID:  c.ID,
			Name:         c.Name,
			Party:        c.Party,
			Color:        c.Color,
			Votes:        c.Votes,
			VotesDisplay: humanize.Comma(c.Votes),
			Share:        Share(c.Votes, total),
		}
	})

	summary := models.ResultsSummary{
		TotalVotes:        total,
		TotalVotesDisplay: humanize.Comma(total),
		Live:              true,

		TurnoutPercent:       TurnoutPercent,
		DiasporaVotes:        DiasporaVotes,
		DiasporaVotesDisplay: humanize.Comma(DiasporaVotes),
		RejectedPercent:      RejectedPercent,

		Candidates: rows,
		Chart:      Chart(candidates),
	}

	// First candidate wins a tie
	if len(candidates) > 0 {
		leader := lo.Reduce(candidates[1:], func(best models.Candidate, c models.Candidate, _ int) models.Candidate {
			if c.Votes > best.Votes {
				return c
			}
			return best
		}, candidates[0])
		summary.LeaderID = leader.ID
	}

	return summary
}
