package services

import (
	"math"
	"sort"

	"classroom-backend/models"
)

// Scoring weights for room similarity. Availability carries the largest
// single weight so free rooms float to the top of suggestions.
const (
	scoreSameType       = 100
	scoreCapacityClose  = 50
	scoreCapacityNear   = 25
	scoreBothProjector  = 20
	scoreBothComputers  = 20
	scoreBothWhiteboard = 10
	scoreSameBuilding   = 30
	scoreSameFloor      = 15
	scoreSlotFree       = 200
	scoreSlotOccupied   = -50
	ratingWeight        = 6
)

// SlotAvailability carries the optional slot check result into scoring.
// Known is false when the caller supplied no date and period.
type SlotAvailability struct {
	Known bool
	Free  bool
}

// RankedRoom is a scored suggestion.
type RankedRoom struct {
	Room  models.Room `json:"room"`
	Score int         `json:"score"`
}

// ScoreRoom computes the suitability of candidate as a replacement for ref.
// Pure; availability and rating arrive as inputs, nothing is queried.
func ScoreRoom(ref, candidate models.Room, slot SlotAvailability, rating float64) int {
	score := 0

	if candidate.RoomType == ref.RoomType {
		score += scoreSameType
	}

	if ref.Capacity > 0 {
		diff := math.Abs(float64(candidate.Capacity-ref.Capacity)) / float64(ref.Capacity)
		if diff <= 0.2 {
			score += scoreCapacityClose
		} else if diff <= 0.5 {
			score += scoreCapacityNear
		}
	} else if candidate.Capacity == 0 {
		score += scoreCapacityClose
	}

	if ref.HasProjector && candidate.HasProjector {
		score += scoreBothProjector
	}
	if ref.HasComputers && candidate.HasComputers {
		score += scoreBothComputers
	}
	if ref.HasWhiteboard && candidate.HasWhiteboard {
		score += scoreBothWhiteboard
	}

	if candidate.Building == ref.Building {
		score += scoreSameBuilding
	}
	if candidate.Floor == ref.Floor {
		score += scoreSameFloor
	}

	if slot.Known {
		if slot.Free {
			score += scoreSlotFree
		} else {
			score += scoreSlotOccupied
		}
	}

	score += int(math.Round(rating * ratingWeight))

	return score
}

// RankRooms scores every candidate against ref, orders them by descending
// score with ties kept in input order, and applies offset and limit. A
// negative limit means no limit. The reference room itself is skipped if
// present among the candidates.
func RankRooms(ref models.Room, candidates []models.Room, slotFor func(models.Room) SlotAvailability, ratingFor func(models.Room) float64, offset, limit int) []RankedRoom {
	ranked := make([]RankedRoom, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == ref.ID {
			continue
		}
		ranked = append(ranked, RankedRoom{
			Room:  c,
			Score: ScoreRoom(ref, c, slotFor(c), ratingFor(c)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if offset > len(ranked) {
		offset = len(ranked)
	}
	if offset < 0 {
		offset = 0
	}
	ranked = ranked[offset:]
	if limit >= 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
