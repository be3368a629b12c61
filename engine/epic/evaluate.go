package epic

import (
	"sort"

	"github.com/nathoo/tink/types"
)

const nearMissRatio = 2.0 / 3.0

// EvaluateEpic matches the beats of e against history in order. Each beat
// takes the first moment at or after the cursor that satisfies it and moves
// the cursor past it. A beat that finds nothing records its best partial
// score over the rest of the history and leaves the cursor where it was.
// Earlier choices are never revisited.
func EvaluateEpic(e types.EpicDef, history []types.Moment) types.EpicResult {
	matched := make([]types.BeatResult, 0, len(e.Beats))
	cursor := 0
	completed := 0

	for _, beat := range e.Beats {
		found := -1
		for i := cursor; i < len(history); i++ {
			if BeatMatches(beat, history[i]) {
				found = i
				break
			}
		}

		if found >= 0 {
			m := history[found]
			matched = append(matched, types.BeatResult{Beat: beat, Moment: &m, Index: found})
			cursor = found + 1
			completed++
			continue
		}

		best := 0.0
		for i := cursor; i < len(history); i++ {
			best = max(best, BeatPartialScore(beat, history[i]))
		}
		matched = append(matched, types.BeatResult{Beat: beat, Index: -1, Partial: best})
	}

	total := len(e.Beats)
	ratio := 0.0
	if total > 0 {
		ratio = float64(completed) / float64(total)
	}
	return types.EpicResult{
		Epic:           e,
		Matched:        matched,
		CompletedBeats: completed,
		TotalBeats:     total,
		Ratio:          ratio,
		Complete:       ratio == 1,
		NearMiss:       ratio >= nearMissRatio && ratio < 1,
	}
}

// EvaluateAll evaluates every epic against history, best ratio first.
// Equal ratios keep catalog order.
func EvaluateAll(epics []types.EpicDef, history []types.Moment) []types.EpicResult {
	results := make([]types.EpicResult, 0, len(epics))
	for _, e := range epics {
		results = append(results, EvaluateEpic(e, history))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Ratio > results[j].Ratio
	})
	return results
}
