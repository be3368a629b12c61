package epic

import (
	"sort"

	"github.com/nathoo/tink/types"
)

// EvaluateRun evaluates epics under every unlocked projection. Each epic is
// scored only under the projection it names. Matched beats are scored for
// mood alignment and golden alignments are counted. Results from all
// projections are merged, best ratio first.
func EvaluateRun(history []types.Moment, projections []Projection, epics []types.EpicDef) types.RunResult {
	run := types.RunResult{Results: []types.ProjectedResult{}}

	for _, p := range projections {
		if !p.Unlocked {
			continue
		}
		transform := p.Transform
		if transform == nil {
			transform = Identity
		}
		view := transform(history)

		var scoped []types.EpicDef
		for _, e := range epics {
			if e.Projection == p.ID {
				scoped = append(scoped, e)
			}
		}

		for _, r := range EvaluateAll(scoped, view) {
			pr := types.ProjectedResult{
				EpicResult: r,
				Projection: p.ProjectionDef,
				Alignments: []types.Alignment{},
			}
			for _, br := range r.Matched {
				if br.Moment == nil {
					continue
				}
				a := ScoreAxisAlignment(br.Beat, *br.Moment)
				pr.Alignments = append(pr.Alignments, a)
				if a.Golden {
					pr.GoldenCount++
				}
			}
			run.GoldenMoments += pr.GoldenCount
			run.Results = append(run.Results, pr)
		}
	}

	sort.SliceStable(run.Results, func(i, j int) bool {
		return run.Results[i].Ratio > run.Results[j].Ratio
	})
	return run
}

// ByID returns the projection with the given id.
func ByID(projections []Projection, id string) (Projection, bool) {
	for _, p := range projections {
		if p.ID == id {
			return p, true
		}
	}
	return Projection{}, false
}
