// Package types defines the shared data structures for the tink engine.
// This package contains only type definitions. No logic, no methods.
package types

// Nature is a trait-set: trait name → bool, number, or string.
type Nature map[string]any

// Stability classifies how well two natures agreed when unified.
type Stability string

const (
	Harmony   Stability = "harmony"
	Resonance Stability = "resonance"
	Tension   Stability = "tension"
	Paradox   Stability = "paradox"
)

// Conflict marks a trait whose two input values could not be merged.
type Conflict struct {
	From [2]any
}

// Unification is the immutable result of merging two natures.
type Unification struct {
	Unified    map[string]any // passthrough, agreed, summed, or Conflict values
	Stability  Stability
	Conflicts  []string
	Resonances []string
}

// RequirementKind tags the variant held by a Requirement.
type RequirementKind int

const (
	RequireTrait        RequirementKind = iota // Trait must equal Value
	RequireMinConflicts                        // at least Count conflicts
)

// Requirement is one condition of an archetype.
type Requirement struct {
	Kind  RequirementKind
	Trait string
	Value any
	Count int
}

// ArchetypeDef is a catalog entry matched against unifications.
type ArchetypeDef struct {
	Name     string
	Required []Requirement
	Tier     string // legendary, mythic, rare, uncommon, common
	Flavor   string
	Cascade  Nature // injected into neighbors on match (may be nil)
}

// ArchetypeMatch is the winning archetype as reported to callers.
type ArchetypeMatch struct {
	Name    string
	Tier    string
	Flavor  string
	Cascade Nature // never nil
}

// Score is the requirement tally of one archetype against a unification.
type Score struct {
	Matched int
	Total   int
	Ratio   float64
	Score   float64 // Matched weighted by Ratio
}

// Candidate is an archetype whose ratio reached the candidate threshold.
type Candidate struct {
	Name string
	Tier string
	Score
}

// NearMiss is a non-winning candidate that was partially satisfied.
type NearMiss struct {
	Name          string
	Tier          string
	Matched       int
	Total         int
	Ratio         float64
	MissingTraits []string
}

// MatchResult is the outcome of matching one unification.
type MatchResult struct {
	Match      *ArchetypeMatch // nil when nothing qualified
	Score      *Score          // nil when Match is nil
	Candidates []Candidate
	NearMisses []NearMiss
}

// Thread is an entity that can be placed on the loom.
type Thread struct {
	Name   string
	Nature Nature
	Rarity string // common, uncommon, rare
	Flavor string
}

// Tier names a loom size.
type Tier string

const (
	TierTriad Tier = "triad" // 3 cells
	TierHex   Tier = "hex"   // 7 cells
	TierBloom Tier = "bloom" // 12 cells
	TierGrand Tier = "grand" // 19 cells
)

// Coord is an axial hex coordinate.
type Coord struct {
	Q int
	R int
}

// Placement is a thread at a loom position.
type Placement struct {
	Thread   Thread
	Position Coord
}

// CascadeInjection records one injected trait applied to a crossing input.
type CascadeInjection struct {
	Trait string
	To    Coord
}

// Crossing is one resolved adjacent pair.
type Crossing struct {
	ThreadA        Placement
	ThreadB        Placement
	Unification    Unification
	Archetype      MatchResult
	CascadeApplied []CascadeInjection
	CascadeDepth   int
}

// Moment is one history entry as seen by the epic evaluator.
// Projection fields are empty until a projection sets them.
type Moment struct {
	Stability    Stability
	Traits       Nature // flattened unified traits
	Archetype    *ArchetypeMatch
	CascadeDepth int
	NearMisses   []NearMiss

	HeroStage   string // call, trials, ordeal, return
	DramaticArc string // rising, falling, denouement
	Symmetry    string // first, echo
	EchoCount   int
}

// Requires is the sparse condition set of a beat. Zero values are unset.
type Requires struct {
	Stability     Stability
	Traits        Nature
	HasArchetype  bool
	ArchetypeTier string
	CascadeDepth  int
	HasNearMiss   bool
	MinConflicts  int
	HeroStage     string
	DramaticArc   string
	Symmetry      string
}

// Mood is the optional tonal declaration of a beat.
type Mood struct {
	Tone      string
	Hue       string
	Intensity *float64
}

// Beat is one step of an epic.
type Beat struct {
	Label     string
	Requires  Requires
	Mood      *Mood
	OnMatch   string
	OnPartial string
}

// EpicDef is an ordered multi-beat template.
type EpicDef struct {
	Name       string
	Tier       string
	Projection string // id of the projection applied before evaluation
	Beats      []Beat
	OnComplete string
	OnPartial  string
}

// BeatResult records how one beat fared against a history.
type BeatResult struct {
	Beat    Beat
	Moment  *Moment // nil when unmatched
	Index   int     // history index of Moment, -1 when unmatched
	Partial float64 // best partial score when unmatched
}

// EpicResult is the evaluation of one epic against a history.
type EpicResult struct {
	Epic           EpicDef
	Matched        []BeatResult
	CompletedBeats int
	TotalBeats     int
	Ratio          float64
	Complete       bool
	NearMiss       bool
}

// Alignment scores a beat's declared mood against a moment's mood.
type Alignment struct {
	Aligned int
	Total   int
	Ratio   float64
	Golden  bool
}

// Palette is the presentation palette of a projection.
type Palette struct {
	BaseHue          string
	DefaultIntensity float64
}

// ProjectionDef describes a history projection (the transform lives in engine/epic).
type ProjectionDef struct {
	Name        string
	ID          string
	Description string
	Unlocked    bool
	UnlocksAt   int
	Palette     Palette
}

// ProjectedResult is an epic result produced under a projection.
type ProjectedResult struct {
	EpicResult
	Projection  ProjectionDef
	Alignments  []Alignment
	GoldenCount int
}

// RunResult aggregates epic results across unlocked projections.
type RunResult struct {
	Results       []ProjectedResult
	GoldenMoments int
}

// Weave is one complete loom activation with its evaluation.
type Weave struct {
	Number    int
	Tier      Tier
	Crossings []Crossing
	History   []Moment
	Run       RunResult
}

// Intent is a parsed session command.
type Intent struct {
	Verb   string
	Object string // thread name, count, or tier
	Target string // coordinate for place
}

// State is the mutable session state.
type State struct {
	Tier        Tier
	Hand        []Thread
	Weaves      int
	Unlocked    map[string]bool // projection id → unlocked
	RNGSeed     int64
	RNGPosition int64
	CommandLog  []string
	Last        *Weave // most recent weave, nil before the first
}

// Event is emitted by the session engine for observers.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single session command.
type Result struct {
	Events []Event
	Output []string
}
