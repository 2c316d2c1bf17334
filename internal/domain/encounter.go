package domain

// EncounterKind adverse event that may happen at the start of a turn.
type EncounterKind string

const (
	// EncounterNone no event this turn.
	EncounterNone EncounterKind = "none"
	// EncounterRobber steals a share of the wallet.
	EncounterRobber EncounterKind = "robber"
	// EncounterCorruptCop confiscates part of one inventory line.
	EncounterCorruptCop EncounterKind = "corrupt_cop"
	// EncounterUntouchableCop ends the game when the player carries anything.
	EncounterUntouchableCop EncounterKind = "untouchable_cop"
)

// String returns the string representation.
func (k EncounterKind) String() string {
	return string(k)
}

// IsValid checks if the kind names a real encounter.
func (k EncounterKind) IsValid() bool {
	return k == EncounterRobber || k == EncounterCorruptCop || k == EncounterUntouchableCop
}

// EncounterWeight candidate entry; the event fires on a 1-in-Weight roll.
type EncounterWeight struct {
	Kind   EncounterKind
	Weight int
}

// DefaultEncounterWeights the original odds.
func DefaultEncounterWeights() []EncounterWeight {
	return []EncounterWeight{
		{Kind: EncounterRobber, Weight: 3},
		{Kind: EncounterCorruptCop, Weight: 5},
		{Kind: EncounterUntouchableCop, Weight: 50},
	}
}

// EncounterOutcome what happened this turn, surfaced to the player before trading.
type EncounterOutcome struct {
	Kind     EncounterKind
	Message  string
	EndsGame bool
	// Defended a countermeasure was consumed and the effect suppressed.
	Defended bool
	// Weapon name of the consumed countermeasure.
	Weapon string
	// Amount money stolen or units confiscated.
	Amount int
	// Commodity confiscated line, if any.
	Commodity string
}

// Happened reports whether an encounter fired.
func (o EncounterOutcome) Happened() bool {
	return o.Kind != "" && o.Kind != EncounterNone
}
