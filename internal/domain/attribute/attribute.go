// Package attribute enumerates the known player attribute keys and provides
// total lookup functions over them.
//
// Role weight vectors and query rules both address player fields by key.
// Keeping the lookup total (unknown key reads as zero / empty string) is the
// deliberate degradation policy: missing data lowers a score or fails a
// filter, it never aborts a batch.
package attribute

// Key identifies one player field: identity, market info, a raw skill
// attribute, or a derived metric.
type Key string

// Identity and market keys.
const (
	Name          Key = "Name"
	Age           Key = "Age"
	Club          Key = "Club"
	Nationality   Key = "Nationality"
	Position      Key = "Position"
	Value         Key = "Value"
	TransferValue Key = "Transfer Value"
	Wage          Key = "Wage"
)

// Technical attribute keys.
const (
	Cor Key = "Cor"
	Cro Key = "Cro"
	Dri Key = "Dri"
	Fin Key = "Fin"
	Fir Key = "Fir"
	Fla Key = "Fla"
	Hea Key = "Hea"
	Lon Key = "Lon"
	Mar Key = "Mar"
	Pas Key = "Pas"
	Tck Key = "Tck"
	Tec Key = "Tec"
)

// Mental attribute keys.
const (
	Agg Key = "Agg"
	Ant Key = "Ant"
	Bra Key = "Bra"
	Com Key = "Com"
	Cmp Key = "Cmp"
	Cnt Key = "Cnt"
	Dec Key = "Dec"
	Det Key = "Det"
	Ldr Key = "Ldr"
	OtB Key = "OtB"
	Pos Key = "Pos"
	Tea Key = "Tea"
	Vis Key = "Vis"
	Wor Key = "Wor"
)

// Physical attribute keys.
const (
	Acc Key = "Acc"
	Agi Key = "Agi"
	Bal Key = "Bal"
	Jum Key = "Jum"
	Pac Key = "Pac"
	Sta Key = "Sta"
	Str Key = "Str"
)

// Goalkeeper attribute keys.
const (
	OneOnOne Key = "1v1"
	Aer      Key = "Aer"
	Cmd      Key = "Cmd"
	Han      Key = "Han"
	Kic      Key = "Kic"
	Ref      Key = "Ref"
	TRO      Key = "TRO"
	Thr      Key = "Thr"
)

// Derived metric keys. Each is the unweighted average of two raw attributes,
// recomputed from the raw values on every lookup.
const (
	Speed     Key = "Speed"
	WorkRate  Key = "WorkRate"
	SetPieces Key = "SetPieces"
)
