// Package model contains domain models passed between layers.
package model

// Player represents one scouted individual. JSON tags mirror the column
// names of the exported attribute tables so imported records round-trip
// unchanged, including the awkward ones ("1v1", "Transfer Value").
//
// Attribute values are nominally 1-20; zero means unknown/unset. Name is the
// de facto primary key: imports, cache keys and roster updates all match on
// it, and two players sharing a name collide (documented limitation of the
// import format, which carries no stable identifier).
type Player struct {
	// Identity
	Name        string `json:"Name"`
	Age         int    `json:"Age"`
	Club        string `json:"Club"`
	Nationality string `json:"Nationality"`
	// Position holds a comma-separated list of position codes, e.g. "ST, AMC".
	Position string `json:"Position"`

	// Market info, free text as exported (currency symbols, ranges).
	Value         string `json:"Value,omitempty"`
	TransferValue string `json:"Transfer Value,omitempty"`
	Wage          string `json:"Wage,omitempty"`

	// Technical
	Cor int `json:"Cor"`
	Cro int `json:"Cro"`
	Dri int `json:"Dri"`
	Fin int `json:"Fin"`
	Fir int `json:"Fir"`
	Fla int `json:"Fla"`
	Hea int `json:"Hea"`
	Lon int `json:"Lon"`
	Mar int `json:"Mar"`
	Pas int `json:"Pas"`
	Tck int `json:"Tck"`
	Tec int `json:"Tec"`

	// Mental
	Agg int `json:"Agg"`
	Ant int `json:"Ant"`
	Bra int `json:"Bra"`
	Com int `json:"Com"`
	Cmp int `json:"Cmp"`
	Cnt int `json:"Cnt"`
	Dec int `json:"Dec"`
	Det int `json:"Det"`
	Ldr int `json:"Ldr"`
	OtB int `json:"OtB"`
	Pos int `json:"Pos"`
	Tea int `json:"Tea"`
	Vis int `json:"Vis"`
	Wor int `json:"Wor"`

	// Physical
	Acc int `json:"Acc"`
	Agi int `json:"Agi"`
	Bal int `json:"Bal"`
	Jum int `json:"Jum"`
	Pac int `json:"Pac"`
	Sta int `json:"Sta"`
	Str int `json:"Str"`

	// Goalkeeper
	OneOnOne int `json:"1v1"`
	Aer      int `json:"Aer"`
	Cmd      int `json:"Cmd"`
	Han      int `json:"Han"`
	Kic      int `json:"Kic"`
	Ref      int `json:"Ref"`
	TRO      int `json:"TRO"`
	Thr      int `json:"Thr"`

	// Derived metrics, computed during scoring rather than imported.
	Speed     float64 `json:"Speed,omitempty"`
	WorkRate  float64 `json:"WorkRate,omitempty"`
	SetPieces float64 `json:"SetPieces,omitempty"`

	// Scoring output, attached by a batch job.
	RoleScores map[string]float64 `json:"roleScores,omitempty"`
	BestRole   *RoleScore         `json:"bestRole,omitempty"`
}

// RoleScore captures how well a player fits a single role.
type RoleScore struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
