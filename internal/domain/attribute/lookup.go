package attribute

import (
	"strconv"

	"github.com/okian/scout/internal/domain/model"
)

// Numeric returns the numeric value of a player field. Derived metrics are
// computed from the raw attributes; string-valued and unknown keys read as 0.
func Numeric(p *model.Player, key Key) float64 {
	switch key {
	case Age:
		return float64(p.Age)

	case Cor:
		return float64(p.Cor)
	case Cro:
		return float64(p.Cro)
	case Dri:
		return float64(p.Dri)
	case Fin:
		return float64(p.Fin)
	case Fir:
		return float64(p.Fir)
	case Fla:
		return float64(p.Fla)
	case Hea:
		return float64(p.Hea)
	case Lon:
		return float64(p.Lon)
	case Mar:
		return float64(p.Mar)
	case Pas:
		return float64(p.Pas)
	case Tck:
		return float64(p.Tck)
	case Tec:
		return float64(p.Tec)

	case Agg:
		return float64(p.Agg)
	case Ant:
		return float64(p.Ant)
	case Bra:
		return float64(p.Bra)
	case Com:
		return float64(p.Com)
	case Cmp:
		return float64(p.Cmp)
	case Cnt:
		return float64(p.Cnt)
	case Dec:
		return float64(p.Dec)
	case Det:
		return float64(p.Det)
	case Ldr:
		return float64(p.Ldr)
	case OtB:
		return float64(p.OtB)
	case Pos:
		return float64(p.Pos)
	case Tea:
		return float64(p.Tea)
	case Vis:
		return float64(p.Vis)
	case Wor:
		return float64(p.Wor)

	case Acc:
		return float64(p.Acc)
	case Agi:
		return float64(p.Agi)
	case Bal:
		return float64(p.Bal)
	case Jum:
		return float64(p.Jum)
	case Pac:
		return float64(p.Pac)
	case Sta:
		return float64(p.Sta)
	case Str:
		return float64(p.Str)

	case OneOnOne:
		return float64(p.OneOnOne)
	case Aer:
		return float64(p.Aer)
	case Cmd:
		return float64(p.Cmd)
	case Han:
		return float64(p.Han)
	case Kic:
		return float64(p.Kic)
	case Ref:
		return float64(p.Ref)
	case TRO:
		return float64(p.TRO)
	case Thr:
		return float64(p.Thr)

	case Speed:
		return DerivedSpeed(p)
	case WorkRate:
		return DerivedWorkRate(p)
	case SetPieces:
		return DerivedSetPieces(p)

	default:
		return 0
	}
}

// Text returns the string value of a player field. Numeric fields are
// formatted the way the import shape renders them; unknown keys read as "".
func Text(p *model.Player, key Key) string {
	switch key {
	case Name:
		return p.Name
	case Club:
		return p.Club
	case Nationality:
		return p.Nationality
	case Position:
		return p.Position
	case Value:
		return p.Value
	case TransferValue:
		return p.TransferValue
	case Wage:
		return p.Wage
	default:
		if !isNumericKey(key) {
			return ""
		}
		return strconv.FormatFloat(Numeric(p, key), 'f', -1, 64)
	}
}

// DerivedSpeed is the average of pace and acceleration.
func DerivedSpeed(p *model.Player) float64 {
	return float64(p.Pac+p.Acc) / 2
}

// DerivedWorkRate is the average of work rate and stamina.
func DerivedWorkRate(p *model.Player) float64 {
	return float64(p.Wor+p.Sta) / 2
}

// DerivedSetPieces is the average of corners and first touch.
func DerivedSetPieces(p *model.Player) float64 {
	return float64(p.Cor+p.Fir) / 2
}

// numericKeys lists every key Numeric resolves to a real field.
var numericKeys = map[Key]struct{}{
	Age: {},
	Cor: {}, Cro: {}, Dri: {}, Fin: {}, Fir: {}, Fla: {}, Hea: {}, Lon: {},
	Mar: {}, Pas: {}, Tck: {}, Tec: {},
	Agg: {}, Ant: {}, Bra: {}, Com: {}, Cmp: {}, Cnt: {}, Dec: {}, Det: {},
	Ldr: {}, OtB: {}, Pos: {}, Tea: {}, Vis: {}, Wor: {},
	Acc: {}, Agi: {}, Bal: {}, Jum: {}, Pac: {}, Sta: {}, Str: {},
	OneOnOne: {}, Aer: {}, Cmd: {}, Han: {}, Kic: {}, Ref: {}, TRO: {}, Thr: {},
	Speed: {}, WorkRate: {}, SetPieces: {},
}

func isNumericKey(key Key) bool {
	_, ok := numericKeys[key]
	return ok
}
