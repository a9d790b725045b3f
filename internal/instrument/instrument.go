package instrument

import "strings"

const (
	// StandardCommission is the per-contract rate for full-size contracts.
	StandardCommission = 5.00
	// MicroCommission is the discounted per-contract rate for micro contracts.
	MicroCommission = 1.00

	defaultMultiplier = 1.0
	defaultTickSize   = 0.01
)

// Metadata holds the per-symbol constants needed to value a trade.
type Metadata struct {
	Multiplier     float64 `json:"multiplier"`      // dollar value of one full point per contract
	TickSize       float64 `json:"tick_size"`       // minimum price increment
	CommissionRate float64 `json:"commission_rate"` // per contract, per round trip
}

// microRoots are the micro-sized contracts that get the discounted rate.
var microRoots = map[string]bool{
	"MES": true,
	"MNQ": true,
	"MYM": true,
	"M2K": true,
	"MGC": true,
	"MCL": true,
	"SIL": true,
	"MBT": true,
}

// contracts maps a root symbol to its multiplier and tick size. Commission
// is derived from microRoots so the two tables cannot drift apart.
var contracts = map[string]struct {
	multiplier float64
	tickSize   float64
}{
	// Index futures
	"ES":  {50, 0.25},
	"NQ":  {20, 0.25},
	"YM":  {5, 1.0},
	"RTY": {50, 0.10},
	"MES": {5, 0.25},
	"MNQ": {2, 0.25},
	"MYM": {0.5, 1.0},
	"M2K": {5, 0.10},
	// Metals
	"GC":  {100, 0.10},
	"SI":  {5000, 0.005},
	"HG":  {25000, 0.0005},
	"MGC": {10, 0.10},
	"SIL": {1000, 0.005},
	// Energy
	"CL":  {1000, 0.01},
	"NG":  {10000, 0.001},
	"MCL": {100, 0.01},
	// Rates
	"ZB": {1000, 0.03125},
	"ZN": {1000, 0.015625},
	// Crypto
	"MBT": {0.1, 5.0},
}

// rootFamilies is the prefix-match order for symbols that carry an expiry
// suffix (e.g. "ESZ5", "MNQH6"). Longer roots come first so "MES" is not
// swallowed by "ES".
var rootFamilies = []string{
	"MES", "MNQ", "MYM", "M2K", "MGC", "MCL", "MBT", "SIL",
	"RTY", "ES", "NQ", "YM", "GC", "SI", "HG", "CL", "NG", "ZB", "ZN",
}

// Normalize uppercases a symbol and strips the leading root marker
// some platforms prepend (e.g. "/ES" -> "ES").
func Normalize(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	return strings.TrimPrefix(s, "/")
}

// Root reduces a symbol to its contract root: "/ESZ5" -> "ES". Unknown
// symbols come back normalized but otherwise untouched.
func Root(symbol string) string {
	s := Normalize(symbol)
	if _, ok := contracts[s]; ok {
		return s
	}
	for _, root := range rootFamilies {
		if strings.HasPrefix(s, root) {
			return root
		}
	}
	return s
}

// Resolve looks up valuation metadata for a symbol: exact match on the
// normalized root, then prefix match against the known root families, then
// a fixed default. Never fails; unknown symbols get {1, 0.01, standard}.
func Resolve(symbol string) Metadata {
	root := Root(symbol)
	if c, ok := contracts[root]; ok {
		return Metadata{
			Multiplier:     c.multiplier,
			TickSize:       c.tickSize,
			CommissionRate: commissionFor(root),
		}
	}
	return Metadata{
		Multiplier:     defaultMultiplier,
		TickSize:       defaultTickSize,
		CommissionRate: StandardCommission,
	}
}

func commissionFor(root string) float64 {
	if microRoots[root] {
		return MicroCommission
	}
	return StandardCommission
}
