package revshare

import "math/big"

const (
	// MaxBps is the basis-point denominator: 10000 = 100%.
	MaxBps = 10_000
	// MaxPageLimit caps the number of offerings returned per page.
	MaxPageLimit = 20
	// MaxClaimPeriods caps how many periods a single claim call may settle.
	MaxClaimPeriods = 100
)

// RoundingMode selects how distribution shares are rounded.
type RoundingMode uint8

const (
	// RoundingTruncation truncates toward zero: share = amount*bps/10000.
	RoundingTruncation RoundingMode = iota
	// RoundingHalfUp rounds halves away from zero toward the amount's sign.
	RoundingHalfUp
)

func (m RoundingMode) String() string {
	switch m {
	case RoundingHalfUp:
		return "half_up"
	default:
		return "truncation"
	}
}

// Offering is the registered revenue-share relationship between an issuer and
// a token. All fields except Issuer are immutable; Issuer changes only through
// the two-step transfer protocol.
type Offering struct {
	Issuer          [20]byte
	Token           [20]byte
	RevenueShareBps uint32
	PayoutAsset     [20]byte
}

// ConcentrationLimitConfig is the per-offering holder-concentration guardrail.
// MaxBps is the maximum allowed single-holder share (0 = disabled); when
// Enforce is set, revenue reports fail while the last reported concentration
// exceeds MaxBps.
type ConcentrationLimitConfig struct {
	MaxBps  uint32
	Enforce bool
}

// AuditSummary accumulates reported revenue per offering for off-chain
// reconciliation. TotalRevenue saturates instead of wrapping.
type AuditSummary struct {
	TotalRevenue *big.Int
	ReportCount  uint64
}

// PeriodRecord captures a custodial revenue deposit for one period.
type PeriodRecord struct {
	Amount      *big.Int
	DepositedAt uint64
}

// ReportRecord captures an audit-only revenue report for one period. Reports
// move no funds and live in a keyspace separate from custodial deposits.
type ReportRecord struct {
	Amount     *big.Int
	ReportedAt uint64
}

// SystemConfig is the process-wide lifecycle singleton created by Initialize.
// Frozen is permanent: no operation clears it.
type SystemConfig struct {
	Admin           [20]byte
	Safety          [20]byte
	Paused          bool
	Frozen          bool
	TestnetMode     bool
	EventVersioning bool
}

// HolderShare pairs a holder with its basis-point entitlement. Used as input
// to distribution previews.
type HolderShare struct {
	Holder   [20]byte
	ShareBps uint32
}

// DistributionEntry is one holder's computed payout in a distribution preview.
type DistributionEntry struct {
	Holder [20]byte
	Amount *big.Int
}

// ClaimResult summarises a successful claim call.
type ClaimResult struct {
	Payout  *big.Int
	Periods []uint64
	Cursor  uint64
}

func (s *AuditSummary) normalize() *AuditSummary {
	if s == nil {
		return &AuditSummary{TotalRevenue: big.NewInt(0)}
	}
	if s.TotalRevenue == nil {
		s.TotalRevenue = big.NewInt(0)
	}
	return s
}
