package revshare

import "errors"

var (
	ErrNotInitialized             = errors.New("revshare: not initialized")
	ErrAlreadyInitialized         = errors.New("revshare: already initialized")
	ErrFrozen                     = errors.New("revshare: contract frozen")
	ErrPaused                     = errors.New("revshare: contract paused")
	ErrUnauthorized               = errors.New("revshare: unauthorized")
	ErrInvalidRevenueShareBps     = errors.New("revshare: invalid revenue share bps")
	ErrInvalidShareBps            = errors.New("revshare: invalid holder share bps")
	ErrInvalidAmount              = errors.New("revshare: amount must be positive")
	ErrOfferingExists             = errors.New("revshare: offering already exists")
	ErrOfferingNotFound           = errors.New("revshare: offering not found")
	ErrConcentrationLimitExceeded = errors.New("revshare: concentration limit exceeded")
	ErrPeriodAlreadyDeposited     = errors.New("revshare: period already deposited")
	ErrPaymentTokenMismatch       = errors.New("revshare: payment token mismatch")
	ErrPayoutAssetMismatch        = errors.New("revshare: payout asset mismatch")
	ErrBelowMinRevenueThreshold   = errors.New("revshare: amount below minimum revenue threshold")
	ErrHolderBlacklisted          = errors.New("revshare: holder blacklisted")
	ErrHolderNotWhitelisted       = errors.New("revshare: holder not whitelisted")
	ErrNoPendingClaims            = errors.New("revshare: no pending claims")
	ErrClaimDelayNotElapsed       = errors.New("revshare: claim delay not elapsed")
	ErrIssuerTransferPending      = errors.New("revshare: issuer transfer already pending")
	ErrNoTransferPending          = errors.New("revshare: no issuer transfer pending")
	ErrZeroTotalSupply            = errors.New("revshare: total supply must be positive")
)
