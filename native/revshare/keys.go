package revshare

import "fmt"

// Storage key schema. Every record kind gets its own prefix; composite keys
// join hex-encoded principals and decimal sequence numbers with '/'.
var (
	systemKeyBytes           = []byte("revshare/system")
	offeringPrefix           = "revshare/offering/"
	issuerTokensPrefix       = "revshare/issuer/"
	concentrationLimitPrefix = "revshare/conclimit/"
	concentrationPrefix      = "revshare/concentration/"
	auditSummaryPrefix       = "revshare/audit/"
	roundingModePrefix       = "revshare/rounding/"
	blacklistPrefix          = "revshare/blacklist/"
	whitelistPrefix          = "revshare/whitelist/"
	periodRecordPrefix       = "revshare/period/"
	periodIndexPrefix        = "revshare/periods/"
	reportRecordPrefix       = "revshare/report/"
	paymentTokenPrefix       = "revshare/paytoken/"
	holderSharePrefix        = "revshare/share/"
	claimCursorPrefix        = "revshare/cursor/"
	claimDelayPrefix         = "revshare/delay/"
	minRevenuePrefix         = "revshare/minrevenue/"
	pendingTransferPrefix    = "revshare/pending/"
)

func systemKey() []byte {
	return systemKeyBytes
}

func offeringKey(token [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x", offeringPrefix, token))
}

func issuerTokensKey(issuer [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x/tokens", issuerTokensPrefix, issuer))
}

func concentrationLimitKey(issuer, token [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x/%x", concentrationLimitPrefix, issuer, token))
}

func currentConcentrationKey(issuer, token [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x/%x", concentrationPrefix, issuer, token))
}

func auditSummaryKey(issuer, token [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x/%x", auditSummaryPrefix, issuer, token))
}

func roundingModeKey(issuer, token [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x/%x", roundingModePrefix, issuer, token))
}

func blacklistKey(token [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x", blacklistPrefix, token))
}

func whitelistKey(token [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x", whitelistPrefix, token))
}

func periodRecordKey(token [20]byte, periodID uint64) []byte {
	return []byte(fmt.Sprintf("%s%x/%d", periodRecordPrefix, token, periodID))
}

func periodIndexKey(token [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x", periodIndexPrefix, token))
}

func reportRecordKey(token [20]byte, periodID uint64) []byte {
	return []byte(fmt.Sprintf("%s%x/%d", reportRecordPrefix, token, periodID))
}

func paymentTokenKey(token [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x", paymentTokenPrefix, token))
}

func holderShareKey(token, holder [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x/%x", holderSharePrefix, token, holder))
}

func claimCursorKey(token, holder [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x/%x", claimCursorPrefix, token, holder))
}

func claimDelayKey(token [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x", claimDelayPrefix, token))
}

func minRevenueKey(token [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x", minRevenuePrefix, token))
}

func pendingTransferKey(token [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x", pendingTransferPrefix, token))
}
