package revshare

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"revora/core/events"
)

const (
	EventTypeOfferingRegistered   = "revshare.offering.registered"
	EventTypeRevenueDeposited     = "revshare.revenue.deposited"
	EventTypeRevenueReported      = "revshare.revenue.reported"
	EventTypeReportOverride       = "revshare.report.override"
	EventTypeReportRejected       = "revshare.report.rejected"
	EventTypeConcentrationSet     = "revshare.concentration.limit_updated"
	EventTypeConcentrationReport  = "revshare.concentration.reported"
	EventTypeConcentrationWarning = "revshare.concentration.warning"
	EventTypeBlacklistAdded       = "revshare.blacklist.added"
	EventTypeBlacklistRemoved     = "revshare.blacklist.removed"
	EventTypeWhitelistAdded       = "revshare.whitelist.added"
	EventTypeWhitelistRemoved     = "revshare.whitelist.removed"
	EventTypeRoundingUpdated      = "revshare.rounding.updated"
	EventTypeClaimDelayUpdated    = "revshare.delay.updated"
	EventTypeThresholdUpdated     = "revshare.threshold.updated"
	EventTypeHolderShareUpdated   = "revshare.share.updated"
	EventTypeClaimPaid            = "revshare.claim.paid"
	EventTypeTransferProposed     = "revshare.transfer.proposed"
	EventTypeTransferAccepted     = "revshare.transfer.accepted"
	EventTypeTransferCancelled    = "revshare.transfer.cancelled"
	EventTypeInitialized          = "revshare.initialized"
	EventTypePaused               = "revshare.paused"
	EventTypeUnpaused             = "revshare.unpaused"
	EventTypeFrozen               = "revshare.frozen"
	EventTypeTestnetUpdated       = "revshare.testnet.updated"
	EventTypeVersioningUpdated    = "revshare.versioning.updated"

	// eventSchemaVersion tags the parallel v2 event stream emitted when event
	// versioning is enabled.
	eventSchemaVersion = "2"
	versionedPrefix    = "revshare.v2."
)

func addrAttr(addr [20]byte) string {
	return hex.EncodeToString(addr[:])
}

func amountAttr(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

func newEvent(eventType string, attrs map[string]string) *events.Event {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &events.Event{Type: eventType, Attributes: attrs}
}

// versionedEvent returns the schema-versioned twin of ev so old and new
// consumers can coexist on the same stream.
func versionedEvent(ev *events.Event) *events.Event {
	attrs := make(map[string]string, len(ev.Attributes)+1)
	for k, v := range ev.Attributes {
		attrs[k] = v
	}
	attrs["schemaVersion"] = eventSchemaVersion
	return &events.Event{
		Type:       versionedPrefix + strings.TrimPrefix(ev.Type, "revshare."),
		Attributes: attrs,
	}
}

func newOfferingRegisteredEvent(o *Offering) *events.Event {
	return newEvent(EventTypeOfferingRegistered, map[string]string{
		"issuer":          addrAttr(o.Issuer),
		"token":           addrAttr(o.Token),
		"revenueShareBps": strconv.FormatUint(uint64(o.RevenueShareBps), 10),
		"payoutAsset":     addrAttr(o.PayoutAsset),
	})
}

func newRevenueDepositedEvent(issuer, token, paymentToken [20]byte, amount *big.Int, periodID, depositedAt uint64) *events.Event {
	return newEvent(EventTypeRevenueDeposited, map[string]string{
		"issuer":       addrAttr(issuer),
		"token":        addrAttr(token),
		"paymentToken": addrAttr(paymentToken),
		"amount":       amountAttr(amount),
		"period":       strconv.FormatUint(periodID, 10),
		"depositedAt":  strconv.FormatUint(depositedAt, 10),
	})
}

func newRevenueReportedEvent(eventType string, issuer, token [20]byte, amount *big.Int, periodID uint64, blacklisted int) *events.Event {
	return newEvent(eventType, map[string]string{
		"issuer":      addrAttr(issuer),
		"token":       addrAttr(token),
		"amount":      amountAttr(amount),
		"period":      strconv.FormatUint(periodID, 10),
		"blacklisted": strconv.Itoa(blacklisted),
	})
}

func newConcentrationWarningEvent(issuer, token [20]byte, reportedBps, maxBps uint32) *events.Event {
	return newEvent(EventTypeConcentrationWarning, map[string]string{
		"issuer":      addrAttr(issuer),
		"token":       addrAttr(token),
		"reportedBps": strconv.FormatUint(uint64(reportedBps), 10),
		"maxBps":      strconv.FormatUint(uint64(maxBps), 10),
	})
}

func newListEvent(eventType string, caller, token, member [20]byte) *events.Event {
	return newEvent(eventType, map[string]string{
		"caller": addrAttr(caller),
		"token":  addrAttr(token),
		"member": addrAttr(member),
	})
}

func newClaimPaidEvent(holder, token [20]byte, payout *big.Int, periods []uint64, cursor uint64) *events.Event {
	ids := make([]string, len(periods))
	for i, p := range periods {
		ids[i] = strconv.FormatUint(p, 10)
	}
	return newEvent(EventTypeClaimPaid, map[string]string{
		"holder":  addrAttr(holder),
		"token":   addrAttr(token),
		"payout":  amountAttr(payout),
		"periods": strings.Join(ids, ","),
		"cursor":  strconv.FormatUint(cursor, 10),
	})
}

func newTransferEvent(eventType string, token, from, to [20]byte) *events.Event {
	return newEvent(eventType, map[string]string{
		"token":     addrAttr(token),
		"oldIssuer": addrAttr(from),
		"newIssuer": addrAttr(to),
	})
}

func newLifecycleEvent(eventType string, caller [20]byte, role string) *events.Event {
	return newEvent(eventType, map[string]string{
		"caller": addrAttr(caller),
		"role":   role,
	})
}
