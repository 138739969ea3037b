package ledger

import (
	"errors"
	"fmt"
	"math/big"
)

// State is the storage surface the ledger needs. It is satisfied by the
// core/state manager, so ledger writes made during an engine staging region
// commit or discard together with the engine's own writes.
type State interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
}

var (
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")
	ErrInvalidAmount       = errors.New("ledger: amount must be positive")
	errNilState            = errors.New("ledger: state not configured")
)

// BookLedger keeps per-token account balances as plain book entries. It backs
// the revenue-share engine's value transfers in a standalone deployment, where
// no host chain provides a token module.
type BookLedger struct {
	state State
}

func NewBookLedger(state State) *BookLedger {
	return &BookLedger{state: state}
}

func balanceKey(token, account [20]byte) []byte {
	return []byte(fmt.Sprintf("ledger/balance/%x/%x", token, account))
}

func (l *BookLedger) balance(token, account [20]byte) (*big.Int, error) {
	value := new(big.Int)
	ok, err := l.state.KVGet(balanceKey(token, account), value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	return value, nil
}

// Balance returns the account's balance for the token, zero when no entry
// exists.
func (l *BookLedger) Balance(token, account [20]byte) (*big.Int, error) {
	if l == nil || l.state == nil {
		return nil, errNilState
	}
	return l.balance(token, account)
}

// Credit mints amount into the account. Intended for test networks and
// operator funding; production deployments replace the ledger with the host
// token module.
func (l *BookLedger) Credit(token, account [20]byte, amount *big.Int) error {
	if l == nil || l.state == nil {
		return errNilState
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	current, err := l.balance(token, account)
	if err != nil {
		return err
	}
	return l.state.KVPut(balanceKey(token, account), new(big.Int).Add(current, amount))
}

// Transfer moves amount between accounts, failing without side effects when
// the sender's balance does not cover it.
func (l *BookLedger) Transfer(token, from, to [20]byte, amount *big.Int) error {
	if l == nil || l.state == nil {
		return errNilState
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	fromBalance, err := l.balance(token, from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	toBalance, err := l.balance(token, to)
	if err != nil {
		return err
	}
	if err := l.state.KVPut(balanceKey(token, from), new(big.Int).Sub(fromBalance, amount)); err != nil {
		return err
	}
	return l.state.KVPut(balanceKey(token, to), new(big.Int).Add(toBalance, amount))
}
