package ledger

import (
	"encoding/hex"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"

	"github.com/mr-shifu/ctoken-lib/core/elgamal"
	"github.com/mr-shifu/ctoken-lib/core/math/curve"
)

// InMemoryLedger keeps one balance ciphertext per registered key, the
// spent-nullifier set and the aggregate locked value behind a single lock,
// so every state transition is applied atomically and exactly once.
type InMemoryLedger struct {
	lock sync.RWMutex

	balances   map[string]*elgamal.Serialized
	nullifiers map[string]struct{}
	locked     int64
}

var _ Ledger = (*InMemoryLedger)(nil)

func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		balances:   make(map[string]*elgamal.Serialized),
		nullifiers: make(map[string]struct{}),
	}
}

// accountID derives the ledger address of a public key, keccak-256 over
// its compressed encoding truncated to 20 bytes.
func accountID(pk curve.Point) string {
	raw, err := pk.MarshalBinary()
	if err != nil {
		return ""
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(raw)
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[len(sum)-20:])
}

func nullifierID(nullifier curve.Scalar) (string, error) {
	raw, err := nullifier.MarshalBinary()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func (l *InMemoryLedger) Register(pk curve.Point) (*Receipt, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	account := accountID(pk)
	if _, ok := l.balances[account]; ok {
		return nil, ErrAlreadyRegistered
	}
	l.balances[account] = elgamal.ZeroSerialized()
	return &Receipt{TxID: uuid.New().String(), Account: account}, nil
}

func (l *InMemoryLedger) Deposit(pk curve.Point, amount int64, newBalance *elgamal.Serialized) (*Receipt, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if newBalance == nil {
		return nil, ErrInvalidPayload
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	account := accountID(pk)
	if _, ok := l.balances[account]; !ok {
		return nil, ErrNotRegistered
	}
	l.balances[account] = newBalance
	l.locked += amount
	return &Receipt{TxID: uuid.New().String(), Account: account}, nil
}

func (l *InMemoryLedger) Transfer(
	senderPK, recipientPK curve.Point,
	newSender, newRecipient *elgamal.Serialized,
	proofHash, nullifier curve.Scalar,
) (*Receipt, error) {
	if newSender == nil || newRecipient == nil || proofHash == nil || nullifier == nil {
		return nil, ErrInvalidPayload
	}
	nfID, err := nullifierID(nullifier)
	if err != nil {
		return nil, err
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	sender := accountID(senderPK)
	recipient := accountID(recipientPK)
	if _, ok := l.balances[sender]; !ok {
		return nil, ErrNotRegistered
	}
	if _, ok := l.balances[recipient]; !ok {
		return nil, ErrNotRegistered
	}
	if _, spent := l.nullifiers[nfID]; spent {
		return nil, ErrNullifierSpent
	}

	// mark and swap together, under the same critical section
	l.nullifiers[nfID] = struct{}{}
	l.balances[sender] = newSender
	l.balances[recipient] = newRecipient
	return &Receipt{TxID: uuid.New().String(), Account: sender}, nil
}

func (l *InMemoryLedger) Withdraw(
	pk curve.Point,
	amount int64,
	newBalance *elgamal.Serialized,
	proofHash, nullifier curve.Scalar,
) (*Receipt, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if newBalance == nil || proofHash == nil || nullifier == nil {
		return nil, ErrInvalidPayload
	}
	nfID, err := nullifierID(nullifier)
	if err != nil {
		return nil, err
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	account := accountID(pk)
	if _, ok := l.balances[account]; !ok {
		return nil, ErrNotRegistered
	}
	if _, spent := l.nullifiers[nfID]; spent {
		return nil, ErrNullifierSpent
	}

	l.nullifiers[nfID] = struct{}{}
	l.balances[account] = newBalance
	l.locked -= amount
	return &Receipt{TxID: uuid.New().String(), Account: account}, nil
}

func (l *InMemoryLedger) GetBalance(pk curve.Point) (*elgamal.Serialized, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	balance, ok := l.balances[accountID(pk)]
	if !ok {
		return nil, ErrNotRegistered
	}
	return balance, nil
}

func (l *InMemoryLedger) IsRegistered(pk curve.Point) bool {
	l.lock.RLock()
	defer l.lock.RUnlock()

	_, ok := l.balances[accountID(pk)]
	return ok
}

func (l *InMemoryLedger) IsNullifierSpent(nullifier curve.Scalar) bool {
	nfID, err := nullifierID(nullifier)
	if err != nil {
		return false
	}

	l.lock.RLock()
	defer l.lock.RUnlock()

	_, spent := l.nullifiers[nfID]
	return spent
}

func (l *InMemoryLedger) TotalLocked() int64 {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.locked
}
