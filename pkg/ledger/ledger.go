package ledger

import (
	"context"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rajiknows/mockchain/pkg/tx"
)

// Policy is the consensus contract the ledger drives. GenerateBlock and
// ValidateBlock are pure with respect to ledger state; Start runs the
// policy's background production loop against the ledger until the
// context is cancelled.
type Policy interface {
	Name() string
	GenerateBlock(index uint64, txs []*tx.Tx, previousHash string) *Block
	ValidateBlock(b *Block, previousHash string) error
	Start(ctx context.Context, l *Ledger) error
}

// Ledger is the single authoritative chain plus the pending transaction
// pool. One mutex guards chain, pool, blooms and subscribers: exactly one
// caller reads or mutates at a time, including the nonce search inside
// ProduceBlock.
type Ledger struct {
	mu     sync.Mutex
	policy Policy

	chain  []*Block
	pool   []*tx.Tx
	blooms []*bloom.BloomFilter

	subs    map[int]chan *Block
	nextSub int

	logger *logrus.Entry
}

// New builds a ledger whose only block is the policy-generated genesis
// (index 0, empty batch, previous hash sentinel).
func New(p Policy) (*Ledger, error) {
	if p == nil {
		return nil, ErrNilPolicy
	}

	genesis := p.GenerateBlock(0, nil, GenesisPreviousHash)
	if err := p.ValidateBlock(genesis, GenesisPreviousHash); err != nil {
		return nil, errors.Wrap(ErrInvalidGenesis, err.Error())
	}

	l := &Ledger{
		policy: p,
		chain:  []*Block{genesis},
		blooms: []*bloom.BloomFilter{makeAddressBloom(genesis)},
		subs:   map[int]chan *Block{},
		logger: logrus.NewEntry(logrus.StandardLogger()),
	}

	l.logger.WithField("consensus", p.Name()).Info("created new ledger")

	return l, nil
}

// SubmitTransaction admits a transaction to the pending pool. Faucet
// transactions skip signature and balance checks. Admission is atomic:
// a rejected transaction leaves no trace.
func (l *Ledger) SubmitTransaction(t *tx.Tx) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.From != tx.FaucetAddress {
		if !t.Verify() {
			l.logger.WithField("from", t.From).Warn("rejecting transaction: bad signature")
			return ErrInvalidSignature
		}

		if l.balanceLocked(t.From) < t.Amount {
			l.logger.WithFields(logrus.Fields{
				"from":   t.From,
				"amount": t.Amount,
			}).Warn("rejecting transaction: insufficient balance")
			return ErrInsufficientBalance
		}
	}

	l.pool = append(l.pool, t)

	l.logger.WithFields(logrus.Fields{
		"from":   t.From,
		"to":     t.To,
		"amount": t.Amount,
	}).Info("admitted transaction")

	return nil
}

// ProduceBlock drains the entire pool, in submission order, into one new
// block generated and validated by the policy, stamps the miner, and
// appends it. ErrEmptyPool when there is nothing to produce; the attempt
// has no side effects in that case.
func (l *Ledger) ProduceBlock(miner string) (*Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.pool) == 0 {
		return nil, ErrEmptyPool
	}

	batch := l.pool
	l.pool = nil

	tip := l.chain[len(l.chain)-1]

	b := l.policy.GenerateBlock(tip.Index+1, batch, tip.Hash)
	if err := l.policy.ValidateBlock(b, tip.Hash); err != nil {
		l.pool = batch
		return nil, errors.Wrap(err, "validating self-produced block")
	}

	b.Miner = miner

	l.chain = append(l.chain, b)
	l.blooms = append(l.blooms, makeAddressBloom(b))
	l.notify(b)

	l.logger.WithFields(logrus.Fields{
		"index": b.Index,
		"hash":  b.Hash,
		"txs":   len(b.Transactions),
		"miner": miner,
	}).Info("produced block")

	return b, nil
}

// Balance replays the full chain: credit recipients, saturating-debit
// senders, one BlockReward per block mined by the address. Per-block
// address blooms skip blocks that definitely never touch the address.
func (l *Ledger) Balance(address string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balanceLocked(address)
}

func (l *Ledger) balanceLocked(address string) uint64 {
	key := []byte(address)

	var balance uint64
	for i, b := range l.chain {
		if !l.blooms[i].Test(key) {
			continue
		}

		for _, t := range b.Transactions {
			if t.To == address {
				balance += t.Amount
			}
			if t.From == address {
				if t.Amount > balance {
					balance = 0
				} else {
					balance -= t.Amount
				}
			}
		}

		if b.Miner == address {
			balance += BlockReward
		}
	}

	return balance
}

// CheckBalance reports whether the address holds at least amount.
func (l *Ledger) CheckBalance(address string, amount uint64) bool {
	return l.Balance(address) >= amount
}

// Tip returns the newest block. The chain is never empty.
func (l *Ledger) Tip() *Block {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.chain[len(l.chain)-1]
}

// Height returns the tip index.
func (l *Ledger) Height() uint64 {
	return l.Tip().Index
}

// BlockByIndex returns the block at the given height.
func (l *Ledger) BlockByIndex(index uint64) (*Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index >= uint64(len(l.chain)) {
		return nil, ErrBlockNotFound
	}

	return l.chain[index], nil
}

// PoolLen returns the number of pending transactions.
func (l *Ledger) PoolLen() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.pool)
}

// Subscribe registers a watcher for newly appended blocks. The returned
// cancel func must be called exactly once; after it returns the channel
// is closed.
func (l *Ledger) Subscribe() (<-chan *Block, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan *Block, 16)
	id := l.nextSub
	l.nextSub++
	l.subs[id] = ch

	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()

		if _, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}

func (l *Ledger) notify(b *Block) {
	for id, ch := range l.subs {
		select {
		case ch <- b:
		default:
			l.logger.WithField("sub", id).Warn("dropping block event for slow subscriber")
		}
	}
}
