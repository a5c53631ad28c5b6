package consensus

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/rajiknows/mockchain/pkg/ledger"
	"github.com/rajiknows/mockchain/pkg/tx"
	"github.com/rajiknows/mockchain/pkg/wallet"
)

// ProofOfStake picks a validator per production round with probability
// proportional to registered stake. Selection is a single uniform draw
// against a prefix-sum table over the sorted validator set, so a large
// staker costs the same as a small one.
type ProofOfStake struct {
	mu     sync.Mutex
	stakes map[string]uint64
	addrs  []string
	cum    []uint64
	total  uint64
	rng    *rand.Rand

	loop productionLoop
}

var _ ledger.Policy = (*ProofOfStake)(nil)

func NewProofOfStake(stakes map[string]uint64) *ProofOfStake {
	p := &ProofOfStake{
		stakes: map[string]uint64{},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		loop:   defaultLoop("proof-of-stake"),
	}

	for addr, s := range stakes {
		p.stakes[addr] = s
	}
	p.rebuildLocked()

	return p
}

func (p *ProofOfStake) Name() string { return "proof-of-stake" }

// RegisterStake adds stake to an address, accumulating across calls.
func (p *ProofOfStake) RegisterStake(address string, stake uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stakes[address] += stake
	p.rebuildLocked()
}

// rebuildLocked rebuilds the prefix-sum table. Addresses are sorted so
// the table is stable across runs with equal registries.
func (p *ProofOfStake) rebuildLocked() {
	p.addrs = p.addrs[:0]
	for addr, s := range p.stakes {
		if s == 0 {
			continue
		}
		p.addrs = append(p.addrs, addr)
	}
	sort.Strings(p.addrs)

	p.cum = p.cum[:0]
	p.total = 0
	for _, addr := range p.addrs {
		p.total += p.stakes[addr]
		p.cum = append(p.cum, p.total)
	}
}

// SelectValidator draws one validator, stake-weighted. ErrNoStake when
// the registry is empty.
func (p *ProofOfStake) SelectValidator() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.total == 0 {
		return "", ErrNoStake
	}

	r := p.rng.Uint64() % p.total
	i := sort.Search(len(p.cum), func(i int) bool { return p.cum[i] > r })

	return p.addrs[i], nil
}

// GenerateBlock builds the block directly; stake selection already
// decided who produces, so there is no hash search.
func (p *ProofOfStake) GenerateBlock(index uint64, txs []*tx.Tx, previousHash string) *ledger.Block {
	return ledger.NewBlock(index, txs, previousHash)
}

// ValidateBlock checks chain linkage and hash integrity.
func (p *ProofOfStake) ValidateBlock(b *ledger.Block, previousHash string) error {
	if b.PreviousHash != previousHash {
		return ErrPreviousHashMismatch
	}
	if b.Hash != b.CalculateHash() {
		return ErrHashMismatch
	}

	return nil
}

// Start launches the production loop, reselecting a validator on every
// attempt. With an empty registry it falls back to an ephemeral
// identity rather than stalling production.
func (p *ProofOfStake) Start(ctx context.Context, l *ledger.Ledger) error {
	fallback, err := wallet.New()
	if err != nil {
		return errors.Wrap(err, "generating fallback validator")
	}

	p.loop.logger.Info("starting block production")

	go p.loop.run(ctx, l, func() string {
		v, err := p.SelectValidator()
		if err != nil {
			p.loop.logger.Warn("no stake registered, using fallback validator")
			return fallback.Address()
		}
		return v
	})

	return nil
}
