package consensus

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/rajiknows/mockchain/pkg/ledger"
	"github.com/rajiknows/mockchain/pkg/tx"
	"github.com/rajiknows/mockchain/pkg/wallet"
)

// ProofOfWork searches for a nonce whose block hash carries the required
// number of leading zero hex digits. Expected cost grows 16x per
// difficulty step.
type ProofOfWork struct {
	difficulty int
	prefix     string
	loop       productionLoop
}

var _ ledger.Policy = (*ProofOfWork)(nil)

func NewProofOfWork(difficulty int) *ProofOfWork {
	if difficulty < 0 {
		difficulty = 0
	}

	return &ProofOfWork{
		difficulty: difficulty,
		prefix:     strings.Repeat("0", difficulty),
		loop:       defaultLoop("proof-of-work"),
	}
}

func (p *ProofOfWork) Name() string { return "proof-of-work" }

// GenerateBlock runs the nonce search. The search is unbounded and
// CPU-bound; callers hold the ledger lock for its duration.
func (p *ProofOfWork) GenerateBlock(index uint64, txs []*tx.Tx, previousHash string) *ledger.Block {
	b := ledger.NewBlock(index, txs, previousHash)

	for !strings.HasPrefix(b.Hash, p.prefix) {
		b.Nonce++
		b.Hash = b.CalculateHash()
	}

	return b
}

// ValidateBlock checks chain linkage, hash integrity against the block's
// own content, and the difficulty target. Pure and idempotent.
func (p *ProofOfWork) ValidateBlock(b *ledger.Block, previousHash string) error {
	if b.PreviousHash != previousHash {
		return ErrPreviousHashMismatch
	}
	if b.Hash != b.CalculateHash() {
		return ErrHashMismatch
	}
	if !strings.HasPrefix(b.Hash, p.prefix) {
		return ErrDifficultyNotMet
	}

	return nil
}

// Start launches the production loop under an ephemeral miner identity.
// The loop ends when ctx is cancelled.
func (p *ProofOfWork) Start(ctx context.Context, l *ledger.Ledger) error {
	w, err := wallet.New()
	if err != nil {
		return errors.Wrap(err, "generating miner identity")
	}

	miner := w.Address()
	p.loop.logger.WithField("miner", miner).Info("starting block production")

	go p.loop.run(ctx, l, func() string { return miner })

	return nil
}
