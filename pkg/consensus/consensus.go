package consensus

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rajiknows/mockchain/pkg/ledger"
)

// Type selects a consensus variant. The set is closed: New is the only
// way to build a policy from configuration and rejects anything else.
type Type string

const (
	ProofOfWorkType  Type = "pow"
	ProofOfStakeType Type = "pos"
)

const (
	DefaultDifficulty    = 3
	DefaultMineInterval  = 10 * time.Second
	DefaultPoolThreshold = 10
)

var (
	ErrPreviousHashMismatch = errors.New("previous hash does not match chain tip")
	ErrHashMismatch         = errors.New("block hash does not match block content")
	ErrDifficultyNotMet     = errors.New("block hash does not meet difficulty target")

	ErrNoStake = errors.New("no stake registered")
)

// Config carries every tunable of the closed policy set. Zero
// MineInterval and PoolThreshold fall back to defaults; Difficulty is
// taken as-is, so zero means every hash qualifies.
type Config struct {
	Type          Type
	Difficulty    int
	MineInterval  time.Duration
	PoolThreshold int
	Stakes        map[string]uint64
}

func New(cfg Config) (ledger.Policy, error) {
	switch cfg.Type {
	case ProofOfWorkType:
		p := NewProofOfWork(cfg.Difficulty)
		cfg.applyLoop(&p.loop)
		return p, nil
	case ProofOfStakeType:
		p := NewProofOfStake(cfg.Stakes)
		cfg.applyLoop(&p.loop)
		return p, nil
	default:
		return nil, errors.Errorf("unknown consensus type %q", cfg.Type)
	}
}

func (cfg Config) applyLoop(pl *productionLoop) {
	if cfg.MineInterval > 0 {
		pl.interval = cfg.MineInterval
	}
	if cfg.PoolThreshold > 0 {
		pl.threshold = cfg.PoolThreshold
	}
}

// productionLoop is the cadence shared by every policy: wake on a fixed
// interval, produce one block when the pool backlog exceeds the
// threshold. It never sleeps while the ledger lock is held; each attempt
// is a single ProduceBlock call.
type productionLoop struct {
	interval  time.Duration
	threshold int
	logger    *logrus.Entry
}

func defaultLoop(name string) productionLoop {
	return productionLoop{
		interval:  DefaultMineInterval,
		threshold: DefaultPoolThreshold,
		logger:    logrus.WithField("consensus", name),
	}
}

// run blocks until ctx is cancelled. minerID is consulted once per
// production attempt so stake-based policies can reselect each round.
func (pl *productionLoop) run(ctx context.Context, l *ledger.Ledger, minerID func() string) {
	tick := time.NewTicker(pl.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			pl.logger.Info("stopping block production")
			return
		case <-tick.C:
			if l.PoolLen() <= pl.threshold {
				continue
			}

			b, err := l.ProduceBlock(minerID())
			if err != nil {
				if errors.Is(err, ledger.ErrEmptyPool) {
					continue
				}
				pl.logger.WithError(err).Error("producing block")
				continue
			}

			pl.logger.WithFields(logrus.Fields{
				"index": b.Index,
				"hash":  b.Hash,
				"txs":   len(b.Transactions),
			}).Info("mined block")
		}
	}
}
