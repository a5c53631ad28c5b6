package node

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rajiknows/mockchain/internal/config"
	"github.com/rajiknows/mockchain/pkg/consensus"
	"github.com/rajiknows/mockchain/pkg/ledger"
)

// Node assembles the ledger and its consensus policy from configuration
// and owns the production loop's lifetime.
type Node struct {
	cfg    *config.Config
	ledger *ledger.Ledger
	policy ledger.Policy

	cancel context.CancelFunc
	logger *logrus.Logger
}

func NewNode(ctx context.Context, opts ...NodeOption) (*Node, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	n := &Node{cfg: cfg}

	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}

	if n.logger == nil {
		n.logger = logrus.StandardLogger()
	}

	if n.policy == nil {
		n.policy, err = consensus.New(cfg.Chain().Consensus)
		if err != nil {
			return nil, errors.Wrap(err, "building consensus policy")
		}
	}

	n.ledger, err = ledger.New(n.policy)
	if err != nil {
		return nil, errors.Wrap(err, "initialising ledger")
	}

	return n, nil
}

func (n *Node) Ledger() *ledger.Ledger {
	return n.ledger
}

// Start launches background block production. The loop runs until Stop
// is called or the parent context ends.
func (n *Node) Start(ctx context.Context) error {
	ctx, n.cancel = context.WithCancel(ctx)

	n.logger.WithField("consensus", n.policy.Name()).Info("starting node")

	return errors.Wrap(n.policy.Start(ctx, n.ledger), "starting block production")
}

func (n *Node) Stop() error {
	n.logger.Warn("Shutting down")

	if n.cancel != nil {
		n.cancel()
	}

	return nil
}
