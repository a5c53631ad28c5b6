package node

import (
	"github.com/sirupsen/logrus"

	"github.com/rajiknows/mockchain/pkg/ledger"
)

type NodeOption func(*Node) error

func WithLogger(l *logrus.Logger) NodeOption {
	return func(n *Node) error {
		n.logger = l
		return nil
	}
}

// WithPolicy overrides the configured consensus policy.
func WithPolicy(p ledger.Policy) NodeOption {
	return func(n *Node) error {
		n.policy = p
		return nil
	}
}
