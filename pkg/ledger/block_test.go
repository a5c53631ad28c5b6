package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajiknows/mockchain/pkg/tx"
)

func TestNewBlockComputesHash(t *testing.T) {
	b := NewBlock(0, nil, GenesisPreviousHash)

	assert.NotEmpty(t, b.Hash)
	assert.Equal(t, b.CalculateHash(), b.Hash)
	assert.Equal(t, uint64(0), b.Nonce)
	assert.Empty(t, b.Miner)
}

func TestCalculateHashDeterministic(t *testing.T) {
	txs := []*tx.Tx{{From: "a", To: "b", Amount: 5, Timestamp: 100}}

	a := &Block{Index: 3, Timestamp: 200, Transactions: txs, PreviousHash: "ff", Nonce: 9}
	b := &Block{Index: 3, Timestamp: 200, Transactions: txs, PreviousHash: "ff", Nonce: 9}

	assert.Equal(t, a.CalculateHash(), b.CalculateHash())
}

func TestCalculateHashCoversFields(t *testing.T) {
	base := &Block{Index: 3, Timestamp: 200, PreviousHash: "ff", Nonce: 9}

	cases := map[string]*Block{
		"index":         {Index: 4, Timestamp: 200, PreviousHash: "ff", Nonce: 9},
		"timestamp":     {Index: 3, Timestamp: 201, PreviousHash: "ff", Nonce: 9},
		"previous hash": {Index: 3, Timestamp: 200, PreviousHash: "fe", Nonce: 9},
		"nonce":         {Index: 3, Timestamp: 200, PreviousHash: "ff", Nonce: 10},
		"transactions": {Index: 3, Timestamp: 200, PreviousHash: "ff", Nonce: 9,
			Transactions: []*tx.Tx{{From: "a", To: "b", Amount: 1}}},
	}

	for name, mutated := range cases {
		assert.NotEqual(t, base.CalculateHash(), mutated.CalculateHash(), name)
	}
}

func TestCalculateHashExcludesMiner(t *testing.T) {
	a := &Block{Index: 1, Timestamp: 200, PreviousHash: "ff", Nonce: 9}
	b := &Block{Index: 1, Timestamp: 200, PreviousHash: "ff", Nonce: 9, Miner: "someone"}

	assert.Equal(t, a.CalculateHash(), b.CalculateHash())
}
