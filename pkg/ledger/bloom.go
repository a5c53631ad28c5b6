package ledger

import (
	"github.com/bits-and-blooms/bloom/v3"
)

const (
	bloomEstimate      = 1024
	bloomFalsePositive = 0.01
)

// makeAddressBloom indexes every address a block can touch during balance
// replay: transaction senders and recipients plus the miner. False
// positives only cost a block scan; replay stays the source of truth.
func makeAddressBloom(b *Block) *bloom.BloomFilter {
	f := bloom.NewWithEstimates(bloomEstimate, bloomFalsePositive)

	for _, t := range b.Transactions {
		f.Add([]byte(t.From))
		f.Add([]byte(t.To))
	}
	if b.Miner != "" {
		f.Add([]byte(b.Miner))
	}

	return f
}
