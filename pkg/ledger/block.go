package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rajiknows/mockchain/pkg/tx"
)

const (
	// GenesisPreviousHash is the previous-hash sentinel carried by block 0.
	GenesisPreviousHash = "0"

	// BlockReward is credited to a block's miner during balance replay.
	BlockReward uint64 = 50
)

// Block is one element of the hash-linked chain. Miner is stamped after
// generation and is deliberately outside the hashed content, so rewriting
// it does not invalidate the hash; the chain trusts its own producer.
type Block struct {
	Index        uint64   `msgpack:"i"`
	Timestamp    int64    `msgpack:"t"`
	Transactions []*tx.Tx `msgpack:"x"`
	PreviousHash string   `msgpack:"p"`
	Hash         string   `msgpack:"h"`
	Nonce        uint64   `msgpack:"n"`
	Miner        string   `msgpack:"m"`
}

// hashedContent is the canonical hashing tuple: every consensus-relevant
// field except the hash itself and the miner.
type hashedContent struct {
	_msgpack     struct{} `msgpack:",as_array"`
	Index        uint64
	Timestamp    int64
	Transactions []*tx.Tx
	PreviousHash string
	Nonce        uint64
}

// NewBlock stamps the current time, zero nonce, empty miner, and computes
// the initial hash.
func NewBlock(index uint64, txs []*tx.Tx, previousHash string) *Block {
	b := &Block{
		Index:        index,
		Timestamp:    time.Now().Unix(),
		Transactions: txs,
		PreviousHash: previousHash,
	}
	b.Hash = b.CalculateHash()

	return b
}

// CalculateHash returns the hex SHA-256 of the block's canonical content.
// Pure: same fields, same digest.
func (b *Block) CalculateHash() string {
	enc, _ := msgpack.Marshal(&hashedContent{
		Index:        b.Index,
		Timestamp:    b.Timestamp,
		Transactions: b.Transactions,
		PreviousHash: b.PreviousHash,
		Nonce:        b.Nonce,
	})
	sum := sha256.Sum256(enc)

	return hex.EncodeToString(sum[:])
}
