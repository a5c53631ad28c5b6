package api

import (
	"github.com/rajiknows/mockchain/pkg/ledger"
)

type SubmitTransactionRequest struct {
	From      string `msgpack:"f"`
	To        string `msgpack:"t"`
	Amount    uint64 `msgpack:"a"`
	Timestamp int64  `msgpack:"e"`
	Signature []byte `msgpack:"s"`
}

type SubmitTransactionResponse struct {
	Accepted bool   `msgpack:"ok"`
	Message  string `msgpack:"m"`
}

type BalanceRequest struct {
	Address string `msgpack:"a"`
}

type BalanceResponse struct {
	Balance uint64 `msgpack:"b"`
}

type FaucetRequest struct {
	Address string `msgpack:"a"`
}

type FaucetResponse struct {
	Accepted bool   `msgpack:"ok"`
	Amount   uint64 `msgpack:"c"`
	Message  string `msgpack:"m"`
}

type TipRequest struct{}

type BlockRequest struct {
	Index uint64 `msgpack:"i"`
}

// BlockResponse carries a chain block verbatim; blocks are immutable
// once appended so the ledger type doubles as the wire type.
type BlockResponse struct {
	Block *ledger.Block `msgpack:"b"`
}

type WatchBlocksRequest struct{}
