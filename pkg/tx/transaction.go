package tx

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	ethCrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
)

// FaucetAddress is the sentinel sender for faucet credits. Transactions
// from it bypass signature and balance checks.
const FaucetAddress = "FAUCET_MOCKCHAIN_ADDRESS"

// SignatureLen is the compact secp256k1 signature size [R || S].
const SignatureLen = 64

// Tx is a single value transfer. From and To are hex encodings of 33-byte
// compressed secp256k1 public keys, except for faucet transactions where
// From is FaucetAddress and the signature is empty.
type Tx struct {
	From      string `msgpack:"f"`
	To        string `msgpack:"t"`
	Amount    uint64 `msgpack:"a"`
	Timestamp int64  `msgpack:"e"`
	Signature []byte `msgpack:"s"`
}

// signedContent is the canonical signing tuple. The signature never covers
// itself, so it is excluded here.
type signedContent struct {
	_msgpack  struct{} `msgpack:",as_array"`
	From      string
	To        string
	Amount    uint64
	Timestamp int64
}

func New(from, to string, amount uint64) *Tx {
	return &Tx{
		From:      from,
		To:        to,
		Amount:    amount,
		Timestamp: time.Now().Unix(),
	}
}

// SigningPayload returns the 32-byte digest a sender signs: SHA-256 over
// the canonical encoding of (from, to, amount, timestamp).
func (t *Tx) SigningPayload() []byte {
	b, _ := msgpack.Marshal(&signedContent{
		From:      t.From,
		To:        t.To,
		Amount:    t.Amount,
		Timestamp: t.Timestamp,
	})
	sum := sha256.Sum256(b)
	return sum[:]
}

// Verify reports whether the transaction carries a valid sender signature
// over its signing payload. Faucet transactions verify unconditionally.
// Any malformed sender key or signature fails closed.
func (t *Tx) Verify() bool {
	if t.From == FaucetAddress {
		return true
	}

	pub, err := hex.DecodeString(t.From)
	if err != nil {
		logrus.WithError(err).WithField("from", t.From).Warn("decoding sender address")
		return false
	}

	if _, err := ethCrypto.DecompressPubkey(pub); err != nil {
		logrus.WithError(err).WithField("from", t.From).Warn("parsing sender public key")
		return false
	}

	if len(t.Signature) != SignatureLen {
		logrus.WithField("len", len(t.Signature)).Warn("unexpected signature length")
		return false
	}

	return ethCrypto.VerifySignature(pub, t.SigningPayload(), t.Signature)
}
