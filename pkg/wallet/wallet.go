package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"

	ethCrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/rajiknows/mockchain/pkg/tx"
)

// Wallet holds a secp256k1 keypair. Its address is the hex encoding of
// the compressed public key, the same identity transaction signatures
// are verified against.
type Wallet struct {
	priv *ecdsa.PrivateKey
}

func New() (*Wallet, error) {
	priv, err := ethCrypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generating keypair")
	}

	return &Wallet{priv: priv}, nil
}

// FromBytes rebuilds a wallet from a raw private key.
func FromBytes(b []byte) (*Wallet, error) {
	priv, err := ethCrypto.ToECDSA(b)
	if err != nil {
		return nil, errors.Wrap(err, "parsing private key")
	}

	return &Wallet{priv: priv}, nil
}

// Bytes returns the raw private key.
func (w *Wallet) Bytes() []byte {
	return ethCrypto.FromECDSA(w.priv)
}

func (w *Wallet) Address() string {
	return hex.EncodeToString(ethCrypto.CompressPubkey(&w.priv.PublicKey))
}

// SignTransaction signs the transaction's payload, attaching the compact
// [R || S] signature without the recovery byte.
func (w *Wallet) SignTransaction(t *tx.Tx) error {
	sig, err := ethCrypto.Sign(t.SigningPayload(), w.priv)
	if err != nil {
		return errors.Wrap(err, "signing transaction")
	}

	t.Signature = sig[:tx.SignatureLen]

	return nil
}
