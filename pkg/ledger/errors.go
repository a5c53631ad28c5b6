package ledger

import "github.com/pkg/errors"

var (
	ErrInvalidSignature    = errors.New("transaction signature invalid")
	ErrInsufficientBalance = errors.New("insufficient sender balance")

	ErrEmptyPool      = errors.New("transaction pool is empty")
	ErrBlockNotFound  = errors.New("block not found")
	ErrNilPolicy      = errors.New("nil consensus policy")
	ErrInvalidGenesis = errors.New("genesis block failed validation")
)
