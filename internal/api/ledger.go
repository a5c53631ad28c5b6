package api

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apipb "github.com/rajiknows/mockchain/api"
	"github.com/rajiknows/mockchain/internal/utils/logging"
	"github.com/rajiknows/mockchain/pkg/ledger"
	"github.com/rajiknows/mockchain/pkg/tx"
	"github.com/rajiknows/mockchain/pkg/wallet"
)

// FaucetAmount is credited per faucet request.
const FaucetAmount uint64 = 1000

func init() {
	reg = append(reg, &ledgerAPI{})
}

type ledgerAPI struct {
	BaseHandler
}

var _ apipb.LedgerServer = (*ledgerAPI)(nil)

func (h *ledgerAPI) Desc() *grpc.ServiceDesc {
	return &apipb.LedgerServiceDesc
}

func (h *ledgerAPI) ledger() *ledger.Ledger {
	return h.a.n.Ledger()
}

func (h *ledgerAPI) SubmitTransaction(ctx context.Context, req *apipb.SubmitTransactionRequest) (*apipb.SubmitTransactionResponse, error) {
	t := &tx.Tx{
		From:      req.From,
		To:        req.To,
		Amount:    req.Amount,
		Timestamp: req.Timestamp,
		Signature: req.Signature,
	}

	if err := h.ledger().SubmitTransaction(t); err != nil {
		return &apipb.SubmitTransactionResponse{Message: err.Error()}, nil
	}

	return &apipb.SubmitTransactionResponse{
		Accepted: true,
		Message:  "transaction accepted",
	}, nil
}

func (h *ledgerAPI) GetBalance(ctx context.Context, req *apipb.BalanceRequest) (*apipb.BalanceResponse, error) {
	if req.Address == "" {
		return nil, status.Error(codes.InvalidArgument, "address required")
	}

	return &apipb.BalanceResponse{Balance: h.ledger().Balance(req.Address)}, nil
}

// RequestFaucet enqueues a faucet credit and attempts to mine it
// immediately under a throwaway identity, so callers usually see funds
// without waiting for the production loop.
func (h *ledgerAPI) RequestFaucet(ctx context.Context, req *apipb.FaucetRequest) (*apipb.FaucetResponse, error) {
	if req.Address == "" {
		return nil, status.Error(codes.InvalidArgument, "address required")
	}

	l := h.ledger()

	if err := l.SubmitTransaction(tx.New(tx.FaucetAddress, req.Address, FaucetAmount)); err != nil {
		return &apipb.FaucetResponse{Message: err.Error()}, nil
	}

	w, err := wallet.New()
	if err != nil {
		return nil, status.Error(codes.Internal, "generating miner identity")
	}

	b, err := l.ProduceBlock(w.Address())
	if err != nil {
		if !errors.Is(err, ledger.ErrEmptyPool) {
			logging.WithError(err).Error("producing faucet block")
		}
		// another producer drained the pool, or the attempt failed and
		// restored it; the credit is still pending either way
		return &apipb.FaucetResponse{
			Accepted: true,
			Amount:   FaucetAmount,
			Message:  "faucet funds queued for next block",
		}, nil
	}

	logging.WithFields(logging.Fields{
		"block": b.Hash,
		"to":    req.Address,
	}).Info("faucet block produced")

	return &apipb.FaucetResponse{
		Accepted: true,
		Amount:   FaucetAmount,
		Message:  "faucet funds sent successfully",
	}, nil
}

func (h *ledgerAPI) GetTip(ctx context.Context, req *apipb.TipRequest) (*apipb.BlockResponse, error) {
	return &apipb.BlockResponse{Block: h.ledger().Tip()}, nil
}

func (h *ledgerAPI) GetBlock(ctx context.Context, req *apipb.BlockRequest) (*apipb.BlockResponse, error) {
	b, err := h.ledger().BlockByIndex(req.Index)
	if err != nil {
		if errors.Is(err, ledger.ErrBlockNotFound) {
			return nil, status.Error(codes.NotFound, "block not found")
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &apipb.BlockResponse{Block: b}, nil
}

// WatchBlocks streams the current tip, then every newly appended block
// until the client goes away.
func (h *ledgerAPI) WatchBlocks(req *apipb.WatchBlocksRequest, stream apipb.Ledger_WatchBlocksServer) error {
	l := h.ledger()

	ch, cancel := l.Subscribe()
	defer cancel()

	if err := stream.Send(l.Tip()); err != nil {
		return err
	}

	for {
		select {
		case <-stream.Context().Done():
			return nil
		case b, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(b); err != nil {
				return err
			}
		}
	}
}
