package api

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	apipb "github.com/rajiknows/mockchain/api"
	"github.com/rajiknows/mockchain/internal/node"
	"github.com/rajiknows/mockchain/pkg/consensus"
	"github.com/rajiknows/mockchain/pkg/tx"
	"github.com/rajiknows/mockchain/pkg/wallet"
)

func newTestClient(t *testing.T) apipb.LedgerClient {
	n, err := node.NewNode(context.Background(), node.WithPolicy(consensus.NewProofOfWork(1)))
	require.NoError(t, err)

	a, err := NewAPI(n)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go a.g.Serve(lis)

	cc, err := grpc.Dial("bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithInsecure(),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(apipb.CodecName)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		cc.Close()
		a.g.Stop()
	})

	return apipb.NewLedgerClient(cc)
}

func TestFaucetCreditsBalance(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	res, err := c.RequestFaucet(ctx, &apipb.FaucetRequest{Address: "alice"})
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Equal(t, FaucetAmount, res.Amount)

	bal, err := c.GetBalance(ctx, &apipb.BalanceRequest{Address: "alice"})
	require.NoError(t, err)
	assert.Equal(t, FaucetAmount, bal.Balance)

	tip, err := c.GetTip(ctx, &apipb.TipRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tip.Block.Index)
}

func TestSubmitTransactionRejectsUnsigned(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	res, err := c.SubmitTransaction(ctx, &apipb.SubmitTransactionRequest{
		From:   "nobody",
		To:     "somebody",
		Amount: 5,
	})
	require.NoError(t, err)

	assert.False(t, res.Accepted)
	assert.NotEmpty(t, res.Message)

	bal, err := c.GetBalance(ctx, &apipb.BalanceRequest{Address: "somebody"})
	require.NoError(t, err)
	assert.Zero(t, bal.Balance)
}

func TestSubmitTransactionSignedSpend(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	alice, err := wallet.New()
	require.NoError(t, err)

	_, err = c.RequestFaucet(ctx, &apipb.FaucetRequest{Address: alice.Address()})
	require.NoError(t, err)

	spend := tx.New(alice.Address(), "bob", 400)
	require.NoError(t, alice.SignTransaction(spend))

	res, err := c.SubmitTransaction(ctx, &apipb.SubmitTransactionRequest{
		From:      spend.From,
		To:        spend.To,
		Amount:    spend.Amount,
		Timestamp: spend.Timestamp,
		Signature: spend.Signature,
	})
	require.NoError(t, err)
	require.True(t, res.Accepted, res.Message)

	// pending until the next production; a faucet request drains the
	// whole pool into one block
	_, err = c.RequestFaucet(ctx, &apipb.FaucetRequest{Address: "carol"})
	require.NoError(t, err)

	bal, err := c.GetBalance(ctx, &apipb.BalanceRequest{Address: "bob"})
	require.NoError(t, err)
	assert.Equal(t, uint64(400), bal.Balance)

	bal, err = c.GetBalance(ctx, &apipb.BalanceRequest{Address: alice.Address()})
	require.NoError(t, err)
	assert.Equal(t, uint64(600), bal.Balance)
}

func TestGetBlockNotFound(t *testing.T) {
	c := newTestClient(t)

	_, err := c.GetBlock(context.Background(), &apipb.BlockRequest{Index: 99})

	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestGetBalanceRequiresAddress(t *testing.T) {
	c := newTestClient(t)

	_, err := c.GetBalance(context.Background(), &apipb.BalanceRequest{})

	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestWatchBlocksStreamsTipThenNew(t *testing.T) {
	c := newTestClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := c.WatchBlocks(ctx, &apipb.WatchBlocksRequest{})
	require.NoError(t, err)

	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), first.Index)

	_, err = c.RequestFaucet(ctx, &apipb.FaucetRequest{Address: "dave"})
	require.NoError(t, err)

	next, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), next.Index)
	assert.Equal(t, first.Hash, next.PreviousHash)
}
