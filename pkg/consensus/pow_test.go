package consensus

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajiknows/mockchain/pkg/ledger"
	"github.com/rajiknows/mockchain/pkg/tx"
	"github.com/rajiknows/mockchain/pkg/wallet"
)

func newPowLedger(t *testing.T, difficulty int) (*ProofOfWork, *ledger.Ledger) {
	p := NewProofOfWork(difficulty)

	l, err := ledger.New(p)
	if err != nil {
		t.Fatal(err)
	}

	return p, l
}

func TestGenesisMeetsDifficulty(t *testing.T) {
	_, l := newPowLedger(t, 2)

	tip := l.Tip()
	assert.Equal(t, uint64(0), tip.Index)
	assert.Equal(t, ledger.GenesisPreviousHash, tip.PreviousHash)
	assert.Empty(t, tip.Transactions)
	assert.True(t, strings.HasPrefix(tip.Hash, "00"))
}

func TestGenerateBlockMeetsDifficulty(t *testing.T) {
	for difficulty := 0; difficulty <= 2; difficulty++ {
		p := NewProofOfWork(difficulty)

		b := p.GenerateBlock(1, nil, "aa")

		assert.True(t, strings.HasPrefix(b.Hash, strings.Repeat("0", difficulty)))
		assert.Equal(t, b.CalculateHash(), b.Hash)
	}
}

func TestValidateBlockAcceptsOwnOutput(t *testing.T) {
	p := NewProofOfWork(2)

	b := p.GenerateBlock(1, []*tx.Tx{tx.New(tx.FaucetAddress, "a", 1)}, "aa")

	require.NoError(t, p.ValidateBlock(b, "aa"))
	// idempotent: same verdict on repeat
	require.NoError(t, p.ValidateBlock(b, "aa"))
}

func TestValidateBlockLinkage(t *testing.T) {
	p := NewProofOfWork(2)

	b := p.GenerateBlock(1, nil, "aa")

	assert.ErrorIs(t, p.ValidateBlock(b, "bb"), ErrPreviousHashMismatch)
}

func TestValidateBlockTamperedContent(t *testing.T) {
	p := NewProofOfWork(2)

	b := p.GenerateBlock(1, []*tx.Tx{tx.New(tx.FaucetAddress, "a", 1)}, "aa")
	b.Transactions[0].Amount = 9999

	assert.ErrorIs(t, p.ValidateBlock(b, "aa"), ErrHashMismatch)
}

func TestValidateBlockTamperedNonce(t *testing.T) {
	p := NewProofOfWork(2)

	b := p.GenerateBlock(1, nil, "aa")
	b.Nonce++

	assert.ErrorIs(t, p.ValidateBlock(b, "aa"), ErrHashMismatch)
}

func TestValidateBlockDifficultyNotMet(t *testing.T) {
	b := ledger.NewBlock(1, nil, "aa")
	for strings.HasPrefix(b.Hash, "0") {
		b.Nonce++
		b.Hash = b.CalculateHash()
	}

	p := NewProofOfWork(2)

	assert.ErrorIs(t, p.ValidateBlock(b, "aa"), ErrDifficultyNotMet)
}

func TestLedgerLifecycleAtDifficultyTwo(t *testing.T) {
	p, l := newPowLedger(t, 2)

	alice, err := wallet.New()
	require.NoError(t, err)

	// faucet credit, mined immediately
	require.NoError(t, l.SubmitTransaction(tx.New(tx.FaucetAddress, alice.Address(), 1000)))
	b1, err := l.ProduceBlock("m1")
	require.NoError(t, err)

	assert.Equal(t, uint64(1), b1.Index)
	assert.True(t, strings.HasPrefix(b1.Hash, "00"))
	assert.Equal(t, uint64(1000), l.Balance(alice.Address()))
	assert.Equal(t, ledger.BlockReward, l.Balance("m1"))

	// funded spend
	spend := tx.New(alice.Address(), "bob", 400)
	require.NoError(t, alice.SignTransaction(spend))
	require.NoError(t, l.SubmitTransaction(spend))
	require.Equal(t, 1, l.PoolLen())

	b2, err := l.ProduceBlock("m2")
	require.NoError(t, err)
	require.Len(t, b2.Transactions, 1)

	assert.Equal(t, uint64(600), l.Balance(alice.Address()))
	assert.Equal(t, uint64(400), l.Balance("bob"))
	assert.Equal(t, ledger.BlockReward, l.Balance("m1"))
	assert.Equal(t, ledger.BlockReward, l.Balance("m2"))

	// every accepted block revalidates against its predecessor
	for i := uint64(1); i <= l.Height(); i++ {
		b, err := l.BlockByIndex(i)
		require.NoError(t, err)
		prev, err := l.BlockByIndex(i - 1)
		require.NoError(t, err)

		assert.NoError(t, p.ValidateBlock(b, prev.Hash))
	}
}

func TestStartProducesWhenBacklogExceedsThreshold(t *testing.T) {
	pol, err := New(Config{
		Type:          ProofOfWorkType,
		Difficulty:    0,
		MineInterval:  5 * time.Millisecond,
		PoolThreshold: 1,
	})
	require.NoError(t, err)

	l, err := ledger.New(pol)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, pol.Start(ctx, l))

	// one pending tx is at the threshold, not over it
	require.NoError(t, l.SubmitTransaction(tx.New(tx.FaucetAddress, "a", 1)))
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, uint64(0), l.Height())

	require.NoError(t, l.SubmitTransaction(tx.New(tx.FaucetAddress, "b", 1)))
	assert.Eventually(t, func() bool { return l.Height() >= 1 }, time.Second, 5*time.Millisecond)
}

func TestStartStopsOnCancel(t *testing.T) {
	pol, err := New(Config{
		Type:          ProofOfWorkType,
		Difficulty:    0,
		MineInterval:  5 * time.Millisecond,
		PoolThreshold: 1,
	})
	require.NoError(t, err)

	l, err := ledger.New(pol)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, pol.Start(ctx, l))

	cancel()
	time.Sleep(25 * time.Millisecond)

	height := l.Height()
	require.NoError(t, l.SubmitTransaction(tx.New(tx.FaucetAddress, "a", 1)))
	require.NoError(t, l.SubmitTransaction(tx.New(tx.FaucetAddress, "b", 1)))
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, height, l.Height())
}

func TestNewRejectsUnknownType(t *testing.T) {
	_, err := New(Config{Type: "raft"})

	assert.Error(t, err)
}

func TestNewAppliesLoopConfig(t *testing.T) {
	pol, err := New(Config{Type: ProofOfWorkType, Difficulty: 1})
	require.NoError(t, err)

	p := pol.(*ProofOfWork)
	assert.Equal(t, DefaultMineInterval, p.loop.interval)
	assert.Equal(t, DefaultPoolThreshold, p.loop.threshold)

	pol, err = New(Config{
		Type:          ProofOfWorkType,
		MineInterval:  time.Second,
		PoolThreshold: 3,
	})
	require.NoError(t, err)

	p = pol.(*ProofOfWork)
	assert.Equal(t, time.Second, p.loop.interval)
	assert.Equal(t, 3, p.loop.threshold)
}
