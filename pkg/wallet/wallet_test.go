package wallet

import (
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajiknows/mockchain/pkg/tx"
)

func TestAddressIsCompressedPubkey(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	raw, err := hex.DecodeString(w.Address())
	require.NoError(t, err)
	assert.Len(t, raw, 33)
}

func TestSignTransactionVerifies(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	trans := tx.New(w.Address(), "somewhere", 42)
	require.NoError(t, w.SignTransaction(trans))

	assert.Len(t, trans.Signature, tx.SignatureLen)
	assert.True(t, trans.Verify())

	trans.To = "elsewhere"
	assert.False(t, trans.Verify())
}

func TestBytesRoundTrip(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	w2, err := FromBytes(w.Bytes())
	require.NoError(t, err)

	assert.Equal(t, w.Address(), w2.Address())
}

func TestKeystoreAddGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.yaml")

	ks, err := OpenKeystore(path)
	require.NoError(t, err)

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, ks.Add("alice", w))

	got, err := ks.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, w.Address(), got.Address())

	// persisted across reopen
	ks2, err := OpenKeystore(path)
	require.NoError(t, err)

	got, err = ks2.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, w.Address(), got.Address())
}

func TestKeystoreRejectsDuplicateName(t *testing.T) {
	ks, err := OpenKeystore(filepath.Join(t.TempDir(), "keystore.yaml"))
	require.NoError(t, err)

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, ks.Add("alice", w))

	w2, err := New()
	require.NoError(t, err)
	assert.Error(t, ks.Add("alice", w2))
}

func TestKeystoreGetMissing(t *testing.T) {
	ks, err := OpenKeystore(filepath.Join(t.TempDir(), "keystore.yaml"))
	require.NoError(t, err)

	_, err = ks.Get("nobody")
	assert.Error(t, err)
}

func TestKeystoreListSorted(t *testing.T) {
	ks, err := OpenKeystore(filepath.Join(t.TempDir(), "keystore.yaml"))
	require.NoError(t, err)

	for _, name := range []string{"carol", "alice", "bob"} {
		w, err := New()
		require.NoError(t, err)
		require.NoError(t, ks.Add(name, w))
	}

	infos := ks.List()
	require.Len(t, infos, 3)
	assert.Equal(t, "alice", infos[0].Name)
	assert.Equal(t, "bob", infos[1].Name)
	assert.Equal(t, "carol", infos[2].Name)
	assert.NotEmpty(t, infos[0].Address)
}
