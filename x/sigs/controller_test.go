package sigs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-labs/notepool/crypto"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/store"
)

func TestSignBytes(t *testing.T) {
	bz := []byte("foobar")
	tx := newSignedTx(bz)
	bz2 := []byte("blast")

	chainID := "test-sign-bytes"
	c1, err := BuildSignBytesTx(tx, chainID, 17)
	require.NoError(t, err)
	c1a, err := BuildSignBytes(bz, chainID, 17)
	require.NoError(t, err)
	assert.Equal(t, c1, c1a)
	assert.Len(t, c1, 64)

	// sign bytes change on payload, chain id and sequence
	ct, err := BuildSignBytes(bz2, chainID, 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, ct)
	c2, err := BuildSignBytes(bz, chainID+"2", 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2)
	c3, err := BuildSignBytes(bz, chainID, 18)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c3)

	_, err = BuildSignBytes(bz, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes(bz, "no", 1)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignature(t *testing.T) {
	kv := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	cond := priv.PublicKey().Condition()

	chainID := "emo-music-2345"
	bz := []byte("my special valentine")
	tx := newSignedTx(bz)

	sig0, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)
	sig13, err := SignTx(priv, tx, chainID, 13)
	require.NoError(t, err)

	// signing is deterministic
	sig1a, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)
	assert.Equal(t, sig1, sig1a)

	// the first one must start at zero
	_, err = VerifySignature(kv, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	_, err = VerifySignature(kv, new(StdSignature), bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// wrong chain and wrong payload are rejected
	_, err = VerifySignature(kv, sig0, bz, "other-chain")
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = VerifySignature(kv, sig0, []byte("other"), chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	got, err := VerifySignature(kv, sig0, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, cond, got)

	// replay fails
	_, err = VerifySignature(kv, sig0, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = VerifySignature(kv, sig13, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	_, err = VerifySignature(kv, sig1, bz, chainID)
	require.NoError(t, err)

	seq, err := NewBucket().NextSequence(kv, cond.Address())
	require.NoError(t, err)
	assert.EqualValues(t, 2, seq)
}

func TestVerifyTxSignatures(t *testing.T) {
	kv := store.MemStore()
	chainID := "hot_summer_days"
	a := crypto.GenPrivKeyEd25519()
	b := crypto.GenPrivKeyEd25519()

	tx := newSignedTx([]byte("payload"))
	sa, err := SignTx(a, tx, chainID, 0)
	require.NoError(t, err)
	sb, err := SignTx(b, tx, chainID, 0)
	require.NoError(t, err)

	tx.Signatures = []*StdSignature{sa, sb}
	conds, err := VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	require.Len(t, conds, 2)
	assert.Equal(t, a.PublicKey().Condition(), conds[0])
	assert.Equal(t, b.PublicKey().Condition(), conds[1])

	tx.Signatures = nil
	conds, err = VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, conds)
}
