package crypto

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()
	require.NoError(t, pub.Validate())

	msg := []byte("commit 0xdeadbeef")
	sig, err := priv.Sign(msg)
	require.NoError(t, err)

	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("commit 0xdeadbeee"), sig))
	assert.False(t, pub.Verify(msg, nil))

	other := GenPrivKeyEd25519().PublicKey()
	assert.False(t, other.Verify(msg, sig))
	assert.False(t, pub.Equals(other))
	assert.False(t, pub.Address().Equals(other.Address()))
}

func TestDeterministicKeys(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a, b)
	assert.True(t, a.PublicKey().Equals(b.PublicKey()))

	msg := []byte("same")
	sa, err := a.Sign(msg)
	require.NoError(t, err)
	sb, err := b.Sign(msg)
	require.NoError(t, err)
	assert.Equal(t, sa, sb)
}

func TestPrivateKeyJSON(t *testing.T) {
	priv := PrivKeyEd25519FromSeed(bytes.Repeat([]byte{1}, 32))
	raw, err := json.Marshal(priv)
	require.NoError(t, err)

	var got PrivateKey
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, priv.Ed25519, got.Ed25519)

	assert.Error(t, json.Unmarshal([]byte(`"abcd"`), &got))
	assert.Error(t, json.Unmarshal([]byte(`12`), &got))
}

func TestPublicKeyValidate(t *testing.T) {
	var nilKey *PublicKey
	assert.Error(t, nilKey.Validate())
	assert.Error(t, (&PublicKey{Ed25519: []byte{1, 2}}).Validate())
	assert.False(t, (&PublicKey{Ed25519: []byte{1, 2}}).Verify(nil, &Signature{}))
}
