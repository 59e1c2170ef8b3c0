package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
)

func TestJoinResults(t *testing.T) {
	models := []notepool.Model{
		notepool.Pair([]byte("a"), []byte("1")),
		notepool.Pair([]byte("b"), []byte("2")),
	}

	kraw, err := ResultsFromKeys(models).Marshal()
	require.NoError(t, err)
	vraw, err := ResultsFromValues(models).Marshal()
	require.NoError(t, err)

	var keys, values ResultSet
	require.NoError(t, keys.Unmarshal(kraw))
	require.NoError(t, values.Unmarshal(vraw))

	joined, err := JoinResults(&keys, &values)
	require.NoError(t, err)
	assert.Equal(t, models, joined)

	_, err = JoinResults(&keys, &ResultSet{})
	assert.True(t, errors.ErrState.Is(err))
}

// raw is a Persistent that keeps the bytes as they are.
type raw []byte

func (r raw) Marshal() ([]byte, error) { return r, nil }

func (r *raw) Unmarshal(bz []byte) error {
	*r = append((*r)[:0], bz...)
	return nil
}

func TestUnmarshalOneResult(t *testing.T) {
	full, err := ResultsFromValues([]notepool.Model{
		notepool.Pair([]byte("a"), []byte("first")),
		notepool.Pair([]byte("b"), []byte("second")),
	}).Marshal()
	require.NoError(t, err)

	var got raw
	require.NoError(t, UnmarshalOneResult(full, &got))
	assert.Equal(t, "first", string(got))

	empty, err := ResultsFromValues(nil).Marshal()
	require.NoError(t, err)
	err = UnmarshalOneResult(empty, &got)
	assert.True(t, errors.ErrNotFound.Is(err))
}
