package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Equal(t *testing.T) {
	a := NewRecord("0010", "/ip4/127.0.0.1/tcp/4001")
	b := NewRecord("0010", "/ip4/10.0.0.1/tcp/4001")
	c := NewRecord("0011", "/ip4/127.0.0.1/tcp/4001")

	assert.True(t, a.Equal(b), "同一标识符视为同一记录")
	assert.False(t, a.Equal(c))
}

func TestRecord_Key(t *testing.T) {
	k, err := NewRecord("0110", "RE").Key()
	require.NoError(t, err)
	assert.Equal(t, "0110", k.String())

	_, err = NewRecord("01x0", "RE").Key()
	assert.ErrorIs(t, err, ErrMalformedIdentifier)
	assert.Contains(t, err.Error(), "01x0")
}

func TestRecordIDs(t *testing.T) {
	records := []Record{NewRecord("0001", "a"), NewRecord("0010", "b")}
	assert.Equal(t, []string{"0001", "0010"}, RecordIDs(records))
	assert.Equal(t, "0001@a", records[0].String())
}
