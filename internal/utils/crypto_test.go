package utils

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomID(t *testing.T) {
	pattern := regexp.MustCompile(`^TXN_[A-Z0-9]{9}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := RandomID("TXN_", 9)
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 95)
}

func TestRandomID_InvalidLength(t *testing.T) {
	_, err := RandomID("REF_", 0)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestRandomIDFrom_SkipsBiasedBytes(t *testing.T) {
	// 255 is past the rejection limit; 0 and 37 map to 'A' and 'B'.
	src := bytes.NewReader([]byte{255, 0, 37, 255, 255, 255})
	id, err := randomIDFrom(src, "", 2)
	require.NoError(t, err)
	assert.Equal(t, "AB", id)
}

func TestRandomIDFrom_ReaderError(t *testing.T) {
	_, err := randomIDFrom(errReader{}, "TXN_", 9)
	assert.Error(t, err)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }
