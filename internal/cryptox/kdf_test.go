package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tracediary/internal/common"
)

func TestDeriveNewMasterKey(t *testing.T) {
	saltB64, key, err := DeriveNewMasterKey("abcd1234")
	require.NoError(t, err)

	salt, err := base64.StdEncoding.DecodeString(saltB64)
	require.NoError(t, err)
	assert.Len(t, salt, 16)
	assert.Len(t, key, MasterKeyLen)
}

func TestDeriveNewMasterKey_FreshSaltPerCall(t *testing.T) {
	salt1, key1, err := DeriveNewMasterKey("abcd1234")
	require.NoError(t, err)
	salt2, key2, err := DeriveNewMasterKey("abcd1234")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, key1, key2)
}

func TestDeriveMasterKey_Deterministic(t *testing.T) {
	saltB64, key, err := DeriveNewMasterKey("abcd1234")
	require.NoError(t, err)

	again, err := DeriveMasterKey("abcd1234", saltB64)
	require.NoError(t, err)
	assert.Equal(t, key, again)

	once, err := DeriveMasterKey("abcd1234", saltB64)
	require.NoError(t, err)
	twice, err := DeriveMasterKey("abcd1234", saltB64)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestDeriveMasterKey_DifferentPassword(t *testing.T) {
	saltB64, key, err := DeriveNewMasterKey("abcd1234")
	require.NoError(t, err)

	other, err := DeriveMasterKey("abcd12345", saltB64)
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestDeriveMasterKey_MalformedSalt(t *testing.T) {
	_, err := DeriveMasterKey("abcd1234", "%%%not-base64%%%")
	assert.ErrorIs(t, err, common.ErrCorruptedRecord)

	// Valid base64 but not 16 bytes.
	short := base64.StdEncoding.EncodeToString([]byte("short"))
	_, err = DeriveMasterKey("abcd1234", short)
	assert.ErrorIs(t, err, common.ErrCorruptedRecord)
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Zero(b)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}
