package settings

import (
	"testing"

	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSettings struct {
	Token    string `setting:"token"`
	TestMode bool   `setting:"testMode"`
}

func newTestSchema(t *testing.T) *Schema {
	t.Helper()
	schema, err := NewSchema(
		Definition{Key: "testMode", SortOrder: 10000, Label: "Test Mode", Kind: KindBool},
		Definition{Key: "token", SortOrder: 100, Label: "Token", Secret: true},
	)
	require.NoError(t, err)
	return schema
}

func TestNewSchema_DuplicateKey(t *testing.T) {
	_, err := NewSchema(
		Definition{Key: "token"},
		Definition{Key: "TOKEN"},
	)
	require.Error(t, err)
	assert.True(t, ierr.IsAlreadyExists(err))
}

func TestNewSchema_EmptyKey(t *testing.T) {
	_, err := NewSchema(Definition{Label: "No key"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestMustNewSchema_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewSchema(Definition{Key: "a"}, Definition{Key: "a"})
	})
}

func TestSchema_Sorted(t *testing.T) {
	defs := newTestSchema(t).Sorted()
	require.Len(t, defs, 2)
	assert.Equal(t, "token", defs[0].Key)
	assert.Equal(t, KindString, defs[0].Kind)
	assert.Equal(t, "testMode", defs[1].Key)
}

func TestDecode(t *testing.T) {
	schema := newTestSchema(t)

	got, err := Decode[testSettings](schema, map[string]any{
		"TOKEN":    "secret",
		"testmode": "true",
	})
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Token)
	assert.True(t, got.TestMode)
}

func TestDecode_Nil(t *testing.T) {
	got, err := Decode[testSettings](newTestSchema(t), nil)
	require.NoError(t, err)
	assert.Equal(t, testSettings{}, got)
}

func TestDecode_UnknownKey(t *testing.T) {
	_, err := Decode[testSettings](newTestSchema(t), map[string]any{"apiUrl": "x"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestDecode_BadValue(t *testing.T) {
	_, err := Decode[testSettings](newTestSchema(t), map[string]any{"testMode": "maybe"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestSchema_Redact(t *testing.T) {
	redacted := newTestSchema(t).Redact(map[string]any{
		"token":    "secret",
		"testMode": true,
	})
	assert.Equal(t, RedactedValue, redacted["token"])
	assert.Equal(t, true, redacted["testMode"])

	empty := newTestSchema(t).Redact(map[string]any{"token": ""})
	assert.Equal(t, "", empty["token"])
}
