package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("abc12345"), nil }
	var out bytes.Buffer
	pw, err := GetPassword("Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc12345"), pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword("Enter password", &out)
	require.Error(t, err)
}

func TestGetConfirmation(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := GetConfirmation(rdr(tt.input), "Sure?", &out)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestGetInt(t *testing.T) {
	var out bytes.Buffer

	n, err := GetInt(rdr("42\n"), "Qty", 1, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = GetInt(rdr("\n"), "Qty", 1, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = GetInt(rdr("many\n"), "Qty", 1, &out)
	var ie inputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, `"many" is not a number`, ie.Error())
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₦0", formatPrice(0))
	assert.Equal(t, "₦999", formatPrice(999))
	assert.Equal(t, "₦4,000", formatPrice(4000))
	assert.Equal(t, "₦1,250,000", formatPrice(1250000))
	assert.Equal(t, "-₦12,500", formatPrice(-12500))
}
