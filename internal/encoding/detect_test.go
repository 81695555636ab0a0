package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/helios/internal/encoding"
)

func decodeAll(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, charset, err := encoding.ToUTF8(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestToUTF8(t *testing.T) {
	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("Date,Amount\n"))
	require.NoError(t, err)

	tests := []struct {
		name        string
		input       []byte
		want        string
		wantCharset encoding.Charset
	}{
		{
			name:        "UTF8Passthrough",
			input:       []byte("Description,Amount\nCafé,12.50\nCrème brûlée,-3.00\n"),
			want:        "Description,Amount\nCafé,12.50\nCrème brûlée,-3.00\n",
			wantCharset: encoding.CharsetUTF8,
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, "Descrição;Montante\n"...),
			want:        "Descrição;Montante\n",
			wantCharset: encoding.CharsetUTF8BOM,
		},
		{
			name:        "UTF16LE",
			input:       utf16le,
			want:        "Date,Amount\n",
			wantCharset: encoding.CharsetUTF16LE,
		},
		{
			name:        "Empty",
			input:       nil,
			want:        "",
			wantCharset: encoding.CharsetUTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, charset := decodeAll(t, tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCharset, charset)
		})
	}
}

func TestToUTF8_Latin1(t *testing.T) {
	// Windows-1252: ç = 0xE7, ã = 0xE3
	latin1 := []byte{
		'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
		'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
	}

	got, charset := decodeAll(t, latin1)
	assert.Equal(t, "Descrição;Montante\n", got)
	assert.NotEqual(t, encoding.CharsetUTF8, charset)
}

func TestToUTF8_LargeInput(t *testing.T) {
	input := bytes.Repeat([]byte("2024-03-01,Coffee,-4.50\n"), 1000)

	got, charset := decodeAll(t, input)
	assert.Equal(t, string(input), got)
	assert.Equal(t, encoding.CharsetUTF8, charset)
}
