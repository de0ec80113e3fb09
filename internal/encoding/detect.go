package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// peekSize is how much of the upload is sampled for BOM and charset
// detection before any of it is consumed.
const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps an uploaded CSV stream in a reader that yields
// UTF-8. Spreadsheet exports on Windows machines routinely arrive as
// Windows-1252 or Latin-1 with accented Portuguese text (descriptions,
// "PENDENTE"/"PAGO" tokens are ASCII but descriptions are not), so the
// stream is sniffed rather than trusted.
//
// Detection order: BOM, UTF-8 validity, chardet heuristic, and finally a
// Windows-1252 fallback which can never fail outright.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if dec := bomUTF16Decoder(buf); dec != nil {
		return transform.NewReader(br, dec), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	return transform.NewReader(br, sniffDecoder(buf)), nil
}

func bomUTF16Decoder(buf []byte) *encoding.Decoder {
	switch {
	case bytes.HasPrefix(buf, bomUTF16LE):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case bytes.HasPrefix(buf, bomUTF16BE):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	}

	return nil
}

// sniffDecoder picks a decoder for non-UTF-8 input. Unknown or exotic
// charsets fall back to Windows-1252, which decodes any byte sequence.
func sniffDecoder(buf []byte) *encoding.Decoder {
	detector := chardet.NewTextDetector()

	result, err := detector.DetectBest(buf)
	if err != nil {
		return charmap.Windows1252.NewDecoder()
	}

	switch result.Charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252.NewDecoder()
	case "ISO-8859-15":
		return charmap.ISO8859_15.NewDecoder()
	case "ISO-8859-9":
		return charmap.ISO8859_9.NewDecoder()
	default:
		return charmap.Windows1252.NewDecoder()
	}
}
