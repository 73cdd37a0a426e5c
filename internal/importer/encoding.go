package importer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

// charset is a source encoding of an export. A nil enc means the bytes are
// already UTF-8; skip is the length of a byte order mark to drop.
type charset struct {
	name string
	enc  encoding.Encoding
	skip int
}

var (
	plainUTF8 = charset{name: "UTF-8"}

	// Bank exports labelled Latin-1 are read as Windows-1252, its superset.
	windows1252 = charset{name: "windows-1252", enc: charmap.Windows1252}
)

var byteOrderMarks = []struct {
	mark []byte
	cs   charset
}{
	{[]byte{0xEF, 0xBB, 0xBF}, charset{name: "UTF-8", skip: 3}},
	{[]byte{0xFF, 0xFE}, charset{name: "UTF-16LE", enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)}},
	{[]byte{0xFE, 0xFF}, charset{name: "UTF-16BE", enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)}},
}

// detectCharset picks the encoding of sample, the first bytes of a file.
func detectCharset(sample []byte) charset {
	for _, bom := range byteOrderMarks {
		if bytes.HasPrefix(sample, bom.mark) {
			return bom.cs
		}
	}

	if utf8.Valid(completeRunes(sample)) {
		return plainUTF8
	}

	guess, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return windows1252
	}

	switch guess.Charset {
	case "UTF-8":
		return plainUTF8
	case "ISO-8859-1", "windows-1252":
		return windows1252
	}

	enc, err := ianaindex.IANA.Encoding(guess.Charset)
	if err != nil || enc == nil {
		return windows1252
	}

	return charset{name: guess.Charset, enc: enc}
}

// completeRunes drops a multi-byte sequence cut off at the end of a full sniff
// window.
func completeRunes(sample []byte) []byte {
	if len(sample) < sniffSize {
		return sample
	}

	for i := len(sample) - 1; i >= 0 && i >= len(sample)-utf8.UTFMax; i-- {
		if utf8.RuneStart(sample[i]) {
			if !utf8.FullRune(sample[i:]) {
				return sample[:i]
			}

			break
		}
	}

	return sample
}

func (c charset) reader(br *bufio.Reader) io.Reader {
	if c.skip > 0 {
		_, _ = br.Discard(c.skip)
	}

	if c.enc == nil {
		return br
	}

	return transform.NewReader(br, c.enc.NewDecoder())
}

// utf8Reader returns a reader decoding r to UTF-8 and the name of the
// encoding it was read as.
func utf8Reader(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	sample, err := br.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("sniffing encoding: %w", err)
	}

	cs := detectCharset(sample)

	return cs.reader(br), cs.name, nil
}
