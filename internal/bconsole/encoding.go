package bconsole

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	EncodingUTF8 = "utf-8"
	EncodingAuto = "auto"
)

var charsets = map[string]encoding.Encoding{
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-2":   charmap.ISO8859_2,
	"iso-8859-5":   charmap.ISO8859_5,
	"iso-8859-7":   charmap.ISO8859_7,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"koi8r":        charmap.KOI8R,
	"koi8u":        charmap.KOI8U,
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"shift-jis":    japanese.ShiftJIS,
	"euc-jp":       japanese.EUCJP,
	"gbk":          simplifiedchinese.GBK,
	"gb18030":      simplifiedchinese.GB18030,
	"big5":         traditionalchinese.Big5,
	"euc-kr":       korean.EUCKR,
}

// Encodings lists every accepted output encoding name.
func Encodings() []string {
	names := []string{EncodingUTF8, EncodingAuto}
	for name := range charsets {
		names = append(names, name)
	}
	sort.Strings(names[2:])
	return names
}

func normalizeEncodingName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "utf8":
		return EncodingUTF8
	case "latin1", "latin-1":
		return "iso-8859-1"
	case "cp1252":
		return "windows-1252"
	}
	return name
}

// Decoder turns raw console output into valid UTF-8.
type Decoder struct {
	name string
}

func NewDecoder(name string) (*Decoder, error) {
	name = normalizeEncodingName(name)
	if name != EncodingUTF8 && name != EncodingAuto {
		if _, ok := charsets[name]; !ok {
			return nil, fmt.Errorf("unsupported output encoding %q", name)
		}
	}
	return &Decoder{name: name}, nil
}

func (d *Decoder) Name() string {
	return d.name
}

func (d *Decoder) Decode(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	name := d.name
	if name == EncodingAuto {
		name = detectCharset(data)
	}

	if name == EncodingUTF8 {
		return string(bytes.ToValidUTF8(data, []byte("\uFFFD")))
	}
	return decodeWithFallback(data, charsets[name].NewDecoder())
}

// detectCharset only tells UTF-8 from the Latin single-byte sets, which
// is what catalogs with legacy file names end up holding. C1 bytes
// (0x80-0x9F) are printable in windows-1252 but control codes in latin1.
func detectCharset(data []byte) string {
	if utf8.Valid(data) {
		return EncodingUTF8
	}

	for _, b := range data {
		if b >= 0x80 && b <= 0x9F {
			return "windows-1252"
		}
	}
	return "iso-8859-1"
}

func decodeWithFallback(data []byte, decoder *encoding.Decoder) string {
	reader := transform.NewReader(bytes.NewReader(data), decoder)
	result, err := io.ReadAll(reader)
	if err != nil {
		return string(bytes.ToValidUTF8(data, []byte("\uFFFD")))
	}

	return string(bytes.ToValidUTF8(result, []byte("\uFFFD")))
}
