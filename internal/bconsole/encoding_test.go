package bconsole

import (
	"testing"
	"unicode/utf8"
)

func TestDecoderUTF8ReplacesInvalid(t *testing.T) {
	d, err := NewDecoder("")
	if err != nil {
		t.Fatalf("NewDecoder failed: %v", err)
	}
	if d.Name() != EncodingUTF8 {
		t.Errorf("expected default %q, got %q", EncodingUTF8, d.Name())
	}

	out := d.Decode([]byte("ok \xff end"))
	if !utf8.ValidString(out) {
		t.Errorf("output is not valid UTF-8: %q", out)
	}
	if out != "ok \uFFFD end" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDecoderNamedCharsets(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"latin1", []byte("M\xfcller"), "Müller"},
		{"windows-1252", []byte("\x80 5"), "€ 5"},
		{"iso-8859-15", []byte("\xa4"), "€"},
		{"koi8r", []byte("\xf0\xd2\xc9\xd7\xc5\xd4"), "Привет"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDecoder(tt.name)
			if err != nil {
				t.Fatalf("NewDecoder(%q) failed: %v", tt.name, err)
			}
			if got := d.Decode(tt.in); got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecoderAuto(t *testing.T) {
	d, err := NewDecoder(EncodingAuto)
	if err != nil {
		t.Fatalf("NewDecoder failed: %v", err)
	}

	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("already ✓ utf-8"), "already ✓ utf-8"},
		{[]byte("/home/j\xf6rg/notes.txt"), "/home/jörg/notes.txt"},
		{[]byte("price \x80 \xe9"), "price € é"},
	}

	for _, tt := range tests {
		if got := d.Decode(tt.in); got != tt.want {
			t.Errorf("Decode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecoderEmpty(t *testing.T) {
	d, _ := NewDecoder("windows-1252")
	if got := d.Decode(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestNewDecoderUnknown(t *testing.T) {
	if _, err := NewDecoder("klingon"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestEncodingsListsAll(t *testing.T) {
	names := Encodings()
	if names[0] != EncodingUTF8 || names[1] != EncodingAuto {
		t.Errorf("expected utf-8 and auto first, got %v", names[:2])
	}
	if len(names) != len(charsets)+2 {
		t.Errorf("expected %d names, got %d", len(charsets)+2, len(names))
	}
	for _, name := range names {
		if _, err := NewDecoder(name); err != nil {
			t.Errorf("listed encoding %q rejected: %v", name, err)
		}
	}
}
