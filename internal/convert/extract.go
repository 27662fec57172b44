package convert

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
	"unicode"
)

// MaxExcerpt bounds ExtractText output in runes.
const MaxExcerpt = 8000

// zipParts are the members holding body text, per container, tried in order.
var zipParts = []string{
	"word/document.xml",     // docx
	"xl/sharedStrings.xml",  // xlsx
	"ppt/slides/slide1.xml", // pptx
	"content.xml",           // odt, ods, odp
}

// paragraph-ending elements across OOXML and ODF.
var blockElems = map[string]bool{
	"p":    true, // w:p, a:p, text:p
	"h":    true, // text:h
	"tr":   true,
	"si":   true, // shared string item
	"br":   true,
	"page": true,
}

// ExtractText returns a plain-text excerpt of an office document without
// running any converter. Zip-based formats are read from their XML parts;
// anything else falls back to printable runs of four or more characters.
func ExtractText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err == nil {
		defer zr.Close()
		for _, name := range zipParts {
			for _, f := range zr.File {
				if f.Name != name {
					continue
				}
				rc, err := f.Open()
				if err != nil {
					return "", err
				}
				text, err := xmlText(rc)
				rc.Close()
				if err != nil {
					return "", err
				}
				return truncateRunes(text, MaxExcerpt), nil
			}
		}
		return "", errors.New("no text part in document")
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return truncateRunes(printableRuns(io.LimitReader(f, 4<<20), 4), MaxExcerpt), nil
}

// xmlText concatenates character data, breaking lines at block elements.
func xmlText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return collapse(b.String()), err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				b.WriteByte('\t')
			}
		case xml.EndElement:
			if blockElems[t.Name.Local] {
				b.WriteByte('\n')
			}
		}
	}
	return collapse(b.String()), nil
}

// collapse trims each line and drops empty ones.
func collapse(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// printableRuns mimics strings(1): ASCII runs of at least min printable
// characters, one per line.
func printableRuns(r io.Reader, min int) string {
	br := bufio.NewReader(r)
	var out strings.Builder
	var run bytes.Buffer
	flush := func() {
		if run.Len() >= min {
			out.Write(bytes.TrimSpace(run.Bytes()))
			out.WriteByte('\n')
		}
		run.Reset()
	}
	for {
		c, err := br.ReadByte()
		if err != nil {
			break
		}
		if c < unicode.MaxASCII && (c == ' ' || c == '\t' || unicode.IsPrint(rune(c))) {
			run.WriteByte(c)
			continue
		}
		flush()
	}
	flush()
	return collapse(out.String())
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + "…"
		}
		i++
	}
	return s
}
