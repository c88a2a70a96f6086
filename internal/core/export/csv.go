package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// latin1Encoder compõe os caracteres, troca por '?' o que não existe em
// ISO-8859-1 e só então codifica. Cada chamada devolve um transformer novo.
func latin1Encoder() transform.Transformer {
	return transform.Chain(
		norm.NFC,
		runes.Map(func(r rune) rune {
			if _, ok := charmap.ISO8859_1.EncodeRune(r); ok {
				return r
			}
			return '?'
		}),
		charmap.ISO8859_1.NewEncoder(),
	)
}

// sanitizeForCSV remove espaços nas pontas, descarta quebras de linha e tabs
// embutidos e troca outros caracteres de controle por espaço.
func sanitizeForCSV(s string) string {
	s = strings.TrimFunc(s, unicode.IsSpace)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		switch {
		case r == '\r' || r == '\n' || r == '\t':
			continue
		case r < 32:
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// encodeCSV grava os registros separados por ';', sem cabeçalho, em ISO-8859-1.
func encodeCSV(records [][]string) ([]byte, error) {
	var buffer bytes.Buffer
	tw := transform.NewWriter(&buffer, latin1Encoder())
	writer := csv.NewWriter(tw)
	writer.Comma = ';'
	writer.UseCRLF = true

	for _, record := range records {
		clean := make([]string, len(record))
		for i, field := range record {
			clean[i] = sanitizeForCSV(field)
		}
		if err := writer.Write(clean); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
