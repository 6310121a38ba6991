package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/yurifrl/ofxconv/pkg/config"
	"github.com/yurifrl/ofxconv/pkg/models"
	"github.com/yurifrl/ofxconv/pkg/parser"
)

// CSV reads delimiter-separated statement exports. Rows become
// header-keyed records; a parser variant reads only the columns it
// knows about.
type CSV struct {
	delimiter rune
	decoder   *encoding.Decoder
	logger    *log.Logger
}

func NewCSV(opts config.Files, logger *log.Logger) (*CSV, error) {
	// encoding/csv only honors standard double quotes; reject other
	// configured quote characters instead of silently ignoring them.
	if opts.Quote != `"` {
		return nil, fmt.Errorf("unsupported quote character %q: only %q is supported", opts.Quote, `"`)
	}
	delimiter, _ := utf8.DecodeRuneInString(opts.Delimiter)
	if delimiter == utf8.RuneError {
		return nil, fmt.Errorf("invalid delimiter %q", opts.Delimiter)
	}
	decoder, err := decoderFor(opts.Encoding)
	if err != nil {
		return nil, err
	}
	return &CSV{delimiter: delimiter, decoder: decoder, logger: logger}, nil
}

// decoderFor maps a configured charset name to a decoder; nil means
// the input is already UTF-8.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252.NewDecoder(), nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", name)
}

func (c *CSV) ReadTransactions(p parser.TransactionParser, path string) ([]*models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if c.decoder != nil {
		r = c.decoder.Reader(f)
	}

	cr := csv.NewReader(r)
	cr.Comma = c.delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []parser.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				fields[name] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, parser.Record{Fields: fields})
	}

	return parser.ParseAll(c.logger, p, records)
}
