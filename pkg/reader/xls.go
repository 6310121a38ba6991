package reader

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/extrame/xls"

	"github.com/yurifrl/ofxconv/pkg/config"
	"github.com/yurifrl/ofxconv/pkg/models"
	"github.com/yurifrl/ofxconv/pkg/parser"
)

const xlsMaxRows = 10000

// XLS reads legacy Excel statement exports. The first non-empty sheet
// row is taken as the header; remaining rows become header-keyed
// records like CSV rows.
type XLS struct {
	charset string
	logger  *log.Logger
}

func NewXLS(opts config.Files, logger *log.Logger) *XLS {
	charset := opts.Encoding
	if charset == "" || strings.EqualFold(charset, "utf-8") {
		charset = "cp1252"
	}
	return &XLS{charset: charset, logger: logger}
}

func (x *XLS) ReadTransactions(p parser.TransactionParser, path string) ([]*models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	workbook, err := xls.OpenReader(f, x.charset)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	rows := workbook.ReadAllCells(xlsMaxRows)

	var header []string
	var records []parser.Record
	for _, row := range rows {
		if len(row) == 0 || allEmpty(row) {
			continue
		}
		if header == nil {
			header = make([]string, len(row))
			for i, cell := range row {
				header[i] = strings.TrimSpace(cell)
			}
			continue
		}
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				fields[name] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, parser.Record{Fields: fields})
	}

	return parser.ParseAll(x.logger, p, records)
}

func allEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
