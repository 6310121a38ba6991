package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/ofxconv/pkg/config"
	"github.com/yurifrl/ofxconv/pkg/ofx"
	"github.com/yurifrl/ofxconv/pkg/parser"
	"github.com/yurifrl/ofxconv/pkg/reader"
)

var yearMonthRe = regexp.MustCompile(`(\d{4})-(\d{2})`)

// Runner converts every source file of one account: scan the input
// directory, filter by embedded year-month, then read, parse, sort,
// assemble and write one OFX file per input file.
type Runner struct {
	cfg       *config.Account
	logger    *log.Logger
	parser    parser.TransactionParser
	reader    reader.Reader
	assembler *ofx.Assembler
}

// New wires the parser, reader and assembler for the account, checks
// that the input directory exists and creates the output directory.
func New(cfg *config.Account, logger *log.Logger) (*Runner, error) {
	p, err := parser.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	r, err := reader.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(cfg.Files.In)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("account %s: input dir is invalid: %s", cfg.Name(), cfg.Files.In)
	}
	if err := os.MkdirAll(cfg.Files.Out, 0o755); err != nil {
		return nil, fmt.Errorf("account %s: failed to create output dir: %w", cfg.Name(), err)
	}

	return &Runner{
		cfg:       cfg,
		logger:    logger,
		parser:    p,
		reader:    r,
		assembler: ofx.NewAssembler(cfg, logger),
	}, nil
}

// Run converts every input file whose suffix matches the configured
// format and whose embedded YYYY-MM falls within [from, to]. It
// returns the paths of the output files written.
func (r *Runner) Run(from, to *time.Time) ([]string, error) {
	entries, err := os.ReadDir(r.cfg.Files.In)
	if err != nil {
		return nil, fmt.Errorf("account %s: failed to read input dir: %w", r.cfg.Name(), err)
	}

	suffix := "." + r.cfg.Files.Format
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), suffix) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	files = FilterFilesWithDates(files, from, to)

	var outputs []string
	for _, name := range files {
		inputPath := filepath.Join(r.cfg.Files.In, name)
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		outputPath := filepath.Join(r.cfg.Files.Out, stem+".ofx")

		written, err := r.ConvertFile(inputPath, outputPath)
		if err != nil {
			return nil, err
		}
		if written {
			outputs = append(outputs, outputPath)
		}
	}
	return outputs, nil
}

// ConvertFile converts one source file end to end. Files yielding no
// valid transactions are skipped, not errors.
func (r *Runner) ConvertFile(inputPath, outputPath string) (bool, error) {
	r.logger.Info("converting file", "account", r.cfg.Name(), "input", inputPath, "output", outputPath)

	transactions, err := r.reader.ReadTransactions(r.parser, inputPath)
	if err != nil {
		return false, err
	}
	if len(transactions) == 0 {
		r.logger.Info("no valid transactions, skipping", "input", inputPath)
		return false, nil
	}

	sort.Slice(transactions, func(i, j int) bool { return transactions[i].Before(transactions[j]) })

	document, err := r.assembler.Assemble(transactions)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(outputPath, []byte(document), 0o644); err != nil {
		return false, fmt.Errorf("failed to write OFX file: %w", err)
	}
	r.logger.Info("wrote OFX file", "output", outputPath, "transactions", len(transactions))
	return true, nil
}

// FilterFilesWithDates keeps files whose name embeds a YYYY-MM within
// [from, to], both bounds inclusive and open when nil. When any bound
// is set, files without an embedded year-month are excluded. Order is
// preserved.
func FilterFilesWithDates(files []string, from, to *time.Time) []string {
	if from == nil && to == nil {
		return files
	}
	var filtered []string
	for _, name := range files {
		m := yearMonthRe.FindStringSubmatch(filepath.Base(name))
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		date := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		if from != nil && date.Before(*from) {
			continue
		}
		if to != nil && date.After(*to) {
			continue
		}
		filtered = append(filtered, name)
	}
	return filtered
}
