package reader

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/ofxconv/pkg/config"
	"github.com/yurifrl/ofxconv/pkg/models"
	"github.com/yurifrl/ofxconv/pkg/parser"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func csvOptions() config.Files {
	return config.Files{Format: config.FormatCSV, Delimiter: ";", Encoding: "utf-8", Quote: `"`}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestCSVReadTransactions(t *testing.T) {
	content := "Data;Descricao;Valor;Saldo\n" +
		"27/11/24 às 12:03:47;PIX RECEBIDO;R$ 5.186,66;R$ 12.000,00\n" +
		"99/99/99;LINHA QUEBRADA;R$ 1,00;R$ 1,00\n" +
		"28/11/24 às 09:15:00;TED ENVIADA;-R$ 1.439,80;R$ 10.560,20\n"
	path := writeFile(t, "extrato-2024-11.csv", []byte(content))

	r, err := NewCSV(csvOptions(), testLogger())
	require.NoError(t, err)

	p := parser.NewXPStatementParser(&config.Account{Type: models.AccountTypeChecking}, testLogger())
	transactions, err := r.ReadTransactions(p, path)
	require.NoError(t, err)

	// The unparseable-date row is dropped, never an error.
	require.Len(t, transactions, 2)
	assert.Equal(t, "PIX RECEBIDO", transactions[0].Description())
	assert.Equal(t, "TED ENVIADA", transactions[1].Description())
	assert.Equal(t, "-1439.80", transactions[1].Value().StringFixed(2))
}

func TestCSVLatin1Encoding(t *testing.T) {
	// "CAFÉ" with É as the latin1 byte 0xC9.
	content := []byte("Data;Descricao;Valor;Saldo\n" +
		"27/11/24 as 12:03:47;CAF\xc9;R$ 10,00;R$ 100,00\n")
	path := writeFile(t, "extrato-2024-11.csv", content)

	opts := csvOptions()
	opts.Encoding = "latin1"
	r, err := NewCSV(opts, testLogger())
	require.NoError(t, err)

	p := parser.NewXPStatementParser(&config.Account{Type: models.AccountTypeChecking}, testLogger())
	transactions, err := r.ReadTransactions(p, path)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "CAFÉ", transactions[0].Description())
}

func TestCSVEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", nil)

	r, err := NewCSV(csvOptions(), testLogger())
	require.NoError(t, err)

	p := parser.NewXPStatementParser(&config.Account{Type: models.AccountTypeChecking}, testLogger())
	transactions, err := r.ReadTransactions(p, path)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestNewCSVRejectsBadOptions(t *testing.T) {
	opts := csvOptions()
	opts.Quote = "'"
	_, err := NewCSV(opts, testLogger())
	assert.Error(t, err)

	opts = csvOptions()
	opts.Encoding = "ebcdic"
	_, err = NewCSV(opts, testLogger())
	assert.Error(t, err)

	opts = csvOptions()
	opts.Delimiter = ""
	_, err = NewCSV(opts, testLogger())
	assert.Error(t, err)
}

func TestDecoderFor(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF-8", "utf8"} {
		dec, err := decoderFor(name)
		require.NoError(t, err)
		assert.Nil(t, dec, "encoding %q", name)
	}
	for _, name := range []string{"latin1", "iso-8859-1", "cp1252", "windows-1252"} {
		dec, err := decoderFor(name)
		require.NoError(t, err)
		assert.NotNil(t, dec, "encoding %q", name)
	}
	_, err := decoderFor("koi8-r")
	assert.Error(t, err)
}

func TestReaderFactory(t *testing.T) {
	acct := &config.Account{
		Type:  models.AccountTypeChecking,
		Files: config.Files{Format: config.FormatCSV, Delimiter: ";", Encoding: "utf-8", Quote: `"`},
	}
	r, err := New(acct, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &CSV{}, r)

	acct.Files.Format = config.FormatOFX
	r, err = New(acct, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &OFX{}, r)

	acct.Files.Format = config.FormatXLS
	r, err = New(acct, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &XLS{}, r)

	acct.Files.Format = "pdf"
	_, err = New(acct, testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotImplemented)
}
