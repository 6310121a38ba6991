package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/ofxconv/pkg/models"
)

func writeSettings(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const validSettings = `accounts:
  xp-conta:
    type: checking
    lang: por
    cur: brl
    fi: {org: XP, id: "102"}
    account: {branch: "0001", id: "12345-6"}
    files: {format: csv, in: ./in, out: ./out}
  nubank-cartao:
    type: credit-card
    lang: por
    cur: brl
    fi: {org: Nubank, id: "260"}
    account: {id: "4321"}
    files: {format: ofx, in: ./in, out: ./out}
`

func TestBuild(t *testing.T) {
	cfg, err := Build(writeSettings(t, validSettings), nil)
	require.NoError(t, err)

	acct, err := cfg.Account("xp-conta")
	require.NoError(t, err)
	assert.Equal(t, "xp-conta", acct.Name())
	assert.Equal(t, models.AccountTypeChecking, acct.Type)
	assert.Equal(t, "CHECKING", acct.AcctType())
	assert.Equal(t, "POR", acct.LangUpper())
	assert.Equal(t, "BRL", acct.CurUpper())
	assert.Equal(t, "0102", acct.BankID())

	// Format option defaults.
	assert.Equal(t, ";", acct.Files.Delimiter)
	assert.Equal(t, "utf-8", acct.Files.Encoding)
	assert.Equal(t, `"`, acct.Files.Quote)

	assert.Equal(t, []string{"nubank-cartao", "xp-conta"}, cfg.Names())

	_, err = cfg.Account("missing")
	assert.Error(t, err)
}

func TestBankIDPadding(t *testing.T) {
	a := &Account{FI: FI{ID: "102"}}
	assert.Equal(t, "0102", a.BankID())

	a = &Account{FI: FI{ID: "12345"}}
	assert.Equal(t, "12345", a.BankID())
}

func TestBuildRejectsUnknownType(t *testing.T) {
	_, err := Build(writeSettings(t, `accounts:
  bad:
    type: savings
    files: {format: csv, in: ./in, out: ./out}
`), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.Contains(t, err.Error(), "savings")
}

func TestBuildRejectsUnknownFormat(t *testing.T) {
	_, err := Build(writeSettings(t, `accounts:
  bad:
    type: checking
    files: {format: pdf, in: ./in, out: ./out}
`), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf")
}

func TestBuildRejectsMissingPaths(t *testing.T) {
	_, err := Build(writeSettings(t, `accounts:
  bad:
    type: checking
    files: {format: csv}
`), nil)
	assert.Error(t, err)
}

func TestBuildRejectsEmptyAccounts(t *testing.T) {
	_, err := Build(writeSettings(t, `accounts: {}`), nil)
	assert.Error(t, err)
}

func TestBuildMissingFile(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg, err := Build(writeSettings(t, validSettings), nil)
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "xp-conta")
	assert.Contains(t, string(out), "credit-card")
}
