package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/yurifrl/ofxconv/pkg/models"
)

// File formats accepted in the per-account files.format setting.
const (
	FormatCSV = "csv"
	FormatXLS = "xls"
	FormatOFX = "ofx"
)

// FI identifies the financial institution in OFX output.
type FI struct {
	Org string `mapstructure:"org" yaml:"org"`
	ID  string `mapstructure:"id" yaml:"id"`
}

// BankAccount carries the branch and account identifiers.
type BankAccount struct {
	Branch string `mapstructure:"branch" yaml:"branch,omitempty"`
	ID     string `mapstructure:"id" yaml:"id"`
}

// Files holds the source file format and its format-specific options.
type Files struct {
	Format    string `mapstructure:"format" yaml:"format"`
	In        string `mapstructure:"in" yaml:"in"`
	Out       string `mapstructure:"out" yaml:"out"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter,omitempty"`
	Encoding  string `mapstructure:"encoding" yaml:"encoding,omitempty"`
	Quote     string `mapstructure:"quote" yaml:"quote,omitempty"`
}

// Account is the per-account configuration consumed read-only by the
// conversion pipeline.
type Account struct {
	Type     models.AccountType `mapstructure:"type" yaml:"type"`
	Lang     string             `mapstructure:"lang" yaml:"lang"`
	Currency string             `mapstructure:"cur" yaml:"cur"`
	FI       FI                 `mapstructure:"fi" yaml:"fi"`
	Bank     BankAccount        `mapstructure:"account" yaml:"account"`
	Files    Files              `mapstructure:"files" yaml:"files"`

	name string
}

// Name returns the account key from the accounts map.
func (a *Account) Name() string { return a.name }

// BankID returns the institution id left-padded to 4 digits, the form
// OFX consumers expect in the BANKID field.
func (a *Account) BankID() string {
	id := a.FI.ID
	if len(id) >= 4 {
		return id
	}
	return strings.Repeat("0", 4-len(id)) + id
}

// AcctType returns the upper-cased account type for the OFX ACCTTYPE
// field.
func (a *Account) AcctType() string { return strings.ToUpper(string(a.Type)) }

// LangUpper and CurUpper feed the OFX LANGUAGE and CURDEF fields.
func (a *Account) LangUpper() string { return strings.ToUpper(a.Lang) }
func (a *Account) CurUpper() string  { return strings.ToUpper(a.Currency) }

func (a *Account) validate() error {
	if !a.Type.Valid() {
		return fmt.Errorf("account %s: unknown account type %q", a.name, a.Type)
	}
	switch a.Files.Format {
	case FormatCSV, FormatXLS, FormatOFX:
	default:
		return fmt.Errorf("account %s: unknown file format %q", a.name, a.Files.Format)
	}
	if a.Files.In == "" || a.Files.Out == "" {
		return fmt.Errorf("account %s: files.in and files.out are required", a.name)
	}
	return nil
}

// Config is the full settings document: an accounts map keyed by
// account name.
type Config struct {
	Accounts map[string]*Account `mapstructure:"accounts" yaml:"accounts"`
}

// Build loads settings from the given file (default settings.yaml in
// the working directory), layering environment variables with the
// OFXCONV prefix and any bound command-line flags on top.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("settings")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("OFXCONV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.Accounts) == 0 {
		return nil, fmt.Errorf("config has no accounts")
	}

	for name, acct := range cfg.Accounts {
		acct.name = name
		applyDefaults(acct)
		if err := acct.validate(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func applyDefaults(a *Account) {
	if a.Files.Delimiter == "" {
		a.Files.Delimiter = ";"
	}
	if a.Files.Encoding == "" {
		a.Files.Encoding = "utf-8"
	}
	if a.Files.Quote == "" {
		a.Files.Quote = `"`
	}
}

// Account returns the configuration for the named account.
func (c *Config) Account(name string) (*Account, error) {
	acct, ok := c.Accounts[name]
	if !ok {
		return nil, fmt.Errorf("account %s not found in config", name)
	}
	return acct, nil
}

// Names returns the configured account names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Accounts))
	for name := range c.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// YAML renders the effective configuration, used by the config
// subcommand.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
