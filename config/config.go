// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override settings,
// ex: SEQTOOLS_SEARCH_DATABASE=refseq_rna
const EnvPrefix = "SEQTOOLS"

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// StoreConfig is settings for reading and writing sequence files
type StoreConfig struct {
	// the number of sequence letters per line in written FASTA files
	LineWidth int `mapstructure:"line-width"`
}

// PolyAConfig is settings for trimming poly-A tails
type PolyAConfig struct {
	// the shortest run of trailing A's that's trimmed
	MinTail int `mapstructure:"min-tail"`
}

// AlignConfig is the scoring used in pairwise alignments
type AlignConfig struct {
	// score for a pair of identical letters
	Match int `mapstructure:"match"`

	// score for a pair of different letters
	Mismatch int `mapstructure:"mismatch"`

	// score for a letter against a gap
	Gap int `mapstructure:"gap"`
}

// SearchConfig is settings for BLAST similarity searches
type SearchConfig struct {
	// whether to search against NCBI rather than with a local blastn
	Remote bool `mapstructure:"remote"`

	// BLAST program, ex: blastn
	Program string `mapstructure:"program"`

	// the database to search against. For local searches it's a path to a BLAST db
	Database string `mapstructure:"database"`

	// the NCBI BLAST URL API endpoint
	Endpoint string `mapstructure:"endpoint"`

	// path to the blastn executable for local searches
	Blastn string `mapstructure:"blastn"`

	// directory for the input and output files of local searches
	WorkDir string `mapstructure:"work-dir"`

	// tool and email identify the caller to NCBI
	Tool  string `mapstructure:"tool"`
	Email string `mapstructure:"email"`

	// the shortest and longest wait between polls of a running search
	PollMin time.Duration `mapstructure:"poll-min"`
	PollMax time.Duration `mapstructure:"poll-max"`

	// the number of polls before giving up on a search
	MaxPolls int `mapstructure:"max-polls"`
}

// MenuConfig is settings for the interactive menu
type MenuConfig struct {
	// whether errors and headers are coloured
	Color bool `mapstructure:"color"`
}

// Config is the root-level settings struct and is a mix
// of settings available in a settings file and those
// available from the command line
type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	PolyA  PolyAConfig  `mapstructure:"polya"`
	Align  AlignConfig  `mapstructure:"align"`
	Search SearchConfig `mapstructure:"search"`
	Menu   MenuConfig   `mapstructure:"menu"`
}

// SetDefaults registers the default value of every setting with v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("store.line-width", 60)

	v.SetDefault("polya.min-tail", 1)

	v.SetDefault("align.match", 5)
	v.SetDefault("align.mismatch", -4)
	v.SetDefault("align.gap", -5)

	v.SetDefault("search.remote", false)
	v.SetDefault("search.program", "blastn")
	v.SetDefault("search.database", "nt")
	v.SetDefault("search.endpoint", "https://blast.ncbi.nlm.nih.gov/Blast.cgi")
	v.SetDefault("search.blastn", "blastn")
	v.SetDefault("search.work-dir", filepath.Join(os.TempDir(), "seqtools"))
	v.SetDefault("search.tool", "seqtools")
	v.SetDefault("search.email", "")
	v.SetDefault("search.poll-min", 10*time.Second)
	v.SetDefault("search.poll-max", time.Minute)
	v.SetDefault("search.max-polls", 60)

	v.SetDefault("menu.color", true)
}

// Load reads settings into a Config. Defaults are overridden by the
// settings file at path (if path isn't empty), then by SEQTOOLS_* env vars
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read settings file %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unable to decode settings")
	}
	return &c, nil
}

// New returns a Config populated by the global Viper settings
// (defaults, a settings file, and any bound command line flags)
func New() *Config {
	c, err := Load(viper.GetViper(), viper.GetString("config"))
	if err != nil {
		stderr.Fatal(err)
	}
	return c
}
