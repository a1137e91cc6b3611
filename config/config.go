package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

import (
	"github.com/BurntSushi/toml"
	"github.com/natefinch/lumberjack"
	"github.com/timtadh/data-structures/errors"
	"gopkg.in/yaml.v3"
)

import (
	"github.com/timtadh/gidx/mine"
)

type Config struct {
	Output             string
	Index              string
	Parallelism        int
	MaxFeatures        int
	MinSupport         int
	MaxSupportFraction float64
	EdgeQuota          int
	Induced            bool
	Metrics            string
	LogFile            string
	MaxLogSize         int
	MaxLogAge          int
}

func Default() *Config {
	opts := mine.DefaultOptions()
	return &Config{
		MaxFeatures:        opts.MaxFeatures,
		MinSupport:         opts.MinSupport,
		MaxSupportFraction: opts.MaxSupportFraction,
		EdgeQuota:          opts.EdgeQuota,
	}
}

func (c *Config) Copy() *Config {
	cp := *c
	return &cp
}

func (c *Config) Workers() int {
	if c.Parallelism == 0 {
		return 1
	} else if c.Parallelism == -1 {
		return runtime.NumCPU()
	} else {
		return c.Parallelism
	}
}

func (c *Config) MineOptions() mine.Options {
	return mine.Options{
		MaxFeatures:        c.MaxFeatures,
		MinSupport:         c.MinSupport,
		MaxSupportFraction: c.MaxSupportFraction,
		EdgeQuota:          c.EdgeQuota,
	}
}

// SetLogger sends log lines to a rotating file when LogFile is set. Sizes
// are in megabytes and ages in days.
func (c *Config) SetLogger() {
	if c.LogFile == "" {
		return
	}
	errors.Logf("INFO", "sending log messages to %v", c.LogFile)
	log.SetOutput(&lumberjack.Logger{
		Filename: c.LogFile,
		MaxSize:  c.MaxLogSize,
		MaxAge:   c.MaxLogAge,
	})
}

func (c *Config) OutputFile(name string) string {
	return filepath.Join(c.Output, name)
}

// IndexFile names a file of a saved index. The index lives in the output
// directory unless Index names another one.
func (c *Config) IndexFile(name string) string {
	if c.Index == "" {
		return c.OutputFile(name)
	}
	return filepath.Join(c.Index, name)
}

type file struct {
	Index   indexSection   `toml:"index" yaml:"index"`
	Runtime runtimeSection `toml:"runtime" yaml:"runtime"`
}

type indexSection struct {
	MaxFeatures        int     `toml:"max_features" yaml:"max_features"`
	MinSupport         int     `toml:"min_support" yaml:"min_support"`
	MaxSupportFraction float64 `toml:"max_support_fraction" yaml:"max_support_fraction"`
	EdgeQuota          int     `toml:"edge_quota" yaml:"edge_quota"`
	Induced            bool    `toml:"induced" yaml:"induced"`
}

type runtimeSection struct {
	Parallelism int    `toml:"parallelism" yaml:"parallelism"`
	Metrics     string `toml:"metrics,omitempty" yaml:"metrics,omitempty"`
	LogFile     string `toml:"log_file,omitempty" yaml:"log_file,omitempty"`
	MaxLogSize  int    `toml:"max_log_size,omitempty" yaml:"max_log_size,omitempty"`
	MaxLogAge   int    `toml:"max_log_age,omitempty" yaml:"max_log_age,omitempty"`
}

func (c *Config) file() file {
	return file{
		Index: indexSection{
			MaxFeatures:        c.MaxFeatures,
			MinSupport:         c.MinSupport,
			MaxSupportFraction: c.MaxSupportFraction,
			EdgeQuota:          c.EdgeQuota,
			Induced:            c.Induced,
		},
		Runtime: runtimeSection{
			Parallelism: c.Parallelism,
			Metrics:     c.Metrics,
			LogFile:     c.LogFile,
			MaxLogSize:  c.MaxLogSize,
			MaxLogAge:   c.MaxLogAge,
		},
	}
}

func (c *Config) apply(f file) {
	c.MaxFeatures = f.Index.MaxFeatures
	c.MinSupport = f.Index.MinSupport
	c.MaxSupportFraction = f.Index.MaxSupportFraction
	c.EdgeQuota = f.Index.EdgeQuota
	c.Induced = f.Index.Induced
	c.Parallelism = f.Runtime.Parallelism
	c.Metrics = f.Runtime.Metrics
	c.LogFile = f.Runtime.LogFile
	c.MaxLogSize = f.Runtime.MaxLogSize
	c.MaxLogAge = f.Runtime.MaxLogAge
}

// LoadFile overrides the fields set in a TOML or (by extension) YAML file.
// Keys missing from the file leave c unchanged. Unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	f := c.file()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		fin, err := os.Open(path)
		if err != nil {
			return errors.Errorf("could not read config %v: %v", path, err)
		}
		defer fin.Close()
		dec := yaml.NewDecoder(fin)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return errors.Errorf("could not read config %v: %v", path, err)
		}
	default:
		md, err := toml.DecodeFile(path, &f)
		if err != nil {
			return errors.Errorf("could not read config %v: %v", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.Errorf("unknown keys in config %v: %v", path, undecoded)
		}
	}
	c.apply(f)
	return nil
}

// WriteFile records the settings of a run in the TOML format LoadFile reads.
func (c *Config) WriteFile(path string) error {
	fout, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fout.Close()
	return toml.NewEncoder(fout).Encode(c.file())
}
