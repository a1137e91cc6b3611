package config

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"runtime"
)

func tempDir(t *assert.Assertions) string {
	dir, err := ioutil.TempDir("", "gidx-config")
	t.Nil(err)
	return dir
}

func TestDefaults(x *testing.T) {
	t := assert.New(x)
	c := Default()
	t.Equal(700, c.MaxFeatures)
	t.Equal(3, c.MinSupport)
	t.Equal(.08, c.MaxSupportFraction)
	t.Equal(80, c.EdgeQuota)
	t.False(c.Induced)
	t.Nil(c.MineOptions().Validate())
}

func TestWorkers(x *testing.T) {
	t := assert.New(x)
	c := Default()
	t.Equal(1, c.Workers())
	c.Parallelism = -1
	t.Equal(runtime.NumCPU(), c.Workers())
	c.Parallelism = 6
	t.Equal(6, c.Workers())
}

func TestFiles(x *testing.T) {
	t := assert.New(x)
	c := Default()
	c.Output = "/tmp/out"
	t.Equal("/tmp/out/vectors.bptree", c.IndexFile("vectors.bptree"))
	c.Index = "/tmp/idx"
	t.Equal("/tmp/idx/vectors.bptree", c.IndexFile("vectors.bptree"))
	t.Equal("/tmp/out/candidates.dat", c.OutputFile("candidates.dat"))
	cp := c.Copy()
	cp.Index = ""
	t.Equal("/tmp/idx", c.Index)
}

func TestLoadFile(x *testing.T) {
	t := assert.New(x)
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "gidx.toml")
	t.Nil(ioutil.WriteFile(path, []byte(`
[index]
max_features = 100
edge_quota = 10
induced = true

[runtime]
parallelism = 4
`), 0644))
	c := Default()
	t.Nil(c.LoadFile(path))
	t.Equal(100, c.MaxFeatures)
	t.Equal(10, c.EdgeQuota)
	t.Equal(3, c.MinSupport)
	t.Equal(.08, c.MaxSupportFraction)
	t.True(c.Induced)
	t.Equal(4, c.Workers())

	t.Nil(ioutil.WriteFile(path, []byte("[index]\nmax_featurez = 1\n"), 0644))
	t.NotNil(Default().LoadFile(path))
	t.NotNil(Default().LoadFile(filepath.Join(dir, "missing.toml")))
}

func TestLoadYaml(x *testing.T) {
	t := assert.New(x)
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "gidx.yaml")
	t.Nil(ioutil.WriteFile(path, []byte(`
index:
  min_support: 2
  max_support_fraction: 0.5
runtime:
  log_file: /tmp/gidx.log
  max_log_size: 10
`), 0644))
	c := Default()
	t.Nil(c.LoadFile(path))
	t.Equal(2, c.MinSupport)
	t.Equal(.5, c.MaxSupportFraction)
	t.Equal(700, c.MaxFeatures)
	t.Equal("/tmp/gidx.log", c.LogFile)
	t.Equal(10, c.MaxLogSize)

	t.Nil(ioutil.WriteFile(path, []byte("index:\n  max_featurez: 1\n"), 0644))
	t.NotNil(Default().LoadFile(path))

	t.Nil(ioutil.WriteFile(path, []byte(""), 0644))
	t.Nil(Default().LoadFile(path))
}

func TestSetLogger(x *testing.T) {
	t := assert.New(x)
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	defer log.SetOutput(os.Stderr)
	c := Default()
	c.LogFile = filepath.Join(dir, "gidx.log")
	c.SetLogger()
	log.Print("hello")
	bytes, err := ioutil.ReadFile(c.LogFile)
	t.Nil(err)
	t.Contains(string(bytes), "hello")
}

func TestWriteFileRoundTrip(x *testing.T) {
	t := assert.New(x)
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "config.toml")
	c := Default()
	c.MinSupport = 5
	c.MaxSupportFraction = .25
	c.Parallelism = -1
	t.Nil(c.WriteFile(path))
	d := Default()
	t.Nil(d.LoadFile(path))
	t.Equal(c.MineOptions(), d.MineOptions())
	t.Equal(-1, d.Parallelism)
}
