package index

import (
	"encoding/binary"
	"io/ioutil"
	"path/filepath"
	"strings"
)

import (
	"github.com/blang/semver"
	"github.com/golang/snappy"
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gidx/config"
	"github.com/timtadh/gidx/feature"
	"github.com/timtadh/gidx/stores/int_bytes"
	"github.com/timtadh/gidx/vector"
)

const (
	FeaturesFile = "features.bptree"
	VectorsFile  = "vectors.bptree"
	VersionFile  = "VERSION"
	SettingsFile = "config.toml"
)

// Version of the on disk layout. Open reads any index with the same major
// version.
var Version = semver.MustParse("1.0.0")

func writeVersion(path string) error {
	return ioutil.WriteFile(path, []byte(Version.String()+"\n"), 0644)
}

func checkVersion(path string) error {
	bytes, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Errorf("could not read index version: %v", err)
	}
	v, err := semver.Parse(strings.TrimSpace(string(bytes)))
	if err != nil {
		return errors.Errorf("bad index version in %v: %v", path, err)
	}
	if v.Major != Version.Major {
		return errors.Errorf("index version %v is not readable by version %v", v, Version)
	}
	return nil
}

// The settings file records how the index was built. Candidates are only
// sound when queries are checked under the same containment mode.
func writeSettings(conf *config.Config, induced bool) error {
	settings := conf.Copy()
	settings.Induced = induced
	return settings.WriteFile(conf.OutputFile(SettingsFile))
}

func checkSettings(conf *config.Config) error {
	path := conf.IndexFile(SettingsFile)
	saved := config.Default()
	if err := saved.LoadFile(path); err != nil {
		return err
	}
	if saved.Induced != conf.Induced {
		return errors.Errorf("index in %v was built with induced=%v, rerun with the same containment mode",
			filepath.Dir(path), saved.Induced)
	}
	return nil
}

// finish closes a tree written by Save, or removes it when Save failed.
func finish(tree *int_bytes.BpTree, err *error) {
	if *err != nil {
		tree.Delete()
		return
	}
	*err = tree.Close()
}

// Save writes the index into the output directory: the settings it was
// built with, feature labels keyed by column and one compressed row per
// corpus position.
func (idx *Index) Save(conf *config.Config) (err error) {
	if err := writeVersion(conf.OutputFile(VersionFile)); err != nil {
		return err
	}
	if err := writeSettings(conf, idx.Induced); err != nil {
		return err
	}
	features, err := int_bytes.NewBpTree(conf.OutputFile(FeaturesFile))
	if err != nil {
		return err
	}
	defer finish(features, &err)
	for col, f := range idx.Features {
		if err := features.Add(int32(col), []byte(f.Label())); err != nil {
			return err
		}
	}
	rows, err := int_bytes.NewBpTree(conf.OutputFile(VectorsFile))
	if err != nil {
		return err
	}
	defer finish(rows, &err)
	for pos := range idx.Vectors {
		row := encodeRow(idx.Ids[pos], idx.Meta[pos], idx.Vectors[pos])
		if err := rows.Add(int32(pos), row); err != nil {
			return err
		}
	}
	errors.Logf("INFO", "saved index of %v graphs to %v", idx.Len(), conf.Output)
	return nil
}

// Open loads an index written by Save from conf.IndexFile. The oracle is
// needed to vectorize queries against the stored features. conf.Induced
// must match the mode the index was built with.
func Open(conf *config.Config, oracle vector.Oracle) (*Index, error) {
	if err := checkVersion(conf.IndexFile(VersionFile)); err != nil {
		return nil, err
	}
	if err := checkSettings(conf); err != nil {
		return nil, err
	}
	set, err := loadFeatures(conf.IndexFile(FeaturesFile))
	if err != nil {
		return nil, err
	}
	idx, err := newIndex(set, conf, oracle)
	if err != nil {
		return nil, err
	}
	rows, err := int_bytes.OpenBpTree(conf.IndexFile(VectorsFile))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	idx.Vectors = make([]vector.Vector, 0, rows.Size())
	idx.Meta = make([]vector.Metadata, 0, rows.Size())
	idx.Ids = make([]int, 0, rows.Size())
	err = rows.DoIterate(func(pos int32, row []byte) error {
		if int(pos) != len(idx.Ids) {
			return errors.Errorf("index row %v is missing", len(idx.Ids))
		}
		id, meta, vec, err := decodeRow(row, len(set))
		if err != nil {
			return errors.Errorf("index row %v: %v", pos, err)
		}
		idx.Ids = append(idx.Ids, id)
		idx.Meta = append(idx.Meta, meta)
		idx.Vectors = append(idx.Vectors, vec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	idx.measure()
	errors.Logf("INFO", "opened index of %v graphs with %v features", idx.Len(), len(set))
	return idx, nil
}

func loadFeatures(path string) (feature.Set, error) {
	features, err := int_bytes.OpenBpTree(path)
	if err != nil {
		return nil, err
	}
	defer features.Close()
	set := make(feature.Set, 0, features.Size())
	err = features.DoIterate(func(col int32, label []byte) error {
		if int(col) != len(set) {
			return errors.Errorf("feature column %v is missing", len(set))
		}
		f, err := feature.Parse(string(label))
		if err != nil {
			return err
		}
		set = append(set, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// A row is the varints id, nodes, edges, max degree, width, then width
// vector columns, snappy compressed.
func encodeRow(id int, meta vector.Metadata, vec vector.Vector) []byte {
	buf := make([]byte, 0, binary.MaxVarintLen64*(5+len(vec)))
	buf = binary.AppendVarint(buf, int64(id))
	buf = binary.AppendVarint(buf, int64(meta.Nodes))
	buf = binary.AppendVarint(buf, int64(meta.Edges))
	buf = binary.AppendVarint(buf, int64(meta.MaxDegree))
	buf = binary.AppendVarint(buf, int64(len(vec)))
	for _, c := range vec {
		buf = binary.AppendVarint(buf, int64(c))
	}
	return snappy.Encode(nil, buf)
}

func decodeRow(row []byte, width int) (id int, meta vector.Metadata, vec vector.Vector, err error) {
	buf, err := snappy.Decode(nil, row)
	if err != nil {
		return 0, meta, nil, err
	}
	next := func() (int, error) {
		x, n := binary.Varint(buf)
		if n <= 0 {
			return 0, errors.Errorf("truncated row")
		}
		buf = buf[n:]
		return int(x), nil
	}
	fields := make([]int, 5)
	for i := range fields {
		if fields[i], err = next(); err != nil {
			return 0, meta, nil, err
		}
	}
	id = fields[0]
	meta = vector.Metadata{Nodes: fields[1], Edges: fields[2], MaxDegree: fields[3]}
	if fields[4] != width {
		return 0, meta, nil, errors.Errorf("row has %v columns, expected %v", fields[4], width)
	}
	vec = make(vector.Vector, width)
	for j := range vec {
		if vec[j], err = next(); err != nil {
			return 0, meta, nil, err
		}
	}
	return id, meta, vec, nil
}
