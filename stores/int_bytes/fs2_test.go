package int_bytes

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"io/ioutil"
	"os"
	"path/filepath"
)

func tempTree(t *assert.Assertions) (*BpTree, string) {
	dir, err := ioutil.TempDir("", "int_bytes")
	t.Nil(err)
	path := filepath.Join(dir, "rows.bptree")
	b, err := NewBpTree(path)
	t.Nil(err)
	return b, dir
}

func TestAddIterate(x *testing.T) {
	t := assert.New(x)
	b, dir := tempTree(t)
	defer os.RemoveAll(dir)
	defer b.Delete()
	for _, k := range []int32{300, 2, 70000, 1} {
		t.Nil(b.Add(k, []byte{byte(k), byte(k >> 8), 7}))
	}
	t.Nil(b.Add(2, []byte("second")))
	t.Equal(5, b.Size())

	keys := make([]int32, 0, 5)
	values := make([]string, 0, 2)
	t.Nil(b.DoIterate(func(k int32, v []byte) error {
		keys = append(keys, k)
		if k == 2 {
			values = append(values, string(v))
		}
		return nil
	}))
	t.Equal([]int32{1, 2, 2, 300, 70000}, keys)
	t.ElementsMatch([]string{string([]byte{2, 0, 7}), "second"}, values)
}

func TestReopen(x *testing.T) {
	t := assert.New(x)
	b, dir := tempTree(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "rows.bptree")
	t.Nil(b.Add(0, []byte("zero")))
	t.Nil(b.Add(1, []byte("one")))
	t.Nil(b.Close())

	b, err := OpenBpTree(path)
	t.Nil(err)
	t.Equal(2, b.Size())
	found := map[int32]string{}
	t.Nil(b.DoIterate(func(k int32, v []byte) error {
		found[k] = string(v)
		return nil
	}))
	t.Equal(map[int32]string{0: "zero", 1: "one"}, found)
	t.Nil(b.Delete())
	_, err = os.Stat(path)
	t.True(os.IsNotExist(err))
}
