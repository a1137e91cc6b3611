package reporters

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/gidx/config"
)

// File writes the candidate ids of each query as a "q # <n>" line, n
// counting queries from 1, followed by a "c # <ids>" line.
type File struct {
	config *config.Config
	fout   *os.File
	w      *bufio.Writer
}

func NewFile(c *config.Config, filename string) (*File, error) {
	fout, err := os.Create(c.OutputFile(filename))
	if err != nil {
		return nil, err
	}
	r := &File{
		config: c,
		fout:   fout,
		w:      bufio.NewWriter(fout),
	}
	return r, nil
}

func joinInts(items []int, sep string) string {
	s := make([]string, 0, len(items))
	for _, i := range items {
		s = append(s, strconv.Itoa(i))
	}
	return strings.Join(s, sep)
}

func (r *File) Report(q *Query) error {
	_, err := fmt.Fprintf(r.w, "q # %d\nc # %s\n", q.Idx+1, joinInts(q.Ids, " "))
	return err
}

func (r *File) Close() error {
	err := r.w.Flush()
	if err != nil {
		r.fout.Close()
		return err
	}
	return r.fout.Close()
}
