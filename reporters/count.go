package reporters

import (
	"fmt"
	"os"
)

import (
	"github.com/timtadh/gidx/config"
)

// Count writes the number of queries and of candidates when closed.
type Count struct {
	config     *config.Config
	queries    int
	candidates int
	filename   string
}

func NewCount(c *config.Config, filename string) (*Count, error) {
	r := &Count{
		config:   c,
		filename: filename,
	}
	return r, nil
}

func (r *Count) Report(q *Query) error {
	r.queries++
	r.candidates += len(q.Ids)
	return nil
}

func (r *Count) Close() error {
	f, err := os.Create(r.config.OutputFile(r.filename))
	if err != nil {
		return err
	}
	_, perr := fmt.Fprintf(f, "%v %v\n", r.queries, r.candidates)
	err = f.Close()
	if perr != nil {
		return perr
	}
	if err != nil {
		return err
	}
	return nil
}
