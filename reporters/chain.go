package reporters

// Chain hands each query to every reporter in order. Reporting stops at
// the first error.
type Chain struct {
	Reporters []Reporter
}

func (r *Chain) Report(q *Query) error {
	for _, rpt := range r.Reporters {
		if err := rpt.Report(q); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every reporter, even after one fails, so no output file is
// left unflushed. The first error is returned.
func (r *Chain) Close() (err error) {
	for _, rpt := range r.Reporters {
		if e := rpt.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
