package reporters

// Skip passes every Skip-th query on to Reporter.
type Skip struct {
	Skip     int
	Reporter Reporter
	count    int
}

func NewSkip(n int, rptr Reporter) *Skip {
	return &Skip{
		Skip:     n,
		Reporter: rptr,
	}
}

func (r *Skip) Report(q *Query) error {
	r.count++
	if r.count%r.Skip == 0 {
		return r.Reporter.Report(q)
	}
	return nil
}

func (r *Skip) Close() error {
	return r.Reporter.Close()
}
