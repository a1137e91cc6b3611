package int_bytes

type MultiMap interface {
	Iterate() (Iterator, error)
	DoIterate(do func(int32, []byte) error) error
	Add(key int32, value []byte) error
	Size() int
	Close() error
	Delete() error
}

type Iterator func() (int32, []byte, error, Iterator)

func Do(run func() (Iterator, error), do func(key int32, value []byte) error) error {
	kvi, err := run()
	if err != nil {
		return err
	}
	var key int32
	var value []byte
	for key, value, err, kvi = kvi(); kvi != nil; key, value, err, kvi = kvi() {
		e := do(key, value)
		if e != nil {
			return e
		}
	}
	return err
}
