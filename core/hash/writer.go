package hash

import "io"

// WriterToWithDomain represents a type writing itself to the hash state,
// with an associated domain string separating it from other types.
type WriterToWithDomain interface {
	io.WriterTo
	// Domain returns a context string distinguishing this type from others.
	Domain() string
}

// BytesWithDomain is a useful wrapper for writing raw bytes under a custom
// domain.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

func (b BytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes)
	return int64(n), err
}

func (b BytesWithDomain) Domain() string {
	return b.TheDomain
}
