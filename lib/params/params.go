package params

const (
	// SecParam is the statistical security parameter in bits.
	SecParam = 256

	// SecBytes is the statistical security parameter in bytes.
	SecBytes = SecParam / 8
)
