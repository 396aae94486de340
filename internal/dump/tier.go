package dump

// Tier distinguishes the two IR levels GCC dumps.
type Tier uint8

const (
	// TierGimple is the machine-independent (tree/GIMPLE) representation.
	TierGimple Tier = iota
	// TierRTL is the machine-dependent (register transfer) representation.
	TierRTL
)

func (t Tier) String() string {
	switch t {
	case TierGimple:
		return "gimple"
	case TierRTL:
		return "rtl"
	}
	return "unknown"
}

// Marker returns the single-letter tier marker used in dump filenames.
func (t Tier) Marker() byte {
	if t == TierRTL {
		return 'r'
	}
	return 't'
}
