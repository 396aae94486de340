package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Dump collection
	EmptyInput      Code = 1000
	UnknownPassFile Code = 1001

	// Parsing
	MalformedDump Code = 2000
	SkippedLine   Code = 2001

	// CFG construction
	DanglingEdge Code = 3000

	// Sequencing
	SequencingConflict Code = 4000

	// Run cache
	CacheMiss  Code = 5000
	CacheStale Code = 5001
)

func (c Code) String() string {
	switch c {
	case EmptyInput:
		return "EmptyInput"
	case UnknownPassFile:
		return "UnknownPassFile"
	case MalformedDump:
		return "MalformedDump"
	case SkippedLine:
		return "SkippedLine"
	case DanglingEdge:
		return "DanglingEdge"
	case SequencingConflict:
		return "SequencingConflict"
	case CacheMiss:
		return "CacheMiss"
	case CacheStale:
		return "CacheStale"
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// DefaultSeverity returns the severity a code carries unless overridden.
func (c Code) DefaultSeverity() Severity {
	switch c {
	case SkippedLine, UnknownPassFile:
		return SevWarning
	case CacheMiss, CacheStale:
		return SevInfo
	}
	return SevError
}
