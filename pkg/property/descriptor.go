package property

import "github.com/graphscale/graphscale/pkg/collection"

// StorageHint records which Collection variant a property prefers. It is
// carried on the Descriptor; no code in this repository chooses a backend
// from it.
type StorageHint int

const (
	// HintAuto states no preference.
	HintAuto StorageHint = iota
	HintSingle
	HintPaged
	HintColumnar
)

// Descriptor is the (key, value_type, default_value, storage_hint) tuple
// of §3's "Property descriptor" entity.
type Descriptor struct {
	Key          string
	ValueType    collection.ValueType
	DefaultValue interface{}
	StorageHint  StorageHint
}
