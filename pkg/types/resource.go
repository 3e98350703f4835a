package types

// EntityKind identifies what kind of real-world entity a record describes.
type EntityKind string

const (
	// EntityKindEvent is a dated happening (concert, fiesta, market).
	EntityKindEvent EntityKind = "event"

	// EntityKindPOI is a point of interest (beach, museum, restaurant).
	EntityKindPOI EntityKind = "poi"
)

// String returns the string representation of an entity kind.
func (k EntityKind) String() string {
	return string(k)
}

// IsValid reports whether k is a known entity kind.
func (k EntityKind) IsValid() bool {
	return k == EntityKindEvent || k == EntityKindPOI
}
