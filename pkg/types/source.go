//nolint:revive // Package types provides common type definitions
package types

// SourceID identifies a data provider reporting facts about an entity
// (an official tourism site, a social platform, a scraper, manual entry).
type SourceID string

// String returns the string representation of a source ID.
func (id SourceID) String() string {
	return string(id)
}

// Well-known source identifiers.
const (
	// OfficialID is the municipality's own tourism site.
	OfficialID SourceID = "calpe-official"

	// ManualID marks facts entered by an editor.
	ManualID SourceID = "manual"
)
