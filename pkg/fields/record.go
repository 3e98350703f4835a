package fields

import (
	"maps"
	"slices"
	"time"
)

// Record is one source's view of an event or point of interest.
//
// A nil pointer, map or slice means the source did not report the field.
// A non-nil empty value ("" or an empty map) means it reported the field
// without content.
type Record struct {
	Title        Text           `json:"title,omitempty" yaml:"title,omitempty"`
	Description  Text           `json:"description,omitempty" yaml:"description,omitempty"`
	StartDate    *time.Time     `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate      *time.Time     `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Location     Location       `json:"location" yaml:"location"`
	Category     *string        `json:"category,omitempty" yaml:"category,omitempty"`
	URL          *string        `json:"url,omitempty" yaml:"url,omitempty"`
	Organizer    *string        `json:"organizer,omitempty" yaml:"organizer,omitempty"`
	Coordinates  *Coordinates   `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	OpeningHours map[string]any `json:"openingHours,omitempty" yaml:"openingHours,omitempty"`
	Images       []string       `json:"images,omitempty" yaml:"images,omitempty"`
	Price        *float64       `json:"price,omitempty" yaml:"price,omitempty"`
	Capacity     *int           `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// Location is where an entity takes place or is situated.
type Location struct {
	Name    *string `json:"name,omitempty" yaml:"name,omitempty"`
	Address *string `json:"address,omitempty" yaml:"address,omitempty"`
	City    *string `json:"city,omitempty" yaml:"city,omitempty"`
}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.Title = maps.Clone(r.Title)
	out.Description = maps.Clone(r.Description)
	out.StartDate = clonePtr(r.StartDate)
	out.EndDate = clonePtr(r.EndDate)
	out.Location = Location{
		Name:    clonePtr(r.Location.Name),
		Address: clonePtr(r.Location.Address),
		City:    clonePtr(r.Location.City),
	}
	out.Category = clonePtr(r.Category)
	out.URL = clonePtr(r.URL)
	out.Organizer = clonePtr(r.Organizer)
	out.Coordinates = clonePtr(r.Coordinates)
	out.OpeningHours = cloneTree(r.OpeningHours)
	out.Images = slices.Clone(r.Images)
	out.Price = clonePtr(r.Price)
	out.Capacity = clonePtr(r.Capacity)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v. It keeps record literals short.
func Ptr[T any](v T) *T {
	return &v
}
