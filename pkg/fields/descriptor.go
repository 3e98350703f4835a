package fields

import (
	"maps"
	"slices"
	"time"
)

// Descriptor is the typed accessor for one declared field of a Record.
type Descriptor struct {
	// Path is the field's dotted name as used in configuration.
	Path string
	// Kind drives normalization of the field's values.
	Kind Kind

	get func(*Record) (Value, bool)
	set func(*Record, Value)
}

// Get returns the field's value in r and whether r reports it at all.
func (d Descriptor) Get(r *Record) (Value, bool) {
	if r == nil {
		return Null(d.Kind), false
	}
	return d.get(r)
}

// Set stores v in r. A null v clears the field. A value of the wrong
// shape for the field is ignored.
func (d Descriptor) Set(r *Record, v Value) {
	if r == nil {
		return
	}
	d.set(r, v)
}

// Field paths known to the engine.
const (
	PathTitle           = "title"
	PathDescription     = "description"
	PathStartDate       = "startDate"
	PathEndDate         = "endDate"
	PathLocationName    = "location.name"
	PathLocationAddress = "location.address"
	PathLocationCity    = "location.city"
	PathCategory        = "category"
	PathURL             = "url"
	PathOrganizer       = "organizer"
	PathCoordinates     = "coordinates"
	PathOpeningHours    = "openingHours"
	PathImages          = "images"
	PathPrice           = "price"
	PathCapacity        = "capacity"
)

var descriptors = []Descriptor{
	textField(PathTitle, func(r *Record) *Text { return &r.Title }),
	textField(PathDescription, func(r *Record) *Text { return &r.Description }),
	dateField(PathStartDate, func(r *Record) **time.Time { return &r.StartDate }),
	dateField(PathEndDate, func(r *Record) **time.Time { return &r.EndDate }),
	stringField(PathLocationName, func(r *Record) **string { return &r.Location.Name }),
	stringField(PathLocationAddress, func(r *Record) **string { return &r.Location.Address }),
	stringField(PathLocationCity, func(r *Record) **string { return &r.Location.City }),
	stringField(PathCategory, func(r *Record) **string { return &r.Category }),
	stringField(PathURL, func(r *Record) **string { return &r.URL }),
	stringField(PathOrganizer, func(r *Record) **string { return &r.Organizer }),
	objectField(PathCoordinates, func(r *Record) **Coordinates { return &r.Coordinates }),
	objectField(PathOpeningHours, func(r *Record) *map[string]any { return &r.OpeningHours }),
	objectField(PathImages, func(r *Record) *[]string { return &r.Images }),
	scalarField(PathPrice, func(r *Record) **float64 { return &r.Price }),
	scalarField(PathCapacity, func(r *Record) **int { return &r.Capacity }),
}

var byPath = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		m[d.Path] = d
	}
	return m
}()

// Lookup returns the descriptor for path.
func Lookup(path string) (Descriptor, bool) {
	d, ok := byPath[path]
	return d, ok
}

// Paths returns every known field path in declaration order.
func Paths() []string {
	paths := make([]string, len(descriptors))
	for i, d := range descriptors {
		paths[i] = d.Path
	}
	return paths
}

func stringField(path string, ref func(*Record) **string) Descriptor {
	return Descriptor{
		Path: path,
		Kind: KindString,
		get: func(r *Record) (Value, bool) {
			p := *ref(r)
			if p == nil {
				return Null(KindString), false
			}
			return String(*p), true
		},
		set: func(r *Record, v Value) {
			if v.IsNull() {
				*ref(r) = nil
				return
			}
			if v.kind == KindString {
				s := v.str
				*ref(r) = &s
			}
		},
	}
}

func dateField(path string, ref func(*Record) **time.Time) Descriptor {
	return Descriptor{
		Path: path,
		Kind: KindDate,
		get: func(r *Record) (Value, bool) {
			p := *ref(r)
			if p == nil {
				return Null(KindDate), false
			}
			return Date(*p), true
		},
		set: func(r *Record, v Value) {
			if v.IsNull() {
				*ref(r) = nil
				return
			}
			if v.kind == KindDate {
				t := v.at
				*ref(r) = &t
			}
		},
	}
}

func textField(path string, ref func(*Record) *Text) Descriptor {
	return Descriptor{
		Path: path,
		Kind: KindMultilingual,
		get: func(r *Record) (Value, bool) {
			t := *ref(r)
			if t == nil {
				return Null(KindMultilingual), false
			}
			return Multilingual(t), true
		},
		set: func(r *Record, v Value) {
			if v.IsNull() {
				*ref(r) = nil
				return
			}
			if v.kind == KindMultilingual {
				*ref(r) = maps.Clone(v.text)
			}
		},
	}
}

// objectField covers pointer, map and slice shaped fields; their nil value
// means "not reported".
func objectField[T any](path string, ref func(*Record) *T) Descriptor {
	return Descriptor{
		Path: path,
		Kind: KindObject,
		get: func(r *Record) (Value, bool) {
			obj := any(*ref(r))
			if isNilObject(obj) {
				return Null(KindObject), false
			}
			return Object(obj), true
		},
		set: func(r *Record, v Value) {
			if v.IsNull() {
				var zero T
				*ref(r) = zero
				return
			}
			if obj, ok := v.object.(T); ok {
				*ref(r) = cloneObject(obj)
			}
		},
	}
}

func scalarField[T int | float64](path string, ref func(*Record) **T) Descriptor {
	return Descriptor{
		Path: path,
		Kind: KindScalar,
		get: func(r *Record) (Value, bool) {
			p := *ref(r)
			if p == nil {
				return Null(KindScalar), false
			}
			return Scalar(*p), true
		},
		set: func(r *Record, v Value) {
			if v.IsNull() {
				*ref(r) = nil
				return
			}
			if s, ok := v.scalar.(T); ok {
				*ref(r) = &s
			}
		},
	}
}

// cloneObject copies obj so a record set from a Value never shares
// storage with the record the Value came from.
func cloneObject[T any](obj T) T {
	switch o := any(obj).(type) {
	case *Coordinates:
		return any(clonePtr(o)).(T)
	case map[string]any:
		return any(cloneTree(o)).(T)
	case []string:
		return any(slices.Clone(o)).(T)
	default:
		return obj
	}
}

// cloneTree deep-copies the maps and slices of a decoded document.
func cloneTree(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneAny(v)
	}
	return out
}

func cloneAny(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneTree(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneAny(e)
		}
		return out
	case []string:
		return slices.Clone(t)
	default:
		return v
	}
}

func isNilObject(obj any) bool {
	switch o := obj.(type) {
	case nil:
		return true
	case *Coordinates:
		return o == nil
	case map[string]any:
		return o == nil
	case []string:
		return o == nil
	default:
		return false
	}
}
