package fields_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/fields"
)

func TestDescriptorRoundTrip(t *testing.T) {
	start := time.Date(2025, 7, 20, 21, 0, 0, 0, time.UTC)
	src := fields.Record{
		Title:        fields.Text{"es": "Concierto", "en": "Concert"},
		StartDate:    &start,
		Location:     fields.Location{Name: fields.Ptr("Plaza Mayor")},
		Coordinates:  &fields.Coordinates{Lat: 38.64, Lng: 0.04},
		OpeningHours: map[string]any{"mon": "closed"},
		Images:       []string{"a.jpg"},
		Price:        fields.Ptr(12.5),
		Capacity:     fields.Ptr(300),
	}

	var dst fields.Record
	for _, path := range fields.Paths() {
		d, ok := fields.Lookup(path)
		require.True(t, ok, path)
		v, _ := d.Get(&src)
		assert.Equal(t, d.Kind, v.Kind(), path)
		d.Set(&dst, v)
	}

	assert.Equal(t, src, dst)
}

func TestDescriptorPresence(t *testing.T) {
	r := fields.Record{
		Category: fields.Ptr(""),
		Title:    fields.Text{},
	}

	category, _ := fields.Lookup(fields.PathCategory)
	v, ok := category.Get(&r)
	assert.True(t, ok)
	assert.True(t, v.IsEmpty())

	title, _ := fields.Lookup(fields.PathTitle)
	v, ok = title.Get(&r)
	assert.True(t, ok)
	assert.True(t, v.IsEmpty())

	url, _ := fields.Lookup(fields.PathURL)
	v, ok = url.Get(&r)
	assert.False(t, ok)
	assert.True(t, v.IsNull())

	coords, _ := fields.Lookup(fields.PathCoordinates)
	_, ok = coords.Get(&r)
	assert.False(t, ok)

	_, ok = url.Get(nil)
	assert.False(t, ok)
}

func TestDescriptorSetNullClears(t *testing.T) {
	r := fields.Record{URL: fields.Ptr("https://calpe.es"), Images: []string{"x.jpg"}}

	url, _ := fields.Lookup(fields.PathURL)
	url.Set(&r, fields.Null(fields.KindString))
	assert.Nil(t, r.URL)

	images, _ := fields.Lookup(fields.PathImages)
	images.Set(&r, fields.Null(fields.KindObject))
	assert.Nil(t, r.Images)
}

func TestDescriptorSetIgnoresWrongShape(t *testing.T) {
	r := fields.Record{}
	price, _ := fields.Lookup(fields.PathPrice)
	price.Set(&r, fields.Scalar("free"))
	assert.Nil(t, r.Price)
}

func TestRecordClone(t *testing.T) {
	r := fields.Record{
		Title:        fields.Text{"es": "Feria"},
		URL:          fields.Ptr("https://a"),
		Images:       []string{"1.jpg"},
		OpeningHours: map[string]any{"sat": map[string]any{"open": "10:00"}},
	}
	c := r.Clone()
	c.Title["es"] = "Otra"
	*c.URL = "https://b"
	c.Images[0] = "2.jpg"
	c.OpeningHours["sat"].(map[string]any)["open"] = "12:00"

	assert.Equal(t, "Feria", r.Title["es"])
	assert.Equal(t, "https://a", *r.URL)
	assert.Equal(t, "1.jpg", r.Images[0])
	assert.Equal(t, "10:00", r.OpeningHours["sat"].(map[string]any)["open"])
}

func TestDescriptorSetCopiesObjects(t *testing.T) {
	src := fields.Record{
		Coordinates:  &fields.Coordinates{Lat: 38.64, Lng: 0.07},
		OpeningHours: map[string]any{"fri": "21:00", "days": []any{"fri", "sat"}},
		Images:       []string{"a.jpg"},
	}

	var dst fields.Record
	for _, path := range []string{fields.PathCoordinates, fields.PathOpeningHours, fields.PathImages} {
		d, ok := fields.Lookup(path)
		require.True(t, ok, path)
		v, _ := d.Get(&src)
		d.Set(&dst, v)
	}
	require.Equal(t, src, dst)

	dst.Coordinates.Lat = 0
	dst.OpeningHours["fri"] = "closed"
	dst.OpeningHours["days"].([]any)[0] = "mon"
	dst.Images[0] = "b.jpg"

	assert.Equal(t, 38.64, src.Coordinates.Lat)
	assert.Equal(t, "21:00", src.OpeningHours["fri"])
	assert.Equal(t, "fri", src.OpeningHours["days"].([]any)[0])
	assert.Equal(t, "a.jpg", src.Images[0])
}

func TestNewSpec(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		s := fields.DefaultSpec()
		assert.Equal(t, fields.DefaultCore, s.CorePaths())
		assert.Equal(t, fields.DefaultSecondary, s.SecondaryPaths())
		assert.Len(t, s.All(), len(fields.DefaultCore)+len(fields.DefaultSecondary))
	})

	t.Run("keeps configured order", func(t *testing.T) {
		s, err := fields.NewSpec([]string{"location.name", "title"}, []string{"url"})
		require.NoError(t, err)
		assert.Equal(t, []string{"location.name", "title"}, s.CorePaths())
		assert.Equal(t, fields.KindString, s.Core()[0].Kind)
		assert.Equal(t, fields.KindMultilingual, s.Core()[1].Kind)
	})

	t.Run("empty core", func(t *testing.T) {
		_, err := fields.NewSpec(nil, []string{"url"})
		assert.True(t, errors.IsMisconfigured(err))
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := fields.NewSpec([]string{"title", "location.zip"}, nil)
		assert.True(t, errors.IsMisconfigured(err))
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("duplicate field", func(t *testing.T) {
		_, err := fields.NewSpec([]string{"title"}, []string{"title"})
		assert.True(t, errors.IsMisconfigured(err))
	})
}

func TestCanonicalCore(t *testing.T) {
	s, err := fields.NewSpec([]string{"title", "startDate", "url"}, nil)
	require.NoError(t, err)

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	got := s.CanonicalCore(&fields.Record{Title: fields.Text{"es": "Feria"}, StartDate: &start})

	assert.Equal(t, map[string]any{
		"title":     fields.Text{"es": "Feria"},
		"startDate": "2025-06-01T18:00:00.000Z",
		"url":       nil,
	}, got)

	t.Run("unencodable field", func(t *testing.T) {
		s, err := fields.NewSpec([]string{"title", "price"}, nil)
		require.NoError(t, err)
		got := s.CanonicalCore(&fields.Record{Title: fields.Text{"es": "Feria"}, Price: fields.Ptr(math.NaN())})
		assert.Equal(t, fields.NullKey, got["price"])
		assert.Equal(t, fields.Text{"es": "Feria"}, got["title"])
	})
}
