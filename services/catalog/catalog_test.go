package catalog

import (
	"testing"

	"flexispace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(spaces []models.Space) []string {
	out := make([]string, len(spaces))
	for i, s := range spaces {
		out[i] = s.ID
	}
	return out
}

func TestDefaultServices(t *testing.T) {
	c := Default()
	svcs := c.Services()
	require.Len(t, svcs, 4)
	assert.Equal(t, "Professional Cleaning", svcs[0].Name)

	catering, err := c.Service("4")
	require.NoError(t, err)
	assert.True(t, catering.Category.PerPerson())
	assert.Equal(t, models.FromMajor(300), catering.Price)

	_, err = c.Service("99")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestSpaceLookupReturnsCopy(t *testing.T) {
	c := Default()
	s, err := c.Space("ramaiah-sports-ground")
	require.NoError(t, err)
	assert.Equal(t, models.FromMajor(1200), s.BasePrice)
	assert.Equal(t, 600, s.Capacity)

	s.Amenities[0] = "Helipad"
	again, _ := c.Space("ramaiah-sports-ground")
	assert.Equal(t, "Parking", again.Amenities[0])

	_, err = c.Space("nope")
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name   string
		filter SearchFilter
		want   []string
	}{
		{name: "no filter sorts by rating", filter: SearchFilter{}, want: []string{"tech-corp-conference", "lincoln-playground", "ramaiah-sports-ground", "city-hall-community-room", "corporate-parking-lot"}},
		{name: "query matches title", filter: SearchFilter{Query: "conference"}, want: []string{"tech-corp-conference"}},
		{name: "location matches city", filter: SearchFilter{Location: "bengaluru"}, want: []string{"ramaiah-sports-ground"}},
		{name: "types any of", filter: SearchFilter{Types: []string{"parking lot", "Community Hall"}}, want: []string{"city-hall-community-room", "corporate-parking-lot"}},
		{name: "guest count", filter: SearchFilter{Guests: 180}, want: []string{"ramaiah-sports-ground", "corporate-parking-lot"}},
		{name: "price range", filter: SearchFilter{MinPrice: models.FromMajor(2000), MaxPrice: models.FromMajor(3000)}, want: []string{"city-hall-community-room", "corporate-parking-lot"}},
		{name: "amenities all of", filter: SearchFilter{Amenities: []string{"parking", "security"}}, want: []string{"lincoln-playground", "ramaiah-sports-ground"}},
		{name: "nothing matches", filter: SearchFilter{Query: "volcano"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Default().Search(tt.filter)))
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	spaces := []models.Space{{ID: "a", Title: "A", Amenities: []string{"WiFi"}}}
	c, err := New(nil, spaces)
	require.NoError(t, err)
	spaces[0].Amenities[0] = "Pool"

	s, err := c.Space("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"WiFi"}, s.Amenities)
	assert.Empty(t, c.Services())
}

func TestNewRejectsUnknownCategory(t *testing.T) {
	services := append(DefaultServices(), models.SelectedService{ID: "9", Name: "Spa", Category: "spa"})
	c, err := New(services, DefaultSpaces())
	assert.ErrorIs(t, err, ErrBadCategory)
	assert.ErrorContains(t, err, `"9"`)
	assert.Nil(t, c)
}

func TestDefaultCategoriesAreKnown(t *testing.T) {
	for _, s := range Default().Services() {
		assert.True(t, s.Category.Valid(), s.ID)
	}
}
