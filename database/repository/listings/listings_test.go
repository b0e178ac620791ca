package listingsRepo

import (
	"context"
	"path/filepath"
	"testing"

	"flexispace/database/kv"
	"flexispace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVListingRepoRoundTrip(t *testing.T) {
	store, err := kv.OpenBolt(filepath.Join(t.TempDir(), "listings.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	repo := NewKVListingRepo(store)

	form := models.NewListingForm()
	form.Title = "Harbor Loft"
	form.City = "Mumbai"
	form.Images = []string{"https://img/loft.jpg"}
	form.Amenities[models.AmenityWiFi] = true

	require.NoError(t, repo.Append(ctx, models.ListingSubmission{ID: "l1", Listing: form, Status: models.ListingPendingReview}))
	require.NoError(t, repo.Append(ctx, models.ListingSubmission{ID: "l2", Listing: models.NewListingForm(), Status: models.ListingPendingReview}))

	subs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "l2", subs[0].ID)
	assert.Equal(t, "Harbor Loft", subs[1].Listing.Title)
	assert.True(t, subs[1].Listing.Amenities[models.AmenityWiFi])
	assert.Equal(t, models.FromMajor(2000), subs[1].Listing.BasePrice)
}
