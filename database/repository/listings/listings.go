package listingsRepo

import (
	"context"

	"flexispace/database/kv"
	"flexispace/models"
)

// ListingsKey is the store key holding the JSON list of submitted listings.
const ListingsKey = "listings"

type ListingRepository interface {
	List(ctx context.Context) ([]models.ListingSubmission, error)
	Append(ctx context.Context, submission models.ListingSubmission) error
}

type kvListingRepo struct {
	list *kv.JSONList[models.ListingSubmission]
}

func NewKVListingRepo(store kv.Store) ListingRepository {
	return &kvListingRepo{list: kv.NewJSONList[models.ListingSubmission](store, ListingsKey)}
}

func (r *kvListingRepo) List(ctx context.Context) ([]models.ListingSubmission, error) {
	return r.list.Load(ctx)
}

func (r *kvListingRepo) Append(ctx context.Context, submission models.ListingSubmission) error {
	return r.list.Prepend(ctx, submission)
}
