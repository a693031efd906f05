package catalog

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListVarieties(ctx context.Context) ([]ChaiVariety, error)
	GetVariety(ctx context.Context, id uint) (*ChaiVariety, error)
	CreateVariety(ctx context.Context, variety *ChaiVariety) error
	UpdateVariety(ctx context.Context, variety *ChaiVariety) error
	DeleteVariety(ctx context.Context, id uint) error

	ListReviews(ctx context.Context, chaiID uint) ([]ChaiReview, error)
	GetReview(ctx context.Context, id uint) (*ChaiReview, error)
	CreateReview(ctx context.Context, review *ChaiReview) error
	DeleteReview(ctx context.Context, id uint) error
	DeleteReviewsByVariety(ctx context.Context, chaiID uint) error
	UserExists(ctx context.Context, userID uint) (bool, error)

	GetCertificate(ctx context.Context, chaiID uint) (*ChaiCertificate, error)
	CreateCertificate(ctx context.Context, certificate *ChaiCertificate) error
	DeleteCertificateByVariety(ctx context.Context, chaiID uint) error

	ListStores(ctx context.Context) ([]Store, error)
	ListStoresByVariety(ctx context.Context, chaiID uint) ([]Store, error)
	GetStore(ctx context.Context, id uint) (*Store, error)
	CreateStore(ctx context.Context, store *Store) error
	DeleteStore(ctx context.Context, id uint) error
	AddStoreVariety(ctx context.Context, storeID, chaiID uint) error
	RemoveStoreVariety(ctx context.Context, storeID, chaiID uint) error
	DeleteStoreVarietiesByStore(ctx context.Context, storeID uint) error
	DeleteStoreVarietiesByVariety(ctx context.Context, chaiID uint) error
}
