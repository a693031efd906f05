package catalog

import (
	"context"
	"errors"

	catalogdomain "chai-app-go/internal/domain/catalog"
	userdomain "chai-app-go/internal/domain/user"
	"gorm.io/gorm"
)

const storeVarietiesTable = "store_chai_varieties"

type GormRepository struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Transaction(ctx context.Context, fn func(catalogdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

func (r *GormRepository) ListVarieties(ctx context.Context) ([]catalogdomain.ChaiVariety, error) {
	var varieties []catalogdomain.ChaiVariety
	if err := r.db.WithContext(ctx).
		Order("date_added desc").
		Order("id desc").
		Find(&varieties).Error; err != nil {
		return nil, err
	}
	return varieties, nil
}

func (r *GormRepository) GetVariety(ctx context.Context, id uint) (*catalogdomain.ChaiVariety, error) {
	var variety catalogdomain.ChaiVariety
	if err := r.db.WithContext(ctx).First(&variety, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrVarietyNotFound
		}
		return nil, err
	}
	return &variety, nil
}

func (r *GormRepository) CreateVariety(ctx context.Context, variety *catalogdomain.ChaiVariety) error {
	return r.db.WithContext(ctx).Omit("Reviews", "Certificate", "Stores").Create(variety).Error
}

func (r *GormRepository) UpdateVariety(ctx context.Context, variety *catalogdomain.ChaiVariety) error {
	return r.db.WithContext(ctx).Model(&catalogdomain.ChaiVariety{}).
		Where("id = ?", variety.ID).
		Updates(map[string]interface{}{
			"name":        variety.Name,
			"image":       variety.Image,
			"price":       variety.Price,
			"date_added":  variety.DateAdded,
			"type":        variety.Type,
			"description": variety.Description,
		}).Error
}

func (r *GormRepository) DeleteVariety(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&catalogdomain.ChaiVariety{}, id).Error
}

func (r *GormRepository) ListReviews(ctx context.Context, chaiID uint) ([]catalogdomain.ChaiReview, error) {
	var reviews []catalogdomain.ChaiReview
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("chai_id = ?", chaiID).
		Order("date_added desc").
		Order("id desc").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormRepository) GetReview(ctx context.Context, id uint) (*catalogdomain.ChaiReview, error) {
	var review catalogdomain.ChaiReview
	if err := r.db.WithContext(ctx).Preload("User").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *GormRepository) CreateReview(ctx context.Context, review *catalogdomain.ChaiReview) error {
	return r.db.WithContext(ctx).Omit("User").Create(review).Error
}

func (r *GormRepository) DeleteReview(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&catalogdomain.ChaiReview{}, id).Error
}

func (r *GormRepository) DeleteReviewsByVariety(ctx context.Context, chaiID uint) error {
	return r.db.WithContext(ctx).Where("chai_id = ?", chaiID).Delete(&catalogdomain.ChaiReview{}).Error
}

func (r *GormRepository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userdomain.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) GetCertificate(ctx context.Context, chaiID uint) (*catalogdomain.ChaiCertificate, error) {
	var certificate catalogdomain.ChaiCertificate
	if err := r.db.WithContext(ctx).Where("chai_id = ?", chaiID).First(&certificate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrCertificateNotFound
		}
		return nil, err
	}
	return &certificate, nil
}

func (r *GormRepository) CreateCertificate(ctx context.Context, certificate *catalogdomain.ChaiCertificate) error {
	err := r.db.WithContext(ctx).Create(certificate).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return catalogdomain.ErrCertificateExists
	}
	return err
}

func (r *GormRepository) DeleteCertificateByVariety(ctx context.Context, chaiID uint) error {
	return r.db.WithContext(ctx).Where("chai_id = ?", chaiID).Delete(&catalogdomain.ChaiCertificate{}).Error
}

func (r *GormRepository) ListStores(ctx context.Context) ([]catalogdomain.Store, error) {
	var stores []catalogdomain.Store
	if err := r.db.WithContext(ctx).
		Preload("ChaiVarieties", func(db *gorm.DB) *gorm.DB {
			return db.Order("chai_varieties.name asc")
		}).
		Order("name asc").
		Order("id asc").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *GormRepository) ListStoresByVariety(ctx context.Context, chaiID uint) ([]catalogdomain.Store, error) {
	var stores []catalogdomain.Store
	if err := r.db.WithContext(ctx).
		Joins("join "+storeVarietiesTable+" on "+storeVarietiesTable+".store_id = stores.id").
		Where(storeVarietiesTable+".chai_variety_id = ?", chaiID).
		Order("stores.name asc").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *GormRepository) GetStore(ctx context.Context, id uint) (*catalogdomain.Store, error) {
	var store catalogdomain.Store
	if err := r.db.WithContext(ctx).
		Preload("ChaiVarieties", func(db *gorm.DB) *gorm.DB {
			return db.Order("chai_varieties.name asc")
		}).
		First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrStoreNotFound
		}
		return nil, err
	}
	return &store, nil
}

func (r *GormRepository) CreateStore(ctx context.Context, store *catalogdomain.Store) error {
	return r.db.WithContext(ctx).Omit("ChaiVarieties").Create(store).Error
}

func (r *GormRepository) DeleteStore(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&catalogdomain.Store{}, id).Error
}

func (r *GormRepository) AddStoreVariety(ctx context.Context, storeID, chaiID uint) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO "+storeVarietiesTable+" (store_id, chai_variety_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		storeID, chaiID,
	).Error
}

func (r *GormRepository) RemoveStoreVariety(ctx context.Context, storeID, chaiID uint) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM "+storeVarietiesTable+" WHERE store_id = ? AND chai_variety_id = ?",
		storeID, chaiID,
	).Error
}

func (r *GormRepository) DeleteStoreVarietiesByStore(ctx context.Context, storeID uint) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM "+storeVarietiesTable+" WHERE store_id = ?", storeID).Error
}

func (r *GormRepository) DeleteStoreVarietiesByVariety(ctx context.Context, chaiID uint) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM "+storeVarietiesTable+" WHERE chai_variety_id = ?", chaiID).Error
}
