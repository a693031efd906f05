package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	nameMaxLength     = 100
	imageMaxLength    = 100
	locationMaxLength = 150
	certNumberMaxLen  = 100

	certificatePrefix = "CERT-"
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		cache: noopCache{},
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithCache enables caching of single variety lookups.
func (s *Service) WithCache(cache Cache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		s.cache = noopCache{}
		s.cacheTTL = 0
		return s
	}
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

func (s *Service) ListVarieties(ctx context.Context) ([]ChaiVariety, error) {
	return s.repo.ListVarieties(ctx)
}

func (s *Service) GetVariety(ctx context.Context, id uint) (*ChaiVariety, error) {
	if cached, ok := s.cache.GetVariety(id); ok {
		return cached, nil
	}

	variety, err := s.repo.GetVariety(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetVariety(id, variety, s.cacheTTL)
	return variety, nil
}

func (s *Service) GetVarietyDetail(ctx context.Context, id uint) (*VarietyDetail, error) {
	variety, err := s.GetVariety(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.ListReviews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	stores, err := s.repo.ListStoresByVariety(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	certificate, err := s.repo.GetCertificate(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrCertificateNotFound) {
			return nil, fmt.Errorf("get certificate: %w", err)
		}
		certificate = nil
	}

	return &VarietyDetail{
		Variety:     *variety,
		Reviews:     reviews,
		Stores:      stores,
		Certificate: certificate,
	}, nil
}

func (s *Service) CreateVariety(ctx context.Context, input VarietyInput) (*ChaiVariety, error) {
	variety := ChaiVariety{}
	if err := s.applyVarietyInput(&variety, input); err != nil {
		return nil, err
	}
	if variety.DateAdded.IsZero() {
		variety.DateAdded = s.now()
	}

	if err := s.repo.CreateVariety(ctx, &variety); err != nil {
		return nil, err
	}
	return &variety, nil
}

func (s *Service) UpdateVariety(ctx context.Context, id uint, input VarietyInput) (*ChaiVariety, error) {
	var result ChaiVariety
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		variety, err := tx.GetVariety(ctx, id)
		if err != nil {
			return err
		}
		if err := s.applyVarietyInput(variety, input); err != nil {
			return err
		}
		if err := tx.UpdateVariety(ctx, variety); err != nil {
			return err
		}
		result = *variety
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteVariety(id)
	return &result, nil
}

// DeleteVariety removes the variety along with its reviews, its certificate and
// every store membership, in one transaction.
func (s *Service) DeleteVariety(ctx context.Context, id uint) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetVariety(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteReviewsByVariety(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteCertificateByVariety(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteStoreVarietiesByVariety(ctx, id); err != nil {
			return err
		}
		return tx.DeleteVariety(ctx, id)
	})
	if err != nil {
		return err
	}

	s.cache.DeleteVariety(id)
	return nil
}

func (s *Service) ListReviews(ctx context.Context, chaiID uint) ([]ChaiReview, error) {
	if _, err := s.GetVariety(ctx, chaiID); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, chaiID)
}

func (s *Service) AddReview(ctx context.Context, input ReviewInput) (*ChaiReview, error) {
	review := ChaiReview{
		ChaiID:  input.ChaiID,
		UserID:  input.UserID,
		Rating:  input.Rating,
		Comment: strings.TrimSpace(input.Comment),
	}
	if input.DateAdded != nil {
		review.DateAdded = input.DateAdded.UTC()
	} else {
		review.DateAdded = s.now()
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetVariety(ctx, input.ChaiID); err != nil {
			return err
		}
		exists, err := tx.UserExists(ctx, input.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrReviewerNotFound
		}
		return tx.CreateReview(ctx, &review)
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

func (s *Service) DeleteReview(ctx context.Context, id uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetReview(ctx, id); err != nil {
			return err
		}
		return tx.DeleteReview(ctx, id)
	})
}

func (s *Service) GetCertificate(ctx context.Context, chaiID uint) (*ChaiCertificate, error) {
	if _, err := s.GetVariety(ctx, chaiID); err != nil {
		return nil, err
	}
	return s.repo.GetCertificate(ctx, chaiID)
}

// IssueCertificate attaches a certificate to a variety. A variety holds at most one.
func (s *Service) IssueCertificate(ctx context.Context, input CertificateInput) (*ChaiCertificate, error) {
	if input.ValidUntil.IsZero() {
		return nil, fmt.Errorf("%w: valid_until is required", ErrInvalidInput)
	}

	number := strings.TrimSpace(input.CertificateNumber)
	if number == "" {
		number = newCertificateNumber()
	}
	if utf8.RuneCountInString(number) > certNumberMaxLen {
		return nil, fmt.Errorf("%w: certificate_number is too long", ErrInvalidInput)
	}

	certificate := ChaiCertificate{
		ChaiID:            input.ChaiID,
		CertificateNumber: number,
		ValidUntil:        input.ValidUntil.UTC(),
	}
	if input.IssuedDate != nil {
		certificate.IssuedDate = input.IssuedDate.UTC()
	} else {
		certificate.IssuedDate = s.now()
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetVariety(ctx, input.ChaiID); err != nil {
			return err
		}
		_, err := tx.GetCertificate(ctx, input.ChaiID)
		if err == nil {
			return ErrCertificateExists
		}
		if !errors.Is(err, ErrCertificateNotFound) {
			return err
		}
		return tx.CreateCertificate(ctx, &certificate)
	})
	if err != nil {
		return nil, err
	}

	return &certificate, nil
}

func (s *Service) RevokeCertificate(ctx context.Context, chaiID uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetCertificate(ctx, chaiID); err != nil {
			return err
		}
		return tx.DeleteCertificateByVariety(ctx, chaiID)
	})
}

func (s *Service) ListStores(ctx context.Context) ([]Store, error) {
	return s.repo.ListStores(ctx)
}

func (s *Service) GetStore(ctx context.Context, id uint) (*Store, error) {
	return s.repo.GetStore(ctx, id)
}

func (s *Service) CreateStore(ctx context.Context, input StoreInput) (*Store, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > nameMaxLength {
		return nil, fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	location := strings.TrimSpace(input.Location)
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(location) > locationMaxLength {
		return nil, fmt.Errorf("%w: location is too long", ErrInvalidInput)
	}

	var result *Store
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		store := Store{Name: name, Location: location}
		if err := tx.CreateStore(ctx, &store); err != nil {
			return err
		}
		for _, chaiID := range uniqueIDs(input.VarietyIDs) {
			if _, err := tx.GetVariety(ctx, chaiID); err != nil {
				return err
			}
			if err := tx.AddStoreVariety(ctx, store.ID, chaiID); err != nil {
				return err
			}
		}

		created, err := tx.GetStore(ctx, store.ID)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) DeleteStore(ctx context.Context, id uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetStore(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteStoreVarietiesByStore(ctx, id); err != nil {
			return err
		}
		return tx.DeleteStore(ctx, id)
	})
}

// AddVarietyToStore is idempotent: adding a variety the store already carries is a no-op.
func (s *Service) AddVarietyToStore(ctx context.Context, storeID, chaiID uint) (*Store, error) {
	var result *Store
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetStore(ctx, storeID); err != nil {
			return err
		}
		if _, err := tx.GetVariety(ctx, chaiID); err != nil {
			return err
		}
		if err := tx.AddStoreVariety(ctx, storeID, chaiID); err != nil {
			return err
		}
		store, err := tx.GetStore(ctx, storeID)
		if err != nil {
			return err
		}
		result = store
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) RemoveVarietyFromStore(ctx context.Context, storeID, chaiID uint) (*Store, error) {
	var result *Store
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetStore(ctx, storeID); err != nil {
			return err
		}
		if err := tx.RemoveStoreVariety(ctx, storeID, chaiID); err != nil {
			return err
		}
		store, err := tx.GetStore(ctx, storeID)
		if err != nil {
			return err
		}
		result = store
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) applyVarietyInput(variety *ChaiVariety, input VarietyInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > nameMaxLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	image := strings.TrimSpace(input.Image)
	if utf8.RuneCountInString(image) > imageMaxLength {
		return fmt.Errorf("%w: image is too long", ErrInvalidInput)
	}

	chaiType, err := ParseType(input.Type)
	if err != nil {
		return err
	}

	variety.Name = name
	variety.Image = image
	variety.Price = input.Price
	variety.Type = chaiType
	variety.Description = input.Description
	if input.DateAdded != nil {
		variety.DateAdded = input.DateAdded.UTC()
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func newCertificateNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return certificatePrefix + strings.ToUpper(id[:8])
}
