package catalog_test

import (
	"context"
	"testing"
	"time"

	catalogdomain "chai-app-go/internal/domain/catalog"
	userdomain "chai-app-go/internal/domain/user"
	catalogrepo "chai-app-go/internal/repository/gormdb/catalog"
	userrepo "chai-app-go/internal/repository/gormdb/user"
	"chai-app-go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repo  *catalogrepo.GormRepository
	users *userrepo.GormRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gormDB := testutil.NewSQLite(t)
	return fixture{
		repo:  catalogrepo.NewGorm(gormDB),
		users: userrepo.NewGorm(gormDB),
	}
}

func (f fixture) variety(t *testing.T, name string, added time.Time) catalogdomain.ChaiVariety {
	t.Helper()
	variety := catalogdomain.ChaiVariety{Name: name, Type: catalogdomain.TypeMasala, DateAdded: added}
	require.NoError(t, f.repo.CreateVariety(context.Background(), &variety))
	return variety
}

func (f fixture) user(t *testing.T, username string) userdomain.User {
	t.Helper()
	user := userdomain.User{Username: username}
	require.NoError(t, f.users.CreateUser(context.Background(), &user))
	return user
}

func TestVarietyRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	added := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	created := f.variety(t, "Kadak", added)
	require.NotZero(t, created.ID)

	loaded, err := f.repo.GetVariety(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kadak", loaded.Name)
	assert.Equal(t, "", loaded.Image)
	assert.Equal(t, 0, loaded.Price)
	assert.Equal(t, catalogdomain.TypeMasala, loaded.Type)

	loaded.Price = 40
	loaded.Type = catalogdomain.TypeGinger
	require.NoError(t, f.repo.UpdateVariety(ctx, loaded))

	updated, err := f.repo.GetVariety(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Price)
	assert.Equal(t, catalogdomain.TypeGinger, updated.Type)

	_, err = f.repo.GetVariety(ctx, created.ID+100)
	assert.ErrorIs(t, err, catalogdomain.ErrVarietyNotFound)
}

func TestListVarietiesNewestFirst(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	f.variety(t, "Old", base)
	f.variety(t, "New", base.Add(48*time.Hour))

	varieties, err := f.repo.ListVarieties(context.Background())
	require.NoError(t, err)
	require.Len(t, varieties, 2)
	assert.Equal(t, "New", varieties[0].Name)
	assert.Equal(t, "Old", varieties[1].Name)
}

func TestReviewsLoadUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	variety := f.variety(t, "Kadak", time.Now().UTC())
	user := f.user(t, "asha")

	review := catalogdomain.ChaiReview{ChaiID: variety.ID, UserID: user.ID, Rating: 5, Comment: "great", DateAdded: time.Now().UTC()}
	require.NoError(t, f.repo.CreateReview(ctx, &review))

	reviews, err := f.repo.ListReviews(ctx, variety.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].User)
	assert.Equal(t, "asha reviewed for Kadak", reviews[0].Describe(variety.Name))

	exists, err := f.repo.UserExists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.repo.UserExists(ctx, user.ID+1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCertificateUniquePerVariety(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	variety := f.variety(t, "Kadak", time.Now().UTC())
	now := time.Now().UTC()

	first := catalogdomain.ChaiCertificate{ChaiID: variety.ID, CertificateNumber: "CERT-1", IssuedDate: now, ValidUntil: now.AddDate(1, 0, 0)}
	require.NoError(t, f.repo.CreateCertificate(ctx, &first))

	second := catalogdomain.ChaiCertificate{ChaiID: variety.ID, CertificateNumber: "CERT-2", IssuedDate: now, ValidUntil: now.AddDate(1, 0, 0)}
	assert.ErrorIs(t, f.repo.CreateCertificate(ctx, &second), catalogdomain.ErrCertificateExists)

	loaded, err := f.repo.GetCertificate(ctx, variety.ID)
	require.NoError(t, err)
	assert.Equal(t, "CERT-1", loaded.CertificateNumber)

	require.NoError(t, f.repo.DeleteCertificateByVariety(ctx, variety.ID))
	_, err = f.repo.GetCertificate(ctx, variety.ID)
	assert.ErrorIs(t, err, catalogdomain.ErrCertificateNotFound)
}

func TestStoreMembershipIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kadak := f.variety(t, "Kadak", time.Now().UTC())
	adrak := f.variety(t, "Adrak", time.Now().UTC())

	store := catalogdomain.Store{Name: "Chai Point", Location: "Pune"}
	require.NoError(t, f.repo.CreateStore(ctx, &store))

	require.NoError(t, f.repo.AddStoreVariety(ctx, store.ID, kadak.ID))
	require.NoError(t, f.repo.AddStoreVariety(ctx, store.ID, kadak.ID))
	require.NoError(t, f.repo.AddStoreVariety(ctx, store.ID, adrak.ID))

	loaded, err := f.repo.GetStore(ctx, store.ID)
	require.NoError(t, err)
	require.Len(t, loaded.ChaiVarieties, 2)
	assert.Equal(t, "Adrak", loaded.ChaiVarieties[0].Name)
	assert.Equal(t, "Kadak", loaded.ChaiVarieties[1].Name)

	stores, err := f.repo.ListStoresByVariety(ctx, kadak.ID)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Chai Point", stores[0].Name)

	require.NoError(t, f.repo.RemoveStoreVariety(ctx, store.ID, kadak.ID))
	stores, err = f.repo.ListStoresByVariety(ctx, kadak.ID)
	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestDeleteVarietyCascadesInDatabase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	variety := f.variety(t, "Kadak", now)
	user := f.user(t, "asha")

	review := catalogdomain.ChaiReview{ChaiID: variety.ID, UserID: user.ID, Rating: 4, Comment: "ok", DateAdded: now}
	require.NoError(t, f.repo.CreateReview(ctx, &review))
	certificate := catalogdomain.ChaiCertificate{ChaiID: variety.ID, CertificateNumber: "CERT-1", IssuedDate: now, ValidUntil: now}
	require.NoError(t, f.repo.CreateCertificate(ctx, &certificate))
	store := catalogdomain.Store{Name: "Chai Point", Location: "Pune"}
	require.NoError(t, f.repo.CreateStore(ctx, &store))
	require.NoError(t, f.repo.AddStoreVariety(ctx, store.ID, variety.ID))

	require.NoError(t, f.repo.DeleteVariety(ctx, variety.ID))

	reviews, err := f.repo.ListReviews(ctx, variety.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	_, err = f.repo.GetCertificate(ctx, variety.ID)
	assert.ErrorIs(t, err, catalogdomain.ErrCertificateNotFound)

	loaded, err := f.repo.GetStore(ctx, store.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.ChaiVarieties)
}

func TestTransactionRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.repo.Transaction(ctx, func(tx catalogdomain.Repository) error {
		variety := catalogdomain.ChaiVariety{Name: "Ghost", Type: catalogdomain.TypePlain, DateAdded: time.Now().UTC()}
		if err := tx.CreateVariety(ctx, &variety); err != nil {
			return err
		}
		return catalogdomain.ErrInvalidInput
	})
	require.ErrorIs(t, err, catalogdomain.ErrInvalidInput)

	varieties, err := f.repo.ListVarieties(ctx)
	require.NoError(t, err)
	assert.Empty(t, varieties)
}
