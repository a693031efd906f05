package seed

import (
	"context"
	"testing"

	catalogdomain "chai-app-go/internal/domain/catalog"
	userdomain "chai-app-go/internal/domain/user"
	catalogrepo "chai-app-go/internal/repository/gormdb/catalog"
	userrepo "chai-app-go/internal/repository/gormdb/user"
	"chai-app-go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T) (*catalogdomain.Service, *userdomain.Service) {
	t.Helper()
	gormDB := testutil.NewSQLite(t)
	return catalogdomain.NewService(catalogrepo.NewGorm(gormDB)), userdomain.NewService(userrepo.NewGorm(gormDB))
}

func TestApplyCatalogFile(t *testing.T) {
	file, err := Load("testdata/catalog.yaml")
	require.NoError(t, err)

	catalog, users := newServices(t)
	ctx := context.Background()

	result, err := Apply(ctx, file, catalog, users)
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 2, Varieties: 2, Reviews: 2, Certificates: 1, Stores: 1}, result)

	varieties, err := catalog.ListVarieties(ctx)
	require.NoError(t, err)
	require.Len(t, varieties, 2)

	var kadak catalogdomain.ChaiVariety
	for _, v := range varieties {
		if v.Name == "Kadak Masala" {
			kadak = v
		}
	}
	require.NotZero(t, kadak.ID)

	detail, err := catalog.GetVarietyDetail(ctx, kadak.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Reviews, 2)
	require.NotNil(t, detail.Certificate)
	assert.Equal(t, "CERT-KADAK001", detail.Certificate.CertificateNumber)
	assert.Len(t, detail.Stores, 1)

	stores, err := catalog.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Len(t, stores[0].ChaiVarieties, 2)
}

func TestApplyTwiceAddsNothing(t *testing.T) {
	file, err := Load("testdata/catalog.yaml")
	require.NoError(t, err)

	catalog, users := newServices(t)
	ctx := context.Background()

	_, err = Apply(ctx, file, catalog, users)
	require.NoError(t, err)

	result, err := Apply(ctx, file, catalog, users)
	require.NoError(t, err)
	assert.Equal(t, Result{}, result)
}

func TestApplyUnknownReviewer(t *testing.T) {
	file, err := Parse([]byte(`
varieties:
  - name: Plain
    type: PL
    reviews:
      - user: ghost
        rating: 1
`))
	require.NoError(t, err)

	catalog, users := newServices(t)
	_, err = Apply(context.Background(), file, catalog, users)
	require.ErrorContains(t, err, `unknown user "ghost"`)
}

func TestApplyRejectsBadType(t *testing.T) {
	file, err := Parse([]byte(`
varieties:
  - name: Mystery
    type: oolong
`))
	require.NoError(t, err)

	catalog, users := newServices(t)
	_, err = Apply(context.Background(), file, catalog, users)
	require.ErrorIs(t, err, catalogdomain.ErrInvalidInput)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	require.Error(t, err)
}
