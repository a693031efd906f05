package user_test

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

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := userrepo.NewGorm(testutil.NewSQLite(t))
	ctx := context.Background()

	first := userdomain.User{Username: "asha", Email: "asha@example.com"}
	require.NoError(t, repo.CreateUser(ctx, &first))
	assert.False(t, first.DateJoined.IsZero())

	second := userdomain.User{Username: "asha"}
	assert.ErrorIs(t, repo.CreateUser(ctx, &second), userdomain.ErrUsernameTaken)

	taken, err := repo.IsUsernameTaken(ctx, "asha")
	require.NoError(t, err)
	assert.True(t, taken)

	loaded, err := repo.GetUserByUsername(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, first.ID, loaded.ID)

	_, err = repo.GetUser(ctx, first.ID+10)
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
}

func TestDeleteUserServiceRemovesReviews(t *testing.T) {
	gormDB := testutil.NewSQLite(t)
	users := userrepo.NewGorm(gormDB)
	catalog := catalogrepo.NewGorm(gormDB)
	ctx := context.Background()

	user := userdomain.User{Username: "ravi"}
	require.NoError(t, users.CreateUser(ctx, &user))
	variety := catalogdomain.ChaiVariety{Name: "Kadak", Type: catalogdomain.TypeMasala, DateAdded: time.Now().UTC()}
	require.NoError(t, catalog.CreateVariety(ctx, &variety))
	review := catalogdomain.ChaiReview{ChaiID: variety.ID, UserID: user.ID, Rating: 3, Comment: "fine", DateAdded: time.Now().UTC()}
	require.NoError(t, catalog.CreateReview(ctx, &review))

	require.NoError(t, userdomain.NewService(users).DeleteUser(ctx, user.ID))

	reviews, err := catalog.ListReviews(ctx, variety.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	_, err = users.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
}
