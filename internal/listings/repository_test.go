package listings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openhouselabs/openhouse-backend/pkg/db/dbtest"
	"github.com/openhouselabs/openhouse-backend/pkg/db/models"
	"github.com/openhouselabs/openhouse-backend/pkg/enums"
	"github.com/openhouselabs/openhouse-backend/pkg/pagination"
)

func newRepoAgent(t *testing.T, db *gorm.DB) *models.Agent {
	t.Helper()

	agent := &models.Agent{
		Name:         "Repo Agent",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(agent).Error)
	return agent
}

func newListingRow(t *testing.T, db *gorm.DB, owner *models.Agent, price, sqft float64, zip string, status enums.ListingStatus, created time.Time) *models.Listing {
	t.Helper()

	listing := &models.Listing{
		Price:      price,
		Address:    "1 Test Ln",
		SquareFeet: sqft,
		ZipCode:    zip,
		Status:     status,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	if owner != nil {
		listing.CreatedBy = &owner.ID
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

func TestRepositoryList_filters(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)

	owner := newRepoAgent(t, db)
	now := time.Now().UTC()
	newListingRow(t, db, owner, 200000, 900, "78701", enums.ListingStatusActive, now.Add(-2*time.Hour))
	newListingRow(t, db, owner, 450000, 1800, "78701", enums.ListingStatusPending, now.Add(-time.Hour))
	newListingRow(t, db, owner, 800000, 3200, "73072", enums.ListingStatusActive, now)

	minPrice := 300000.0
	rows, total, err := repo.List(context.Background(), ListFilters{
		MinPrice: &minPrice,
		ZipCode:  "78701",
		Page:     pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, 450000.0, rows[0].Price)

	status := enums.ListingStatusActive
	rows, total, err = repo.List(context.Background(), ListFilters{
		Status: &status,
		Page:   pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
}

func TestRepositoryList_sortAndPaginate(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)

	owner := newRepoAgent(t, db)
	now := time.Now().UTC()
	newListingRow(t, db, owner, 300000, 1200, "78701", enums.ListingStatusActive, now.Add(-2*time.Hour))
	newListingRow(t, db, owner, 100000, 600, "78701", enums.ListingStatusActive, now.Add(-time.Hour))
	newListingRow(t, db, owner, 200000, 900, "78701", enums.ListingStatusActive, now)

	rows, total, err := repo.List(context.Background(), ListFilters{
		SortColumn: "price",
		Page:       pagination.Params{Page: 1, Limit: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 2)
	assert.Equal(t, 100000.0, rows[0].Price)
	assert.Equal(t, 200000.0, rows[1].Price)

	rows, _, err = repo.List(context.Background(), ListFilters{
		SortColumn: "price",
		Page:       pagination.Params{Page: 2, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 300000.0, rows[0].Price)
}

func TestRepositoryOwnedIDs(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)

	owner := newRepoAgent(t, db)
	other := newRepoAgent(t, db)
	now := time.Now().UTC()
	mine := newListingRow(t, db, owner, 200000, 900, "78701", enums.ListingStatusActive, now)
	newListingRow(t, db, other, 300000, 1200, "78701", enums.ListingStatusActive, now)
	newListingRow(t, db, nil, 400000, 1500, "78701", enums.ListingStatusActive, now)

	ids, err := repo.OwnedIDs(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, mine.ID, ids[0])
}

func TestRepositoryFindByID_preloadsCreator(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)

	owner := newRepoAgent(t, db)
	row := newListingRow(t, db, owner, 200000, 900, "78701", enums.ListingStatusActive, time.Now().UTC())

	found, err := repo.FindByID(context.Background(), row.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Creator)
	assert.Equal(t, owner.ID, found.Creator.ID)
}
