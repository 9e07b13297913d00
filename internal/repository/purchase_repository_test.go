package repository_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/nordicgeeks/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestAppend() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	accountID := suite.createAccount()
	productID := suite.insertProduct(randomProduct())

	suite.Run("append: ok", func() {
		t := suite.T()

		id, err := suite.purchases.Append(ctx, accountID, productID)
		require.NoError(t, err)
		assert.Positive(t, id)
	})

	suite.Run("append is not deduplicated", func() {
		t := suite.T()

		// The ledger is append-only, one row per unit; dedup is a
		// business rule of the single-purchase path, not the store.
		_, err := suite.purchases.Append(ctx, accountID, productID)
		require.NoError(t, err)

		products, err := suite.purchases.HistoryByAccount(ctx, accountID)
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	suite.Run("unknown product: not found", func() {
		t := suite.T()

		_, err := suite.purchases.Append(ctx, accountID, 999999)
		require.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func (suite *repositorySuite) TestAppendUnits() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	accountID := suite.createAccount()

	product := randomProduct()
	product.ID = suite.insertProduct(product)

	suite.Run("three units produce three rows", func() {
		t := suite.T()

		require.NoError(t, suite.purchases.AppendUnits(ctx, accountID, product.ID, 3))

		products, err := suite.purchases.HistoryByAccount(ctx, accountID)
		require.NoError(t, err)

		expected := []domain.Product{product, product, product}
		assert.Empty(t, cmp.Diff(expected, products))
	})

	suite.Run("zero units: error", func() {
		t := suite.T()

		err := suite.purchases.AppendUnits(ctx, accountID, product.ID, 0)
		require.EqualError(t, err, "units is invalid")
	})
}

func (suite *repositorySuite) TestHasPurchased() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	accountID := suite.createAccount()
	productID := suite.insertProduct(randomProduct())
	otherProductID := suite.insertProduct(randomProduct())

	_, err := suite.purchases.Append(ctx, accountID, productID)
	require.NoError(t, err)

	purchased, err := suite.purchases.HasPurchased(ctx, accountID, productID)
	require.NoError(t, err)
	assert.True(t, purchased)

	purchased, err = suite.purchases.HasPurchased(ctx, accountID, otherProductID)
	require.NoError(t, err)
	assert.False(t, purchased)
}

func (suite *repositorySuite) TestHistoryByAccount() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	accountID := suite.createAccount()

	suite.Run("empty ledger: empty history", func() {
		t := suite.T()

		products, err := suite.purchases.HistoryByAccount(ctx, accountID)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	suite.Run("history preserves purchase order", func() {
		t := suite.T()

		first := randomProduct()
		first.ID = suite.insertProduct(first)
		second := randomProduct()
		second.ID = suite.insertProduct(second)

		_, err := suite.purchases.Append(ctx, accountID, first.ID)
		require.NoError(t, err)
		_, err = suite.purchases.Append(ctx, accountID, second.ID)
		require.NoError(t, err)

		products, err := suite.purchases.HistoryByAccount(ctx, accountID)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff([]domain.Product{first, second}, products))
	})
}
