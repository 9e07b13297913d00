package repository_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5"
	"github.com/nordicgeeks/storefront/internal/domain"
	"github.com/nordicgeeks/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestAddItem() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	accountID := suite.createAccount()
	productID := suite.insertProduct(randomProduct())

	suite.Run("repeated adds accumulate quantity", func() {
		t := suite.T()

		for range 3 {
			require.NoError(t, suite.carts.AddItem(ctx, accountID, productID))
		}

		lines, err := suite.carts.ListLines(ctx, accountID)
		require.NoError(t, err)

		require.Len(t, lines, 1)
		assert.Equal(t, int32(3), lines[0].Quantity)
		assert.Equal(t, productID, lines[0].Product.ID)
	})

	suite.Run("unknown product: not found", func() {
		t := suite.T()

		err := suite.carts.AddItem(ctx, accountID, 999999)
		require.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	suite.Run("unknown account: not found", func() {
		t := suite.T()

		err := suite.carts.AddItem(ctx, 999999, productID)
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	suite.Run("invalid account id: error", func() {
		t := suite.T()

		err := suite.carts.AddItem(ctx, 0, productID)
		require.EqualError(t, err, "accountID is invalid")
	})
}

func (suite *repositorySuite) TestSetQuantity() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	accountID := suite.createAccount()
	productID := suite.insertProduct(randomProduct())

	suite.Run("upsert without prior line", func() {
		t := suite.T()

		require.NoError(t, suite.carts.SetQuantity(ctx, accountID, productID, 4))

		lines, err := suite.carts.ListLines(ctx, accountID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, int32(4), lines[0].Quantity)
	})

	suite.Run("overwrite existing quantity", func() {
		t := suite.T()

		require.NoError(t, suite.carts.SetQuantity(ctx, accountID, productID, 2))

		lines, err := suite.carts.ListLines(ctx, accountID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, int32(2), lines[0].Quantity)
	})

	suite.Run("zero quantity deletes the line", func() {
		t := suite.T()

		require.NoError(t, suite.carts.SetQuantity(ctx, accountID, productID, 0))

		lines, err := suite.carts.ListLines(ctx, accountID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	suite.Run("negative quantity on a missing line is a no-op", func() {
		t := suite.T()

		require.NoError(t, suite.carts.SetQuantity(ctx, accountID, productID, -1))

		lines, err := suite.carts.ListLines(ctx, accountID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}

func (suite *repositorySuite) TestDeleteItem() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	accountID := suite.createAccount()
	productID := suite.insertProduct(randomProduct())

	suite.Run("delete existing item: ok", func() {
		t := suite.T()

		require.NoError(t, suite.carts.AddItem(ctx, accountID, productID))

		deleted, err := suite.carts.DeleteItem(ctx, accountID, productID)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	suite.Run("delete non-existing item: not found", func() {
		t := suite.T()

		deleted, err := suite.carts.DeleteItem(ctx, accountID, productID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func (suite *repositorySuite) TestClear() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	accountID := suite.createAccount()
	otherID := suite.createAccount()
	p1 := suite.insertProduct(randomProduct())
	p2 := suite.insertProduct(randomProduct())

	require.NoError(t, suite.carts.AddItem(ctx, accountID, p1))
	require.NoError(t, suite.carts.AddItem(ctx, accountID, p2))
	require.NoError(t, suite.carts.AddItem(ctx, otherID, p1))

	removed, err := suite.carts.Clear(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	lines, err := suite.carts.ListLines(ctx, accountID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// Another account's cart is untouched.
	otherLines, err := suite.carts.ListLines(ctx, otherID)
	require.NoError(t, err)
	assert.Len(t, otherLines, 1)
}

func (suite *repositorySuite) TestDeleteLines() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	accountID := suite.createAccount()
	p1 := suite.insertProduct(randomProduct())
	p2 := suite.insertProduct(randomProduct())

	suite.Run("removes only the listed products", func() {
		t := suite.T()

		require.NoError(t, suite.carts.AddItem(ctx, accountID, p1))
		require.NoError(t, suite.carts.AddItem(ctx, accountID, p2))

		removed, err := suite.carts.DeleteLines(ctx, accountID, []int64{p1})
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		lines, err := suite.carts.ListLines(ctx, accountID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, p2, lines[0].Product.ID)
	})

	suite.Run("empty id list is a no-op", func() {
		t := suite.T()

		removed, err := suite.carts.DeleteLines(ctx, accountID, nil)
		require.NoError(t, err)
		assert.Zero(t, removed)
	})
}

func (suite *repositorySuite) TestDeleteLinesSparesConcurrentInsert() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	accountID := suite.createAccount()
	p1 := suite.insertProduct(randomProduct())
	p2 := suite.insertProduct(randomProduct())

	require.NoError(t, suite.carts.AddItem(ctx, accountID, p1))

	// A line for a product not yet in the cart holds no row lock, so a
	// concurrent session can commit it while the transaction below is
	// between its locked read and its delete. Deleting by the ids that
	// were read must leave that line in place.
	removed, err := repository.WithTx(ctx, suite.pool, func(tx pgx.Tx) (int64, error) {
		carts := repository.NewCartWithTx(tx)

		lines, err := carts.LinesForUpdate(ctx, accountID)
		require.NoError(t, err)
		require.Len(t, lines, 1)

		// Separate pool session, commits immediately.
		require.NoError(t, suite.carts.AddItem(ctx, accountID, p2))

		ids := make([]int64, 0, len(lines))
		for _, line := range lines {
			ids = append(ids, line.ProductID)
		}

		return carts.DeleteLines(ctx, accountID, ids)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	lines, err := suite.carts.ListLines(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, p2, lines[0].Product.ID)
}

func (suite *repositorySuite) TestListLines() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	accountID := suite.createAccount()

	product := randomProduct()
	product.ID = suite.insertProduct(product)

	require.NoError(t, suite.carts.AddItem(ctx, accountID, product.ID))
	require.NoError(t, suite.carts.AddItem(ctx, accountID, product.ID))

	lines, err := suite.carts.ListLines(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	expected := domain.CartLine{
		Product:  product,
		Quantity: 2,
	}

	// CreatedAt is set by the database, LineTotal by the service layer.
	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CartLine{}, "CreatedAt", "LineTotal"),
	}
	assert.Empty(t, cmp.Diff(expected, lines[0], opts))
	assert.False(t, lines[0].CreatedAt.IsZero())
}

func (suite *repositorySuite) TestLinesForUpdate() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	accountID := suite.createAccount()
	p1 := suite.insertProduct(randomProduct())
	p2 := suite.insertProduct(randomProduct())

	require.NoError(t, suite.carts.SetQuantity(ctx, accountID, p1, 2))
	require.NoError(t, suite.carts.SetQuantity(ctx, accountID, p2, 1))

	lines, err := suite.carts.LinesForUpdate(ctx, accountID)
	require.NoError(t, err)

	expected := []domain.LineQuantity{}
	if p1 < p2 {
		expected = append(expected, domain.LineQuantity{ProductID: p1, Quantity: 2}, domain.LineQuantity{ProductID: p2, Quantity: 1})
	} else {
		expected = append(expected, domain.LineQuantity{ProductID: p2, Quantity: 1}, domain.LineQuantity{ProductID: p1, Quantity: 2})
	}
	assert.Empty(t, cmp.Diff(expected, lines))
}
