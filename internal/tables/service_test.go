package tables

import (
	"testing"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	db := testutil.NewDB(t)

	m, err := Create(db, TableInput{Number: 1, Capacity: 4})
	require.NoError(t, err)
	assert.Equal(t, models.TableFree, m.State)

	_, err = Create(db, TableInput{Number: 1, Capacity: 2})
	assert.True(t, apperr.Is(err, apperr.KindConflict), "duplicate number")

	for name, in := range map[string]TableInput{
		"zero number":   {Number: 0, Capacity: 2},
		"zero capacity": {Number: 2, Capacity: 0},
		"bad state":     {Number: 2, Capacity: 2, State: "rota"},
	} {
		_, err := Create(db, in)
		assert.True(t, apperr.Is(err, apperr.KindValidation), name)
	}

	reserved, err := Create(db, TableInput{Number: 2, Capacity: 6, State: models.TableReserved})
	require.NoError(t, err)
	assert.Equal(t, models.TableReserved, reserved.State)
}

func TestUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	one, err := Create(db, TableInput{Number: 1, Capacity: 4})
	require.NoError(t, err)
	two, err := Create(db, TableInput{Number: 2, Capacity: 4})
	require.NoError(t, err)

	_, err = Update(db, two.ID, TableInput{Number: 1, Capacity: 4})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	got, err := Update(db, one.ID, TableInput{Number: 1, Capacity: 8, State: models.TableOccupied})
	require.NoError(t, err)
	assert.Equal(t, 8, got.Capacity)
	assert.Equal(t, models.TableOccupied, got.State)

	got, err = Update(db, one.ID, TableInput{Number: 10, Capacity: 8})
	require.NoError(t, err)
	assert.Equal(t, models.TableOccupied, got.State, "state kept when omitted")

	_, err = Update(db, 999, TableInput{Number: 3, Capacity: 1})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDelete_DetachesOrders(t *testing.T) {
	db := testutil.NewDB(t)
	m, err := Create(db, TableInput{Number: 5, Capacity: 2})
	require.NoError(t, err)

	order := models.Order{TableID: &m.ID, CustomerName: "Luis", Type: models.OrderTypeTable, State: models.OrderPending}
	require.NoError(t, db.Create(&order).Error)

	require.NoError(t, Delete(db, m.ID))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Nil(t, reloaded.TableID)

	assert.True(t, apperr.Is(Delete(db, m.ID), apperr.KindNotFound))
}

func TestList_FiltersByState(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := Create(db, TableInput{Number: 2, Capacity: 2})
	require.NoError(t, err)
	_, err = Create(db, TableInput{Number: 1, Capacity: 2, State: models.TableOccupied})
	require.NoError(t, err)

	all, err := List(db, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].Number)

	free, err := List(db, models.TableFree)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, 2, free[0].Number)
}
