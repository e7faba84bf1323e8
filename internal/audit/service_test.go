package audit

import (
	"testing"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLog(t *testing.T) {
	db := testutil.NewDB(t)

	err := WriteLog(db, LogOptions{
		UserID:      3,
		UserName:    "Marta",
		EntityType:  EntityExpense,
		EntityID:    9,
		Action:      models.AuditActionUpdate,
		Description: "Gasto editado",
		Before:      map[string]any{"monto": "10.00"},
	})
	require.NoError(t, err)

	var got models.AuditLog
	require.NoError(t, db.First(&got).Error)
	assert.Equal(t, "gasto", got.EntityType)
	assert.Equal(t, uint(9), got.EntityID)
	assert.Equal(t, `{"monto":"10.00"}`, got.BeforeData)
	assert.Equal(t, "null", got.AfterData)
}

func TestWriteLog_Rejections(t *testing.T) {
	db := testutil.NewDB(t)

	err := WriteLog(db, LogOptions{EntityType: "sucursal", EntityID: 1, Action: models.AuditActionCreate})
	assert.ErrorContains(t, err, "sucursal")

	err = WriteLog(db, LogOptions{
		EntityType: EntityPayment,
		EntityID:   2,
		Action:     models.AuditActionCreate,
		After:      map[string]any{"callback": func() {}},
	})
	assert.ErrorContains(t, err, "pago 2")

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWriteLog_AnonymousActor(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, WriteLog(db, LogOptions{EntityType: EntityOrder, EntityID: 5, Action: models.AuditActionCreate}))

	var got models.AuditLog
	require.NoError(t, db.First(&got).Error)
	assert.Equal(t, "autoservicio", got.UserName)
	assert.Equal(t, "null", got.BeforeData)
}

func TestRecord_SwallowsErrors(t *testing.T) {
	db := testutil.NewDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.NotPanics(t, func() {
		Record(db, LogOptions{EntityType: EntityOrder, Action: models.AuditActionCreate})
	})
}
