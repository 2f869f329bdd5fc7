package service

import (
	"context"
	"io"
	"testing"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/repository"
	"hospital-management/internal/testutil"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditServiceWritesEvents(t *testing.T) {
	db := testutil.NewDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := NewAuditService(log, repository.NewAuditLogRepository())
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "carol", "secret123", entity.RoleIDPatient, false)

	require.NoError(t, svc.LogCreate(ctx, db, &user.ID, entity.AuditActionUserRegister, "user", user.ID, entity.JSON{"role": "patient"}))
	require.NoError(t, svc.LogAction(ctx, db, &user.ID, entity.AuditActionUserLogin, entity.JSON{"portal": "patient"}))

	var logs []entity.AuditLog
	require.NoError(t, db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)

	assert.Equal(t, entity.AuditActionUserRegister, logs[0].Action)
	assert.Equal(t, "user", logs[0].Metadata["entity"])
	assert.Equal(t, "1", logs[0].Metadata["entity_id"])

	assert.Equal(t, entity.AuditActionUserLogin, logs[1].Action)
	assert.Equal(t, "patient", logs[1].Metadata["portal"])
	require.NotNil(t, logs[1].UserID)
	assert.Equal(t, user.ID, *logs[1].UserID)
}
