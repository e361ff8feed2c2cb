package service

import (
	"testing"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotifications(t *testing.T) NotificationService {
	t.Helper()
	db := newTestDB(t)
	return NewNotificationService(repository.NewNotificationRepo(db), newTestHub())
}

func TestNotificationScopes(t *testing.T) {
	notifications := newNotifications(t)

	janeID := uuid.New()
	bobID := uuid.New()
	jane := repository.NotificationScope{CashierID: &janeID}
	bob := repository.NotificationScope{CashierID: &bobID}
	admin := repository.NotificationScope{}

	_, err := notifications.Create(&NotificationRequest{Title: "a", Message: "jane's sale", Type: "sale"}, jane, "system")
	require.NoError(t, err)
	_, err = notifications.Create(&NotificationRequest{Title: "b", Message: "bob's sale", Type: "sale"}, bob, "system")
	require.NoError(t, err)

	janeFeed, err := notifications.List(jane)
	require.NoError(t, err)
	require.Len(t, janeFeed, 1)
	assert.Equal(t, "a", janeFeed[0].Title)

	// The admin feed sees everything, cashier-scoped or not.
	adminFeed, err := notifications.List(admin)
	require.NoError(t, err)
	assert.Len(t, adminFeed, 2)
}

func TestNotificationDefaultsToSystemType(t *testing.T) {
	notifications := newNotifications(t)

	created, err := notifications.Create(&NotificationRequest{Title: "t", Message: "m"}, repository.NotificationScope{}, "system")
	require.NoError(t, err)
	assert.Equal(t, model.NotifySystem, created.Type)
}

func TestNotificationRequiresTitleAndMessage(t *testing.T) {
	notifications := newNotifications(t)

	_, err := notifications.Create(&NotificationRequest{Message: "m"}, repository.NotificationScope{}, "system")
	assert.Error(t, err)
}

func TestMarkAllReadIsScoped(t *testing.T) {
	notifications := newNotifications(t)

	janeID := uuid.New()
	bobID := uuid.New()
	jane := repository.NotificationScope{CashierID: &janeID}
	bob := repository.NotificationScope{CashierID: &bobID}

	_, err := notifications.Create(&NotificationRequest{Title: "a", Message: "m"}, jane, "system")
	require.NoError(t, err)
	_, err = notifications.Create(&NotificationRequest{Title: "b", Message: "m"}, bob, "system")
	require.NoError(t, err)

	require.NoError(t, notifications.MarkAllRead(jane))

	janeFeed, _ := notifications.List(jane)
	require.Len(t, janeFeed, 1)
	assert.True(t, janeFeed[0].IsRead)

	bobFeed, _ := notifications.List(bob)
	require.Len(t, bobFeed, 1)
	assert.False(t, bobFeed[0].IsRead)
}

func TestClearIsScoped(t *testing.T) {
	notifications := newNotifications(t)

	janeID := uuid.New()
	bobID := uuid.New()
	jane := repository.NotificationScope{CashierID: &janeID}
	bob := repository.NotificationScope{CashierID: &bobID}

	_, err := notifications.Create(&NotificationRequest{Title: "a", Message: "m"}, jane, "system")
	require.NoError(t, err)
	_, err = notifications.Create(&NotificationRequest{Title: "b", Message: "m"}, bob, "system")
	require.NoError(t, err)

	require.NoError(t, notifications.Clear(jane))

	janeFeed, _ := notifications.List(jane)
	assert.Empty(t, janeFeed)
	bobFeed, _ := notifications.List(bob)
	assert.Len(t, bobFeed, 1)
}
