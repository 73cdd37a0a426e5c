package database_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pocket/internal/database"
)

func TestOwnerCategoryLockKey(t *testing.T) {
	owner := uuid.New()
	food := uuid.New()
	rent := uuid.New()

	assert.Equal(t, database.OwnerCategoryLockKey(owner, food), database.OwnerCategoryLockKey(owner, food))
	assert.NotEqual(t, database.OwnerCategoryLockKey(owner, food), database.OwnerCategoryLockKey(owner, rent))
	assert.NotEqual(t, database.OwnerCategoryLockKey(owner, food), database.OwnerCategoryLockKey(food, owner))
}
