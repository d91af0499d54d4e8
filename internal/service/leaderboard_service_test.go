package service

import (
	"context"
	"fmt"
	"testing"

	"finlearn_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopUsers_OrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	createCourse(t, db, 1, "Personal Finance")
	for i := 1; i <= 12; i++ {
		createUser(t, db, fmt.Sprintf("user_%02d", i), 1, 5, i*10)
	}

	svc := NewLeaderboardService(repository.NewUserProgressRepository(db), nil)
	entries, err := svc.TopUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 10)

	assert.Equal(t, "user_12", entries[0].UserID)
	assert.Equal(t, 120, entries[0].Points)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Points, entries[i].Points)
	}
	// 12 人只取前 10，最低两名被截掉
	assert.Equal(t, "user_03", entries[9].UserID)
}

func TestTopUsers_TieBreaksByUserID(t *testing.T) {
	db := newTestDB(t)
	createCourse(t, db, 1, "Personal Finance")
	createUser(t, db, "user_b", 1, 5, 50)
	createUser(t, db, "user_a", 1, 5, 50)

	svc := NewLeaderboardService(repository.NewUserProgressRepository(db), nil)
	entries, err := svc.TopUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "user_a", entries[0].UserID)
	assert.Equal(t, "user_b", entries[1].UserID)
}

func TestTopUsers_ProjectsDisplayFieldsOnly(t *testing.T) {
	db := newTestDB(t)
	createCourse(t, db, 1, "Personal Finance")
	createUser(t, db, "user_1", 1, 2, 30)

	svc := NewLeaderboardService(repository.NewUserProgressRepository(db), nil)
	entries, err := svc.TopUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "user_1", entry.UserID)
	assert.Equal(t, "User", entry.UserName)
	assert.Equal(t, "/mascot.svg", entry.UserImageSrc)
	assert.Equal(t, 30, entry.Points)
}

func TestTopUsers_EmptyTable(t *testing.T) {
	db := newTestDB(t)

	svc := NewLeaderboardService(repository.NewUserProgressRepository(db), nil)
	entries, err := svc.TopUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
