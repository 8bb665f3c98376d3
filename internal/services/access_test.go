package services_test

import (
	"testing"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/arnold/boardly-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var allPermissions = []services.Permission{
	services.PermissionView,
	services.PermissionEdit,
	services.PermissionManage,
	services.PermissionOwner,
}

func TestDecide(t *testing.T) {
	board := &models.Board{UserID: "owner"}
	editor := &models.BoardMember{Role: models.RoleEditor}
	viewer := &models.BoardMember{Role: models.RoleViewer}

	cases := []struct {
		name   string
		member *models.BoardMember
		userID string
		perm   services.Permission
		want   apperrors.Kind
		ok     bool
	}{
		{"viewer can view", viewer, "v", services.PermissionView, 0, true},
		{"viewer cannot edit", viewer, "v", services.PermissionEdit, apperrors.KindForbidden, false},
		{"viewer cannot manage", viewer, "v", services.PermissionManage, apperrors.KindForbidden, false},
		{"editor can edit", editor, "e", services.PermissionEdit, 0, true},
		{"editor can manage", editor, "e", services.PermissionManage, 0, true},
		{"editor is never owner", editor, "e", services.PermissionOwner, apperrors.KindForbidden, false},
		{"stranger sees nothing", nil, "x", services.PermissionView, apperrors.KindNotFound, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := services.Decide(board, tc.member, tc.userID, tc.perm)
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.True(t, apperrors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestOwnerPassesEveryCheckRegardlessOfMembership(t *testing.T) {
	board := &models.Board{UserID: "owner"}
	// A stray viewer row for the owner must not downgrade them.
	stray := &models.BoardMember{UserID: "owner", Role: models.RoleViewer}

	for _, perm := range allPermissions {
		require.NoError(t, services.Decide(board, nil, "owner", perm), perm.String())
		require.NoError(t, services.Decide(board, stray, "owner", perm), perm.String())
	}
}

func TestAuthorize(t *testing.T) {
	testutil.NewTestDB(t)
	testutil.CreateUser(t, "owner")
	testutil.CreateUser(t, "stranger")
	board := newBoard(t, "owner")
	addMember(t, board, "viewer", models.RoleViewer)
	addMember(t, board, "editor", models.RoleEditor)

	got, err := services.Authorize(database.DB, board.ID, "owner", services.PermissionOwner)
	require.NoError(t, err)
	require.Equal(t, board.ID, got.ID)

	_, err = services.Authorize(database.DB, board.ID, "viewer", services.PermissionView)
	require.NoError(t, err)

	_, err = services.Authorize(database.DB, board.ID, "viewer", services.PermissionEdit)
	require.True(t, apperrors.Is(err, apperrors.KindForbidden))

	_, err = services.Authorize(database.DB, board.ID, "editor", services.PermissionManage)
	require.NoError(t, err)

	_, err = services.Authorize(database.DB, board.ID, "stranger", services.PermissionView)
	require.True(t, apperrors.Is(err, apperrors.KindNotFound))

	_, err = services.Authorize(database.DB, uuid.New(), "owner", services.PermissionView)
	require.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestRoleOfAndAccessibleBoards(t *testing.T) {
	testutil.NewTestDB(t)
	testutil.CreateUser(t, "owner")
	testutil.CreateUser(t, "other")
	mine := newBoard(t, "owner")
	theirs := newBoard(t, "other")
	newBoard(t, "other")
	addMember(t, theirs, "viewer", models.RoleViewer)

	role, err := services.RoleOf(database.DB, mine, "owner")
	require.NoError(t, err)
	require.Equal(t, models.RoleOwner, role)

	role, err = services.RoleOf(database.DB, theirs, "viewer")
	require.NoError(t, err)
	require.Equal(t, models.RoleViewer, role)

	var ids []uuid.UUID
	require.NoError(t, services.AccessibleBoardIDs(database.DB, "viewer").Pluck("id", &ids).Error)
	require.Equal(t, []uuid.UUID{theirs.ID}, ids)

	var count int64
	require.NoError(t, database.DB.Model(&models.Board{}).
		Where("id IN (?)", services.AccessibleBoardIDs(database.DB, "other")).
		Count(&count).Error)
	require.Equal(t, int64(2), count)
}
