package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classroom-backend/models"
)

func TestCreateIssue(t *testing.T) {
	f := newFixture(t)
	teacher := seedTeacher(t, f.db, "reporter@uni.edu")
	room := seedRoom(t, f.db, "1101", models.RoomTypeLecture, 40)

	issue, err := f.issues.CreateIssue(CreateIssueRequest{
		UserID:      teacher.ID,
		RoomID:      room.ID,
		Issues:      "Projector lamp is dead",
		Description: "No image at all, tried two cables",
	})
	require.NoError(t, err)
	assert.NotZero(t, issue.ID)
	assert.False(t, issue.IsResolved)
	assert.Nil(t, issue.ResolvedAt)
}

func TestCreateIssueValidation(t *testing.T) {
	f := newFixture(t)
	teacher := seedTeacher(t, f.db, "reporter@uni.edu")
	room := seedRoom(t, f.db, "1101", models.RoomTypeLecture, 40)

	tests := []struct {
		name string
		req  CreateIssueRequest
	}{
		{"summary too short", CreateIssueRequest{UserID: teacher.ID, RoomID: room.ID, Issues: "bad"}},
		{"summary too long", CreateIssueRequest{UserID: teacher.ID, RoomID: room.ID, Issues: string(make([]byte, 501))}},
		{"description too long", CreateIssueRequest{UserID: teacher.ID, RoomID: room.ID, Issues: "Broken chair", Description: string(make([]byte, 1001))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.issues.CreateIssue(tt.req)
			assert.Error(t, err)
		})
	}

	_, err := f.issues.CreateIssue(CreateIssueRequest{UserID: 999, RoomID: room.ID, Issues: "Broken chair"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.issues.CreateIssue(CreateIssueRequest{UserID: teacher.ID, RoomID: 999, Issues: "Broken chair"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUnresolvedIssueQueue(t *testing.T) {
	f := newFixture(t)
	teacher := seedTeacher(t, f.db, "reporter@uni.edu")
	dispatcher := seedTeacher(t, f.db, "dispatcher@uni.edu")
	room := seedRoom(t, f.db, "1101", models.RoomTypeLecture, 40)

	first, err := f.issues.CreateIssue(CreateIssueRequest{UserID: teacher.ID, RoomID: room.ID, Issues: "Projector lamp is dead"})
	require.NoError(t, err)
	second, err := f.issues.CreateIssue(CreateIssueRequest{UserID: teacher.ID, RoomID: room.ID, Issues: "Whiteboard markers missing"})
	require.NoError(t, err)

	queue, err := f.issues.GetUnresolvedIssues()
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, first.ID, queue[0].ID)

	_, err = f.issues.MarkResolved(first.ID, dispatcher.ID)
	require.NoError(t, err)

	queue, err = f.issues.GetUnresolvedIssues()
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, second.ID, queue[0].ID)

	all, err := f.issues.GetAllIssues()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMarkResolvedStampsFields(t *testing.T) {
	f := newFixture(t)
	teacher := seedTeacher(t, f.db, "reporter@uni.edu")
	dispatcher := seedTeacher(t, f.db, "dispatcher@uni.edu")
	room := seedRoom(t, f.db, "1101", models.RoomTypeLecture, 40)

	issue, err := f.issues.CreateIssue(CreateIssueRequest{UserID: teacher.ID, RoomID: room.ID, Issues: "Projector lamp is dead"})
	require.NoError(t, err)

	resolved, err := f.issues.MarkResolved(issue.ID, dispatcher.ID)
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)
	require.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, dispatcher.ID, resolved.ResolvedByID)

	_, err = f.issues.MarkResolved(issue.ID, dispatcher.ID)
	assert.ErrorIs(t, err, models.ErrInvalidState)

	_, err = f.issues.MarkResolved(999, dispatcher.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteIssuePermissions(t *testing.T) {
	f := newFixture(t)
	author := seedTeacher(t, f.db, "reporter@uni.edu")
	other := seedTeacher(t, f.db, "other@uni.edu")
	admin := models.User{
		Email:        "admin@uni.edu",
		PasswordHash: "x",
		FirstName:    "Site",
		LastName:     "Admin",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, f.db.Create(&admin).Error)
	room := seedRoom(t, f.db, "1101", models.RoomTypeLecture, 40)

	issue, err := f.issues.CreateIssue(CreateIssueRequest{UserID: author.ID, RoomID: room.ID, Issues: "Projector lamp is dead"})
	require.NoError(t, err)

	err = f.issues.DeleteIssue(issue.ID, other.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	require.NoError(t, f.issues.DeleteIssue(issue.ID, author.ID))
	_, err = f.issues.GetIssueByID(issue.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	issue, err = f.issues.CreateIssue(CreateIssueRequest{UserID: author.ID, RoomID: room.ID, Issues: "Broken window latch"})
	require.NoError(t, err)
	require.NoError(t, f.issues.DeleteIssue(issue.ID, admin.ID))

	err = f.issues.DeleteIssue(999, author.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetIssuesByUser(t *testing.T) {
	f := newFixture(t)
	author := seedTeacher(t, f.db, "reporter@uni.edu")
	other := seedTeacher(t, f.db, "other@uni.edu")
	room := seedRoom(t, f.db, "1101", models.RoomTypeLecture, 40)

	_, err := f.issues.CreateIssue(CreateIssueRequest{UserID: author.ID, RoomID: room.ID, Issues: "Projector lamp is dead"})
	require.NoError(t, err)
	_, err = f.issues.CreateIssue(CreateIssueRequest{UserID: other.ID, RoomID: room.ID, Issues: "Whiteboard markers missing"})
	require.NoError(t, err)

	mine, err := f.issues.GetIssuesByUser(author.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, author.ID, mine[0].UserID)
	assert.Equal(t, room.ID, mine[0].Room.ID)
}
