// services/groups_test.go
package services

import (
	"testing"
	"time"

	"gowalking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroupMakesOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)

	user := createTestUser(t, db, "user-1", "Anna")

	group, err := svc.CreateGroup("Morning Walkers", "Early birds", true, user.ID)
	require.NoError(t, err)
	assert.Len(t, group.GroupCode, 8)

	members, err := svc.GetMembers(group.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, user.ID, members[0].UserID)
	assert.Equal(t, models.GroupRoleOwner, members[0].Role)
}

func TestCreateGroupRequiresName(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)

	_, err := svc.CreateGroup("", "", true, "user-1")
	assert.Error(t, err)
}

func TestJoinGroupByCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)

	owner := createTestUser(t, db, "user-1", "Anna")
	joiner := createTestUser(t, db, "user-2", "Ben")

	group, err := svc.CreateGroup("Morning Walkers", "", false, owner.ID)
	require.NoError(t, err)

	joined, err := svc.JoinGroup(joiner.ID, group.GroupCode)
	require.NoError(t, err)
	assert.Equal(t, group.ID, joined.ID)

	// Joining twice is rejected.
	_, err = svc.JoinGroup(joiner.ID, group.GroupCode)
	assert.Error(t, err)

	// Unknown code is rejected.
	_, err = svc.JoinGroup(joiner.ID, "deadbeef")
	assert.Error(t, err)
}

func TestLeaveGroup(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)

	owner := createTestUser(t, db, "user-1", "Anna")
	member := createTestUser(t, db, "user-2", "Ben")

	group, err := svc.CreateGroup("Morning Walkers", "", true, owner.ID)
	require.NoError(t, err)
	_, err = svc.JoinGroup(member.ID, group.GroupCode)
	require.NoError(t, err)

	// Owner cannot leave their own group.
	assert.Error(t, svc.LeaveGroup(owner.ID, group.ID))

	require.NoError(t, svc.LeaveGroup(member.ID, group.ID))
	members, err := svc.GetMembers(group.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)

	// A non-member cannot leave.
	assert.Error(t, svc.LeaveGroup(member.ID, group.ID))
}

func TestGroupLeaderboardCountsWalksSinceJoining(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)

	owner := createTestUser(t, db, "user-1", "Anna")
	member := createTestUser(t, db, "user-2", "Ben")

	// A walk from before the group existed must not count.
	old := models.Walk{
		ID:         "old-walk",
		UserID:     member.ID,
		DistanceKm: 99,
		City:       "passau",
	}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Model(&old).Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	group, err := svc.CreateGroup("Morning Walkers", "", true, owner.ID)
	require.NoError(t, err)
	_, err = svc.JoinGroup(member.ID, group.GroupCode)
	require.NoError(t, err)

	createTestWalk(t, db, owner.ID, "regensburg", 5)
	createTestWalk(t, db, member.ID, "regensburg", 8)

	entries, err := svc.Leaderboard(group.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, member.ID, entries[0].UserID)
	assert.Equal(t, 8.0, entries[0].DistanceKm)
	assert.Equal(t, 1, entries[0].WalkCount)
	assert.Equal(t, owner.ID, entries[1].UserID)
	assert.Equal(t, 5.0, entries[1].DistanceKm)
}

func TestChallengeLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)

	owner := createTestUser(t, db, "user-1", "Anna")
	member := createTestUser(t, db, "user-2", "Ben")
	outsider := createTestUser(t, db, "user-3", "Cleo")

	group, err := svc.CreateGroup("Morning Walkers", "", true, owner.ID)
	require.NoError(t, err)
	_, err = svc.JoinGroup(member.ID, group.GroupCode)
	require.NoError(t, err)

	now := time.Now().UTC()
	challenge, err := svc.CreateChallenge(group.ID, owner.ID, "50k month", "",
		50, now, now.Add(30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeStatusActive, challenge.Status)

	// The creator joins automatically.
	loaded, err := svc.GetChallenge(challenge.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Participants, 1)
	assert.Equal(t, owner.ID, loaded.Participants[0].UserID)

	_, err = svc.JoinChallenge(challenge.ID, member.ID)
	require.NoError(t, err)

	// Duplicate join and non-member join are rejected.
	_, err = svc.JoinChallenge(challenge.ID, member.ID)
	assert.Error(t, err)
	_, err = svc.JoinChallenge(challenge.ID, outsider.ID)
	assert.Error(t, err)
}

func TestCreateChallengeValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(db)

	owner := createTestUser(t, db, "user-1", "Anna")
	group, err := svc.CreateGroup("Morning Walkers", "", true, owner.ID)
	require.NoError(t, err)

	now := time.Now().UTC()

	_, err = svc.CreateChallenge(group.ID, owner.ID, "", "", 10, now, now.Add(time.Hour))
	assert.Error(t, err)

	_, err = svc.CreateChallenge(group.ID, owner.ID, "zero target", "", 0, now, now.Add(time.Hour))
	assert.Error(t, err)

	_, err = svc.CreateChallenge(group.ID, owner.ID, "backwards", "", 10, now.Add(time.Hour), now)
	assert.Error(t, err)

	_, err = svc.CreateChallenge(group.ID, "stranger", "not a member", "", 10, now, now.Add(time.Hour))
	assert.Error(t, err)
}
