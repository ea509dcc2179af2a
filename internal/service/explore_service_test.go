package service

import (
	"testing"

	"hackswipe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExploreService_People(t *testing.T) {
	env := newTestEnv(t)
	me := env.user(t, "me")
	seen := env.user(t, "seen")
	fresh := env.user(t, "fresh")
	bio := "hello"
	_, err := env.profile.ReplaceProfile(testCtx(), fresh.ID, ProfileInput{Bio: &bio})
	require.NoError(t, err)

	_, err = env.swipe.Swipe(testCtx(), SwipeInput{SwiperID: me.ID, TargetType: models.TargetPerson, TargetID: seen.ID, Direction: models.DirectionLeft})
	require.NoError(t, err)

	people, err := env.explore.People(testCtx(), me.ID)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, fresh.ID, people[0].ID)
	require.NotNil(t, people[0].Profile)
	assert.Equal(t, "hello", *people[0].Profile.Bio)
}

func TestExploreService_PostsAndRandom(t *testing.T) {
	env := newTestEnv(t)
	me := env.user(t, "me")
	leader := env.user(t, "leader")
	project := env.newPost(t, leader.ID, models.PostTypeProject, "P")
	env.newPost(t, leader.ID, models.PostTypeHackathon, "H")

	_, err := env.explore.Posts(testCtx(), me.ID, "events")
	assertCode(t, err, models.CodeNotFound)

	posts, err := env.explore.Posts(testCtx(), me.ID, "hackathons")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].Leader)
	assert.Equal(t, leader.ID, posts[0].Leader.ID)

	random, err := env.explore.RandomProject(testCtx(), me.ID)
	require.NoError(t, err)
	require.NotNil(t, random)
	assert.Equal(t, project.ID, random.ID)

	swipeRight(t, env, me.ID, project)
	random, err = env.explore.RandomProject(testCtx(), me.ID)
	require.NoError(t, err)
	assert.Nil(t, random)
}
