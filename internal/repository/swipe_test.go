package repository

import (
	"regexp"
	"testing"

	"hackswipe/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwipeRepository_ReciprocalRightCreatesMatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSwipeRepository(db)
	ctx := ctxWithTimeout(t)
	a := createUser(t, db, "a@example.com")
	b := createUser(t, db, "b@example.com")

	first, err := repo.Record(ctx, &models.Swipe{SwiperID: a.ID, TargetType: models.TargetPerson, TargetID: b.ID, Direction: models.DirectionRight})
	require.NoError(t, err)
	assert.Nil(t, first.Match)

	second, err := repo.Record(ctx, &models.Swipe{SwiperID: b.ID, TargetType: models.TargetPerson, TargetID: a.ID, Direction: models.DirectionRight})
	require.NoError(t, err)
	require.NotNil(t, second.Match)
	assert.True(t, second.MatchCreated)
	assert.Equal(t, b.ID, second.Match.AID)
	assert.Equal(t, a.ID, second.Match.BID)
	assert.Equal(t, models.MatchContextPeople, second.Match.Context)
	assert.Nil(t, second.Match.PostID)

	var matches int64
	require.NoError(t, db.Model(&models.Match{}).Count(&matches).Error)
	assert.Equal(t, int64(1), matches)
}

func TestSwipeRepository_LeftSwipeNeverMatches(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSwipeRepository(db)
	ctx := ctxWithTimeout(t)
	a := createUser(t, db, "a@example.com")
	b := createUser(t, db, "b@example.com")

	_, err := repo.Record(ctx, &models.Swipe{SwiperID: a.ID, TargetType: models.TargetPerson, TargetID: b.ID, Direction: models.DirectionRight})
	require.NoError(t, err)
	out, err := repo.Record(ctx, &models.Swipe{SwiperID: b.ID, TargetType: models.TargetPerson, TargetID: a.ID, Direction: models.DirectionLeft})
	require.NoError(t, err)
	assert.Nil(t, out.Match)
	assert.Nil(t, out.Inquiry)
}

func TestSwipeRepository_DuplicateSwipeRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSwipeRepository(db)
	ctx := ctxWithTimeout(t)
	a := createUser(t, db, "a@example.com")
	b := createUser(t, db, "b@example.com")

	_, err := repo.Record(ctx, &models.Swipe{SwiperID: a.ID, TargetType: models.TargetPerson, TargetID: b.ID, Direction: models.DirectionLeft})
	require.NoError(t, err)

	exists, err := repo.Exists(ctx, a.ID, models.TargetPerson, b.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Record(ctx, &models.Swipe{SwiperID: a.ID, TargetType: models.TargetPerson, TargetID: b.ID, Direction: models.DirectionRight})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeConflict))

	count, err := repo.CountBySwiper(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSwipeRepository_RightOnPostCreatesInquiry(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSwipeRepository(db)
	ctx := ctxWithTimeout(t)
	leader := createUser(t, db, "leader@example.com")
	applicant := createUser(t, db, "applicant@example.com")
	project := createPost(t, db, leader.ID, models.PostTypeProject, "Rust compiler")
	hackathon := createPost(t, db, leader.ID, models.PostTypeHackathon, "Climate hack")

	out, err := repo.Record(ctx, &models.Swipe{SwiperID: applicant.ID, TargetType: models.TargetProject, TargetID: project.ID, Direction: models.DirectionRight})
	require.NoError(t, err)
	require.NotNil(t, out.Inquiry)
	assert.True(t, out.InquiryCreated)
	assert.Equal(t, models.InquiryStatusPending, out.Inquiry.Status)
	assert.Nil(t, out.Match)

	left, err := repo.Record(ctx, &models.Swipe{SwiperID: applicant.ID, TargetType: models.TargetHackathon, TargetID: hackathon.ID, Direction: models.DirectionLeft})
	require.NoError(t, err)
	assert.Nil(t, left.Inquiry)

	var inquiries int64
	require.NoError(t, db.Model(&models.Inquiry{}).Count(&inquiries).Error)
	assert.Equal(t, int64(1), inquiries)
}

func TestSwipeRepository_PostgresLocksUsersInOrder(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSwipeRepository(db)
	ctx := ctxWithTimeout(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE id IN \(\$1,\$2\) ORDER BY id FOR UPDATE`).
		WithArgs("aaa", "zzz").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("aaa").AddRow("zzz"))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "swipes"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "swipes" WHERE swiper_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	out, err := repo.Record(ctx, &models.Swipe{SwiperID: "zzz", TargetType: models.TargetPerson, TargetID: "aaa", Direction: models.DirectionRight})
	require.NoError(t, err)
	assert.Nil(t, out.Match)
	assert.NoError(t, mock.ExpectationsWereMet())
}
