package middleware

import (
	"errors"
	"testing"

	"vibetracker/internal/service"
	"vibetracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func newContext(t *testing.T, update tele.Update) tele.Context {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return bot.NewContext(update)
}

func newRecordService(userRepo *testutil.MockUserRepository) *service.RecordService {
	return service.NewRecordService(userRepo, new(testutil.MockMoodLogRepository), testutil.NewTestLogger())
}

func TestUserSyncMiddleware(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	username := testutil.StrPtr("alice")
	userRepo.On("GetOrCreate", mock.Anything, int64(42), username).
		Return(testutil.NewTestUser(1, 42, username), true, nil)

	records := newRecordService(userRepo)
	called := false
	next := func(c tele.Context) error {
		called = true
		return nil
	}

	c := newContext(t, tele.Update{Message: &tele.Message{
		Sender: &tele.User{ID: 42, Username: "alice"},
		Text:   "/start",
	}})

	err := UserSyncMiddleware(records, testutil.NewTestLogger())(next)(c)

	assert.NoError(t, err)
	assert.True(t, called)
	userRepo.AssertExpectations(t)
}

func TestUserSyncMiddleware_NoSender(t *testing.T) {
	records := newRecordService(new(testutil.MockUserRepository))
	called := false
	next := func(c tele.Context) error {
		called = true
		return nil
	}

	c := newContext(t, tele.Update{})

	err := UserSyncMiddleware(records, testutil.NewTestLogger())(next)(c)

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestRecoverMiddleware(t *testing.T) {
	c := newContext(t, tele.Update{})

	handler := RecoverMiddleware(testutil.NewTestLogger())(func(c tele.Context) error {
		panic("boom")
	})

	var err error
	assert.NotPanics(t, func() {
		err = handler(c)
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRecoverMiddleware_PassesErrors(t *testing.T) {
	c := newContext(t, tele.Update{})
	expected := errors.New("handler failed")

	handler := RecoverMiddleware(testutil.NewTestLogger())(func(c tele.Context) error {
		return expected
	})

	assert.Equal(t, expected, handler(c))
}
