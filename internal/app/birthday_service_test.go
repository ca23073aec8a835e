package app

import (
	"context"
	"io"
	"testing"
	"time"

	"birthday_reminder_bot/internal/domain/birthday"
	"birthday_reminder_bot/internal/domain/chat"
	"birthday_reminder_bot/internal/infra/redisstore"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockBirthdayRepo struct{ mock.Mock }

func (m *mockBirthdayRepo) Set(ctx context.Context, subjectID string, d birthday.Date) error {
	return m.Called(ctx, subjectID, d).Error(0)
}
func (m *mockBirthdayRepo) Get(ctx context.Context, subjectID string) (birthday.Date, error) {
	args := m.Called(ctx, subjectID)
	return args.Get(0).(birthday.Date), args.Error(1)
}
func (m *mockBirthdayRepo) ListAll(ctx context.Context) ([]birthday.Record, error) {
	args := m.Called(ctx)
	if r, _ := args.Get(0).([]birthday.Record); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDirectory struct{ mock.Mock }

func (m *mockDirectory) Communities(ctx context.Context) ([]chat.Community, error) {
	args := m.Called(ctx)
	if c, _ := args.Get(0).([]chat.Community); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockDirectory) Register(ctx context.Context, c chat.Community) error {
	return m.Called(ctx, c).Error(0)
}

type mockChatClient struct{ mock.Mock }

func (m *mockChatClient) SendPrivate(userID int64, text string) error {
	return m.Called(userID, text).Error(0)
}
func (m *mockChatClient) Broadcast(target chat.Target, text string) error {
	return m.Called(target, text).Error(0)
}
func (m *mockChatClient) Mention(subjectID string) string {
	return "<@" + subjectID + ">"
}

// fakeBirthdayRepo is an in-memory store for behaviors that span calls.
type fakeBirthdayRepo struct {
	data map[string]birthday.Date
}

func newFakeBirthdayRepo() *fakeBirthdayRepo {
	return &fakeBirthdayRepo{data: make(map[string]birthday.Date)}
}
func (f *fakeBirthdayRepo) Set(_ context.Context, subjectID string, d birthday.Date) error {
	f.data[subjectID] = d
	return nil
}
func (f *fakeBirthdayRepo) Get(_ context.Context, subjectID string) (birthday.Date, error) {
	d, ok := f.data[subjectID]
	if !ok {
		return birthday.Date{}, redisstore.ErrBirthdayNotFound
	}
	return d, nil
}
func (f *fakeBirthdayRepo) ListAll(_ context.Context) ([]birthday.Record, error) {
	var records []birthday.Record
	for id, d := range f.data {
		records = append(records, birthday.Record{SubjectID: id, Date: d})
	}
	return records, nil
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// --- tests ---

func TestSetBirthday_ParsesAndStoresCanonically(t *testing.T) {
	repo := new(mockBirthdayRepo)
	svc := NewBirthdayService(repo, new(mockDirectory), new(mockChatClient), testLogger())

	want := mustDate(t, "04-27-1990")
	repo.On("Set", mock.Anything, "42", want).Return(nil)

	got, err := svc.SetBirthday(context.Background(), "42", "04-27-1990")
	require.NoError(t, err)
	assert.Equal(t, "04-27-1990", got.Display())
	assert.Equal(t, "1990-04-27", got.Canonical())
	repo.AssertExpectations(t)
}

func TestSetBirthday_InvalidFormatWritesNothing(t *testing.T) {
	repo := new(mockBirthdayRepo)
	svc := NewBirthdayService(repo, new(mockDirectory), new(mockChatClient), testLogger())

	_, err := svc.SetBirthday(context.Background(), "42", "birthday is soon")
	assert.ErrorIs(t, err, birthday.ErrInvalidDateFormat)
	repo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetThenGet_ReturnsDisplayForm(t *testing.T) {
	svc := NewBirthdayService(newFakeBirthdayRepo(), new(mockDirectory), new(mockChatClient), testLogger())
	ctx := context.Background()

	_, err := svc.SetBirthday(ctx, "42", "1990-04-27")
	require.NoError(t, err)

	got, err := svc.GetBirthday(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "04-27-1990", got.Display())
}

func TestSetBirthday_LastWriteWins(t *testing.T) {
	svc := NewBirthdayService(newFakeBirthdayRepo(), new(mockDirectory), new(mockChatClient), testLogger())
	ctx := context.Background()

	_, err := svc.SetBirthday(ctx, "42", "04-27-1990")
	require.NoError(t, err)
	_, err = svc.SetBirthday(ctx, "42", "12-01-1985")
	require.NoError(t, err)

	got, err := svc.GetBirthday(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "12-01-1985", got.Display())
}

func TestGetBirthday_UnsetReadsAsNotFound(t *testing.T) {
	svc := NewBirthdayService(newFakeBirthdayRepo(), new(mockDirectory), new(mockChatClient), testLogger())

	_, err := svc.GetBirthday(context.Background(), "nobody")
	assert.True(t, IsNotFound(err))
}

func TestGetBirthday_StoreFailureIndistinguishableFromUnset(t *testing.T) {
	// The repository degrades timeouts to not-found; the service must not
	// distinguish the two.
	repo := new(mockBirthdayRepo)
	repo.On("Get", mock.Anything, "42").Return(birthday.Date{}, redisstore.ErrBirthdayNotFound)
	svc := NewBirthdayService(repo, new(mockDirectory), new(mockChatClient), testLogger())

	_, err := svc.GetBirthday(context.Background(), "42")
	assert.True(t, IsNotFound(err))
}

func TestForecast_BucketsAgainstToday(t *testing.T) {
	repo := newFakeBirthdayRepo()
	svc := NewBirthdayService(repo, new(mockDirectory), new(mockChatClient), testLogger())
	ctx := context.Background()

	_, err := svc.SetBirthday(ctx, "alice", "01-15-1990")
	require.NoError(t, err)
	_, err = svc.SetBirthday(ctx, "carol", "06-01-2000")
	require.NoError(t, err)

	f, err := svc.Forecast(ctx, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, f.ThisMonth, 1)
	assert.Equal(t, "alice", f.ThisMonth[0].SubjectID)
	assert.Empty(t, f.Upcoming)
}

func TestBroadcastForecast_SendsToPreferredTarget(t *testing.T) {
	directory := new(mockDirectory)
	client := new(mockChatClient)
	svc := NewBirthdayService(newFakeBirthdayRepo(), directory, client, testLogger())

	general := chat.Target{ID: 100, Name: "general"}
	directory.On("Communities", mock.Anything).Return([]chat.Community{
		{ID: 7, Title: "gophers", Targets: []chat.Target{{ID: 99, Name: "random"}, general}},
	}, nil)
	client.On("Broadcast", general, mock.MatchedBy(func(text string) bool {
		return len(text) > 0
	})).Return(nil)

	f := birthday.BuildForecast(
		[]birthday.Record{{SubjectID: "alice", Date: mustDate(t, "01-15-1990")}},
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	)
	err := svc.BroadcastForecast(context.Background(), 7, f)
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestBroadcastForecast_NoTargetIsADeliveryError(t *testing.T) {
	directory := new(mockDirectory)
	client := new(mockChatClient)
	svc := NewBirthdayService(newFakeBirthdayRepo(), directory, client, testLogger())

	directory.On("Communities", mock.Anything).Return([]chat.Community{{ID: 7, Title: "gophers"}}, nil)

	err := svc.BroadcastForecast(context.Background(), 7, birthday.Forecast{})
	assert.ErrorIs(t, err, ErrNoBroadcastTarget)
	client.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
}

func TestBroadcastForecast_UnknownCommunity(t *testing.T) {
	directory := new(mockDirectory)
	svc := NewBirthdayService(newFakeBirthdayRepo(), directory, new(mockChatClient), testLogger())

	directory.On("Communities", mock.Anything).Return([]chat.Community{}, nil)

	err := svc.BroadcastForecast(context.Background(), 7, birthday.Forecast{})
	assert.ErrorIs(t, err, ErrCommunityNotFound)
}
