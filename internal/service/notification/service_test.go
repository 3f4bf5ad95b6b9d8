package notification

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Min-owo17/Mysic/internal/dao/mysql"
	"github.com/Min-owo17/Mysic/internal/dao/mysql/repository"
	"github.com/Min-owo17/Mysic/internal/dto/request"
	"github.com/Min-owo17/Mysic/internal/dto/respond"
	"github.com/Min-owo17/Mysic/internal/model"
	"github.com/Min-owo17/Mysic/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeliverer struct {
	mu       sync.Mutex
	received map[uint][][]byte
}

func newFakeDeliverer() *fakeDeliverer {
	return &fakeDeliverer{received: make(map[uint][][]byte)}
}

func (f *fakeDeliverer) Deliver(userID uint, payload []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received[userID] = append(f.received[userID], payload)
	return true
}

func (f *fakeDeliverer) count(userID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.received[userID])
}

func (f *fakeDeliverer) first(userID uint) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.received[userID][0]
}

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	db, err := mysql.OpenMemory(t.Name())
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repository.NewRepositories(db)
}

func createUser(t *testing.T, repos *repository.Repositories, nickname string) *model.User {
	t.Helper()
	u := &model.User{Email: nickname + "@x.com", Nickname: nickname, UniqueCode: "code-" + nickname, IsActive: true}
	require.NoError(t, repos.User.Create(u))
	return u
}

func TestChannelBrokerDeliversUntilClosed(t *testing.T) {
	d := newFakeDeliverer()
	b := NewChannelBroker(d)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Start(ctx)

	require.NoError(t, b.Publish(ctx, 7, []byte(`{"x":1}`)))
	assert.Eventually(t, func() bool { return d.count(7) == 1 }, time.Second, 10*time.Millisecond)

	b.Close()
	b.Close()
	assert.ErrorIs(t, b.Publish(ctx, 7, []byte(`{}`)), ErrBrokerClosed)
}

func TestListAndMarkRead(t *testing.T) {
	repos := newTestRepos(t)
	alice := createUser(t, repos, "alice")
	bob := createUser(t, repos, "bob")
	for i := 0; i < 3; i++ {
		require.NoError(t, repos.Notification.Create(&model.Notification{
			UserID: alice.ID, SenderID: &bob.ID, Type: model.NotificationComment, Content: "bob 评论了你的帖子",
		}))
	}
	svc := NewNotificationService(repos, nil)

	list, err := svc.List(alice.ID, request.PageQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.UnreadCount)
	require.Len(t, list.Notifications, 3)
	require.NotNil(t, list.Notifications[0].SenderNickname)
	assert.Equal(t, "bob", *list.Notifications[0].SenderNickname)

	target := list.Notifications[0].NotificationID
	_, err = svc.MarkRead(bob.ID, target)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))

	read, err := svc.MarkRead(alice.ID, target)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	list, err = svc.List(alice.ID, request.PageQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.UnreadCount)

	all, err := svc.MarkAllRead(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Updated)
}

func TestPushFillsSenderNickname(t *testing.T) {
	repos := newTestRepos(t)
	alice := createUser(t, repos, "alice")
	bob := createUser(t, repos, "bob")

	d := newFakeDeliverer()
	b := NewChannelBroker(d)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Start(ctx)

	n := model.Notification{UserID: alice.ID, SenderID: &bob.ID, Type: model.NotificationLike, Content: "bob 赞了你的帖子"}
	require.NoError(t, repos.Notification.Create(&n))

	NewNotificationService(repos, b).Push(n)
	require.Eventually(t, func() bool { return d.count(alice.ID) == 1 }, time.Second, 10*time.Millisecond)

	var got respond.NotificationRespond
	require.NoError(t, json.Unmarshal(d.first(alice.ID), &got))
	assert.Equal(t, model.NotificationLike, got.Type)
	require.NotNil(t, got.SenderNickname)
	assert.Equal(t, "bob", *got.SenderNickname)
}
