package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backend/internal/database"
	"backend/internal/model"
	"backend/internal/repository"
)

// testEnv wires the full repository/service stack over a throwaway sqlite
// database so workflow tests exercise real SQL.
type testEnv struct {
	db *gorm.DB

	users         repository.UserRepository
	sessions      repository.SessionRepository
	items         repository.ItemRepository
	borrows       repository.BorrowRepository
	reported      repository.ReportedItemRepository
	claims        repository.ClaimRepository
	notifications repository.NotificationRepository
	posts         repository.PostRepository
	activity      repository.ActivityRepository

	auth          AuthService
	itemService   ItemService
	borrowService BorrowService
	claimService  ClaimService
	adminService  AdminService
	postService   PostService
	notifService  NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	env := &testEnv{
		db:            db,
		users:         repository.NewUserRepository(db),
		sessions:      repository.NewSessionRepository(db),
		items:         repository.NewItemRepository(db),
		borrows:       repository.NewBorrowRepository(db),
		reported:      repository.NewReportedItemRepository(db),
		claims:        repository.NewClaimRepository(db),
		notifications: repository.NewNotificationRepository(db),
		posts:         repository.NewPostRepository(db),
		activity:      repository.NewActivityRepository(db),
	}

	txManager := repository.NewTransactionManager(db)
	env.auth = NewAuthService(env.users, env.sessions, "test_secret", time.Hour)
	env.itemService = NewItemService(env.items, nil)
	env.borrowService = NewBorrowService(env.borrows, env.items, env.notifications, txManager, nil)
	env.claimService = NewClaimService(env.reported, env.claims, txManager, nil)
	env.adminService = NewAdminService(env.users)
	env.postService = NewPostService(env.posts, txManager)
	env.notifService = NewNotificationService(env.notifications)

	return env
}

func (e *testEnv) createUser(t *testing.T, username, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username:  username,
		Email:     username + "@campus.edu",
		Password:  string(hash),
		Role:      role,
		StudentID: "S-" + username,
	}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) createItem(t *testing.T, name string, quantity int) *model.Item {
	t.Helper()
	item, err := e.itemService.CreateItem(context.Background(), "", CreateItemRequest{
		Name:     name,
		Quantity: quantity,
		Date:     time.Now(),
		Location: "Building A",
	})
	require.NoError(t, err)
	return item
}

func (e *testEnv) reportItem(t *testing.T, reporterID, name string) *model.ReportedItem {
	t.Helper()
	item, err := e.claimService.ReportLostItem(context.Background(), reporterID, ReportLostItemRequest{
		Name:     name,
		Date:     time.Now(),
		Location: "Library",
	})
	require.NoError(t, err)
	return item
}
