package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sefazor/ourmatches-backend/internal/models"
	"github.com/sefazor/ourmatches-backend/pkg/database"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupDB opens both database routes against DATABASE_URL and starts from
// empty tables. Skipped when no database is configured.
func setupDB(t *testing.T) (*gorm.DB, *pgxpool.Pool) {
	t.Helper()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		t.Fatalf("failed to create pgx pool: %v", err)
	}
	t.Cleanup(pool.Close)

	for _, table := range []string{"messages", "user_likes", "photos", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to clear %s: %v", table, err)
		}
	}

	return db, pool
}

func createUser(t *testing.T, db *gorm.DB, user *models.User) *models.User {
	t.Helper()
	if user.Password == "" {
		user.Password = "x"
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", user.Username, err)
	}
	return user
}

// TestMemberListingEnginesAgree runs the ORM route and the raw-SQL route over
// the same seeded data and requires identical identity sequences, photo
// hydration and totals page by page. The seed is deliberately tie-heavy on
// last_active and includes a photo-less user.
func TestMemberListingEnginesAgree(t *testing.T) {
	db, pool := setupDB(t)
	ctx := context.Background()

	tie := time.Now().Add(-24 * time.Hour).Truncate(time.Microsecond)
	newer := tie.Add(time.Hour)
	dob := func(age int) time.Time {
		return time.Now().AddDate(-age, 0, -30)
	}

	createUser(t, db, &models.User{Username: "tester", Gender: "male",
		DateOfBirth: dob(30), Created: tie, LastActive: tie})
	createUser(t, db, &models.User{Username: "alice", Gender: "female",
		DateOfBirth: dob(24), Created: tie.Add(3 * time.Minute), LastActive: tie,
		Photos: []models.Photo{
			{URL: "alice-1.jpg", IsMain: true},
			{URL: "alice-2.jpg"},
		}})
	createUser(t, db, &models.User{Username: "bonnie", Gender: "female",
		DateOfBirth: dob(28), Created: tie.Add(1 * time.Minute), LastActive: tie})
	createUser(t, db, &models.User{Username: "carla", Gender: "female",
		DateOfBirth: dob(33), Created: tie.Add(2 * time.Minute), LastActive: tie,
		Photos: []models.Photo{{URL: "carla-1.jpg", IsMain: true}}})
	createUser(t, db, &models.User{Username: "dora", Gender: "female",
		DateOfBirth: dob(26), Created: tie, LastActive: newer,
		Photos: []models.Photo{{URL: "dora-1.jpg"}}})
	createUser(t, db, &models.User{Username: "ed", Gender: "male",
		DateOfBirth: dob(29), Created: tie, LastActive: tie})

	userRepo := NewUserRepository(db)
	queryRepo := NewMemberQueryRepository(pool)

	cases := []struct {
		name    string
		gender  string
		orderBy string
	}{
		{"default order", "female", ""},
		{"created order", "female", "created"},
		{"unknown order key", "female", "lastActive"},
		{"no gender filter", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := models.NewUserParams()
			params.CurrentUsername = "tester"
			params.Gender = tc.gender
			params.OrderBy = tc.orderBy
			params.PageSize = 2
			params.Normalize()

			for page := 1; ; page++ {
				params.PageNumber = page

				ormPage, err := userRepo.GetMembers(params)
				if err != nil {
					t.Fatalf("orm page %d: %v", page, err)
				}
				sqlPage, err := queryRepo.GetMembers(ctx, params)
				if err != nil {
					t.Fatalf("sql page %d: %v", page, err)
				}

				if ormPage.TotalCount != sqlPage.TotalCount {
					t.Fatalf("TotalCount: orm %d, sql %d", ormPage.TotalCount, sqlPage.TotalCount)
				}
				if ormPage.TotalPages != sqlPage.TotalPages {
					t.Fatalf("TotalPages: orm %d, sql %d", ormPage.TotalPages, sqlPage.TotalPages)
				}
				if len(ormPage.Items) != len(sqlPage.Items) {
					t.Fatalf("page %d: orm %d items, sql %d items", page, len(ormPage.Items), len(sqlPage.Items))
				}

				for i := range ormPage.Items {
					o, s := ormPage.Items[i], sqlPage.Items[i]
					if o.Username != s.Username {
						t.Errorf("page %d item %d: orm %q, sql %q", page, i, o.Username, s.Username)
					}
					if o.PhotoURL != s.PhotoURL {
						t.Errorf("page %d %q: orm PhotoURL %q, sql %q", page, o.Username, o.PhotoURL, s.PhotoURL)
					}
					if len(o.Photos) != len(s.Photos) {
						t.Errorf("page %d %q: orm %d photos, sql %d", page, o.Username, len(o.Photos), len(s.Photos))
					}
				}

				if page >= ormPage.TotalPages {
					break
				}
			}
		})
	}

	t.Run("latest active leads, ties fall back to id", func(t *testing.T) {
		params := models.NewUserParams()
		params.CurrentUsername = "tester"
		params.Gender = "female"
		params.Normalize()

		page, err := userRepo.GetMembers(params)
		if err != nil {
			t.Fatalf("GetMembers: %v", err)
		}

		want := []string{"dora", "carla", "bonnie", "alice"}
		if len(page.Items) != len(want) {
			t.Fatalf("items = %d, want %d", len(page.Items), len(want))
		}
		for i, username := range want {
			if page.Items[i].Username != username {
				t.Errorf("item %d = %q, want %q", i, page.Items[i].Username, username)
			}
		}
	})

	t.Run("detail agrees for photo-full and photo-less users", func(t *testing.T) {
		for _, username := range []string{"alice", "bonnie"} {
			ormMember, err := userRepo.GetMember(username)
			if err != nil {
				t.Fatalf("orm detail %q: %v", username, err)
			}
			sqlMember, err := queryRepo.GetMember(ctx, username)
			if err != nil {
				t.Fatalf("sql detail %q: %v", username, err)
			}

			if ormMember.Username != sqlMember.Username {
				t.Errorf("%q: username orm %q, sql %q", username, ormMember.Username, sqlMember.Username)
			}
			if ormMember.PhotoURL != sqlMember.PhotoURL {
				t.Errorf("%q: PhotoURL orm %q, sql %q", username, ormMember.PhotoURL, sqlMember.PhotoURL)
			}
			if len(ormMember.Photos) != len(sqlMember.Photos) {
				t.Errorf("%q: photos orm %d, sql %d", username, len(ormMember.Photos), len(sqlMember.Photos))
			}
		}
	})
}

// TestThreadReadStampsOnce verifies that opening a thread marks the
// requester's unread messages as read exactly once: the returned view carries
// the new timestamps, re-reads change nothing, and messages the requester
// sent stay unread.
func TestThreadReadStampsOnce(t *testing.T) {
	db, _ := setupDB(t)

	base := time.Now().Add(-time.Hour).Truncate(time.Microsecond)
	already := base.Add(-time.Hour)

	lisa := createUser(t, db, &models.User{Username: "lisa", Gender: "female",
		DateOfBirth: base.AddDate(-25, 0, 0), Created: base, LastActive: base})
	todd := createUser(t, db, &models.User{Username: "todd", Gender: "male",
		DateOfBirth: base.AddDate(-27, 0, 0), Created: base, LastActive: base})

	repo := NewMessageRepository(db)
	seed := []*models.Message{
		{SenderID: todd.ID, RecipientID: lisa.ID, Content: "hi", MessageSent: base, DateRead: &already},
		{SenderID: lisa.ID, RecipientID: todd.ID, Content: "hey", MessageSent: base.Add(time.Minute)},
		{SenderID: todd.ID, RecipientID: lisa.ID, Content: "coffee?", MessageSent: base.Add(2 * time.Minute)},
		{SenderID: todd.ID, RecipientID: lisa.ID, Content: "tomorrow?", MessageSent: base.Add(3 * time.Minute)},
	}
	for _, m := range seed {
		if err := repo.Add(m); err != nil {
			t.Fatalf("failed to seed message %q: %v", m.Content, err)
		}
	}

	first, err := repo.GetMessageThread("lisa", "todd")
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if len(first) != 4 {
		t.Fatalf("thread length = %d, want 4", len(first))
	}
	if first[0].Content != "hi" || first[3].Content != "tomorrow?" {
		t.Errorf("thread not oldest-first: %q ... %q", first[0].Content, first[3].Content)
	}
	for _, m := range first {
		if m.RecipientUsername == "lisa" && m.DateRead == nil {
			t.Errorf("message %q to lisa still unread in the returned view", m.Content)
		}
		if m.RecipientUsername == "todd" && m.DateRead != nil {
			t.Errorf("message %q sent by lisa must stay unread", m.Content)
		}
	}

	second, err := repo.GetMessageThread("lisa", "todd")
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	third, err := repo.GetMessageThread("lisa", "todd")
	if err != nil {
		t.Fatalf("third read: %v", err)
	}
	for i := range second {
		s, th := second[i].DateRead, third[i].DateRead
		if (s == nil) != (th == nil) {
			t.Errorf("message %q: read state changed on re-read", second[i].Content)
			continue
		}
		if s != nil && !s.Equal(*th) {
			t.Errorf("message %q: read timestamp moved between reads", second[i].Content)
		}
	}
	if second[0].DateRead == nil || !second[0].DateRead.Equal(already) {
		t.Errorf("previously read message was re-stamped: %v", second[0].DateRead)
	}

	var unread int64
	db.Model(&models.Message{}).
		Where("recipient_id = ? AND date_read IS NULL", lisa.ID).
		Count(&unread)
	if unread != 0 {
		t.Errorf("lisa still has %d unread messages in this thread", unread)
	}
	db.Model(&models.Message{}).
		Where("recipient_id = ? AND date_read IS NULL", todd.ID).
		Count(&unread)
	if unread != 1 {
		t.Errorf("todd's unread count = %d, want 1", unread)
	}
}

// TestSetMainMovesFlagAtomically checks the exactly-one-main invariant: the
// flip lands on the target photo and a failed flip rolls back instead of
// leaving the user with no main photo.
func TestSetMainMovesFlagAtomically(t *testing.T) {
	db, _ := setupDB(t)

	now := time.Now()
	user := createUser(t, db, &models.User{Username: "lisa", Gender: "female",
		DateOfBirth: now.AddDate(-25, 0, 0), Created: now, LastActive: now,
		Photos: []models.Photo{
			{URL: "a.jpg", IsMain: true},
			{URL: "b.jpg"},
			{URL: "c.jpg"},
		}})

	repo := NewPhotoRepository(db)
	target := user.Photos[2].ID

	if err := repo.SetMain(user.ID, target); err != nil {
		t.Fatalf("SetMain: %v", err)
	}

	var mains []models.Photo
	if err := db.Where("user_id = ? AND is_main", user.ID).Find(&mains).Error; err != nil {
		t.Fatalf("query mains: %v", err)
	}
	if len(mains) != 1 || mains[0].ID != target {
		t.Fatalf("mains = %+v, want exactly photo %d", mains, target)
	}

	if err := repo.SetMain(user.ID, 999999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("SetMain with unknown photo: %v, want ErrRecordNotFound", err)
	}

	mains = nil
	if err := db.Where("user_id = ? AND is_main", user.ID).Find(&mains).Error; err != nil {
		t.Fatalf("query mains after rollback: %v", err)
	}
	if len(mains) != 1 || mains[0].ID != target {
		t.Fatalf("failed flip must roll back, mains = %+v", mains)
	}
}
