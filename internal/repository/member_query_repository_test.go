package repository

import (
	"testing"

	"github.com/sefazor/ourmatches-backend/internal/models"
)

func joinRow(userID uint, username string, photo *models.Photo) memberJoinRow {
	return memberJoinRow{
		User:  models.User{ID: userID, Username: username},
		Photo: photo,
	}
}

func TestFoldMemberRowsGroupsPhotos(t *testing.T) {
	rows := []memberJoinRow{
		joinRow(1, "lisa", &models.Photo{ID: 10, UserID: 1, URL: "lisa-1.jpg", IsMain: true}),
		joinRow(1, "lisa", &models.Photo{ID: 11, UserID: 1, URL: "lisa-2.jpg"}),
		joinRow(2, "todd", &models.Photo{ID: 12, UserID: 2, URL: "todd-1.jpg", IsMain: true}),
	}

	members := foldMemberRows(rows)

	if len(members) != 2 {
		t.Fatalf("members = %d, want 2", len(members))
	}
	if len(members[0].Photos) != 2 {
		t.Errorf("lisa photos = %d, want 2", len(members[0].Photos))
	}
	if len(members[1].Photos) != 1 {
		t.Errorf("todd photos = %d, want 1", len(members[1].Photos))
	}
	if members[0].PhotoURL != "lisa-1.jpg" {
		t.Errorf("lisa PhotoURL = %q, want main photo", members[0].PhotoURL)
	}
	if members[1].PhotoURL != "todd-1.jpg" {
		t.Errorf("todd PhotoURL = %q, want main photo", members[1].PhotoURL)
	}
}

func TestFoldMemberRowsPreservesRowOrder(t *testing.T) {
	rows := []memberJoinRow{
		joinRow(5, "eve", nil),
		joinRow(3, "bob", nil),
		joinRow(9, "amy", nil),
	}

	members := foldMemberRows(rows)

	want := []string{"eve", "bob", "amy"}
	if len(members) != len(want) {
		t.Fatalf("members = %d, want %d", len(members), len(want))
	}
	for i, username := range want {
		if members[i].Username != username {
			t.Errorf("members[%d] = %q, want %q", i, members[i].Username, username)
		}
	}
}

func TestFoldMemberRowsUserWithoutPhotos(t *testing.T) {
	// LEFT JOIN produces a single row with a nil photo for photo-less users
	rows := []memberJoinRow{
		joinRow(1, "lisa", &models.Photo{ID: 10, UserID: 1, URL: "lisa-1.jpg", IsMain: true}),
		joinRow(2, "todd", nil),
	}

	members := foldMemberRows(rows)

	if len(members) != 2 {
		t.Fatalf("members = %d, want 2", len(members))
	}
	if len(members[1].Photos) != 0 {
		t.Errorf("todd photos = %d, want 0", len(members[1].Photos))
	}
	if members[1].PhotoURL != "" {
		t.Errorf("todd PhotoURL = %q, want empty", members[1].PhotoURL)
	}
}

func TestFoldMemberRowsEmpty(t *testing.T) {
	if members := foldMemberRows(nil); len(members) != 0 {
		t.Errorf("members = %d, want 0", len(members))
	}
}

func TestFoldMemberRowsNonMainPhotoDoesNotSetURL(t *testing.T) {
	rows := []memberJoinRow{
		joinRow(1, "lisa", &models.Photo{ID: 10, UserID: 1, URL: "lisa-1.jpg", IsMain: false}),
	}

	members := foldMemberRows(rows)

	if members[0].PhotoURL != "" {
		t.Errorf("PhotoURL = %q, want empty when no photo is main", members[0].PhotoURL)
	}
	if len(members[0].Photos) != 1 {
		t.Errorf("photos = %d, want 1", len(members[0].Photos))
	}
}
