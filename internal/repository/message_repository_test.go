package repository

import (
	"testing"
	"time"

	"github.com/sefazor/ourmatches-backend/internal/models"
)

func TestUnreadForRecipient(t *testing.T) {
	read := time.Now()

	messages := []models.Message{
		{ID: 1, Recipient: models.User{Username: "lisa"}, DateRead: nil},
		{ID: 2, Recipient: models.User{Username: "todd"}, DateRead: nil},
		{ID: 3, Recipient: models.User{Username: "lisa"}, DateRead: &read},
		{ID: 4, Recipient: models.User{Username: "Lisa"}, DateRead: nil},
	}

	unread := UnreadForRecipient(messages, "lisa")

	want := []int{0, 3}
	if len(unread) != len(want) {
		t.Fatalf("unread = %v, want %v", unread, want)
	}
	for i := range want {
		if unread[i] != want[i] {
			t.Errorf("unread[%d] = %d, want %d", i, unread[i], want[i])
		}
	}
}

func TestUnreadForRecipientAllRead(t *testing.T) {
	read := time.Now()
	messages := []models.Message{
		{ID: 1, Recipient: models.User{Username: "lisa"}, DateRead: &read},
		{ID: 2, Recipient: models.User{Username: "lisa"}, DateRead: &read},
	}

	if unread := UnreadForRecipient(messages, "lisa"); len(unread) != 0 {
		t.Errorf("unread = %v, want empty", unread)
	}
}

func TestUnreadForRecipientIgnoresSentMessages(t *testing.T) {
	// Messages lisa sent stay untouched even when the other side never read them
	messages := []models.Message{
		{ID: 1, Sender: models.User{Username: "lisa"}, Recipient: models.User{Username: "todd"}, DateRead: nil},
	}

	if unread := UnreadForRecipient(messages, "lisa"); len(unread) != 0 {
		t.Errorf("unread = %v, want empty", unread)
	}
}
