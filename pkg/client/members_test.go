package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sefazor/ourmatches-backend/internal/models"
)

func newMembersServer(t *testing.T, requests *int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/members", func(w http.ResponseWriter, r *http.Request) {
		*requests++
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}

		items := []models.MemberResponse{
			{ID: 1, Username: "lisa", PhotoURL: "lisa.jpg"},
			{ID: 2, Username: "todd"},
		}
		header, _ := json.Marshal(models.PaginationHeader{
			CurrentPage: 1, ItemsPerPage: 10, TotalItems: 2, TotalPages: 1,
		})
		w.Header().Set("Pagination", string(header))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	})
	mux.HandleFunc("/api/members/", func(w http.ResponseWriter, r *http.Request) {
		*requests++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    models.MemberResponse{ID: 9, Username: "ruth"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGetMembersMemoizesByParams(t *testing.T) {
	requests := 0
	server := newMembersServer(t, &requests)
	c := NewMembersClient(server.URL, "test-token")

	params := models.NewUserParams()
	params.OrderBy = "created"

	first, err := c.GetMembers(context.Background(), params)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if requests != 1 {
		t.Fatalf("requests = %d, want 1", requests)
	}

	// Same query with a case variant of the sort key shares the cache slot
	params.OrderBy = "Created"
	second, err := c.GetMembers(context.Background(), params)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1 (second call should be cached)", requests)
	}
	if first != second {
		t.Errorf("cached call returned a different page")
	}
	if second.Pagination.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", second.Pagination.TotalItems)
	}
}

func TestGetMembersDifferentPageMisses(t *testing.T) {
	requests := 0
	server := newMembersServer(t, &requests)
	c := NewMembersClient(server.URL, "test-token")

	params := models.NewUserParams()
	if _, err := c.GetMembers(context.Background(), params); err != nil {
		t.Fatalf("page 1: %v", err)
	}

	params.PageNumber = 2
	if _, err := c.GetMembers(context.Background(), params); err != nil {
		t.Fatalf("page 2: %v", err)
	}

	if requests != 2 {
		t.Errorf("requests = %d, want 2", requests)
	}
}

func TestGetMemberServedFromCachedPage(t *testing.T) {
	requests := 0
	server := newMembersServer(t, &requests)
	c := NewMembersClient(server.URL, "test-token")

	if _, err := c.GetMembers(context.Background(), models.NewUserParams()); err != nil {
		t.Fatalf("list: %v", err)
	}

	member, err := c.GetMember(context.Background(), "Lisa")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1 (detail should come from the cached page)", requests)
	}
	if member.Username != "lisa" || member.PhotoURL != "lisa.jpg" {
		t.Errorf("unexpected member: %+v", member)
	}
}

func TestGetMemberFallsBackToServer(t *testing.T) {
	requests := 0
	server := newMembersServer(t, &requests)
	c := NewMembersClient(server.URL, "test-token")

	member, err := c.GetMember(context.Background(), "ruth")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
	if member.Username != "ruth" {
		t.Errorf("Username = %q, want ruth", member.Username)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	requests := 0
	server := newMembersServer(t, &requests)
	c := NewMembersClient(server.URL, "test-token")

	params := models.NewUserParams()
	if _, err := c.GetMembers(context.Background(), params); err != nil {
		t.Fatalf("first: %v", err)
	}

	c.Invalidate()

	if _, err := c.GetMembers(context.Background(), params); err != nil {
		t.Fatalf("after invalidate: %v", err)
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2 after Invalidate", requests)
	}
}

func TestCacheKeyCanonicalizes(t *testing.T) {
	a := models.UserParams{Gender: "Female", OrderBy: "Created"}
	b := models.NewUserParams()
	b.Gender = "female"
	b.OrderBy = "created"

	if cacheKey(a) != cacheKey(b) {
		t.Errorf("cacheKey(%q) != cacheKey(%q)", cacheKey(a), cacheKey(b))
	}

	b.PageNumber = 3
	if cacheKey(a) == cacheKey(b) {
		t.Errorf("different pages must not share a key")
	}
}
