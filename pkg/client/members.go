package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/sefazor/ourmatches-backend/internal/models"
)

// MemberPage is one cached page of the member listing together with the
// metadata parsed from the Pagination header.
type MemberPage struct {
	Items      []models.MemberResponse
	Pagination models.PaginationHeader
}

// MembersClient is the API client for the member listing. Pages are memoized
// under the canonical serialization of the active params: a repeat call with
// the same filters, sort and window is served from memory without a round
// trip. There is no TTL and no eviction — a profile updated elsewhere keeps
// showing its old listing entry until Invalidate is called. That staleness
// is deliberate; Invalidate exists so write paths can opt in later.
type MembersClient struct {
	baseURL string
	token   string
	client  *http.Client

	mu    sync.Mutex
	cache map[string]*MemberPage
}

func NewMembersClient(baseURL, token string) *MembersClient {
	return &MembersClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{},
		cache:   make(map[string]*MemberPage),
	}
}

// cacheKey canonicalizes the params before serializing them, so case or
// shape variants of the same query ("Created" vs "created", unset page size
// vs explicit 10) share one cache slot.
func cacheKey(params models.UserParams) string {
	p := params
	p.Normalize()
	return strings.Join([]string{
		strconv.Itoa(p.MinAge),
		strconv.Itoa(p.MaxAge),
		p.Gender,
		p.OrderBy,
		strconv.Itoa(p.PageNumber),
		strconv.Itoa(p.PageSize),
	}, "-")
}

func (c *MembersClient) GetMembers(ctx context.Context, params models.UserParams) (*MemberPage, error) {
	key := cacheKey(params)

	c.mu.Lock()
	page, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return page, nil
	}

	query := url.Values{}
	query.Set("minAge", strconv.Itoa(params.MinAge))
	query.Set("maxAge", strconv.Itoa(params.MaxAge))
	if params.Gender != "" {
		query.Set("gender", params.Gender)
	}
	if params.OrderBy != "" {
		query.Set("orderBy", params.OrderBy)
	}
	query.Set("pageNumber", strconv.Itoa(params.PageNumber))
	query.Set("pageSize", strconv.Itoa(params.PageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/members?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("members request failed: %s", resp.Status)
	}

	page = &MemberPage{}
	if err := json.NewDecoder(resp.Body).Decode(&page.Items); err != nil {
		return nil, fmt.Errorf("failed to decode members response: %w", err)
	}

	if header := resp.Header.Get("Pagination"); header != "" {
		if err := json.Unmarshal([]byte(header), &page.Pagination); err != nil {
			return nil, fmt.Errorf("failed to decode pagination header: %w", err)
		}
	}

	c.mu.Lock()
	c.cache[key] = page
	c.mu.Unlock()

	return page, nil
}

// GetMember looks through the cached pages before asking the server — the
// detail view of someone already on a listed page costs nothing.
func (c *MembersClient) GetMember(ctx context.Context, username string) (*models.MemberResponse, error) {
	c.mu.Lock()
	for _, page := range c.cache {
		for i := range page.Items {
			if strings.EqualFold(page.Items[i].Username, username) {
				member := page.Items[i]
				c.mu.Unlock()
				return &member, nil
			}
		}
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/members/"+url.PathEscape(username), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("member %q not found", username)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("member request failed: %s", resp.Status)
	}

	var envelope struct {
		Success bool                  `json:"success"`
		Data    models.MemberResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode member response: %w", err)
	}

	return &envelope.Data, nil
}

// Invalidate drops every cached page.
func (c *MembersClient) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]*MemberPage)
	c.mu.Unlock()
}
