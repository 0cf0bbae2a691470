package models

import (
	"strings"
	"time"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50

	DefaultMinAge = 18
	DefaultMaxAge = 150
)

// Message containers
const (
	ContainerInbox  = "Inbox"
	ContainerOutbox = "Outbox"
	// anything else means the unread view
)

// Like predicates
const (
	PredicateLiked   = "liked"
	PredicateLikedBy = "likedBy"
)

type PageParams struct {
	PageNumber int `query:"pageNumber"`
	PageSize   int `query:"pageSize"`
}

func (p *PageParams) Normalize() {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset is the number of rows skipped before the requested window.
func (p PageParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// UserParams are the raw member-listing filters. CurrentUsername and the
// gender default are filled in by the service before either query engine
// sees the params.
type UserParams struct {
	PageParams
	MinAge          int    `query:"minAge"`
	MaxAge          int    `query:"maxAge"`
	Gender          string `query:"gender"`
	OrderBy         string `query:"orderBy"`
	CurrentUsername string `query:"-"`
}

func NewUserParams() UserParams {
	return UserParams{
		PageParams: PageParams{PageNumber: 1, PageSize: DefaultPageSize},
		MinAge:     DefaultMinAge,
		MaxAge:     DefaultMaxAge,
	}
}

func (p *UserParams) Normalize() {
	p.PageParams.Normalize()
	if p.MinAge <= 0 {
		p.MinAge = DefaultMinAge
	}
	if p.MaxAge <= 0 {
		p.MaxAge = DefaultMaxAge
	}
	p.Gender = strings.ToLower(p.Gender)
	p.OrderBy = strings.ToLower(p.OrderBy)
}

// OppositeGender backs the default member filter: with no explicit gender a
// requester sees the opposite gender.
func OppositeGender(gender string) string {
	if strings.ToLower(gender) == "male" {
		return "female"
	}
	return "male"
}

// Today is midnight of the current local date. Both query engines compute
// the date-of-birth window against the same day boundary.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// DateOfBirthWindow converts the age bounds into a date-of-birth range. The
// extra year on the max-age side keeps users who have not yet had this year's
// birthday inside "age MaxAge". Candidates qualify when
// minDob < dateOfBirth <= maxDob: strict on the old side so someone turning
// MaxAge+1 today is out, inclusive on the young side so someone turning
// MinAge today is in. Both query engines apply exactly this window.
func (p UserParams) DateOfBirthWindow(today time.Time) (minDob, maxDob time.Time) {
	minDob = today.AddDate(-p.MaxAge-1, 0, 0)
	maxDob = today.AddDate(-p.MinAge, 0, 0)
	return minDob, maxDob
}

// orderColumns is the only place a sort key turns into a column name. User
// input never reaches SQL: unknown keys fall back to last_active, silently,
// to match the behavior clients already depend on.
var orderColumns = map[string]string{
	"created": "created",
}

const defaultOrderColumn = "last_active"

// OrderColumn resolves the requested sort key to a column from a fixed
// allow-list. Both query engines order by this column DESC with id DESC as
// the deterministic tie-break.
func (p UserParams) OrderColumn() string {
	if col, ok := orderColumns[strings.ToLower(p.OrderBy)]; ok {
		return col
	}
	return defaultOrderColumn
}

type LikesParams struct {
	PageParams
	Predicate string `query:"predicate"`
	UserID    uint   `query:"-"`
}

func (p *LikesParams) Normalize() {
	p.PageParams.Normalize()
}

type MessageParams struct {
	PageParams
	Container string `query:"container"`
	Username  string `query:"-"`
}

func (p *MessageParams) Normalize() {
	p.PageParams.Normalize()
}
