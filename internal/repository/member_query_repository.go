package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sefazor/ourmatches-backend/internal/models"
)

// MemberQueryRepository is the hand-written SQL route of the member listing.
// It runs against the same tables as UserRepository but builds its own join
// statement and hydrates the one-to-many photo rows itself. For the same
// params both routes must return the same members in the same order with the
// same total count.
type MemberQueryRepository struct {
	pool *pgxpool.Pool
}

func NewMemberQueryRepository(pool *pgxpool.Pool) *MemberQueryRepository {
	return &MemberQueryRepository{pool: pool}
}

const memberColumns = `u.id, u.username, u.known_as, u.date_of_birth, u.gender,
		u.introduction, u.looking_for, u.interests, u.city, u.country,
		u.created, u.last_active,
		p.id, p.url, p.is_main`

// memberJoinRow is one row of the users×photos join. Photo is nil when the
// user has no photos (LEFT JOIN).
type memberJoinRow struct {
	User  models.User
	Photo *models.Photo
}

func (r *MemberQueryRepository) GetMembers(ctx context.Context, params models.UserParams) (*models.PagedResult[models.MemberResponse], error) {
	minDob, maxDob := params.DateOfBirthWindow(models.Today())

	// orderCol comes from the fixed allow-list in models.UserParams, never
	// from raw user input.
	orderCol := params.OrderColumn()

	countSQL := `
		SELECT COUNT(id) FROM users
		WHERE username != $1
		  AND ($2 = '' OR gender = $2)
		  AND date_of_birth > $3 AND date_of_birth <= $4`

	var totalCount int64
	err := r.pool.QueryRow(ctx, countSQL,
		params.CurrentUsername, params.Gender, minDob, maxDob,
	).Scan(&totalCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	// The window is applied to users before the photo join so a page holds
	// PageSize users, not PageSize joined rows.
	querySQL := fmt.Sprintf(`
		SELECT %s
		FROM (
			SELECT * FROM users
			WHERE username != $1
			  AND ($2 = '' OR gender = $2)
			  AND date_of_birth > $3 AND date_of_birth <= $4
			ORDER BY %s DESC, id DESC
			LIMIT $5 OFFSET $6
		) u
		LEFT JOIN photos p ON p.user_id = u.id
		ORDER BY u.%s DESC, u.id DESC, p.id`,
		memberColumns, orderCol, orderCol)

	rows, err := r.pool.Query(ctx, querySQL,
		params.CurrentUsername, params.Gender, minDob, maxDob,
		params.PageSize, params.Offset(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	joined, err := scanMemberRows(rows)
	if err != nil {
		return nil, err
	}

	members := foldMemberRows(joined)
	if members == nil {
		members = []models.MemberResponse{}
	}

	return models.NewPagedResult(members, totalCount, params.PageNumber, params.PageSize), nil
}

// GetMember hydrates a single member through the same join statement.
func (r *MemberQueryRepository) GetMember(ctx context.Context, username string) (*models.MemberResponse, error) {
	querySQL := fmt.Sprintf(`
		SELECT %s
		FROM users u
		LEFT JOIN photos p ON p.user_id = u.id
		WHERE LOWER(u.username) = LOWER($1)
		ORDER BY p.id`, memberColumns)

	rows, err := r.pool.Query(ctx, querySQL, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query member: %w", err)
	}
	defer rows.Close()

	joined, err := scanMemberRows(rows)
	if err != nil {
		return nil, err
	}

	members := foldMemberRows(joined)
	if len(members) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &members[0], nil
}

// UpdateProfile is the raw-SQL profile update. Returns ErrNoRows when the
// username matches nothing, so a vanished user surfaces instead of a silent
// no-op.
func (r *MemberQueryRepository) UpdateProfile(ctx context.Context, username string, req models.UpdateProfileRequest) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET introduction = $1,
		    looking_for = $2,
		    interests = $3,
		    city = $4,
		    country = $5
		WHERE LOWER(username) = LOWER($6)`,
		req.Introduction, req.LookingFor, req.Interests, req.City, req.Country, username,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanMemberRows(rows pgx.Rows) ([]memberJoinRow, error) {
	var joined []memberJoinRow
	for rows.Next() {
		var row memberJoinRow
		var photoID *uint
		var photoURL *string
		var photoIsMain *bool

		err := rows.Scan(
			&row.User.ID, &row.User.Username, &row.User.KnownAs,
			&row.User.DateOfBirth, &row.User.Gender,
			&row.User.Introduction, &row.User.LookingFor, &row.User.Interests,
			&row.User.City, &row.User.Country,
			&row.User.Created, &row.User.LastActive,
			&photoID, &photoURL, &photoIsMain,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}

		if photoID != nil {
			row.Photo = &models.Photo{
				ID:     *photoID,
				UserID: row.User.ID,
				URL:    *photoURL,
				IsMain: *photoIsMain,
			}
		}
		joined = append(joined, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return joined, nil
}

// foldMemberRows groups ordered joined rows into members, keyed by user id,
// preserving first-seen order. Every photo row is appended to its owner; the
// main photo also fills the flattened PhotoURL field.
func foldMemberRows(rows []memberJoinRow) []models.MemberResponse {
	index := make(map[uint]int)
	var members []models.MemberResponse

	for i := range rows {
		row := &rows[i]
		at, seen := index[row.User.ID]
		if !seen {
			members = append(members, models.MemberFromUser(&row.User))
			at = len(members) - 1
			index[row.User.ID] = at
		}
		if row.Photo != nil {
			members[at].Photos = append(members[at].Photos, models.PhotoResponseFrom(*row.Photo))
			if row.Photo.IsMain {
				members[at].PhotoURL = row.Photo.URL
			}
		}
	}

	return members
}
