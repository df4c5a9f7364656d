package models

import (
	"database/sql"

	"github.com/google/uuid"
)

/*
    Column     |          Type            | Collation | Nullable |      Default
---------------+--------------------------+-----------+----------+--------------------
 content_id    | uuid                     |           | not null | uuid_generate_v4()
 seq           | bigint                   |           | not null | generated always as identity
 show_id       | character varying(32)    |           | not null |
 content_type  | character varying(16)    |           |          |
 title         | character varying(512)   |           |          |
 director      | text                     |           |          |
 cast_members  | text                     |           |          |
 country       | character varying(512)   |           |          |
 date_added    | character varying(32)    |           |          |
 release_year  | integer                  |           |          |
 rating        | character varying(16)    |           |          |
 duration      | character varying(32)    |           |          |
 categories    | text                     |           |          |
 description   | text                     |           |          |

 Unique index on show_id. seq preserves insertion order for pagination.
*/

// Content model definition. Multi-valued fields (cast_members, country,
// categories) hold comma-joined token lists.
type Content struct {
	ContentID   uuid.UUID      `db:"content_id"`
	ShowID      string         `db:"show_id"`
	ContentType sql.NullString `db:"content_type"`
	Title       sql.NullString `db:"title"`
	Director    sql.NullString `db:"director"`
	CastMembers sql.NullString `db:"cast_members"`
	Country     sql.NullString `db:"country"`
	DateAdded   sql.NullString `db:"date_added"`
	ReleaseYear sql.NullInt32  `db:"release_year"`
	Rating      sql.NullString `db:"rating"`
	Duration    sql.NullString `db:"duration"`
	Categories  sql.NullString `db:"categories"`
	Description sql.NullString `db:"description"`
}

// RatingCount is one row of the by-rating statistics.
type RatingCount struct {
	Rating string `json:"rating"`
	Count  int    `json:"count"`
}
