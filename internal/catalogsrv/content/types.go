package content

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/mediakite/catalogd/internal/catalogsrv/db/models"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/postgresql"
	"github.com/mediakite/catalogd/internal/common/apperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const (
	defaultLimit = 20
	maxLimit     = 100
)

// pagination is the shared limit/offset contract for every list endpoint.
type pagination struct {
	Limit  int `validate:"min=1,max=100"`
	Offset int `validate:"min=0"`
}

// contentRsp is the wire form of one catalog record. Field names follow the
// import schema; absent attributes serialize as null.
type contentRsp struct {
	ID          string  `json:"id"`
	ShowID      string  `json:"show_id"`
	Type        *string `json:"type"`
	Title       *string `json:"title"`
	Director    *string `json:"director"`
	Cast        *string `json:"cast"`
	Country     *string `json:"country"`
	DateAdded   *string `json:"date_added"`
	ReleaseYear *int    `json:"release_year"`
	Rating      *string `json:"rating"`
	Duration    *string `json:"duration"`
	ListedIn    *string `json:"listed_in"`
	Description *string `json:"description"`
}

func toContentRsp(c *models.Content) *contentRsp {
	rsp := &contentRsp{
		ID:          c.ContentID.String(),
		ShowID:      c.ShowID,
		Type:        nullableString(c.ContentType.String, c.ContentType.Valid),
		Title:       nullableString(c.Title.String, c.Title.Valid),
		Director:    nullableString(c.Director.String, c.Director.Valid),
		Cast:        nullableString(c.CastMembers.String, c.CastMembers.Valid),
		Country:     nullableString(c.Country.String, c.Country.Valid),
		DateAdded:   nullableString(c.DateAdded.String, c.DateAdded.Valid),
		Rating:      nullableString(c.Rating.String, c.Rating.Valid),
		Duration:    nullableString(c.Duration.String, c.Duration.Valid),
		ListedIn:    nullableString(c.Categories.String, c.Categories.Valid),
		Description: nullableString(c.Description.String, c.Description.Valid),
	}
	if c.ReleaseYear.Valid {
		year := int(c.ReleaseYear.Int32)
		rsp.ReleaseYear = &year
	}
	return rsp
}

func toContentListRsp(list []*models.Content) []*contentRsp {
	rsp := make([]*contentRsp, 0, len(list))
	for _, c := range list {
		rsp = append(rsp, toContentRsp(c))
	}
	return rsp
}

func nullableString(s string, valid bool) *string {
	if !valid {
		return nil
	}
	return &s
}

// parsePagination reads limit and offset query parameters, applying defaults
// and bounds.
func parsePagination(r *http.Request) (pagination, apperrors.Error) {
	p := pagination{Limit: defaultLimit, Offset: 0}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, ErrInvalidQuery.Err(errors.Errorf("limit: %q is not an integer", v))
		}
		p.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, ErrInvalidQuery.Err(errors.Errorf("offset: %q is not an integer", v))
		}
		p.Offset = n
	}
	if err := validate.Struct(&p); err != nil {
		return p, ErrInvalidQuery.Err(err)
	}
	return p, nil
}

// parseListFilter reads the optional /content filter parameters together
// with pagination.
func parseListFilter(r *http.Request) (postgresql.ContentFilter, apperrors.Error) {
	p, err := parsePagination(r)
	if err != nil {
		return postgresql.ContentFilter{}, err
	}

	q := r.URL.Query()
	filter := postgresql.ContentFilter{
		ContentType: q.Get("type"),
		Rating:      q.Get("rating"),
		Country:     q.Get("country"),
		Category:    q.Get("category"),
		Title:       q.Get("title"),
		Director:    q.Get("director"),
		Cast:        q.Get("cast"),
		Limit:       p.Limit,
		Offset:      p.Offset,
	}
	if v := q.Get("release_year"); v != "" {
		year, errConv := strconv.Atoi(v)
		if errConv != nil {
			return filter, ErrInvalidQuery.Err(errors.Errorf("release_year: %q is not an integer", v))
		}
		filter.ReleaseYear = &year
	}
	return filter, nil
}
