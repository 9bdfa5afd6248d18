package pagination

import (
	"encoding/base64"
	"encoding/json"
	"strconv"

	"gorm.io/gorm"
)

type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size,default=10" validate:"gte=1,lte=250"` // Min 1, Max 250
}

type Cursor struct {
	ID        string `json:"id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token"`
	HasMore       bool   `json:"has_more"`
}

func EncodeCursor(data Cursor) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

func DecodeCursor(data string) (*Cursor, error) {
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}

	var cursor Cursor
	if err := json.Unmarshal(b, &cursor); err != nil {
		return nil, err
	}

	return &cursor, nil
}

// Apply adds keyset conditions for a newest-first listing ordered by
// (created_at desc, id desc) and fetches one extra row so callers can
// detect whether more pages exist.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	size := p.PageSize
	if size <= 0 {
		size = 10
	}
	if size > 250 {
		size = 250
	}
	if p.PageToken != "" {
		cursor, err := DecodeCursor(p.PageToken)
		if err == nil && cursor != nil && cursor.ID != "" {
			// IDs are snowflakes, so they order the same way as
			// (created_at, id) without dialect-specific time handling.
			if id, perr := strconv.ParseInt(cursor.ID, 10, 64); perr == nil {
				stmt = stmt.Where("id < ?", id)
			}
		}
	}
	return stmt.Limit(size + 1)
}

func BuildCursorPageInfo[T any](data []*T, limit int, extractCursor func(*T) string) *PageInfo {
	if len(data) == 0 {
		return &PageInfo{HasMore: false}
	}

	hasMore := false
	if len(data) > limit {
		hasMore = true
		data = data[:limit]
	}

	return &PageInfo{
		HasMore:       hasMore,
		NextPageToken: extractCursor(data[len(data)-1]),
	}
}
