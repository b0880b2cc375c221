package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
)

const dateFormat = "2006-01-02"

// Cursor marks the last ledger entry of a page. The next page starts strictly after it
// in (date, id) order.
type Cursor struct {
	Date time.Time
	ID   int64
}

// After reports whether an entry with the given date and id sorts after the cursor.
func (c Cursor) After(date time.Time, id int64) bool {
	if !date.Equal(c.Date) {
		return date.After(c.Date)
	}
	return id > c.ID
}

// EncodeToken creates a base64 encoded token from an entry date and id.
func EncodeToken(date time.Time, id int64) string {
	tokenStr := fmt.Sprintf("%s|%d", date.Format(dateFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (base64 decode): %v", apperrors.ErrValidation, err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (split)", apperrors.ErrValidation)
	}

	date, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (date parse): %v", apperrors.ErrValidation, err)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (id parse): %v", apperrors.ErrValidation, err)
	}

	return Cursor{Date: date, ID: id}, nil
}
