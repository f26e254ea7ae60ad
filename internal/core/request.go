// AngelaMos | 2026
// request.go

package core

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// DecodeJSON reads a JSON body into dst. An empty body leaves dst at its
// zero value so handlers report missing fields instead of a parse error.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("decode body: %w", ErrInvalidInput)
	}
	return nil
}
