package export

import (
	"encoding/json"
	"io"

	"github.com/piwi3910/staggergrid/internal/model"
)

// WriteJSON writes the layout as indented JSON.
func WriteJSON(w io.Writer, result model.LayoutResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
