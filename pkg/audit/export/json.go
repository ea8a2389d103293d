package export

import (
	"context"
	"encoding/json"
	"io"

	"verity-hq/scrivener/pkg/audit"
)

// JSONExporter exports audit bundles as JSON.
type JSONExporter struct {
	// Pretty enables indented output.
	Pretty bool
}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{Pretty: pretty}
}

// Export writes bundles to w as a JSON array (or a single object for one
// bundle).
func (e *JSONExporter) Export(ctx context.Context, bundles []*audit.Bundle, w io.Writer) error {
	if len(bundles) == 0 {
		_, err := w.Write([]byte("[]"))
		return err
	}

	var payload interface{} = bundles
	if len(bundles) == 1 {
		payload = bundles[0]
	}

	var data []byte
	var err error
	if e.Pretty {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return audit.NewExportError("json", len(bundles), err)
	}

	if _, err := w.Write(data); err != nil {
		return audit.NewExportError("json", len(bundles), err)
	}
	return nil
}
