package words

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
)

// Payload is the TRMNL merge-variable envelope. The display plugin
// receives the four daily entries as one compressed field to stay under
// the plugin payload limit.
type Payload struct {
	MergeVariables MergeVariables `json:"merge_variables"`
}

type MergeVariables struct {
	Compressed string `json:"compressed"`
}

// BuildPayload concatenates each entry's representation and wrapper
// markup, JSON-encodes the list, deflates it and base64s the result.
func BuildPayload(entries []Entry) (Payload, error) {
	combined := make([]string, len(entries))
	for i, e := range entries {
		combined[i] = e.RepresentationHTML + e.WrapperHTML
	}

	raw, err := json.Marshal(combined)
	if err != nil {
		return Payload{}, err
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return Payload{}, err
	}
	if _, err := zw.Write(raw); err != nil {
		return Payload{}, err
	}
	if err := zw.Close(); err != nil {
		return Payload{}, err
	}

	return Payload{
		MergeVariables: MergeVariables{
			Compressed: base64.StdEncoding.EncodeToString(buf.Bytes()),
		},
	}, nil
}
