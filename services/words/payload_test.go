package words

import (
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodePayload(t *testing.T, p Payload) []string {
	raw, err := base64.StdEncoding.DecodeString(p.MergeVariables.Compressed)
	require.NoError(t, err)
	zr, err := zlib.NewReader(strings.NewReader(string(raw)))
	require.NoError(t, err)
	defer zr.Close()
	decompressed, err := io.ReadAll(zr)
	require.NoError(t, err)

	var out []string
	require.NoError(t, json.Unmarshal(decompressed, &out))
	return out
}

func TestBuildPayloadRoundTrip(t *testing.T) {
	payload, err := BuildPayload([]Entry{
		{RepresentationHTML: "<div>読む</div>", WrapperHTML: "<div>to read</div>"},
		{RepresentationHTML: "<div>仰々しい</div>", WrapperHTML: "<div>pompous</div>"},
	})
	require.NoError(t, err)

	require.Equal(t, []string{
		"<div>読む</div><div>to read</div>",
		"<div>仰々しい</div><div>pompous</div>",
	}, decodePayload(t, payload))
}

func TestBuildPayloadEmpty(t *testing.T) {
	payload, err := BuildPayload(nil)
	require.NoError(t, err)
	require.Empty(t, decodePayload(t, payload))
}

func TestBuildPayloadWireShape(t *testing.T) {
	payload, err := BuildPayload([]Entry{{RepresentationHTML: "<div>語</div>", WrapperHTML: "<div>word</div>"}})
	require.NoError(t, err)

	wire, err := json.Marshal(payload)
	require.NoError(t, err)
	require.Contains(t, string(wire), `"merge_variables"`)
	require.Contains(t, string(wire), `"compressed"`)
}
