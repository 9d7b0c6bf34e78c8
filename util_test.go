package svgmin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertDataURI(t *testing.T, mediatype, data, e string) {
	assert.Equal(t, e, string(DataURI([]byte(mediatype), []byte(data))), "data URIs must match")
}

func TestDataURI(t *testing.T) {
	assertDataURI(t, "text/x", "<?x?>", "data:text/x,%3C?x?%3E")
	assertDataURI(t, "", "text", "data:,text")
	assertDataURI(t, "text/plain", "text", "data:,text")
	assertDataURI(t, "", "=====", "data:,=====")
	assertDataURI(t, "", "a b", "data:,a%20b")
	assertDataURI(t, "", "\x00\x01\x02\x03\x04\x05", "data:;base64,AAECAwQF")
	assertDataURI(t, "image/svg+xml", `<svg/>`, "data:image/svg+xml,%3Csvg/%3E")
}
