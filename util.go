package svgmin

import (
	"bytes"
	"encoding/base64"
)

const hexDigits = "0123456789ABCDEF"

// DataURI encodes data in the shortest data URI, either base64 or percent-encoded. Specifications: https://www.ietf.org/rfc/rfc2397.txt.
func DataURI(mediatype, data []byte) []byte {
	base64Len := len(";base64") + base64.StdEncoding.EncodedLen(len(data))
	asciiLen := len(data)
	for _, c := range data {
		if !uriSafe(c) {
			asciiLen += 2
		}
		if base64Len < asciiLen {
			break
		}
	}

	if bytes.HasPrefix(mediatype, []byte("text/plain")) {
		mediatype = mediatype[len("text/plain"):]
	}
	uri := make([]byte, 0, len("data:")+len(mediatype)+1+asciiLen)
	uri = append(uri, "data:"...)
	uri = append(uri, mediatype...)
	if base64Len < asciiLen {
		uri = append(uri, ";base64,"...)
		n := len(uri)
		uri = append(uri, make([]byte, base64.StdEncoding.EncodedLen(len(data)))...)
		base64.StdEncoding.Encode(uri[n:], data)
		return uri
	}
	uri = append(uri, ',')
	for _, c := range data {
		if uriSafe(c) {
			uri = append(uri, c)
		} else {
			uri = append(uri, '%', hexDigits[c>>4], hexDigits[c&15])
		}
	}
	return uri
}

// uriSafe is true for bytes that can appear unescaped in a data URI inside an attribute value.
func uriSafe(c byte) bool {
	if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' {
		return true
	}
	switch c {
	case '-', '_', '.', '~', '/', ':', '=', ';', ',', '!', '*', '(', ')', '\'', '?', '@':
		return true
	}
	return false
}
