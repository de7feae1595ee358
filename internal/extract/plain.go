package extract

import "unicode/utf8"

func extractPlain(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", decodeErr("content is not valid UTF-8")
	}
	return string(content), nil
}
