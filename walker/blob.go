package walker

import (
	"bytes"
	"io"
)

// readAllLossy reads r fully and replaces any invalid UTF-8 byte
// sequences with the replacement rune, mirroring a lossy string
// decode of a git blob whose encoding is not guaranteed.
func readAllLossy(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.ToValidUTF8(data, []byte("�")), nil
}
