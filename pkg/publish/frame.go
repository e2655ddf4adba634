package publish

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/raktar-project/raktar/pkg/apperr"
)

// ParseFrame splits a publish request body into its metadata and archive
// frames. The wire format is little-endian:
//
//	u32 metadata_len | metadata JSON | u32 archive_len | archive bytes
//
// Anything after the archive frame is ignored. A short read anywhere is a
// bad request.
func ParseFrame(body []byte) (metadata, archive []byte, err error) {
	r := bytes.NewReader(body)

	metadata, err = readFrame(r)
	if err != nil {
		return nil, nil, apperr.BadRequest("malformed publish request: truncated metadata frame")
	}
	archive, err = readFrame(r)
	if err != nil {
		return nil, nil, apperr.BadRequest("malformed publish request: truncated crate frame")
	}

	return metadata, archive, nil
}

func readFrame(r *bytes.Reader) ([]byte, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, err
	}
	// Refuse to allocate more than the body can possibly hold.
	if int64(length) > int64(r.Len()) {
		return nil, io.ErrUnexpectedEOF
	}

	frame := make([]byte, length)
	if _, err := io.ReadFull(r, frame); err != nil {
		return nil, err
	}
	return frame, nil
}
