// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net/http"
)

// Decode parses a raw HTTP/1.x request. It returns a nil request and a nil error when buf does not hold a
// complete request yet (more bytes are needed), and an error when the request is malformed. The body of a
// decoded request is fully buffered. Bare LF line endings are accepted.
func Decode(buf []byte) (*http.Request, error) {
	if !bytes.Contains(buf, []byte("\n\r\n")) && !bytes.Contains(buf, []byte("\n\n")) {
		// The header block is not terminated yet.
		return nil, nil
	}

	req, err := http.ReadRequest(bufio.NewReader(bytes.NewReader(buf)))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, nil
		}
		return nil, err
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, nil
		}
		return nil, err
	}
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
	return req, nil
}
