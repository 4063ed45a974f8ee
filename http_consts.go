// Copyright (c) 2021 LabStack, see https://github.com/labstack/echo/blob/master/LICENSE.
// Portions of this code were derived from the Echo project (https://github.com/labstack/echo)
// under the MIT License.

package thrust

// MIME types
const (
	charsetUTF8                    = "charset=utf-8"
	MIMEApplicationJSON            = "application/json"
	MIMEApplicationJSONCharsetUTF8 = MIMEApplicationJSON + "; " + charsetUTF8
	MIMEApplicationForm            = "application/x-www-form-urlencoded"
	MIMETextHTML                   = "text/html"
	MIMETextHTMLCharsetUTF8        = MIMETextHTML + "; " + charsetUTF8
	MIMETextPlain                  = "text/plain"
	MIMETextPlainCharsetUTF8       = MIMETextPlain + "; " + charsetUTF8
	MIMEOctetStream                = "application/octet-stream"
)

// Headers
const (
	HeaderAllow          = "Allow"
	HeaderAuthorization  = "Authorization"
	HeaderContentLength  = "Content-Length"
	HeaderContentType    = "Content-Type"
	HeaderLocation       = "Location"
	HeaderHost           = "Host"
	HeaderServer         = "Server"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-Ip"
	HeaderXRequestID     = "X-Request-Id"
	HeaderXCorrelationID = "X-Correlation-Id"
)
