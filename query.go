// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import "net/url"

// QueryParams returns middleware that parses the request query string and stores the values in the
// [Context], making them available through [Context.QueryParams] to every later middleware. Malformed pairs
// are skipped, as url.ParseQuery does.
func QueryParams() MiddlewareFunc {
	return func(c *Context, next Next) error {
		var raw string
		if req := c.Request(); req != nil && req.URL != nil {
			raw = req.URL.RawQuery
		}
		values, _ := url.ParseQuery(raw)
		c.SetQueryParams(values)
		return next()
	}
}
