package auth

import "net/http"

// Request is the part of an inbound request an authenticator reads.
type Request interface {
	// Cookie returns the named cookie's value, or false if it is absent or empty.
	Cookie(name string) (string, bool)
	Header(name string) string
}

type httpRequest struct {
	r *http.Request
}

// FromHTTP adapts r to Request. A nil r yields a nil Request.
func FromHTTP(r *http.Request) Request {
	if r == nil {
		return nil
	}
	return httpRequest{r: r}
}

func (h httpRequest) Cookie(name string) (string, bool) {
	c, err := h.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (h httpRequest) Header(name string) string {
	return h.r.Header.Get(name)
}
