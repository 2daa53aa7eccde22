package header

import "net/http"

func WithUserHeader(val string) Option {
	return func(p *Provider) {
		p.userHeader = http.CanonicalHeaderKey(val)
	}
}

func WithEmailHeader(val string) Option {
	return func(p *Provider) {
		p.emailHeader = http.CanonicalHeaderKey(val)
	}
}
