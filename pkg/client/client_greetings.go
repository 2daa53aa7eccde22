package client

import (
	"context"
)

type GreetingService struct {
	Options []RequestOption
}

func NewGreetingService(opts ...RequestOption) GreetingService {
	return GreetingService{
		Options: opts,
	}
}

func (r *GreetingService) New(ctx context.Context, name string, opts ...RequestOption) (string, error) {
	cfg := newRequestConfig(append(r.Options, opts...)...)

	body := map[string]string{
		"name": name,
	}

	var result string

	if err := cfg.post(ctx, "/greet", body, &result); err != nil {
		return "", err
	}

	return result, nil
}
