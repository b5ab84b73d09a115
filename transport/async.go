package transport

import (
	"context"
	"net/http"
)

// AsyncDoer sends one HTTP request without blocking the caller.
type AsyncDoer interface {
	Send(ctx context.Context, req *http.Request) *Future[*http.Response]
}

// AsyncDoerFunc adapts a function to AsyncDoer.
type AsyncDoerFunc func(ctx context.Context, req *http.Request) *Future[*http.Response]

func (f AsyncDoerFunc) Send(ctx context.Context, req *http.Request) *Future[*http.Response] {
	return f(ctx, req)
}

// AsyncClient runs a blocking Doer on its own goroutine per request.
type AsyncClient struct {
	doer Doer
}

var _ AsyncDoer = (*AsyncClient)(nil)

// NewAsyncClient wraps doer; a nil doer uses http.DefaultClient.
func NewAsyncClient(doer Doer) *AsyncClient {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &AsyncClient{doer: doer}
}

func (c *AsyncClient) Send(ctx context.Context, req *http.Request) *Future[*http.Response] {
	f := NewFuture[*http.Response]()
	go func() {
		resp, err := c.doer.Do(req.WithContext(ctx))
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(resp)
	}()
	return f
}
