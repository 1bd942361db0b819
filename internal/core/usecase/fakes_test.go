package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"listing-site/internal/core/domain"
)

type feedResponse struct {
	body    string
	err     error
	started chan struct{} // закрывается, когда Fetch начался
	release chan struct{} // Fetch ждет, пока канал не закроют
}

type fakeFeed struct {
	mu        sync.Mutex
	responses []feedResponse
	calls     int
}

func (f *fakeFeed) Fetch(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	if len(f.responses) == 0 {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: no scripted response", domain.ErrFeedUnavailable)
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	f.calls++
	f.mu.Unlock()

	if resp.started != nil {
		close(resp.started)
	}
	if resp.release != nil {
		select {
		case <-resp.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return []byte(resp.body), nil
}

func (f *fakeFeed) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type memoryCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.deletes++
	return nil
}

func (c *memoryCache) put(key string, at time.Time, body string) {
	blob, err := json.Marshal(domain.NewCacheEntry(at, []byte(body)))
	if err != nil {
		panic(err)
	}
	_ = c.Set(context.Background(), key, blob)
}

func feedWithCodes(codes ...string) string {
	type rec map[string]string
	data := make([]rec, len(codes))
	for i, c := range codes {
		data[i] = rec{domain.FieldCode: c, domain.FieldPriceFull: fmt.Sprintf("%d", (i+1)*100)}
	}
	body, _ := json.Marshal(map[string]interface{}{
		"data": data,
		"filterOptions": map[string][]string{
			"DU_AN": {" Sun ", "", "Moon"},
		},
	})
	return string(body)
}
