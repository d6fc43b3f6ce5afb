package sheets

import (
	"context"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
)

type cacheEntry struct {
	values  [][]string
	titles  []string
	fetched time.Time
}

// CachedClient serves reads from memory for ttl and drops the cache after
// every successful write, so a mutation is always followed by a fresh read.
type CachedClient struct {
	next Client
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCachedClient wraps next with a time-boxed read cache
func NewCachedClient(next Client, ttl time.Duration) *CachedClient {
	return &CachedClient{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func valuesKey(spreadsheetID, worksheet string) string { return spreadsheetID + "\x00" + worksheet }
func titlesKey(spreadsheetID string) string            { return spreadsheetID + "\x00" }

func (c *CachedClient) lookup(key string) (cacheEntry, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().Sub(e.fetched) >= c.ttl {
		return cacheEntry{}, false
	}
	return e, true
}

func (c *CachedClient) store(key string, e cacheEntry) {
	e.fetched = c.now()
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

func (c *CachedClient) Worksheets(ctx context.Context, spreadsheetID string) ([]string, error) {
	key := titlesKey(spreadsheetID)
	if e, ok := c.lookup(key); ok {
		return append([]string(nil), e.titles...), nil
	}
	titles, err := c.next.Worksheets(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}
	c.store(key, cacheEntry{titles: titles})
	return append([]string(nil), titles...), nil
}

func (c *CachedClient) Values(ctx context.Context, spreadsheetID, worksheet string) ([][]string, error) {
	key := valuesKey(spreadsheetID, worksheet)
	if e, ok := c.lookup(key); ok {
		return copyValues(e.values), nil
	}
	values, err := c.next.Values(ctx, spreadsheetID, worksheet)
	if err != nil {
		return nil, err
	}
	c.store(key, cacheEntry{values: values})
	return copyValues(values), nil
}

func (c *CachedClient) AppendRow(ctx context.Context, spreadsheetID, worksheet string, row []string) error {
	if err := c.next.AppendRow(ctx, spreadsheetID, worksheet, row); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

func (c *CachedClient) UpdateCells(ctx context.Context, spreadsheetID, worksheet string, row int, cells map[int]string) error {
	if err := c.next.UpdateCells(ctx, spreadsheetID, worksheet, row, cells); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

func (c *CachedClient) DeleteRow(ctx context.Context, spreadsheetID, worksheet string, row int) error {
	if err := c.next.DeleteRow(ctx, spreadsheetID, worksheet, row); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// Invalidate drops every cached read
func (c *CachedClient) Invalidate() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
	logger.Debugf("sheet cache cleared (%d entries)", n)
}
