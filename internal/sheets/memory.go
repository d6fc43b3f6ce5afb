package sheets

import (
	"context"
	"fmt"
	"sync"
)

// MemoryClient keeps spreadsheets in process. Used for demos and tests.
type MemoryClient struct {
	mu     sync.RWMutex
	books  map[string]map[string][][]string
	orders map[string][]string
}

// NewMemoryClient creates an empty in-memory backend
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		books:  make(map[string]map[string][][]string),
		orders: make(map[string][]string),
	}
}

// Seed replaces a worksheet's contents, creating it if needed. values[0] is the header.
func (m *MemoryClient) Seed(spreadsheetID, worksheet string, values [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	book, ok := m.books[spreadsheetID]
	if !ok {
		book = make(map[string][][]string)
		m.books[spreadsheetID] = book
	}
	if _, exists := book[worksheet]; !exists {
		m.orders[spreadsheetID] = append(m.orders[spreadsheetID], worksheet)
	}
	book[worksheet] = copyValues(values)
}

func (m *MemoryClient) Worksheets(_ context.Context, spreadsheetID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.orders[spreadsheetID]...), nil
}

func (m *MemoryClient) Values(_ context.Context, spreadsheetID, worksheet string) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values, err := m.worksheet(spreadsheetID, worksheet)
	if err != nil {
		return nil, err
	}
	return copyValues(values), nil
}

func (m *MemoryClient) AppendRow(_ context.Context, spreadsheetID, worksheet string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	values, err := m.worksheet(spreadsheetID, worksheet)
	if err != nil {
		return err
	}
	m.books[spreadsheetID][worksheet] = append(values, append([]string(nil), row...))
	return nil
}

func (m *MemoryClient) UpdateCells(_ context.Context, spreadsheetID, worksheet string, row int, cells map[int]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	values, err := m.worksheet(spreadsheetID, worksheet)
	if err != nil {
		return err
	}
	idx := row + 1
	if row < 0 || idx >= len(values) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	for col, v := range cells {
		for len(values[idx]) <= col {
			values[idx] = append(values[idx], "")
		}
		values[idx][col] = v
	}
	return nil
}

func (m *MemoryClient) DeleteRow(_ context.Context, spreadsheetID, worksheet string, row int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	values, err := m.worksheet(spreadsheetID, worksheet)
	if err != nil {
		return err
	}
	idx := row + 1
	if row < 0 || idx >= len(values) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	m.books[spreadsheetID][worksheet] = append(values[:idx], values[idx+1:]...)
	return nil
}

// caller holds mu
func (m *MemoryClient) worksheet(spreadsheetID, worksheet string) ([][]string, error) {
	values, ok := m.books[spreadsheetID][worksheet]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorksheetNotFound, worksheet)
	}
	return values, nil
}

func copyValues(values [][]string) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = append([]string(nil), row...)
	}
	return out
}
