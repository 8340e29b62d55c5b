package worker

import (
	"context"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockClickHouseConn implements driver.Conn for testing. It records every
// row appended through batches it hands out.
type MockClickHouseConn struct {
	driver.Conn

	mu      sync.Mutex
	Rows    [][]interface{}
	Sends   int
	SendErr error
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	return &MockBatch{conn: m}, nil
}

func (m *MockClickHouseConn) AppendedRows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Rows)
}

func (m *MockClickHouseConn) SendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Sends
}

type MockBatch struct {
	conn *MockClickHouseConn
}

func (b *MockBatch) IsSent() bool {
	return false
}

func (b *MockBatch) Rows() int {
	return 0
}

func (b *MockBatch) Append(v ...interface{}) error {
	b.conn.mu.Lock()
	defer b.conn.mu.Unlock()
	b.conn.Rows = append(b.conn.Rows, v)
	return nil
}

func (b *MockBatch) AppendStruct(v interface{}) error {
	return nil
}

func (b *MockBatch) Column(int) driver.BatchColumn {
	return nil
}

func (b *MockBatch) Send() error {
	b.conn.mu.Lock()
	defer b.conn.mu.Unlock()
	b.conn.Sends++
	return b.conn.SendErr
}

func (b *MockBatch) Flush() error {
	return nil
}

func (b *MockBatch) Abort() error {
	return nil
}
