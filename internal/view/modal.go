package view

import "sync"

// Modal is the open/closed state of one dialog instance together with the
// record it was opened for. Closing clears the record.
type Modal[T any] struct {
	mu      sync.Mutex
	open    bool
	payload T
}

func (m *Modal[T]) Open(payload T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	m.payload = payload
}

// Close reports whether the modal was open. Closing a closed modal is a no-op.
func (m *Modal[T]) Close() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	was := m.open
	var zero T
	m.open = false
	m.payload = zero
	return was
}

func (m *Modal[T]) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *Modal[T]) Payload() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payload, m.open
}

// MapDialog is the live map popup for one vehicle. Teardown functions
// registered while it is open run exactly once, on the first Close.
type MapDialog struct {
	modal    Modal[string]
	mu       sync.Mutex
	teardown []func()
}

func NewMapDialog() *MapDialog {
	return &MapDialog{}
}

func (d *MapDialog) Open(vehicleID string, teardown ...func()) {
	d.Close()
	d.mu.Lock()
	d.teardown = append(d.teardown[:0], teardown...)
	d.mu.Unlock()
	d.modal.Open(vehicleID)
}

func (d *MapDialog) VehicleID() (string, bool) {
	return d.modal.Payload()
}

func (d *MapDialog) IsOpen() bool {
	return d.modal.IsOpen()
}

func (d *MapDialog) Close() {
	d.mu.Lock()
	fns := d.teardown
	d.teardown = nil
	d.mu.Unlock()

	d.modal.Close()
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
