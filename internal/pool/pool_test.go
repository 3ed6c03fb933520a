package pool

import "testing"

func TestPoolGetPut(t *testing.T) {
	constructed := 0
	p := New(func() *[]byte {
		constructed++
		b := make([]byte, 16)
		return &b
	})

	b := p.Get()
	if len(*b) != 16 {
		t.Fatalf("expected 16-byte buffer, got %d", len(*b))
	}
	if constructed != 1 {
		t.Fatalf("expected 1 construction, got %d", constructed)
	}

	p.Put(b)
	_ = p.Get() // may or may not reuse; must not panic
}
