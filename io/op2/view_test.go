package op2

import "testing"

func TestViewAsRejectsUnalignedLength(t *testing.T) {
	v := newByteView([]byte{1, 2, 3, 4, 5}, 0, 5, AlignUnaligned)
	if _, err := As[int32](v); err == nil {
		t.Fatalf("expected error for a 5-byte window reinterpreted as int32")
	}
}

func TestViewAtDecodesLittleEndian(t *testing.T) {
	raw := []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}
	v := newByteView(raw, 0, 8, AlignMaybe)
	iv, err := As[int32](v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv.Len() != 2 {
		t.Fatalf("len = %d, want 2", iv.Len())
	}
	a, err := iv.At(0)
	if err != nil || a != 1 {
		t.Fatalf("At(0) = %d, err %v", a, err)
	}
	b, err := iv.At(1)
	if err != nil || b != 2 {
		t.Fatalf("At(1) = %d, err %v", b, err)
	}
	if _, err := iv.At(2); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestViewTryAlignedRespectsUnaligned(t *testing.T) {
	raw := []byte{0, 0, 0, 0}
	unaligned := newByteView(raw, 0, 4, AlignUnaligned)
	uv, _ := As[int32](unaligned)
	if _, ok := uv.TryAligned(0); ok {
		t.Fatalf("TryAligned should report false for an Unaligned view")
	}

	maybe := newByteView(raw, 0, 4, AlignMaybe)
	mv, _ := As[int32](maybe)
	if _, ok := mv.TryAligned(0); !ok {
		t.Fatalf("TryAligned should succeed for a naturally aligned offset")
	}
}
