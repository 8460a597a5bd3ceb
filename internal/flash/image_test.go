// internal/flash/image_test.go
package flash

import (
	"errors"
	"testing"

	"github.com/sigurn/crc8"
)

func TestBuilder_WidthLoads(t *testing.T) {
	b := NewBuilder()
	aByte := b.Byte(0xAB)
	aHalf := b.Half(0xBEEF)
	aWord := b.Word(0xDEADBEEF)
	aFloat := b.Float(1.5)
	aAddr := b.Address(aWord)

	img, err := b.Seal()
	if err != nil {
		t.Fatalf("Seal() err=%v", err)
	}

	if aByte != HeaderSize {
		t.Fatalf("first value should start at the header end, got %d", aByte)
	}
	if aHalf%2 != 0 || aWord%4 != 0 {
		t.Fatalf("scalars not naturally aligned: half=%d word=%d", aHalf, aWord)
	}
	if got := img.LoadByte(aByte); got != 0xAB {
		t.Fatalf("LoadByte=%#x", got)
	}
	if got := img.LoadHalf(aHalf); got != 0xBEEF {
		t.Fatalf("LoadHalf=%#x", got)
	}
	if got := img.LoadWord(aWord); got != 0xDEADBEEF {
		t.Fatalf("LoadWord=%#x", got)
	}
	if got := img.LoadFloat(aFloat); got != 1.5 {
		t.Fatalf("LoadFloat=%v", got)
	}
	if got := img.LoadAddr(aAddr); got != aWord {
		t.Fatalf("LoadAddr=%d want %d", got, aWord)
	}

	s := img.Stats()
	if s.Bytes != 1 || s.Halves != 1 || s.Words != 1 || s.Floats != 1 || s.Addrs != 1 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestImage_UnalignedLoads(t *testing.T) {
	b := NewBuilder()
	start := b.Bytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
	img, err := b.Seal()
	if err != nil {
		t.Fatalf("Seal() err=%v", err)
	}

	if got := img.LoadHalf(start + 3); got != 0x0504 {
		t.Fatalf("LoadHalf across words=%#x", got)
	}
	if got := img.LoadWord(start + 1); got != 0x05040302 {
		t.Fatalf("LoadWord unaligned=%#x", got)
	}
}

func TestImage_Copy(t *testing.T) {
	data := []byte("Hello everybody, I'm Bonzo!")
	for align := 0; align < 4; align++ {
		b := NewBuilder()
		b.Bytes(make([]byte, align))
		start := b.Bytes(data)
		img, err := b.Seal()
		if err != nil {
			t.Fatalf("Seal() err=%v", err)
		}

		for n := 0; n <= len(data); n++ {
			dst := make([]byte, n)
			img.Copy(dst, start)
			if string(dst) != string(data[:n]) {
				t.Fatalf("align=%d n=%d got %q", align, n, dst)
			}
		}
	}
}

func TestFromBytes_Validation(t *testing.T) {
	b := NewBuilder()
	b.Bytes([]byte("payload"))
	img, err := b.Seal()
	if err != nil {
		t.Fatalf("Seal() err=%v", err)
	}
	raw := img.Bytes()
	if img.Checksum() != raw[8] || img.Checksum() != crc8.Checksum(raw[HeaderSize:], imageCRC) {
		t.Fatalf("checksum %#x does not match header %#x", img.Checksum(), raw[8])
	}

	if _, err := FromBytes(raw); err != nil {
		t.Fatalf("round trip err=%v", err)
	}

	if _, err := FromBytes(raw[:5]); !errors.Is(err, ErrShortImage) {
		t.Fatalf("expected ErrShortImage, got %v", err)
	}

	bad := append([]byte(nil), raw...)
	bad[0] = 'X'
	if _, err := FromBytes(bad); !errors.Is(err, ErrMagic) {
		t.Fatalf("expected ErrMagic, got %v", err)
	}

	bad = append([]byte(nil), raw...)
	bad[HeaderSize] ^= 0xFF
	if _, err := FromBytes(bad); !errors.Is(err, ErrChecksum) {
		t.Fatalf("expected ErrChecksum, got %v", err)
	}

	if _, err := FromBytes(raw[:len(raw)-1]); !errors.Is(err, ErrShortImage) {
		t.Fatalf("expected ErrShortImage for truncated payload, got %v", err)
	}
}

func TestBuilder_PatchWord(t *testing.T) {
	b := NewBuilder()
	slot := b.Reserve(4)
	b.PatchWord(slot, 42)
	img, err := b.Seal()
	if err != nil {
		t.Fatalf("Seal() err=%v", err)
	}
	if got := img.LoadWord(slot); got != 42 {
		t.Fatalf("patched word=%d", got)
	}
}

func TestBuilder_UseAfterSealPanics(t *testing.T) {
	b := NewBuilder()
	if _, err := b.Seal(); err != nil {
		t.Fatalf("Seal() err=%v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	b.Byte(1)
}
