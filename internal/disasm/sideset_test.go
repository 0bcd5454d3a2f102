package disasm

import (
	"errors"
	"testing"
)

// withTail places a five-bit side-set/delay value on a "set PINS, 0".
func withTail(t uint8) Word {
	return 0xE000 | Word(t&0b11111)<<8
}

func TestDecodeSideset(t *testing.T) {
	tests := []struct {
		name string
		tail uint8
		cfg  SidesetConfig
		want string
	}{
		{name: "no sideset no delay", tail: 0, cfg: SidesetConfig{}, want: ""},
		{name: "delay only", tail: 0b00011, cfg: SidesetConfig{}, want: "[3]"},
		{name: "full delay range", tail: 0b11111, cfg: SidesetConfig{}, want: "[31]"},
		{name: "one bit sideset and delay", tail: 0b10010, cfg: SidesetConfig{Width: 1}, want: "side 1 [2]"},
		{name: "zero sideset treated as absent", tail: 0b00010, cfg: SidesetConfig{Width: 1}, want: "[2]"},
		{name: "two bit sideset", tail: 0b11000, cfg: SidesetConfig{Width: 2}, want: "side 3"},
		{name: "enable bit set", tail: 0b10101, cfg: SidesetConfig{Width: 2, EnablePin: true}, want: "side 1 [1]"},
		{name: "enable bit set with zero value", tail: 0b10000, cfg: SidesetConfig{Width: 2, EnablePin: true}, want: "side 0"},
		{name: "enable bit clear hides value", tail: 0b00100, cfg: SidesetConfig{Width: 2, EnablePin: true}, want: ""},
		{name: "enable bit clear keeps delay", tail: 0b00111, cfg: SidesetConfig{Width: 2, EnablePin: true}, want: "[3]"},
		{name: "enable pin without width", tail: 0b10001, cfg: SidesetConfig{EnablePin: true}, want: "[17]"},
		{name: "width five takes every bit", tail: 0b11111, cfg: SidesetConfig{Width: 5}, want: "side 31"},
		{name: "width five zero", tail: 0, cfg: SidesetConfig{Width: 5}, want: ""},
		{name: "width four with enable", tail: 0b11010, cfg: SidesetConfig{Width: 4, EnablePin: true}, want: "side 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeSideset(withTail(tt.tail), tt.cfg).String()
			if got != tt.want {
				t.Errorf("DecodeSideset(%05b, %+v) = %q, want %q", tt.tail, tt.cfg, got, tt.want)
			}
			// decoding again must give the same text
			if again := DecodeSideset(withTail(tt.tail), tt.cfg).String(); again != got {
				t.Errorf("second decode = %q, first = %q", again, got)
			}
		})
	}
}

func TestSidesetWidthFiveNeverDelays(t *testing.T) {
	cfg := SidesetConfig{Width: 5}
	for tl := uint8(0); tl < 32; tl++ {
		ss := DecodeSideset(withTail(tl), cfg)
		if ss.Delay != 0 {
			t.Fatalf("tail %05b: delay %d with no delay bits", tl, ss.Delay)
		}
		if ss.Value != tl {
			t.Fatalf("tail %05b: value %d", tl, ss.Value)
		}
	}
}

func TestSidesetConfigBits(t *testing.T) {
	tests := []struct {
		cfg     SidesetConfig
		sideset int
		delay   int
	}{
		{SidesetConfig{}, 0, 5},
		{SidesetConfig{EnablePin: true}, 0, 5},
		{SidesetConfig{Width: 1}, 1, 4},
		{SidesetConfig{Width: 1, EnablePin: true}, 2, 3},
		{SidesetConfig{Width: 4, EnablePin: true}, 5, 0},
		{SidesetConfig{Width: 5}, 5, 0},
	}
	for _, tt := range tests {
		sideset, delay := tt.cfg.Bits()
		if sideset != tt.sideset || delay != tt.delay {
			t.Errorf("%+v.Bits() = (%d, %d), want (%d, %d)", tt.cfg, sideset, delay, tt.sideset, tt.delay)
		}
	}
}

func TestSidesetConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SidesetConfig
		wantErr error
	}{
		{name: "zero", cfg: SidesetConfig{}},
		{name: "enable without width", cfg: SidesetConfig{EnablePin: true}},
		{name: "width five", cfg: SidesetConfig{Width: 5}},
		{name: "width four with enable", cfg: SidesetConfig{Width: 4, EnablePin: true}},
		{name: "negative", cfg: SidesetConfig{Width: -1}, wantErr: ErrSidesetWidth},
		{name: "too wide", cfg: SidesetConfig{Width: 6}, wantErr: ErrSidesetWidth},
		{name: "width five with enable", cfg: SidesetConfig{Width: 5, EnablePin: true}, wantErr: ErrSidesetBits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
