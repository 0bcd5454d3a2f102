package disasm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Bits 12-8 of every instruction are split between side-set and delay.
const tailBits = 5

var (
	// ErrSidesetWidth is returned for a side-set width outside [0, 5].
	ErrSidesetWidth = errors.New("sideset width out of range")
	// ErrSidesetBits is returned when width plus the enable bit exceeds
	// the five available bits.
	ErrSidesetBits = errors.New("sideset width and enable bit exceed 5 bits")
)

// SidesetConfig describes how the side-set/delay bits are shared. It is
// fixed for a whole program (PINCTRL_SIDESET_COUNT and EXECCTRL_SIDE_EN).
type SidesetConfig struct {
	Width     int  `json:"width"`
	EnablePin bool `json:"enablePin"`
}

// Validate checks the configuration against the five available bits.
func (c SidesetConfig) Validate() error {
	if c.Width < 0 || c.Width > tailBits {
		return fmt.Errorf("%w: %d", ErrSidesetWidth, c.Width)
	}
	if c.Width > 0 && c.EnablePin && c.Width+1 > tailBits {
		return fmt.Errorf("%w: width %d with enable bit", ErrSidesetBits, c.Width)
	}
	return nil
}

// Bits returns how many tail bits go to side-set (enable bit included)
// and how many remain for delay.
func (c SidesetConfig) Bits() (sideset, delay int) {
	if c.Width > 0 {
		sideset = c.Width
		if c.EnablePin {
			sideset++
		}
	}
	return sideset, tailBits - sideset
}

// Sideset is the decoded side-set/delay part of an instruction.
type Sideset struct {
	Enabled bool
	Value   uint8
	Delay   uint8
}

// DecodeSideset splits the tail bits of w according to cfg.
//
// Without an enable bit the encoding cannot distinguish "side 0" from "no
// side-set", so a zero value is treated as absent. This matches what the
// assembler emits for optional side-set but is not exact for every program.
func DecodeSideset(w Word, cfg SidesetConfig) Sideset {
	t := tail(w)
	_, delayBits := cfg.Bits()

	var ss Sideset
	usesEnable := cfg.EnablePin && cfg.Width > 0
	if usesEnable {
		ss.Enabled = t&0b10000 != 0
		t &= 0b01111
	}

	ss.Delay = t & (1<<delayBits - 1)
	ss.Value = t >> delayBits
	if !usesEnable {
		ss.Enabled = ss.Value > 0
	}
	return ss
}

// String renders the side-set/delay suffix, e.g. "side 1 [3]".
func (s Sideset) String() string {
	var parts []string
	if s.Enabled {
		parts = append(parts, "side "+strconv.Itoa(int(s.Value)))
	}
	if s.Delay > 0 {
		parts = append(parts, "["+strconv.Itoa(int(s.Delay))+"]")
	}
	return strings.Join(parts, " ")
}
