package analysis

import "fmt"

// Kind classifies a finding.
type Kind string

const (
	KindReserved      Kind = "reserved"       // operand field decoded to a reserved value
	KindDanglingJump  Kind = "dangling-jump"  // jump target past the end of the program
	KindOutOfRange    Kind = "out-of-range"   // address no jump can reach
	KindLowConfidence Kind = "low-confidence" // decoder only partially understands the encoding
)

// Finding is a note about one address of a decoded program.
type Finding struct {
	Addr    int    `json:"address"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%#x: %s: %s", f.Addr, f.Kind, f.Message)
}
