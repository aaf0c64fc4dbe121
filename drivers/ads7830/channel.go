package ads7830

// Input is one physical analog input pin.
type Input uint8

const (
	CH0 Input = iota
	CH1
	CH2
	CH3
	CH4
	CH5
	CH6
	CH7
)

// Channel selects which input(s) a conversion samples. The set is closed:
// eight differential pairs and eight single-ended inputs.
type Channel uint8

const (
	Diff01 Channel = iota // CH0 (+), CH1 (-)
	Diff23
	Diff45
	Diff67
	Diff10 // CH1 (+), CH0 (-)
	Diff32
	Diff54
	Diff76
	Single0
	Single1
	Single2
	Single3
	Single4
	Single5
	Single6
	Single7

	numChannels
)

// Hardware channel codes (SD, C2, C1, C0). Single-ended codes interleave odd
// inputs after even ones.
var channelCodes = [numChannels]uint8{
	Diff01:  0b0000,
	Diff23:  0b0001,
	Diff45:  0b0010,
	Diff67:  0b0011,
	Diff10:  0b0100,
	Diff32:  0b0101,
	Diff54:  0b0110,
	Diff76:  0b0111,
	Single0: 0b1000,
	Single1: 0b1100,
	Single2: 0b1001,
	Single3: 0b1101,
	Single4: 0b1010,
	Single5: 0b1110,
	Single6: 0b1011,
	Single7: 0b1111,
}

var channelNames = [numChannels]string{
	"diff01", "diff23", "diff45", "diff67",
	"diff10", "diff32", "diff54", "diff76",
	"single0", "single1", "single2", "single3",
	"single4", "single5", "single6", "single7",
}

// Channels lists every selector in declaration order.
func Channels() []Channel {
	out := make([]Channel, numChannels)
	for i := range out {
		out[i] = Channel(i)
	}
	return out
}

// Valid reports whether c is one of the declared selectors.
func (c Channel) Valid() bool { return c < numChannels }

// Code returns the 4-bit hardware channel code.
func (c Channel) Code() uint8 {
	if !c.Valid() {
		return 0
	}
	return channelCodes[c]
}

func (c Channel) String() string {
	if !c.Valid() {
		return "invalid"
	}
	return channelNames[c]
}

// SingleEnded returns the single-ended selector for in. ok is false when in
// is not one of CH0..CH7.
func SingleEnded(in Input) (Channel, bool) {
	if in > CH7 {
		return 0, false
	}
	return Single0 + Channel(in), true
}

// Differential returns the selector measuring pos against neg. Only adjacent
// pairs (0/1, 2/3, 4/5, 6/7) in either polarity are supported.
func Differential(pos, neg Input) (Channel, bool) {
	if pos > CH7 || neg > CH7 || pos/2 != neg/2 || pos == neg {
		return 0, false
	}
	pair := Channel(pos / 2)
	if pos < neg {
		return Diff01 + pair, true
	}
	return Diff10 + pair, true
}
