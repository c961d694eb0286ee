package lucidmath

import (
	"strconv"
	"strings"
)

// instr is an entry in a postfix program.
type instr struct {
	kind instrKind

	num  float64
	name string
	fn   Func

	// pos is the byte offset of the token that produced the entry.
	pos int
}

type instrKind int8

const (
	instrNone instrKind = iota

	instrNum  // push num
	instrCall // call fn, named name, on the stack
)

func (p *instr) String() string {
	var b strings.Builder
	p.fmt(&b)
	return b.String()
}

func (p *instr) fmt(b *strings.Builder) {
	switch p.kind {
	case instrNum:
		b.WriteString(strconv.FormatFloat(p.num, 'g', -1, 64))
	case instrCall:
		if p.name == negName {
			// Written as a name so it can't be mistaken for a negative number.
			b.WriteString("neg")
			return
		}
		b.WriteString(p.name)
	default:
		// Invalid entries use invalid characters.
		b.WriteString("$" + strconv.Itoa(int(p.kind)) + "$")
	}
}

// fmtprog writes a postfix program with entries separated by spaces.
func fmtprog(b *strings.Builder, prog []instr) {
	for i := range prog {
		if i > 0 {
			b.WriteByte(' ')
		}
		prog[i].fmt(b)
	}
}
