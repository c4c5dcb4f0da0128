package intrinsics

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log"
	"os"

	"merc/internal/value"
)

var stdinReader = bufio.NewReader(os.Stdin)

func funcs() []*value.Function {
	return []*value.Function{
		newOp("print", 1, print_),
		newOp("prompt", 0, prompt),
		newOp("exit", 1, exit),
		newOp("itoa", 1, itoa),
		newOp("atoi", 1, atoi),
		newOp("kindof", 1, kindof),
		newOp("length", 1, length),
		newOp("insert", 3, insert),
		newOp("delete", 2, delete_),
		newOp("substr", 3, substr),
		newOp("random", 0, random),
		newOp("dump", 1, dump),
	}
}

func print_(s value.Stack) {
	a := s.Pop()
	fmt.Print(value.ToString(a))
}

func prompt(s value.Stack) {
	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		log.Printf("warning: prompt got %v", err)
	}
	s.Push(line)
}

func exit(s value.Stack) {
	code := value.ToInteger(s.Pop())
	os.Exit(int(code))
}

func itoa(s value.Stack) {
	s.Push(value.ToString(s.Pop()))
}

func atoi(s value.Stack) {
	s.Push(value.ToInteger(s.Pop()))
}

func kindof(s value.Stack) {
	s.Push(value.KindOf(s.Pop()))
}

func length(s value.Stack) {
	s.Push(value.Length(s.Pop()))
}

// insert pops value, index, list (push order list, index, value — value on top),
// grows the list so index is in bounds, then inserts, shifting
// everything from index onward one slot to the right.
func insert(s value.Stack) {
	v := s.Pop()
	idx := int(value.ToInteger(s.Pop()))
	list := s.Pop()

	l, ok := list.(*value.List)
	if !ok {
		log.Printf("warning: insert called on a non-list value")
		return
	}
	if idx < 0 {
		log.Printf("warning: insert called with a negative index")
		return
	}
	for len(l.Items) < idx+1 {
		l.Items = append(l.Items, nil)
	}
	l.Items = append(l.Items, nil)
	copy(l.Items[idx+1:], l.Items[idx:])
	l.Items[idx] = v
}

func delete_(s value.Stack) {
	idx := int(value.ToInteger(s.Pop()))
	list := s.Pop()

	l, ok := list.(*value.List)
	if !ok {
		return
	}
	if idx < 0 || idx >= len(l.Items) {
		return
	}
	l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
}

// substr pops length, start, string (push order: string, start, length)
// and returns string[start:][:length], indexed by byte per §4.5.
func substr(s value.Stack) {
	n := int(value.ToInteger(s.Pop()))
	start := int(value.ToInteger(s.Pop()))
	str := value.ToString(s.Pop())

	if start < 0 || n < 0 || start > len(str) || start+n > len(str) {
		log.Printf("warning: substr out of range on a %d-byte string", len(str))
		s.Push("")
		return
	}
	s.Push(str[start : start+n])
}

func random(s value.Stack) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		log.Printf("warning: random got %v", err)
	}
	n := int64(binary.LittleEndian.Uint64(buf[:]) >> 1) // clamp to [0, MaxInt64]
	s.Push(n)
}

func dump(s value.Stack) {
	a := s.Pop()
	fmt.Printf("%#v\n", a)
}
