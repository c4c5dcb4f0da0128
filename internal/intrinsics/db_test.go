package intrinsics

import (
	"testing"

	"merc/internal/value"
)

// TestDBRoundTrip exercises dbconnect/dbexecute/dbquery/dbclose against
// an in-memory sqlite database, the one driver in the pool that needs no
// external server to reach.
func TestDBRoundTrip(t *testing.T) {
	s := &fakeStack{}

	s.Push("t1")
	s.Push("sqlite")
	s.Push("file::memory:?cache=shared")
	dbconnect(s)
	if ok := s.Pop(); ok != true {
		t.Fatalf("dbconnect = %v, want true", ok)
	}

	s.Push("t1")
	s.Push("create table greeting (word text)")
	dbexecute(s)
	s.Pop()

	s.Push("t1")
	s.Push("insert into greeting (word) values ('hi')")
	dbexecute(s)
	if got := s.Pop(); got != int64(1) {
		t.Fatalf("dbexecute(insert) rows affected = %v, want 1", got)
	}

	s.Push("t1")
	s.Push("select word from greeting")
	dbquery(s)
	result, ok := s.Pop().(*value.List)
	if !ok {
		t.Fatalf("dbquery did not return a list")
	}
	if len(result.Items) != 2 {
		t.Fatalf("dbquery(select) = %d rows (incl. header), want 2", len(result.Items))
	}
	header, ok := result.Items[0].(*value.List)
	if !ok || len(header.Items) != 1 || header.Items[0] != "word" {
		t.Fatalf("dbquery header row = %+v, want [word]", result.Items[0])
	}
	row, ok := result.Items[1].(*value.List)
	if !ok || len(row.Items) != 1 || row.Items[0] != "hi" {
		t.Fatalf("dbquery data row = %+v, want [hi]", result.Items[1])
	}

	s.Push("t1")
	dbclose(s)
	if ok := s.Pop(); ok != true {
		t.Fatalf("dbclose = %v, want true", ok)
	}
}

func TestDBConnectUnknownKindFails(t *testing.T) {
	s := &fakeStack{}
	s.Push("bad-id")
	s.Push("not-a-real-driver")
	s.Push("whatever")
	dbconnect(s)
	if ok := s.Pop(); ok != false {
		t.Fatalf("dbconnect(unsupported kind) = %v, want false", ok)
	}
}

func TestDBQueryOnMissingConnectionReturnsEmptyList(t *testing.T) {
	s := &fakeStack{}
	s.Push("does-not-exist")
	s.Push("select 1")
	dbquery(s)
	result, ok := s.Pop().(*value.List)
	if !ok || len(result.Items) != 0 {
		t.Fatalf("dbquery(missing connection) = %+v, want an empty list", result)
	}
}
