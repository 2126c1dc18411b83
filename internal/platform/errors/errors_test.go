package errors

import (
	stderrs "errors"
	"testing"
)

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	// New / Newf
	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeParse, "bad range %q", "9 am to 6 pm")
	if got := e2.Error(); got != `bad range "9 am to 6 pm"` {
		t.Fatalf("Newf().Error = %q", got)
	}

	// Wrap / Wrapf / Unwrap
	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeDB, "db failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatal("Wrap did not keep orig")
	}
	if CodeOf(e3) != ErrorCodeDB {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}
	e4 := Wrapf(src, ErrorCodeUnavailable, "nope %s", "here")
	if want := "nope here: root"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}

	// As
	if got, ok := As(e4); !ok || got.Code() != ErrorCodeUnavailable {
		t.Fatal("As failed to recover *Error")
	}
	if _, ok := As(src); ok {
		t.Fatal("As should reject plain errors")
	}
}

func TestRootAndCodeOf(t *testing.T) {
	src := stderrs.New("root")
	wrapped := Wrap(Wrap(src, ErrorCodeDB, "inner"), ErrorCodeUnavailable, "outer")

	if Root(wrapped).Error() != "root" {
		t.Fatalf("Root = %v", Root(wrapped))
	}
	// outermost code wins
	if CodeOf(wrapped) != ErrorCodeUnavailable {
		t.Fatalf("CodeOf = %v", CodeOf(wrapped))
	}
	if CodeOf(src) != ErrorCodeUnknown {
		t.Fatalf("CodeOf(plain) = %v", CodeOf(src))
	}
	if Root(nil) != nil {
		t.Fatal("Root(nil) should be nil")
	}
}

func TestWithFieldAndOp(t *testing.T) {
	e := New(ErrorCodeValidation, "bad")

	fe := WithField(e, "Name")
	if got, _ := As(fe); got.Field() != "Name" {
		t.Fatalf("Field = %q", got.Field())
	}
	// original is untouched
	if got, _ := As(e); got.Field() != "" {
		t.Fatal("WithField must copy, not mutate")
	}

	oe := WithOp(e, "importer.insert")
	if got, _ := As(oe); got.Op() != "importer.insert" {
		t.Fatalf("Op = %q", got.Op())
	}

	// plain errors pass through unchanged
	plain := stderrs.New("x")
	if WithField(plain, "f") != plain {
		t.Fatal("WithField should return plain errors unchanged")
	}
}

func TestWrapIf(t *testing.T) {
	if WrapIf(nil, ErrorCodeDB, "m") != nil {
		t.Fatal("WrapIf(nil) should be nil")
	}
	if e := WrapIf(stderrs.New("x"), ErrorCodeDB, "m"); CodeOf(e) != ErrorCodeDB {
		t.Fatalf("WrapIf code = %v", CodeOf(e))
	}
}

func TestSugarConstructors(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{NotFoundf("x"), ErrorCodeNotFound},
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{Parsef("x"), ErrorCodeParse},
		{DuplicateKeyf("x"), ErrorCodeDuplicateKey},
		{DBf("x"), ErrorCodeDB},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{Internalf("x"), ErrorCodeUnknown},
	}
	for _, c := range cases {
		if CodeOf(c.err) != c.want {
			t.Fatalf("CodeOf(%v) = %v, want %v", c.err, CodeOf(c.err), c.want)
		}
	}
}
