package trio

import "testing"

func TestVariants(t *testing.T) {
	ok := OkOf[int, string, error](5)
	if !ok.IsOk() || ok.IsWarn() || ok.IsErr() {
		t.Fatalf("OkOf produced wrong kind: %+v", ok)
	}
	v, isOk := ok.Ok()
	if !isOk || v != 5 {
		t.Fatalf("Ok() = %v, %v; want 5, true", v, isOk)
	}

	warn := WarnOf[int, string, error]("careful")
	if !warn.IsWarn() {
		t.Fatalf("WarnOf produced wrong kind: %+v", warn)
	}
	w, isWarn := warn.Warn()
	if !isWarn || w != "careful" {
		t.Fatalf("Warn() = %v, %v; want careful, true", w, isWarn)
	}
}

func TestMapPreservesOtherVariants(t *testing.T) {
	warn := WarnOf[int, string, error]("x")
	mapped := MapOk(warn, func(n int) int { return n * 2 })
	if !mapped.IsWarn() {
		t.Fatalf("MapOk must not touch a Warn variant, got %+v", mapped)
	}

	errVal := ErrOf[int, string, error](errBoom)
	mapped2 := MapWarn(errVal, func(s string) string { return s + "!" })
	if !mapped2.IsErr() {
		t.Fatalf("MapWarn must not touch an Err variant, got %+v", mapped2)
	}
}

var errBoom = errTest("boom")

type errTest string

func (e errTest) Error() string { return string(e) }
