package fromtext

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dinothaurs/cs131interpretor/internal/dialect"
	"github.com/dinothaurs/cs131interpretor/internal/interp"
	"github.com/dinothaurs/cs131interpretor/internal/interp/host"
)

func run(t *testing.T, d dialect.Dialect, src string) string {
	t.Helper()
	program, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var out bytes.Buffer
	i := interp.New(testOptions{dialect: d, host: host.NewStd(&out, strings.NewReader(""))})
	if err := i.Run(program); err != nil {
		t.Fatalf("run error: %v", err)
	}
	return out.String()
}

type testOptions struct {
	dialect dialect.Dialect
	host    host.Host
}

func (o testOptions) GetDialect() dialect.Dialect { return o.dialect }
func (o testOptions) GetMaxRecursionDepth() int   { return 0 }
func (o testOptions) GetExternalHost() host.Host  { return o.host }

func TestFact(t *testing.T) {
	const src = `
(func fact ((n int)) int
  (if (<= n 1)
    ((return 1)))
  (return (* n (call fact (- n 1)))))

(func main () void
  (call print (call fact 5)))
`
	got := run(t, dialect.V3, src)
	if got != "120\n" {
		t.Fatalf("fact(5): got %q, want %q", got, "120\n")
	}
}

func TestLazyEvalSkipsUnusedArgument(t *testing.T) {
	const src = `
(func crash () int
  (raise "boom"))

(func f ((x int) (y int)) int
  (return x))

(func main () void
  (call print (call f 1 (call crash))))
`
	got := run(t, dialect.V4, src)
	if got != "1\n" {
		t.Fatalf("lazy eval: got %q, want %q", got, "1\n")
	}
}

func TestTryCatch(t *testing.T) {
	const src = `
(func main () void
  (try
    ((raise "oops"))
    (catch "oops" ((call print "caught")))))
`
	got := run(t, dialect.V4, src)
	if got != "caught\n" {
		t.Fatalf("try/catch: got %q, want %q", got, "caught\n")
	}
}

func TestDivZeroRaisesUnderV4(t *testing.T) {
	const src = `
(func main () void
  (try
    ((call print (/ 10 0)))
    (catch "div0" ((call print "zero")))))
`
	got := run(t, dialect.V4, src)
	if got != "zero\n" {
		t.Fatalf("div-zero: got %q, want %q", got, "zero\n")
	}
}

func TestStructIdentity(t *testing.T) {
	const src = `
(struct s (field a int))

(func main () void
  (vardef x s)
  (= x (new s))
  (vardef y s)
  (= y (new s))
  (= x.a 5)
  (= y.a 5)
  (if (== x.a y.a)
    ((call print "fields equal")))
  (if (== x y)
    ((call print "same"))
    ((call print "different"))))
`
	got := run(t, dialect.V3, src)
	want := "fields equal\ndifferent\n"
	if got != want {
		t.Fatalf("struct identity: got %q, want %q", got, want)
	}
}
