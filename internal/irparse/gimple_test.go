package irparse_test

import (
	"errors"
	"testing"

	"passlens/internal/diag"
	"passlens/internal/dump"
	"passlens/internal/irparse"
)

// Body-style dump: <bb N> labels, edges written as goto statements.
const bodyStyleDump = `int main ()
{
  <bb 2> :
  a_1 = 5;
  if (a_1 > 3)
    goto <bb 3>; [50.00%]
  else
    goto <bb 4>; [50.00%]

  <bb 3> :
  b_2 = a_1 + 1;
  foo (b_2);

  <bb 4> :
  return;

}
`

func TestParseGimpleBodyStyle(t *testing.T) {
	l, err := irparse.Parse(bodyStyleDump, dump.TierGimple)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(l.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(l.Blocks))
	}

	bb2 := l.Blocks[l.BlockIndex(2)]
	if len(bb2.Edges) != 2 {
		t.Fatalf("bb2 edges = %+v, want 2", bb2.Edges)
	}
	if bb2.Edges[0] != (irparse.Edge{To: 3, Kind: irparse.EdgeTrue}) {
		t.Fatalf("true edge = %+v", bb2.Edges[0])
	}
	if bb2.Edges[1] != (irparse.Edge{To: 4, Kind: irparse.EdgeFalse}) {
		t.Fatalf("false edge = %+v", bb2.Edges[1])
	}

	bb3 := l.Blocks[l.BlockIndex(3)]
	if len(bb3.Edges) != 0 {
		t.Fatalf("bb3 edges = %+v, want none", bb3.Edges)
	}
	if got := bb3.Stmts[0].Opcode; got != "assign" {
		t.Fatalf("opcode of %q = %q, want assign", bb3.Stmts[0].Text, got)
	}
	if got := bb3.Stmts[1].Opcode; got != "call" {
		t.Fatalf("opcode of %q = %q, want call", bb3.Stmts[1].Text, got)
	}

	bb4 := l.Blocks[l.BlockIndex(4)]
	if got := bb4.Stmts[0].Opcode; got != "return" {
		t.Fatalf("opcode of %q = %q, want return", bb4.Stmts[0].Text, got)
	}
}

// cfg-style dump: ;; basic block headers and braced succs lists. The
// reference to block 1 is the compiler's EXIT pseudo block and must not
// survive as an edge.
const cfgStyleDump = `;; basic block 2, preds: ENTRY
  x_1 = p_2 + q_3;
  goto <bb 4>;
;; 2 succs { 4 }

;; basic block 3, preds:
  y_4 = 0;
;; 3 succs { 4 }

;; basic block 4, preds: 2 3
  return x_1;
;; 4 succs { 1 }
`

func TestParseGimpleCfgStyle(t *testing.T) {
	l, err := irparse.Parse(cfgStyleDump, dump.TierGimple)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(l.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(l.Blocks))
	}

	bb2 := l.Blocks[l.BlockIndex(2)]
	if len(bb2.Edges) != 1 || bb2.Edges[0] != (irparse.Edge{To: 4, Kind: irparse.EdgeUnconditional}) {
		t.Fatalf("bb2 edges = %+v, want one unconditional edge to 4", bb2.Edges)
	}
	bb3 := l.Blocks[l.BlockIndex(3)]
	if len(bb3.Edges) != 1 || bb3.Edges[0] != (irparse.Edge{To: 4, Kind: irparse.EdgeFallthrough}) {
		t.Fatalf("bb3 edges = %+v, want one fallthrough edge to 4", bb3.Edges)
	}
	bb4 := l.Blocks[l.BlockIndex(4)]
	if len(bb4.Edges) != 0 {
		t.Fatalf("bb4 edges = %+v, the EXIT reference should be dropped", bb4.Edges)
	}
}

// Column-style dump: ;; succ: annotations with wrapped continuation lines.
const succColumnDump = `;; basic block 2, loop depth 0
;;  pred:       ENTRY
  if (a_1 > 0)
    goto <bb 3>;
  else
    goto <bb 4>;
;;  succ:       3 [50.0%]
;;             4 [50.0%]

;; basic block 3, loop depth 0
;;  pred:       2
  b_2 = 1;
;;  succ:       4

;; basic block 4, loop depth 0
;;  pred:       2
;;             3
  return;
`

func TestParseGimpleSuccColumns(t *testing.T) {
	l, err := irparse.Parse(succColumnDump, dump.TierGimple)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(l.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(l.Blocks))
	}

	bb2 := l.Blocks[l.BlockIndex(2)]
	if len(bb2.Edges) != 2 {
		t.Fatalf("bb2 edges = %+v, want the wrapped succ list intact", bb2.Edges)
	}
	if bb2.Edges[0] != (irparse.Edge{To: 3, Kind: irparse.EdgeTrue}) ||
		bb2.Edges[1] != (irparse.Edge{To: 4, Kind: irparse.EdgeFalse}) {
		t.Fatalf("bb2 edges = %+v, want true->3 false->4", bb2.Edges)
	}

	// The wrapped pred list of bb4 must not be misread as successors.
	bb4 := l.Blocks[l.BlockIndex(4)]
	if len(bb4.Edges) != 0 {
		t.Fatalf("bb4 edges = %+v, want none", bb4.Edges)
	}
}

func TestParseGimpleEmptyDump(t *testing.T) {
	for _, text := range []string{"", "\n\n", ";; removing basic blocks\n", "int x;\n"} {
		l, err := irparse.Parse(text, dump.TierGimple)
		if err != nil {
			t.Fatalf("Parse(%q): %v", text, err)
		}
		if len(l.Blocks) != 0 {
			t.Fatalf("Parse(%q): got %d blocks, want 0", text, len(l.Blocks))
		}
	}
}

func TestParseGimpleMalformed(t *testing.T) {
	_, err := irparse.Parse("x_1 = a_2 + 1;\ny_2 = x_1 * 2;\n", dump.TierGimple)
	var malformed *irparse.MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want MalformedError", err)
	}
	if malformed.Code() != diag.MalformedDump {
		t.Fatalf("code = %v, want MalformedDump", malformed.Code())
	}
}
