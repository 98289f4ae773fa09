package notify

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriter_Notify(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := Writer{W: &buf}

	w.Notify(Notification{Type: TypeError, Title: "Estoque insuficiente", Description: "quantidade maior que o estoque"})
	w.Notify(Notification{Type: TypeSuccess, Title: "Venda atualizada"})

	out := buf.String()
	if !strings.Contains(out, "[error] Estoque insuficiente: quantidade maior que o estoque") {
		t.Fatalf("error line missing: %q", out)
	}
	if !strings.Contains(out, "[success] Venda atualizada\n") {
		t.Fatalf("success line missing: %q", out)
	}
}

func TestMemory_RecordsAndShorthands(t *testing.T) {
	t.Parallel()
	m := &Memory{}
	Error(m, "Erro", "desc")
	Success(m, "Ok")

	all := m.All()
	if len(all) != 2 {
		t.Fatalf("len=%d", len(all))
	}
	if all[0].Type != TypeError || all[0].Description != "desc" {
		t.Fatalf("first: %+v", all[0])
	}
	if all[1].Type != TypeSuccess || all[1].Title != "Ok" {
		t.Fatalf("second: %+v", all[1])
	}
}
