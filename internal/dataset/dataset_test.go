package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const chatLog = `{"messages":[{"role":"system","content":"You are a guide."},{"role":"user","content":"Best time to visit Angkor Wat?"},{"role":"assistant","content":"November to March."}]}
not json at all

{"messages":[{"role":"user","content":"Where can I eat in Phnom Penh?"},{"role":"user","content":"Is the riverside safe at night?"}]}
{"other":"shape"}
`

func TestExtract(t *testing.T) {
	qs, st, err := Extract(strings.NewReader(chatLog))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := []string{
		"Best time to visit Angkor Wat?",
		"Where can I eat in Phnom Penh?",
		"Is the riverside safe at night?",
	}
	if len(qs) != len(want) {
		t.Fatalf("got %d questions, want %d: %+v", len(qs), len(want), qs)
	}
	for i, q := range qs {
		if q.Text != want[i] || !q.IsTourism {
			t.Fatalf("question %d = %+v", i, q)
		}
	}
	if st.Lines != 4 || st.Skipped != 1 || st.Questions != 3 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestExtractFiles(t *testing.T) {
	d := t.TempDir()
	a := filepath.Join(d, "a.jsonl")
	b := filepath.Join(d, "b.jsonl")
	if err := os.WriteFile(a, []byte(chatLog), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte(`{"messages":[{"role":"user","content":"Visa on arrival?"}]}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	qs, st, err := ExtractFiles([]string{a, b})
	if err != nil {
		t.Fatalf("ExtractFiles: %v", err)
	}
	if len(qs) != 4 || qs[3].Text != "Visa on arrival?" {
		t.Fatalf("unexpected questions: %+v", qs)
	}
	if st.Files != 2 || st.Lines != 5 || st.Skipped != 1 || st.Questions != 4 {
		t.Fatalf("stats = %+v", st)
	}
	if _, _, err := ExtractFiles([]string{filepath.Join(d, "missing.jsonl")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	in := []Question{
		{Text: "Where is the Royal Palace?", IsTourism: true},
		{Text: `How do I fix "nil map" panics, again?`, IsTourism: false},
	}
	var sb strings.Builder
	if err := WriteCSV(&sb, in); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(sb.String(), "question,is_tourism\n") {
		t.Fatalf("missing header: %q", sb.String())
	}
	out, err := ReadCSV(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestReadCSV_Variants(t *testing.T) {
	out, err := ReadCSV(strings.NewReader("\ufeffis_tourism,question\n0,hello\n1.0,temples\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(out) != 2 || out[0].IsTourism || out[0].Text != "hello" || !out[1].IsTourism {
		t.Fatalf("unexpected rows: %+v", out)
	}
	out, err = ReadCSV(strings.NewReader("question\nangkor\n"))
	if err != nil || len(out) != 1 || !out[0].IsTourism {
		t.Fatalf("missing label column should default to tourism: %+v %v", out, err)
	}
	if _, err := ReadCSV(strings.NewReader("text\nx\n")); err == nil {
		t.Fatalf("expected missing column error")
	}
	if _, err := ReadCSV(strings.NewReader("question,is_tourism\nx,maybe\n")); err == nil {
		t.Fatalf("expected invalid flag error")
	}
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestSaveLoad(t *testing.T) {
	in := []Question{
		{Text: "Kampot pepper farms tour?", IsTourism: true},
		{Text: "Compile Go for arm64", IsTourism: false},
	}
	for _, ext := range []string{".csv", ".xlsx"} {
		p := filepath.Join(t.TempDir(), "questions"+ext)
		if err := Save(p, in); err != nil {
			t.Fatalf("Save %s: %v", ext, err)
		}
		out, err := Load(p)
		if err != nil {
			t.Fatalf("Load %s: %v", ext, err)
		}
		if len(out) != len(in) {
			t.Fatalf("%s: got %d rows", ext, len(out))
		}
		for i := range in {
			if out[i] != in[i] {
				t.Fatalf("%s row %d = %+v, want %+v", ext, i, out[i], in[i])
			}
		}
	}
	if err := Save(filepath.Join(t.TempDir(), "q.parquet"), in); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := Load("q.txt"); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}
