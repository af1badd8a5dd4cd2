package patch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `  async createPool(payload: PoolPayload) {
        console.log('  payload:', JSON.stringify(payload, null, 2));

        const response = await fetch(` + "`${import.meta.env.VITE_API_URL}/api/amm/pools`" + `, {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify(payload)
        });
        return response.json();
  }
`

func TestApplyInjectsAuthHeader(t *testing.T) {
	out, changed, err := Apply(sample)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !changed {
		t.Fatal("expected a change")
	}
	for _, want := range []string{
		"localStorage.getItem('token')",
		"headers['Authorization']",
		"headers,\n          body: JSON.stringify(payload)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("patched source missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "headers: { 'Content-Type': 'application/json' },") {
		t.Fatal("literal headers object should have been replaced")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	out, changed, err := Apply(sample)
	if err != nil || !changed {
		t.Fatalf("first apply: changed=%v err=%v", changed, err)
	}
	again, changed, err := Apply(out)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if changed || again != out {
		t.Fatal("second apply must be a no-op")
	}
}

func TestApplyRejectsUnknownShape(t *testing.T) {
	_, _, err := Apply("const x = 1;")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestFileRewritesInPlace(t *testing.T) {
	p := filepath.Join(t.TempDir(), "blockchainService.ts")
	if err := os.WriteFile(p, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	changed, err := File(p)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if !changed {
		t.Fatal("expected a change")
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "Bearer ${token}") {
		t.Fatal("token header not written back")
	}
	changed, err = File(p)
	if err != nil || changed {
		t.Fatalf("second pass should be a no-op: changed=%v err=%v", changed, err)
	}
}
