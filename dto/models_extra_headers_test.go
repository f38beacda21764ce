package dto

import (
	"net/http"
	"testing"
)

func TestExtraHeaders_SetAndString_Golden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "single header",
			in:   "A=1",
			want: map[string]string{"A": "1"},
		},
		{
			name: "multiple headers",
			in:   "A=1,B=two",
			want: map[string]string{"A": "1", "B": "two"},
		},
		{
			name: "value keeps later equals signs",
			in:   "X-Sig=a=b",
			want: map[string]string{"X-Sig": "a=b"},
		},
		{
			name:    "missing separator errors",
			in:      "A",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eh := make(ExtraHeaders)
			err := eh.Set(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set err=%v wantErr=%v", err, tt.wantErr)
			}
			for k, v := range tt.want {
				if eh[k] != v {
					t.Fatalf("eh[%q]=%q want %q", k, eh[k], v)
				}
			}
			// String() should be valid JSON
			if s := eh.String(); len(s) == 0 || s[0] != '{' {
				t.Fatalf("String()=%q not json object", s)
			}
		})
	}
}

func TestExtraHeaders_ApplyMissing(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	h.Set("X-Keep", "caller")
	ExtraHeaders{"X-Keep": "extra", "X-Add": "extra"}.ApplyMissing(h)

	if got := h.Get("X-Keep"); got != "caller" {
		t.Fatalf("X-Keep=%q want caller", got)
	}
	if got := h.Get("X-Add"); got != "extra" {
		t.Fatalf("X-Add=%q want extra", got)
	}
}
