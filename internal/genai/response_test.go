package genai

import (
	"errors"
	"testing"

	"fairwaycast/internal/domain"
)

func TestParseCommentary(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{
			name: "clean object",
			raw:  `{"commentary":"A fine draw onto the green."}`,
			want: "A fine draw onto the green.",
		},
		{
			name: "trailing junk after brace",
			raw:  `{"commentary":"ok"}trailing junk the model kept generating`,
			want: "ok",
		},
		{
			name:    "leading chatter before the object",
			raw:     "Sure, here is the commentary:\n{\"commentary\":\"ok\"}\nHope that helps!",
			wantErr: domain.ErrResponseParse,
		},
		{
			name:    "no closing brace",
			raw:     `the model never closed the object`,
			wantErr: domain.ErrResponseParse,
		},
		{
			name:    "garbage before last brace",
			raw:     `{"commentary": not even json}`,
			wantErr: domain.ErrResponseParse,
		},
		{
			name:    "missing commentary field",
			raw:     `{"summary":"wrong field"}`,
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "empty commentary",
			raw:     `{"commentary":""}`,
			wantErr: domain.ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommentary(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got err %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
