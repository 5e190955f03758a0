package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TFMV/lazywalk/internal/errs"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"non-empty ok", NonEmpty("root", "/tmp"), false},
		{"non-empty blank", NonEmpty("root", "  "), true},
		{"non-negative zero", NonNegative("depth", 0), false},
		{"non-negative fails", NonNegative("depth", -1), true},
		{"range inside", InRange("ratio", 0.5, 0, 1), false},
		{"range edge", InRange("ratio", 1, 0, 1), false},
		{"range outside", InRange("ratio", 1.5, 0, 1), true},
		{"one of ok", OneOf("output", "json", "text", "json"), false},
		{"one of fails", OneOf("output", "xml", "text", "json"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.wantErr {
				assert.NoError(t, tt.err)
				return
			}
			assert.True(t, errors.Is(tt.err, errs.ErrInvalidInput), "got %v", tt.err)
		})
	}
}

func TestOneOfMessage(t *testing.T) {
	err := OneOf("output", "xml", "text", "json")
	assert.Contains(t, err.Error(), `output must be one of text|json, got "xml"`)
}
