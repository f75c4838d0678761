package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanEnd(t *testing.T) {
	s := Span{Offset: 10, Line: 2, Column: 3, Length: 4}
	assert.Equal(t, uint64(14), s.End())
}

func TestPoint(t *testing.T) {
	p := Point(5, 1, 6)
	assert.Equal(t, uint64(5), p.Offset)
	assert.Equal(t, uint32(0), p.Length)
	assert.Equal(t, uint64(5), p.End())
}

func TestSpanExtend(t *testing.T) {
	tests := []struct {
		name string
		a    Span
		b    Span
		want Span
	}{
		{
			name: "adjacent tokens",
			a:    Span{Offset: 0, Line: 1, Column: 1, Length: 4},
			b:    Span{Offset: 5, Line: 1, Column: 6, Length: 6},
			want: Span{Offset: 0, Line: 1, Column: 1, Length: 11},
		},
		{
			name: "reversed argument order",
			a:    Span{Offset: 5, Line: 1, Column: 6, Length: 6},
			b:    Span{Offset: 0, Line: 1, Column: 1, Length: 4},
			want: Span{Offset: 0, Line: 1, Column: 1, Length: 11},
		},
		{
			name: "overlapping",
			a:    Span{Offset: 2, Line: 1, Column: 3, Length: 5},
			b:    Span{Offset: 4, Line: 1, Column: 5, Length: 2},
			want: Span{Offset: 2, Line: 1, Column: 3, Length: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Extend(tt.b))
		})
	}
}
