package align

import (
	"slices"
	"testing"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/para"
)

// cp returns a paragraph in chapter ch with the given range, or rangeless
// when r is empty.
func cp(id string, ch int, r string) *para.Paragraph {
	var p *para.Paragraph
	if r == "" {
		p = hp(id)
	} else {
		p = rp(id, r)
	}
	p.Position.Chapter = ch
	return p
}

func TestAlignChapters(t *testing.T) {
	tests := []struct {
		name    string
		sources []*para.Paragraph
		targets []*para.Paragraph
		want    []string
	}{
		{
			name:    "verse numbers restart per chapter",
			sources: []*para.Paragraph{cp("A1", 1, "1-5"), cp("A2", 2, "1-5")},
			targets: []*para.Paragraph{cp("X1", 1, "1-3"), cp("X2", 1, "3-5"), cp("Y1", 2, "1-5")},
			want:    []string{"A1>X1", "A1>X2", "A2>Y1"},
		},
		{
			name:    "chapter missing in target joins preceding chapter",
			sources: []*para.Paragraph{cp("A1", 1, "1-5"), cp("B1", 2, "1-5"), cp("C1", 3, "1-5")},
			targets: []*para.Paragraph{cp("X1", 1, "1-5"), cp("Z1", 3, "1-5")},
			want:    []string{"A1>X1", "B1>X1", "C1>Z1"},
		},
		{
			name:    "front matter joins first shared chapter",
			sources: []*para.Paragraph{cp("I", 0, ""), cp("A1", 1, "1-5")},
			targets: []*para.Paragraph{cp("X1", 1, "1-5")},
			want:    []string{"I>X1", "A1>X1"},
		},
		{
			name:    "no shared chapters aligns as one group",
			sources: []*para.Paragraph{cp("A", 1, "1-2")},
			targets: []*para.Paragraph{cp("X", 2, "1-2")},
			want:    []string{"A>X"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pairs(AlignChapters(tt.sources, tt.targets))
			if !slices.Equal(got, tt.want) {
				t.Errorf("AlignChapters() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlignChaptersEmpty(t *testing.T) {
	if got := AlignChapters(nil, []*para.Paragraph{cp("X", 1, "1")}); got != nil {
		t.Errorf("AlignChapters(nil, targets) = %v, want nil", pairs(got))
	}
}
