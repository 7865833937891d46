package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizes(m *WindowSizeMenu) []Size {
	var out []Size
	for _, o := range m.Options() {
		out = append(out, o.Value)
	}
	return out
}

func TestWindowSizeMenu_Options(t *testing.T) {
	tests := []struct {
		name    string
		max     Size
		vc      VideoConfig
		expects []Size
	}{
		{
			name: "aspect steps",
			max:  Size{640, 600},
			vc:   VideoConfig{SourceSize: Size{160, 144}, Scaling: ScalingKeepRatio},
			expects: []Size{
				{160, 144}, {320, 288}, {480, 432}, {640, 576}, VariableSize,
			},
		},
		{
			name:    "integer scaling steps by source",
			max:     Size{1000, 1000},
			vc:      VideoConfig{SourceSize: Size{320, 288}, Scaling: ScalingInteger},
			expects: []Size{{320, 288}, {640, 576}, {960, 864}, VariableSize},
		},
		{
			name:    "sizes below source dropped",
			max:     Size{500, 500},
			vc:      VideoConfig{SourceSize: Size{320, 288}, Scaling: ScalingUnrestricted},
			expects: []Size{{320, 288}, {480, 432}, VariableSize},
		},
		{
			name:    "too small screen",
			max:     Size{100, 100},
			vc:      VideoConfig{SourceSize: Size{160, 144}},
			expects: []Size{VariableSize},
		},
		{
			name:    "zero source with integer scaling",
			max:     Size{1000, 1000},
			vc:      VideoConfig{Scaling: ScalingInteger},
			expects: []Size{VariableSize},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewWindowSizeMenu(tt.max, tt.vc)
			assert.Equal(t, tt.expects, sizes(m))
		})
	}
}

func TestWindowSizeMenu_VideoChangeKeepsSize(t *testing.T) {
	m := NewWindowSizeMenu(Size{1000, 1000}, VideoConfig{SourceSize: Size{160, 144}})
	m.Synchronize(Size{320, 288})

	got := m.VideoChange(VideoConfig{SourceSize: Size{320, 288}, Scaling: ScalingInteger})
	assert.Equal(t, Size{320, 288}, got)

	o, ok := m.Checked()
	require.True(t, ok)
	assert.Equal(t, Size{320, 288}, o.Value)
}

func TestWindowSizeMenu_VideoChangeFallsBackToVariable(t *testing.T) {
	m := NewWindowSizeMenu(Size{1000, 1000}, VideoConfig{SourceSize: Size{160, 144}})
	m.Synchronize(Size{480, 432})

	got := m.VideoChange(VideoConfig{SourceSize: Size{320, 288}, Scaling: ScalingInteger})
	assert.Equal(t, VariableSize, got)

	o, ok := m.Checked()
	require.True(t, ok)
	assert.Equal(t, VariableSize, o.Value)
}
