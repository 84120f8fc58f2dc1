package photon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestOriginString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "las", Laser.String())
	assert.Equal(t, "bkg", Background.String())
	assert.Equal(t, "Origin(9)", Origin(9).String())
}

func TestTagAndMerge(t *testing.T) {
	t.Parallel()

	las := Tag([]float64{1, 4, 6}, Laser)
	bkg := Tag([]float64{0.5, 4, 7}, Background)

	got := Merge(las, bkg)
	want := []Event{
		{0.5, Background},
		{1, Laser},
		{4, Laser},
		{4, Background},
		{6, Laser},
		{7, Background},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []float64{0.5, 1, 4, 4, 6, 7}, Times(got))
	assert.Equal(t, 3, Count(got, Laser))
	assert.Equal(t, 3, Count(got, Background))

	// Inputs are untouched.
	assert.Equal(t, []float64{1, 4, 6}, Times(las))
}

func TestMergeEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Merge(nil, nil))
	assert.Empty(t, Tag(nil, Laser))
	assert.Equal(t, Tag([]float64{2}, Laser), Merge(nil, Tag([]float64{2}, Laser)))
}
