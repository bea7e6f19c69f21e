package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texforge/texpack/internal/imagemeta"
	"github.com/texforge/texpack/internal/texture"
)

func rangeOf(min, max uint8) imagemeta.ChannelRange {
	return imagemeta.ChannelRange{Min: min, Max: max}
}

func staticExtrema(ex imagemeta.Extrema) ExtremaLookup {
	return func(texture.Record) (imagemeta.Extrema, error) { return ex, nil }
}

func TestCheckPackedChannelsNoORM(t *testing.T) {
	g := groupOf("CrateA", texture.MapBaseColor, texture.MapNormal)

	got := CheckPackedChannels(g, staticInfo(imagemeta.Info{Channels: 3}), staticExtrema(imagemeta.Extrema{}))

	assert.Empty(t, got)
}

func TestCheckPackedChannelsHealthy(t *testing.T) {
	g := groupOf("CrateA", texture.MapORM)
	info := staticInfo(imagemeta.Info{Width: 512, Height: 512, Mode: "RGB", Channels: 3})
	ex := staticExtrema(imagemeta.Extrema{
		R: rangeOf(30, 255),
		G: rangeOf(10, 240),
		B: rangeOf(0, 200),
	})

	got := CheckPackedChannels(g, info, ex)

	assert.Empty(t, got)
}

func TestCheckPackedChannelsUnreadable(t *testing.T) {
	g := groupOf("CrateA", texture.MapORM)
	info := func(texture.Record) (imagemeta.Info, error) {
		return imagemeta.Info{}, errors.New("open image: no such file")
	}

	got := CheckPackedChannels(g, info, staticExtrema(imagemeta.Extrema{}))

	require.Len(t, got, 1)
	assert.Equal(t, texture.LevelWarning, got[0].Level)
	assert.Equal(t, "ORM: CrateA_ORM.png - cannot analyze channels (open image: no such file)", got[0].Message)
}

func TestCheckPackedChannelsNeedsRGB(t *testing.T) {
	g := groupOf("CrateA", texture.MapORM)
	info := staticInfo(imagemeta.Info{Width: 512, Height: 512, Mode: "L", Channels: 1})
	extremaCalled := false
	ex := func(texture.Record) (imagemeta.Extrema, error) {
		extremaCalled = true
		return imagemeta.Extrema{}, nil
	}

	got := CheckPackedChannels(g, info, ex)

	require.Len(t, got, 1)
	assert.Equal(t, texture.LevelError, got[0].Level)
	assert.Equal(t, "ORM: CrateA_ORM.png - needs RGB (3 channels), got L", got[0].Message)
	assert.False(t, extremaCalled, "channel statistics should be skipped for non-RGB images")
}

func TestCheckPackedChannelsAlpha(t *testing.T) {
	g := groupOf("CrateA", texture.MapORM)
	info := staticInfo(imagemeta.Info{Width: 512, Height: 512, Mode: "RGBA", HasAlpha: true, Channels: 4})
	ex := staticExtrema(imagemeta.Extrema{
		R: rangeOf(30, 255),
		G: rangeOf(10, 240),
		B: rangeOf(0, 200),
	})

	got := CheckPackedChannels(g, info, ex)

	require.Len(t, got, 1)
	assert.Equal(t, "ORM: CrateA_ORM.png - has alpha channel (unexpected)", got[0].Message)
}

func TestCheckPackedChannelsFlat(t *testing.T) {
	g := groupOf("CrateA", texture.MapORM)
	info := staticInfo(imagemeta.Info{Width: 512, Height: 512, Mode: "RGB", Channels: 3})

	t.Run("single flat channel", func(t *testing.T) {
		ex := staticExtrema(imagemeta.Extrema{
			R: rangeOf(30, 255),
			G: rangeOf(128, 128),
			B: rangeOf(0, 200),
		})

		got := CheckPackedChannels(g, info, ex)

		require.Len(t, got, 1)
		assert.Equal(t, texture.LevelWarning, got[0].Level)
		assert.Equal(t, "ORM: CrateA_ORM.png - G channel is flat (Roughness may be missing)", got[0].Message)
	})

	t.Run("all channels flat and identical", func(t *testing.T) {
		ex := staticExtrema(imagemeta.Extrema{
			R: rangeOf(128, 128),
			G: rangeOf(128, 128),
			B: rangeOf(128, 128),
		})

		got := CheckPackedChannels(g, info, ex)

		assert.Equal(t, []string{
			"ORM: CrateA_ORM.png - R channel is flat (AO may be missing)",
			"ORM: CrateA_ORM.png - G channel is flat (Roughness may be missing)",
			"ORM: CrateA_ORM.png - B channel is flat (Metallic may be missing)",
			"ORM: CrateA_ORM.png - channels look identical (may be grayscale, not packed)",
		}, messages(got))
	})
}

func TestCheckPackedChannelsIdenticalButVaried(t *testing.T) {
	// A grayscale image converted to RGB: every channel spans the same range
	// without being flat.
	g := groupOf("CrateA", texture.MapORM)
	info := staticInfo(imagemeta.Info{Width: 512, Height: 512, Mode: "RGB", Channels: 3})
	ex := staticExtrema(imagemeta.Extrema{
		R: rangeOf(10, 200),
		G: rangeOf(10, 200),
		B: rangeOf(10, 200),
	})

	got := CheckPackedChannels(g, info, ex)

	require.Len(t, got, 1)
	assert.Equal(t, "ORM: CrateA_ORM.png - channels look identical (may be grayscale, not packed)", got[0].Message)
}

func TestCheckPackedChannelsAnalysisFailure(t *testing.T) {
	g := groupOf("CrateA", texture.MapORM)
	info := staticInfo(imagemeta.Info{Width: 512, Height: 512, Mode: "RGB", Channels: 3})
	ex := func(texture.Record) (imagemeta.Extrema, error) {
		return imagemeta.Extrema{}, errors.New("decode image: unexpected EOF")
	}

	got := CheckPackedChannels(g, info, ex)

	require.Len(t, got, 1)
	assert.Equal(t, texture.LevelWarning, got[0].Level)
	assert.Equal(t, "ORM: CrateA_ORM.png - could not compute channel extrema (decode image: unexpected EOF)", got[0].Message)
}
