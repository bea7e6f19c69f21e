package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texforge/texpack/internal/imagemeta"
	"github.com/texforge/texpack/internal/texture"
)

func staticInfo(info imagemeta.Info) MetadataLookup {
	return func(texture.Record) (imagemeta.Info, error) { return info, nil }
}

func failingInfo(err error) MetadataLookup {
	return func(texture.Record) (imagemeta.Info, error) { return imagemeta.Info{}, err }
}

func TestCheckImageMetadata(t *testing.T) {
	rgb := func(w, h int) imagemeta.Info {
		return imagemeta.Info{Width: w, Height: h, Mode: "RGB", Format: "PNG", Channels: 3}
	}

	tests := []struct {
		name    string
		rec     texture.Record
		lookup  MetadataLookup
		profile string
		want    []texture.Result
	}{
		{
			name:    "clean basecolor",
			rec:     parsedRec("CrateA", texture.MapBaseColor, ".png"),
			lookup:  staticInfo(rgb(1024, 1024)),
			profile: "unity",
			want:    nil,
		},
		{
			name:    "unexpected extension",
			rec:     parsedRec("CrateA", texture.MapNormal, ".jpg"),
			lookup:  staticInfo(rgb(1024, 1024)),
			profile: "unity",
			want: []texture.Result{
				{Level: texture.LevelWarning, Message: "Normal: unexpected file extension '.jpg' (expected one of .png, .tif, .tiff)"},
			},
		},
		{
			name:    "exr allowed when profile permits",
			rec:     parsedRec("CrateA", texture.MapBaseColor, ".exr"),
			lookup:  staticInfo(rgb(1024, 1024)),
			profile: "vfx",
			want:    nil,
		},
		{
			name:    "read failure is an error",
			rec:     parsedRec("CrateA", texture.MapBaseColor, ".png"),
			lookup:  failingInfo(errors.New("decode image header: unknown format")),
			profile: "unity",
			want: []texture.Result{
				{Level: texture.LevelError, Message: "BaseColor: CrateA_BaseColor.png - decode image header: unknown format"},
			},
		},
		{
			name:    "exr read failure softens to warning",
			rec:     parsedRec("CrateA", texture.MapHeight, ".exr"),
			lookup:  failingInfo(errors.New("decode image header: unknown format")),
			profile: "unity",
			want: []texture.Result{
				{Level: texture.LevelWarning, Message: "Height: CrateA_Height.exr - decode image header: unknown format"},
			},
		},
		{
			name:    "large resolution warns",
			rec:     parsedRec("CrateA", texture.MapBaseColor, ".png"),
			lookup:  staticInfo(rgb(4096, 4096)),
			profile: "unity",
			want: []texture.Result{
				{Level: texture.LevelWarning, Message: "BaseColor: very large resolution (4096x4096)"},
			},
		},
		{
			name:    "huge resolution errors",
			rec:     parsedRec("CrateA", texture.MapBaseColor, ".png"),
			lookup:  staticInfo(rgb(8192, 4096)),
			profile: "unity",
			want: []texture.Result{
				{Level: texture.LevelError, Message: "BaseColor: very large resolution (8192x4096)"},
			},
		},
		{
			name:    "non power of two",
			rec:     parsedRec("CrateA", texture.MapBaseColor, ".png"),
			lookup:  staticInfo(rgb(1000, 1024)),
			profile: "unity",
			want: []texture.Result{
				{Level: texture.LevelWarning, Message: "BaseColor: not power-of-two (1000x1024)"},
			},
		},
		{
			name: "normal map channel sanity",
			rec:  parsedRec("CrateA", texture.MapNormal, ".png"),
			lookup: staticInfo(imagemeta.Info{
				Width: 1024, Height: 1024, Mode: "L", Format: "PNG", Channels: 1,
			}),
			profile: "unity",
			want: []texture.Result{
				{Level: texture.LevelWarning, Message: "Normal: suspicious channel count (L)"},
			},
		},
		{
			name: "orm with alpha",
			rec:  parsedRec("CrateA", texture.MapORM, ".png"),
			lookup: staticInfo(imagemeta.Info{
				Width: 1024, Height: 1024, Mode: "RGBA", Format: "PNG", HasAlpha: true, Channels: 4,
			}),
			profile: "unity",
			want: []texture.Result{
				{Level: texture.LevelWarning, Message: "ORM: has alpha channel (unexpected)"},
			},
		},
		{
			name: "grayscale basecolor",
			rec:  parsedRec("CrateA", texture.MapBaseColor, ".png"),
			lookup: staticInfo(imagemeta.Info{
				Width: 1024, Height: 1024, Mode: "L", Format: "PNG", Channels: 1,
			}),
			profile: "unity",
			want: []texture.Result{
				{Level: texture.LevelWarning, Message: "BaseColor: appears grayscale (L)"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &texture.Group{Name: "CrateA", Textures: []texture.Record{tt.rec}}
			got := CheckImageMetadata(g, mustProfile(t, tt.profile), DefaultTables(), tt.lookup)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckImageMetadataAccumulatesFindings(t *testing.T) {
	rec := parsedRec("CrateA", texture.MapNormal, ".jpg")
	lookup := staticInfo(imagemeta.Info{
		Width: 5000, Height: 5000, Mode: "L", Format: "JPEG", Channels: 1,
	})
	g := &texture.Group{Name: "CrateA", Textures: []texture.Record{rec}}

	got := CheckImageMetadata(g, mustProfile(t, "unity"), DefaultTables(), lookup)

	require.Len(t, got, 4)
	assert.Equal(t, []string{
		"Normal: unexpected file extension '.jpg' (expected one of .png, .tif, .tiff)",
		"Normal: very large resolution (5000x5000)",
		"Normal: not power-of-two (5000x5000)",
		"Normal: suspicious channel count (L)",
	}, messages(got))
}

func TestCheckImageMetadataSkipsUnparsed(t *testing.T) {
	rec := texture.NewUnparsedRecord("/textures/oops.png", "oops.png", ".png", "no '_' separator found")
	g := &texture.Group{Name: "oops", Textures: []texture.Record{rec}}
	called := false
	lookup := func(texture.Record) (imagemeta.Info, error) {
		called = true
		return imagemeta.Info{}, nil
	}

	got := CheckImageMetadata(g, mustProfile(t, "unity"), DefaultTables(), lookup)

	assert.Empty(t, got)
	assert.False(t, called)
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 256, 1024, 8192} {
		assert.True(t, isPowerOfTwo(n), "expected %d to be a power of two", n)
	}
	for _, n := range []int{0, -4, 3, 100, 1000, 4097} {
		assert.False(t, isPowerOfTwo(n), "expected %d not to be a power of two", n)
	}
}
