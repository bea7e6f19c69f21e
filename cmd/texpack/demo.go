package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/texforge/texpack/internal/ui"
)

var demoCmd = &cobra.Command{
	Use:     "demo [dir]",
	GroupID: GroupTools,
	Short:   "Write sample texture folders for trying the tool",
	Long: `Write three small export folders with real PNG textures:

  exports_unreal_good     complete CrateA set with a packed ORM
  exports_unity_missing   CrateB set missing AmbientOcclusion and Metallic
  exports_naming_issues   files whose names fail to parse

The default output directory is ./texpack-demo.

Try them afterwards:
  texpack scan <dir>/exports_unreal_good --profile unreal
  texpack batch <dir>/exports_unreal_good <dir>/exports_unity_missing
  texpack scan <dir>/exports_naming_issues`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "texpack-demo"
		if len(args) > 0 {
			dir = args[0]
		}
		dir, err := filepath.Abs(dir)
		if err != nil {
			FatalError("resolve directory %s: %v", dir, err)
		}

		files := []string{
			filepath.Join("exports_unreal_good", "CrateA_BaseColor.png"),
			filepath.Join("exports_unreal_good", "CrateA_Normal.png"),
			filepath.Join("exports_unreal_good", "CrateA_ORM.png"),
			filepath.Join("exports_unity_missing", "CrateB_BaseColor.png"),
			filepath.Join("exports_unity_missing", "CrateB_Normal.png"),
			filepath.Join("exports_unity_missing", "CrateB_Roughness.png"),
			filepath.Join("exports_naming_issues", "CrateC.png"),
			filepath.Join("exports_naming_issues", "CrateC_Specular.png"),
		}

		for _, rel := range files {
			path := filepath.Join(dir, rel)
			if err := writeDemoPNG(path); err != nil {
				FatalError("write %s: %v", path, err)
			}
		}

		if jsonOutput {
			outputJSON(struct {
				Dir   string   `json:"dir"`
				Files []string `json:"files"`
			}{Dir: dir, Files: files})
			return
		}

		fmt.Printf("Created demo folders under %s:\n", dir)
		fmt.Printf("  %s  %s\n", "exports_unreal_good   ", ui.RenderMuted("complete packed set, scans clean"))
		fmt.Printf("  %s  %s\n", "exports_unity_missing ", ui.RenderMuted("missing AmbientOcclusion and Metallic"))
		fmt.Printf("  %s  %s\n", "exports_naming_issues ", ui.RenderMuted("files that fail name parsing"))
		fmt.Println()
		fmt.Println("Try:")
		fmt.Printf("  texpack scan %s --profile unreal\n", filepath.Join(dir, "exports_unreal_good"))
		fmt.Printf("  texpack batch %s %s\n",
			filepath.Join(dir, "exports_unreal_good"),
			filepath.Join(dir, "exports_unity_missing"))
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// writeDemoPNG writes a 256x256 opaque PNG whose channels all vary, so the
// packed-channel checks have real data to look at. Opaque pixels keep the
// encoder on 3-channel RGB output.
func writeDemoPNG(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	const size = 256
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x),
				G: uint8(y),
				B: uint8((x + y) / 2),
				A: 0xff,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
