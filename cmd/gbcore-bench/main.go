// Command gbcore-bench drives a cartridge through the core for a fixed
// number of frames with no display backend attached, for benchmarking and
// smoke-testing ROMs outside of any windowing toolkit.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/silverwren/gbcore/internal/cartridge"
	"github.com/silverwren/gbcore/internal/gameboy"
	"github.com/silverwren/gbcore/internal/logging"
	"github.com/silverwren/gbcore/internal/ppu"
	"github.com/silverwren/gbcore/internal/types"
)

func main() {
	app := &cli.App{
		Name:  "gbcore-bench",
		Usage: "run a ROM headlessly for a fixed number of frames",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "rom",
				Usage:    "path to the ROM file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "hardware model to emulate: auto, dmg or cgb",
				Value: "auto",
			},
			&cli.IntFlag{
				Name:  "frames",
				Usage: "number of frames to run",
				Value: 60,
			},
			&cli.StringFlag{
				Name:  "save",
				Usage: "path to a .sav file to load before running and write after",
			},
			&cli.StringFlag{
				Name:  "snapshot",
				Usage: "write the final frame to this PNG path",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "suppress per-second progress logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	rom, err := os.ReadFile(c.String("rom"))
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}

	model, err := parseModel(c.String("model"))
	if err != nil {
		return err
	}

	gb, err := gameboy.New(rom, model, logging.New("gbcore-bench"))
	if err != nil {
		return fmt.Errorf("constructing gameboy: %w", err)
	}

	if savePath := c.String("save"); savePath != "" {
		if err := loadSave(gb, savePath); err != nil {
			return err
		}
	}

	frames := c.Int("frames")
	quiet := c.Bool("quiet")
	start := time.Now()
	lastReport := start

	var frame ppu.Frame
	for i := 0; i < frames; i++ {
		frame = gb.RunFrame()

		if !quiet && time.Since(lastReport) >= time.Second {
			elapsed := time.Since(start).Seconds()
			log.Printf("frame %d/%d (%.1f fps)", i+1, frames, float64(i+1)/elapsed)
			lastReport = time.Now()
		}
	}

	elapsed := time.Since(start)
	log.Printf("%s: ran %d frames in %s (%.1f fps)", gb.Title(), frames, elapsed, float64(frames)/elapsed.Seconds())

	if snapshot := c.String("snapshot"); snapshot != "" {
		if err := writeSnapshot(snapshot, frame); err != nil {
			return err
		}
	}

	if savePath := c.String("save"); savePath != "" {
		if err := writeSave(gb, savePath); err != nil {
			return err
		}
	}

	return nil
}

func parseModel(s string) (types.Model, error) {
	switch s {
	case "auto":
		return types.Unset, nil
	case "dmg":
		return types.DMGABC, nil
	case "cgb":
		return types.CGBABC, nil
	}
	return types.Unset, fmt.Errorf("unknown model %q: must be auto, dmg or cgb", s)
}

func loadSave(gb *gameboy.GameBoy, path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening save: %w", err)
	}
	defer f.Close()

	ram, err := cartridge.ReadSave(f)
	if err != nil {
		return fmt.Errorf("loading save %s: %w", path, err)
	}
	gb.LoadRAM(ram)
	return nil
}

func writeSave(gb *gameboy.GameBoy, path string) error {
	if gb.SaveRAM() == nil {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp save file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gb.Shutdown(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp save file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func writeSnapshot(path string, frame ppu.Frame) error {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			px := frame[y][x]
			img.Set(x, y, color.RGBA{R: px[0], G: px[1], B: px[2], A: px[3]})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}
