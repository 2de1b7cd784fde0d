// seehuhn.de/go/paraxial - first-order optics with ray-transfer matrices
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command raytrace draws the ray diagram of an optical system.
//
// The system is given as the name of a built-in prescription or as a JSON
// prescription file, either as the only command line argument or in the
// environment variable PARAXIAL_PRESCRIPTION.  The command logs the image
// position, image height, magnification and aperture stop, and writes
// <name>.png, <name>.pdf and <name>-profile.png to the output directory.
// See config.go for the remaining settings.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"seehuhn.de/go/paraxial"
	"seehuhn.de/go/paraxial/diagram"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := run(cfg); err != nil {
		slog.Error("raytrace", "prescription", cfg.Prescription, "error", err)
		os.Exit(1)
	}
}

func run(cfg *config) error {
	p, err := cfg.load()
	if err != nil {
		return err
	}
	s, err := p.Build()
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	rays := p.Rays(s)
	slog.Debug("system", "name", p.Name, "length", s.Length(), "elements", len(s.Elements()), "rays", len(rays))

	sc, err := diagram.NewScene(s, rays, cfg.search())
	if err != nil {
		return err
	}
	report(sc)

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return err
	}
	base := filepath.Join(cfg.OutDir, p.Name)

	if err := writeFile(base+".png", func(f *os.File) error {
		return diagram.WritePNG(f, sc, cfg.Width, cfg.Height)
	}); err != nil {
		return err
	}
	slog.Info("wrote diagram", "file", base+".png")

	if cfg.PDF {
		// one pixel per PDF point
		if err := diagram.WritePDF(base+".pdf", sc, float64(cfg.Width), float64(cfg.Height)); err != nil {
			return err
		}
		slog.Info("wrote diagram", "file", base+".pdf")
	}

	if cfg.Profile {
		pr := diagram.NewProfile(sc, rays, cfg.ProfileSamples)
		if err := writeFile(base+"-profile.png", func(f *os.File) error {
			return pr.WriteChart(f, 16, 10, "png")
		}); err != nil {
			return err
		}
		slog.Info("wrote profile", "file", base+"-profile.png")
	}
	return nil
}

// report logs the results of the marginal ray and image searches.
func report(sc *diagram.Scene) {
	m := sc.Marginal
	switch {
	case m.Unbounded:
		slog.Info("marginal ray", "unbounded", true)
	case len(m.Rays) > 0:
		slog.Info("marginal ray", "angle", fmt.Sprintf("%.2f", m.Rays[0].Angle), "stop", describe(m.Stop))
	default:
		slog.Warn("no marginal ray", "stop", describe(m.Stop))
	}

	im := sc.Image
	if im.Base == nil {
		slog.Warn("image position not found")
		return
	}
	slog.Info("image position", "z", fmt.Sprintf("%.2f", im.Base.Z))
	if h, ok := im.Height(); ok {
		mag, _ := im.Magnification(sc.ObjectHeight)
		slog.Info("image height",
			"height", fmt.Sprintf("%.2f", h),
			"magnification", fmt.Sprintf("%.2f", mag))
	} else {
		slog.Warn("image height not found")
	}
}

func describe(e paraxial.Element) string {
	switch e := e.(type) {
	case paraxial.Lens:
		return fmt.Sprintf("lens at z=%g", e.Z)
	case paraxial.Iris:
		return fmt.Sprintf("iris at z=%g", e.Z)
	default:
		return "none"
	}
}

// writeFile creates the named file and passes it to write.
func writeFile(name string, write func(f *os.File) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
