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

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"seehuhn.de/go/paraxial"
	"seehuhn.de/go/paraxial/prescription"
)

// config is read from environment variables with the prefix PARAXIAL_,
// for example PARAXIAL_OUT_DIR.
type config struct {
	// Prescription is the name of a built-in prescription or the path of
	// a JSON prescription file.  A command line argument takes precedence.
	Prescription string `envconfig:"PRESCRIPTION" default:"reference"`

	OutDir string `envconfig:"OUT_DIR" default:"."`
	Width  int    `envconfig:"WIDTH" default:"1200"`
	Height int    `envconfig:"HEIGHT" default:"600"`
	PDF    bool   `envconfig:"PDF" default:"true"`

	// Profile enables the chart of the bundle spread along the axis.
	Profile        bool `envconfig:"PROFILE" default:"true"`
	ProfileSamples int  `envconfig:"PROFILE_SAMPLES" default:"1000"`

	// FanStep overrides the ray fan of the prescription, if positive.
	FanFrom float64 `envconfig:"FAN_FROM" default:"-10"`
	FanTo   float64 `envconfig:"FAN_TO" default:"10"`
	FanStep float64 `envconfig:"FAN_STEP" default:"0"`

	MarginalStep float64 `envconfig:"MARGINAL_STEP" default:"0.01"`
	MaxAngle     float64 `envconfig:"MAX_ANGLE" default:"89"`

	LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"INFO"`
}

func loadConfig(args []string) (*config, error) {
	var cfg config
	if err := envconfig.Process("paraxial", &cfg); err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Prescription = args[0]
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", cfg.Width, cfg.Height)
	}
	return &cfg, nil
}

// search returns the marginal ray search configured by cfg.
func (cfg *config) search() paraxial.MarginalSearch {
	return paraxial.MarginalSearch{Step: cfg.MarginalStep, MaxAngle: cfg.MaxAngle}
}

// load returns the prescription named by cfg.  Names of built-in
// prescriptions take precedence over file names.
func (cfg *config) load() (*prescription.Prescription, error) {
	p, ok := prescription.All[cfg.Prescription]
	if !ok {
		if !strings.HasSuffix(cfg.Prescription, ".json") {
			if _, err := os.Stat(cfg.Prescription); err != nil {
				return nil, fmt.Errorf("unknown prescription %q", cfg.Prescription)
			}
		}
		var err error
		p, err = prescription.ReadFile(cfg.Prescription)
		if err != nil {
			return nil, err
		}
	}

	if cfg.FanStep > 0 {
		q := *p
		q.Fan = prescription.Fan{From: cfg.FanFrom, To: cfg.FanTo, Step: cfg.FanStep}
		p = &q
	}
	return p, nil
}
