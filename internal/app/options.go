package app

import (
	"errors"
	"fmt"

	"github.com/dshills/codeshot/internal/config"
	"github.com/dshills/codeshot/internal/integration/silicon"
)

// renderOptions builds the process-wide rendering defaults from the merged
// configuration. Absent shadow settings stay absent; any other missing
// setting is a defaults-layer bug and surfaces as an error.
func renderOptions(cfg *config.Config) (silicon.Options, error) {
	var opts silicon.Options
	var err error

	if opts.LineNumbers, err = cfg.GetBool("silicon.lineNumbers"); err != nil {
		return silicon.Options{}, settingError("silicon.lineNumbers", err)
	}
	if opts.WindowControls, err = cfg.GetBool("silicon.windowControls"); err != nil {
		return silicon.Options{}, settingError("silicon.windowControls", err)
	}
	if opts.RoundedCorners, err = cfg.GetBool("silicon.roundedCorners"); err != nil {
		return silicon.Options{}, settingError("silicon.roundedCorners", err)
	}
	if opts.Background, err = cfg.GetString("silicon.background"); err != nil {
		return silicon.Options{}, settingError("silicon.background", err)
	}
	if opts.Theme, err = cfg.GetString("silicon.theme"); err != nil {
		return silicon.Options{}, settingError("silicon.theme", err)
	}

	if opts.Shadow.BlurRadius, err = optionalInt(cfg, "silicon.shadow.blurRadius"); err != nil {
		return silicon.Options{}, err
	}
	if opts.Shadow.Color, err = optionalString(cfg, "silicon.shadow.color"); err != nil {
		return silicon.Options{}, err
	}
	if opts.Shadow.OffsetX, err = optionalInt(cfg, "silicon.shadow.offsetX"); err != nil {
		return silicon.Options{}, err
	}
	if opts.Shadow.OffsetY, err = optionalInt(cfg, "silicon.shadow.offsetY"); err != nil {
		return silicon.Options{}, err
	}

	return opts, nil
}

// optionalInt reads an integer setting that may legitimately be absent.
func optionalInt(cfg *config.Config, path string) (*int, error) {
	v, err := cfg.GetInt(path)
	if err != nil {
		if errors.Is(err, config.ErrSettingNotFound) {
			return nil, nil
		}
		return nil, settingError(path, err)
	}
	return &v, nil
}

// optionalString reads a string setting that may legitimately be absent.
func optionalString(cfg *config.Config, path string) (string, error) {
	v, err := cfg.GetString(path)
	if err != nil {
		if errors.Is(err, config.ErrSettingNotFound) {
			return "", nil
		}
		return "", settingError(path, err)
	}
	return v, nil
}

func settingError(path string, err error) error {
	return fmt.Errorf("reading setting %s: %w", path, err)
}
