// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/multierr"
)

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Camera     CameraConfig     `yaml:"camera"`
	Model      ModelConfig      `yaml:"model"`
	Light      LightConfig      `yaml:"light"`
	Audio      AudioConfig      `yaml:"audio"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Fullscreen    bool   `yaml:"fullscreen"`
	VSync         bool   `yaml:"vsync"`
	CaptureCursor bool   `yaml:"capture_cursor"`
}

// CameraConfig holds the initial camera pose, lens and speeds.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Target      [3]float32 `yaml:"target"`
	FOVDegrees  float32    `yaml:"fov_degrees"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	RotateSpeed float32    `yaml:"rotate_speed"` // Degrees per input step
	FlySpeed    float32    `yaml:"fly_speed"`    // Units per input step
}

// ModelConfig holds the airplane dimensions.
type ModelConfig struct {
	BodyRadius   float32 `yaml:"body_radius"`
	BodyLength   float32 `yaml:"body_length"`
	Segments     int     `yaml:"segments"`
	HoverHeight  float32 `yaml:"hover_height"`
	WingLength   float32 `yaml:"wing_length"`
	WingWidth    float32 `yaml:"wing_width"`
	WingHeight   float32 `yaml:"wing_height"`
	WingOffset   float32 `yaml:"wing_offset"`
	WingRollMax  float32 `yaml:"wing_roll_max"` // Degrees
	TailBaseEdge float32 `yaml:"tail_base_edge"`
	TailHeight1  float32 `yaml:"tail_height1"`
	TailHeight2  float32 `yaml:"tail_height2"`
	TailOffset   float32 `yaml:"tail_offset"`
	ShowBoard    bool    `yaml:"show_board"`
	BoardSize    float32 `yaml:"board_size"`
	BoardScale   float32 `yaml:"board_scale"`
}

// LightConfig holds the fixed point light and material constants.
type LightConfig struct {
	Position  [3]float32 `yaml:"position"`
	Ambient   float32    `yaml:"ambient"`
	Diffuse   float32    `yaml:"diffuse"`
	Specular  float32    `yaml:"specular"`
	Shininess float32    `yaml:"shininess"`
}

// AudioConfig holds the engine hum settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
	Pitch   float64 `yaml:"pitch"`  // Hz
}

// ScreenshotConfig holds where F12 captures go.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "hangar",
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			CaptureCursor: true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 5, 10},
			Target:      [3]float32{0, 0, 0},
			FOVDegrees:  45,
			Near:        0.1,
			Far:         100,
			RotateSpeed: 1.0,
			FlySpeed:    1.0 / 20,
		},
		Model: ModelConfig{
			BodyRadius:   0.5,
			BodyLength:   4,
			Segments:     64,
			HoverHeight:  0.5,
			WingLength:   4,
			WingWidth:    1,
			WingHeight:   0.5,
			WingOffset:   2,
			WingRollMax:  30,
			TailBaseEdge: 2,
			TailHeight1:  1,
			TailHeight2:  0.5,
			TailOffset:   2,
			ShowBoard:    true,
			BoardSize:    10,
			BoardScale:   3,
		},
		Light: LightConfig{
			Position:  [3]float32{50, 75, 80},
			Ambient:   0.4,
			Diffuse:   0.6,
			Specular:  0.6,
			Shininess: 32,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.3,
			Pitch:   110,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)

	cam := c.Camera
	check(cam.FOVDegrees > 0 && cam.FOVDegrees < 180, "camera fov_degrees %v outside (0, 180)", cam.FOVDegrees)
	check(cam.Near > 0 && cam.Near < cam.Far, "camera near %v / far %v: need 0 < near < far", cam.Near, cam.Far)
	check(cam.RotateSpeed >= 0, "camera rotate_speed %v must not be negative", cam.RotateSpeed)
	check(cam.FlySpeed >= 0, "camera fly_speed %v must not be negative", cam.FlySpeed)
	check(cam.Position != cam.Target, "camera position and target coincide at %v", cam.Position)

	m := c.Model
	check(m.Segments >= 3, "model segments %d must be at least 3", m.Segments)
	dims := []struct {
		name  string
		value float32
	}{
		{"body_radius", m.BodyRadius},
		{"body_length", m.BodyLength},
		{"wing_length", m.WingLength},
		{"wing_width", m.WingWidth},
		{"wing_height", m.WingHeight},
		{"tail_base_edge", m.TailBaseEdge},
		{"tail_height1", m.TailHeight1},
		{"tail_height2", m.TailHeight2},
		{"board_size", m.BoardSize},
		{"board_scale", m.BoardScale},
	}
	for _, d := range dims {
		check(d.value >= 0 && !math32.IsInf(d.value, 0), "model %s %v must be a finite non-negative number", d.name, d.value)
	}
	check(m.WingRollMax >= 0 && m.WingRollMax <= 90, "model wing_roll_max %v outside [0, 90]", m.WingRollMax)

	check(c.Light.Shininess > 0, "light shininess %v must be positive", c.Light.Shininess)

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio volume %v outside [0, 1]", c.Audio.Volume)
	check(c.Screenshot.Format == "png" || c.Screenshot.Format == "bmp", "screenshot format %q must be png or bmp", c.Screenshot.Format)
	check(c.Audio.Pitch > 0 && c.Audio.Pitch < 20000, "audio pitch %v Hz outside (0, 20000)", c.Audio.Pitch)

	return err
}
