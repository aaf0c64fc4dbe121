// config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes one board: which bus and pins each device uses.
type Config struct {
	Platform PlatformConfig `yaml:"platform"`
	ADC      ADCConfig      `yaml:"adc"`
	Motor    MotorConfig    `yaml:"motor"`
	Stepper  StepperConfig  `yaml:"stepper"`
	LED      LEDConfig      `yaml:"led"`
}

// ---- PLATFORM ----

type PlatformConfig struct {
	// Fake selects the in-memory host platform instead of hardware.
	Fake   bool   `yaml:"fake"`
	I2CBus string `yaml:"i2c_bus"` // i2creg name, e.g. "1"
}

// ---- ADC (ADS7830) ----

type ADCConfig struct {
	Address    uint16  `yaml:"address"`
	Reference  string  `yaml:"reference"` // internal | external
	Channel    string  `yaml:"channel"`   // single0..single7, diff01..diff76
	VRef       float64 `yaml:"vref"`      // volts
	IntervalMs int     `yaml:"interval_ms"`
}

// ---- DC MOTOR ----

type MotorConfig struct {
	IC         string `yaml:"ic"` // l298 | tb6612fng
	In1        string `yaml:"in1"`
	In2        string `yaml:"in2"`
	PWM        string `yaml:"pwm"`
	PWMHz      uint32 `yaml:"pwm_hz"`
	IntervalMs int    `yaml:"interval_ms"`
}

// ---- STEPPER ----

type StepperConfig struct {
	Pins     []string `yaml:"pins"` // phase order as wired
	Start    int      `yaml:"start"`
	Dir      string   `yaml:"dir"` // cw | ccw
	SettleMs int      `yaml:"settle_ms"`
}

// ---- LED (PWM) ----

type LEDConfig struct {
	PWM        string `yaml:"pwm"`
	PWMHz      uint32 `yaml:"pwm_hz"`
	IntervalMs int    `yaml:"interval_ms"`
}

// Load reads a YAML file and applies defaults. An empty path yields the
// defaults alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	Normalize(cfg)
	return cfg, nil
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func (a ADCConfig) Interval() time.Duration   { return ms(a.IntervalMs) }
func (m MotorConfig) Interval() time.Duration { return ms(m.IntervalMs) }
func (s StepperConfig) Settle() time.Duration { return ms(s.SettleMs) }
func (l LEDConfig) Interval() time.Duration   { return ms(l.IntervalMs) }
