package hexwidget

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/benoitkugler/hexprogress/hexanim"
	"github.com/benoitkugler/hexprogress/hexdraw"
	"github.com/benoitkugler/hexprogress/hexfill"
)

// Keys are the option names accepted by DecodeOptions.
var Keys = []string{
	"size", "value", "startAngle", "lineWidth", "lineCap", "clip",
	"background", "lineBackFill", "lineFrontFill",
	"animation", "animationStartValue",
}

// DecodeOptions converts loosely typed options, as decoded from JSON,
// YAML or TOML, into a list of Option.
// Sizes accept "parent" and line widths "auto". Fills are either a color
// string or an object with the fields color, gradient, gradientAngle,
// gradientDirection and image. Animation is false, true or an object
// with a duration (milliseconds, or a Go duration string) and an easing.
func DecodeOptions(m map[string]any) ([]Option, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic errors

	var out []Option
	for _, key := range keys {
		opt, err := decodeOption(key, m[key])
		if err != nil {
			return nil, configError("DecodeOptions", fmt.Errorf("%s: %w", key, err))
		}
		out = append(out, opt)
	}
	return out, nil
}

func decodeOption(key string, v any) (Option, error) {
	switch key {
	case "size":
		if s, ok := v.(string); ok && (s == "parent" || s == "auto") {
			return WithSize(0), nil
		}
		f, err := toFloat(v)
		return WithSize(f), err
	case "value":
		f, err := toFloat(v)
		return WithValue(f), err
	case "startAngle":
		f, err := toFloat(v)
		return WithStartAngle(f), err
	case "lineWidth":
		if s, ok := v.(string); ok && s == "auto" {
			return WithLineWidth(0), nil
		}
		f, err := toFloat(v)
		return WithLineWidth(f), err
	case "animationStartValue":
		f, err := toFloat(v)
		return WithAnimationStartValue(f), err
	case "lineCap":
		s, _ := v.(string)
		c, ok := hexdraw.ParseCapMode(s)
		if !ok {
			return nil, fmt.Errorf("invalid line cap %v", v)
		}
		return WithLineCap(c), nil
	case "clip":
		b, err := toBool(v)
		return WithClip(b), err
	case "background":
		if b, ok := v.(bool); v == nil || (ok && !b) {
			return WithoutBackground(), nil
		}
		spec, err := DecodeFill(v)
		return WithBackground(spec), err
	case "lineBackFill":
		spec, err := DecodeFill(v)
		return WithLineBackFill(spec), err
	case "lineFrontFill":
		spec, err := DecodeFill(v)
		return WithLineFrontFill(spec), err
	case "animation":
		return decodeAnimation(v)
	default:
		return nil, fmt.Errorf("unknown option")
	}
}

func decodeAnimation(v any) (Option, error) {
	switch v := v.(type) {
	case nil:
		return WithoutAnimation(), nil
	case bool:
		if !v {
			return WithoutAnimation(), nil
		}
		return WithAnimation(hexanim.DefaultConfig()), nil
	case map[string]any:
		cfg := hexanim.DefaultConfig()
		for key, value := range v {
			switch key {
			case "duration":
				d, err := toDuration(value)
				if err != nil {
					return nil, err
				}
				cfg.Duration = d
			case "easing":
				s, ok := value.(string)
				if !ok {
					return nil, fmt.Errorf("invalid easing %v", value)
				}
				cfg.Easing = s
			default:
				return nil, fmt.Errorf("unknown animation field %q", key)
			}
		}
		if _, err := cfg.Curve(); err != nil {
			return nil, err
		}
		return WithAnimation(cfg), nil
	default:
		return nil, fmt.Errorf("invalid animation %v", v)
	}
}

// DecodeFill converts a loosely typed fill descriptor.
// A string is accepted as a JSON object (when starting with '{')
// or as a plain color.
func DecodeFill(v any) (hexfill.Spec, error) {
	switch v := v.(type) {
	case string:
		if strings.HasPrefix(strings.TrimSpace(v), "{") {
			var m map[string]any
			if err := json.Unmarshal([]byte(v), &m); err != nil {
				return hexfill.Spec{}, fmt.Errorf("invalid fill: %w", err)
			}
			return decodeFillMap(m)
		}
		return hexfill.SolidSpec(v), nil
	case map[string]any:
		return decodeFillMap(v)
	default:
		return hexfill.Spec{}, fmt.Errorf("invalid fill %v", v)
	}
}

func decodeFillMap(m map[string]any) (hexfill.Spec, error) {
	var (
		spec hexfill.Spec
		err  error
	)
	for key, v := range m {
		switch key {
		case "color":
			spec.Color, err = toString(v)
		case "image":
			spec.Image, err = toString(v)
		case "gradientAngle":
			spec.GradientAngle, err = toFloat(v)
		case "gradientDirection":
			var dir []float64
			dir, err = toFloats(v)
			if err == nil && len(dir) != 4 {
				err = fmt.Errorf("gradient direction requires 4 numbers, got %d", len(dir))
			}
			if err == nil {
				spec.GradientDirection = &[4]float64{dir[0], dir[1], dir[2], dir[3]}
			}
		case "gradient":
			spec.Gradient, err = decodeStops(v)
		default:
			err = fmt.Errorf("unknown fill field %q", key)
		}
		if err != nil {
			return hexfill.Spec{}, err
		}
	}
	return spec, nil
}

// decodeStops accepts colors or [color, offset] pairs.
func decodeStops(v any) ([]hexfill.Stop, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid gradient %v", v)
	}
	out := make([]hexfill.Stop, len(list))
	for i, item := range list {
		switch item := item.(type) {
		case string:
			out[i] = hexfill.Stop{Color: item}
		case []any:
			if len(item) != 2 {
				return nil, fmt.Errorf("invalid gradient stop %v", item)
			}
			c, err := toString(item[0])
			if err != nil {
				return nil, err
			}
			offset, err := toFloat(item[1])
			if err != nil {
				return nil, err
			}
			out[i] = hexfill.At(c, offset)
		default:
			return nil, fmt.Errorf("invalid gradient stop %v", item)
		}
	}
	return out, nil
}

func toString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	return s, nil
}

func toFloat(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func toFloats(v any) ([]float64, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected list, got %T", v)
	}
	out := make([]float64, len(list))
	for i, item := range list {
		f, err := toFloat(item)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func toBool(v any) (bool, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

// toDuration reads milliseconds, or a duration string like "1.5s".
func toDuration(v any) (time.Duration, error) {
	if s, ok := v.(string); ok {
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
	}
	ms, err := toFloat(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %v", v)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}
