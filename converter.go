package configfed

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Converter turns a raw string payload (or none, represented as a nil
// pointer) into a T. Converters are the only place a nil payload becomes a
// concrete zero value or an error — the core never interprets the string
// itself.
type Converter[T any] interface {
	// Convert converts value into a T. value is nil when the selected
	// ConfigurationValue carries no payload; when nothing is selected the
	// resolver passes the (non-nil) default string instead.
	Convert(value *string) (T, error)

	// Type returns the opaque type descriptor this converter publishes.
	// reflect.Type serves as the descriptor: it is exactly the
	// "equality-comparable token" a type-based registry lookup needs,
	// without resurrecting Java's raw-class-vs-parameterized-type split.
	Type() reflect.Type
}

// converterFunc adapts a plain function into a Converter[T].
type converterFunc[T any] struct {
	convert func(*string) (T, error)
	typ     reflect.Type
}

func (c converterFunc[T]) Convert(value *string) (T, error) { return c.convert(value) }
func (c converterFunc[T]) Type() reflect.Type               { return c.typ }

// NewConverter builds a Converter[T] from a plain function, publishing typ
// as its type descriptor. Used by callers wiring external converters
// (duration, file, list, ...) into a Bootstrap without hand-writing a type.
func NewConverter[T any](typ reflect.Type, fn func(*string) (T, error)) Converter[T] {
	return converterFunc[T]{convert: fn, typ: typ}
}

// stringType and mapType are the descriptors for the two converters the core
// ships built in: String (required by GetValue) and Map<string,string>
// (required to resolve configurationCoordinates during Bootstrap).
var (
	stringType = reflect.TypeOf("")
	mapType    = reflect.TypeOf(map[string]string(nil))
)

// StringConverter returns the built-in identity converter: a nil payload
// becomes "", otherwise the payload is returned unchanged. This is the
// converter the external GetValue overloads use.
func StringConverter() Converter[string] {
	return converterFunc[string]{
		typ: stringType,
		convert: func(value *string) (string, error) {
			if value == nil {
				return "", nil
			}
			return *value, nil
		},
	}
}

// MapConverter returns the built-in Map<string,string> converter used to
// resolve the well-known "configurationCoordinates" property. It accepts the
// flow-style syntax "{a=b, c=d}" (also "{a: b, c: d}") and "" as an empty
// map; see bootstrap.go for where it is invoked.
func MapConverter() Converter[map[string]string] {
	return converterFunc[map[string]string]{
		typ: mapType,
		convert: func(value *string) (map[string]string, error) {
			result := make(map[string]string)
			if value == nil {
				return result, nil
			}
			s := strings.TrimSpace(*value)
			s = strings.TrimPrefix(s, "{")
			s = strings.TrimSuffix(s, "}")
			s = strings.TrimSpace(s)
			if s == "" {
				return result, nil
			}
			for _, pair := range strings.Split(s, ",") {
				pair = strings.TrimSpace(pair)
				if pair == "" {
					continue
				}
				sep := strings.IndexAny(pair, "=:")
				if sep < 0 {
					return nil, &malformedCoordinateSyntaxError{raw: pair}
				}
				k := strings.TrimSpace(pair[:sep])
				v := strings.TrimSpace(pair[sep+1:])
				result[k] = v
			}
			return result, nil
		},
	}
}

type malformedCoordinateSyntaxError struct{ raw string }

func (e *malformedCoordinateSyntaxError) Error() string {
	return "configfed: malformed configurationCoordinates entry: " + strconv.Quote(e.raw)
}

// DurationConverter is a small reference converter for the kind of
// external duration/file/list converters the core itself doesn't ship —
// included here only as a usage example for Bootstrap tests, not as part
// of the resolved public surface other packages should depend on.
func DurationConverter() Converter[time.Duration] {
	return converterFunc[time.Duration]{
		typ: reflect.TypeOf(time.Duration(0)),
		convert: func(value *string) (time.Duration, error) {
			if value == nil {
				return 0, nil
			}
			return time.ParseDuration(*value)
		},
	}
}
